package geofence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/geo"
)

// Bengaluru office used throughout; offsets below are in degrees of
// latitude (1 degree of latitude is about 111.2km).
var hq = office.Office{
	ID:           "office-1",
	Name:         "Bengaluru HQ",
	Latitude:     12.9716,
	Longitude:    77.5946,
	RadiusMeters: 100,
}

func enabledPolicy() settings.GeofencePolicy {
	return settings.GeofencePolicy{
		Enabled:             true,
		EnforceCheckIn:      true,
		DefaultRadiusMeters: 200,
		AllowWFHBypass:      true,
	}
}

// latOffset returns coordinates roughly meters north of the office.
func latOffset(meters float64) (float64, float64) {
	return hq.Latitude + meters/111200.0, hq.Longitude
}

func f64Ptr(v float64) *float64 { return &v }

func TestEvaluate_DisabledOrNotEnforced(t *testing.T) {
	offices := []office.Office{hq}

	disabled := enabledPolicy()
	disabled.Enabled = false

	eval, err := Evaluate(disabled, offices, nil, nil, false, true)
	require.NoError(t, err)
	assert.False(t, eval.Enforced)

	eval, err = Evaluate(enabledPolicy(), offices, nil, nil, false, false)
	require.NoError(t, err)
	assert.False(t, eval.Enforced)
}

func TestEvaluate_MissingLocation(t *testing.T) {
	_, err := Evaluate(enabledPolicy(), []office.Office{hq}, nil, nil, false, true)
	assert.ErrorIs(t, err, ErrLocationRequired)
}

func TestEvaluate_NoOfficeConfigured(t *testing.T) {
	lat, lng := latOffset(0)
	_, err := Evaluate(enabledPolicy(), nil, &lat, &lng, false, true)
	assert.ErrorIs(t, err, office.ErrNoOfficeConfigured)
}

func TestEvaluate_WithinFence(t *testing.T) {
	lat, lng := latOffset(50)

	eval, err := Evaluate(enabledPolicy(), []office.Office{hq}, &lat, &lng, false, true)
	require.NoError(t, err)
	assert.True(t, eval.Enforced)
	assert.Equal(t, attendance.GeofenceOnsite, eval.Status)
	require.NotNil(t, eval.Office)
	assert.Equal(t, hq.ID, eval.Office.ID)
	require.NotNil(t, eval.DistanceMeters)
	assert.InDelta(t, 50, *eval.DistanceMeters, 1)
}

func TestEvaluate_ToleranceAbsorbsJitter(t *testing.T) {
	// 105m from a 100m fence: inside once the 10m tolerance is applied.
	lat, lng := latOffset(105)

	eval, err := Evaluate(enabledPolicy(), []office.Office{hq}, &lat, &lng, false, true)
	require.NoError(t, err)
	assert.Equal(t, attendance.GeofenceOnsite, eval.Status)
}

func TestEvaluate_OutsideFence(t *testing.T) {
	lat, lng := latOffset(115)

	_, err := Evaluate(enabledPolicy(), []office.Office{hq}, &lat, &lng, false, true)

	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, hq.Name, violation.OfficeName)
	assert.Equal(t, 100.0, violation.RadiusMeters)
	assert.InDelta(t, 115, violation.DistanceMeters, 1)
	assert.True(t, violation.CanRequestWFH)
}

func TestEvaluate_ViolationWithoutBypass(t *testing.T) {
	policy := enabledPolicy()
	policy.AllowWFHBypass = false
	lat, lng := latOffset(500)

	_, err := Evaluate(policy, []office.Office{hq}, &lat, &lng, false, true)

	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	assert.False(t, violation.CanRequestWFH)
}

func TestEvaluate_WFHBypass(t *testing.T) {
	t.Run("outside fence with approved wfh", func(t *testing.T) {
		lat, lng := latOffset(5000)
		eval, err := Evaluate(enabledPolicy(), []office.Office{hq}, &lat, &lng, true, true)
		require.NoError(t, err)
		assert.Equal(t, attendance.GeofenceWFH, eval.Status)
	})

	t.Run("no coordinates still fails despite approved wfh", func(t *testing.T) {
		_, err := Evaluate(enabledPolicy(), []office.Office{hq}, nil, nil, true, true)
		assert.ErrorIs(t, err, ErrLocationRequired)
	})

	t.Run("bypass disabled still requires location", func(t *testing.T) {
		policy := enabledPolicy()
		policy.AllowWFHBypass = false
		_, err := Evaluate(policy, []office.Office{hq}, nil, nil, true, true)
		assert.ErrorIs(t, err, ErrLocationRequired)
	})
}

func TestEvaluate_PicksNearestOffice(t *testing.T) {
	branch := office.Office{
		ID:        "office-2",
		Name:      "Branch",
		Latitude:  12.9916, // ~2.2km north of HQ
		Longitude: 77.5946,
		// No radius set: falls back to the 200m policy default.
	}
	lat := branch.Latitude + 150/111200.0
	lng := branch.Longitude

	eval, err := Evaluate(enabledPolicy(), []office.Office{hq, branch}, &lat, &lng, false, true)
	require.NoError(t, err)
	require.NotNil(t, eval.Office)
	assert.Equal(t, branch.ID, eval.Office.ID)
	assert.Equal(t, attendance.GeofenceOnsite, eval.Status)
}

func TestEffectiveRadius(t *testing.T) {
	policy := enabledPolicy()

	assert.Equal(t, 100.0, EffectiveRadius(hq, policy))

	bare := hq
	bare.RadiusMeters = 0
	assert.Equal(t, 200.0, EffectiveRadius(bare, policy))
}

func TestNearest_Distances(t *testing.T) {
	lat, lng := latOffset(1000)
	_, distance, ok := Nearest([]office.Office{hq}, lat, lng)
	require.True(t, ok)
	assert.InDelta(t, 1000, distance, 10)

	d := geo.HaversineDistance(hq.Latitude, hq.Longitude, hq.Latitude, hq.Longitude)
	assert.Equal(t, 0.0, d)
}

func TestEvaluationInfo(t *testing.T) {
	now := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)

	t.Run("not enforced", func(t *testing.T) {
		info := Evaluation{Enforced: false}.Info(now)
		require.NotNil(t, info)
		assert.False(t, info.Enforced)
		assert.Nil(t, info.ValidatedAt)
	})

	t.Run("onsite", func(t *testing.T) {
		eval := Evaluation{
			Enforced:       true,
			Status:         attendance.GeofenceOnsite,
			Office:         &hq,
			DistanceMeters: f64Ptr(49.987),
		}
		info := eval.Info(now)
		assert.True(t, info.Enforced)
		assert.Equal(t, attendance.GeofenceOnsite, info.Status)
		require.NotNil(t, info.DistanceMeters)
		assert.Equal(t, 49.99, *info.DistanceMeters)
		require.NotNil(t, info.ValidatedAt)
		assert.Equal(t, now, *info.ValidatedAt)
	})
}
