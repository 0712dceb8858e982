package geofence

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/geo"
)

// ToleranceMeters absorbs GPS jitter: a device reading just past the
// configured radius still validates.
const ToleranceMeters = 10.0

// ErrLocationRequired is returned when geofencing is enforced but the
// request carried no coordinates.
var ErrLocationRequired = errors.New("location is required while geofencing is enforced")

// ViolationError reports a punch outside every office fence. It carries
// enough detail for the client to show the nearest office and offer a WFH
// request when the policy allows bypassing.
type ViolationError struct {
	OfficeID       string
	OfficeName     string
	RadiusMeters   float64
	DistanceMeters float64
	CanRequestWFH  bool
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("outside geofence: %.2fm from %s (allowed %.0fm)",
		e.DistanceMeters, e.OfficeName, e.RadiusMeters)
}

// Evaluation is the geofence outcome for one punch.
type Evaluation struct {
	Enforced       bool
	Status         attendance.GeofenceStatus
	Office         *office.Office
	DistanceMeters *float64
}

// Info converts the evaluation into the form stored on the attendance
// record.
func (e Evaluation) Info(now time.Time) *attendance.GeofenceInfo {
	info := &attendance.GeofenceInfo{Enforced: e.Enforced}
	if !e.Enforced {
		return info
	}
	info.Status = e.Status
	info.ValidatedAt = &now
	if e.Office != nil {
		info.OfficeID = &e.Office.ID
		info.OfficeName = &e.Office.Name
	}
	if e.DistanceMeters != nil {
		d := round2(*e.DistanceMeters)
		info.DistanceMeters = &d
	}
	return info
}

// EffectiveRadius is the office's own radius, or the policy default when
// the office does not set one.
func EffectiveRadius(o office.Office, policy settings.GeofencePolicy) float64 {
	if o.RadiusMeters > 0 {
		return o.RadiusMeters
	}
	return policy.DefaultRadiusMeters
}

// Nearest returns the active office closest to the coordinate and the
// distance to it in meters. ok is false when offices is empty.
func Nearest(offices []office.Office, lat, lng float64) (nearest office.Office, distance float64, ok bool) {
	for _, o := range offices {
		d := geo.HaversineDistance(lat, lng, o.Latitude, o.Longitude)
		if !ok || d < distance {
			nearest, distance, ok = o, d, true
		}
	}
	return nearest, distance, ok
}

// WithinFence reports whether a distance falls inside radius plus the GPS
// tolerance.
func WithinFence(distance, radius float64) bool {
	return distance <= radius+ToleranceMeters
}

// Evaluate validates one punch against the geofence policy.
//
// The ladder: when geofencing is disabled, or not enforced for this
// operation, the punch passes unvalidated. Otherwise coordinates are
// mandatory, even on an approved WFH day, and at least one office must
// exist. A punch inside the nearest office's fence passes as onsite; a
// punch outside passes as wfh only with an approved WFH request and a
// policy that allows bypassing, and fails with a *ViolationError
// otherwise.
func Evaluate(policy settings.GeofencePolicy, offices []office.Office, lat, lng *float64, hasApprovedWFH, enforce bool) (Evaluation, error) {
	if !policy.Enabled || !enforce {
		return Evaluation{Enforced: false}, nil
	}

	if lat == nil || lng == nil {
		return Evaluation{}, ErrLocationRequired
	}

	wfhBypass := hasApprovedWFH && policy.AllowWFHBypass

	if len(offices) == 0 {
		return Evaluation{}, office.ErrNoOfficeConfigured
	}

	nearest, distance, _ := Nearest(offices, *lat, *lng)
	radius := EffectiveRadius(nearest, policy)

	if WithinFence(distance, radius) {
		return Evaluation{
			Enforced:       true,
			Status:         attendance.GeofenceOnsite,
			Office:         &nearest,
			DistanceMeters: &distance,
		}, nil
	}

	if wfhBypass {
		return Evaluation{
			Enforced:       true,
			Status:         attendance.GeofenceWFH,
			Office:         &nearest,
			DistanceMeters: &distance,
		}, nil
	}

	return Evaluation{}, &ViolationError{
		OfficeID:       nearest.ID,
		OfficeName:     nearest.Name,
		RadiusMeters:   radius,
		DistanceMeters: round2(distance),
		CanRequestWFH:  policy.AllowWFHBypass,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
