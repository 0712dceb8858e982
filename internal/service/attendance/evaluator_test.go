package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
)

func ist(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func timePtr(v time.Time) *time.Time { return &v }

func TestDetermineStatus(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance
	// 2025-03-12 is a Wednesday, 2025-03-08 a Saturday.
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)
	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)

	at := func(date time.Time, hour, minute int) *time.Time {
		v := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
		return &v
	}

	tests := []struct {
		name      string
		date      time.Time
		policy    settings.AttendancePolicy
		checkIn   *time.Time
		checkOut  *time.Time
		status    attendancedomain.Status
		workHours float64
		isLate    bool
	}{
		{
			name:     "full day on time",
			date:     wednesday,
			policy:   policy,
			checkIn:  at(wednesday, 9, 30),
			checkOut: at(wednesday, 18, 0),
			status:   attendancedomain.StatusPresent, workHours: 8.5,
		},
		{
			name:    "late arrival short day",
			date:    wednesday,
			policy:  policy,
			checkIn: at(wednesday, 10, 30), checkOut: at(wednesday, 14, 30),
			status: attendancedomain.StatusHalfDay, workHours: 4.0, isLate: true,
		},
		{
			name:    "under minimum is absent",
			date:    wednesday,
			policy:  policy,
			checkIn: at(wednesday, 9, 0), checkOut: at(wednesday, 11, 0),
			status: attendancedomain.StatusAbsent, workHours: 2.0,
		},
		{
			name:   "no check-in",
			date:   wednesday,
			policy: policy,
			status: attendancedomain.StatusAbsent,
		},
		{
			name:    "open session is provisionally present",
			date:    wednesday,
			policy:  policy,
			checkIn: at(wednesday, 9, 10),
			status:  attendancedomain.StatusPresent,
		},
		{
			name: "half saturday needs only the minimum",
			date: saturday,
			policy: func() settings.AttendancePolicy {
				p := policy
				p.SaturdayWorkType = settings.SaturdayHalf
				return p
			}(),
			checkIn: at(saturday, 9, 0), checkOut: at(saturday, 13, 30),
			status: attendancedomain.StatusPresent, workHours: 4.5,
		},
		{
			name:    "full saturday under full day hours is half day",
			date:    saturday,
			policy:  policy,
			checkIn: at(saturday, 9, 0), checkOut: at(saturday, 13, 30),
			status: attendancedomain.StatusHalfDay, workHours: 4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineStatus(tt.checkIn, tt.checkOut, tt.date, tt.policy, loc)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.isLate, got.IsLate)
			if tt.checkIn != nil && tt.checkOut != nil {
				require.NotNil(t, got.WorkHours)
				assert.InDelta(t, tt.workHours, *got.WorkHours, 0.001)
			} else {
				assert.Nil(t, got.WorkHours)
			}
		})
	}
}

func TestDetermineStatus_LateThresholdBoundary(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)

	onTime := time.Date(2025, 3, 12, 9, 55, 0, 0, loc)
	late := time.Date(2025, 3, 12, 9, 56, 0, 0, loc)

	assert.False(t, DetermineStatus(timePtr(onTime), nil, day, policy, loc).IsLate,
		"arriving exactly at the threshold is on time")
	assert.True(t, DetermineStatus(timePtr(late), nil, day, policy, loc).IsLate)
}

func TestDetermineStatus_LatenessUsesOrgTimezone(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)

	// 04:40 UTC is 10:10 IST: late even though the UTC hour is small.
	checkIn := time.Date(2025, 3, 12, 4, 40, 0, 0, time.UTC)
	assert.True(t, DetermineStatus(&checkIn, nil, day, policy, loc).IsLate)
}

func TestDetermineStatus_CheckOutBeforeCheckInClampsToZero(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)

	in := time.Date(2025, 3, 12, 14, 0, 0, 0, loc)
	out := time.Date(2025, 3, 12, 12, 0, 0, 0, loc)

	got := DetermineStatus(&in, &out, day, policy, loc)
	require.NotNil(t, got.WorkHours)
	assert.Equal(t, 0.0, *got.WorkHours)
	assert.Equal(t, attendancedomain.StatusAbsent, got.Status)
}

func TestValidateStatusTransition(t *testing.T) {
	statuses := []attendancedomain.Status{
		attendancedomain.StatusPresent,
		attendancedomain.StatusHalfDay,
		attendancedomain.StatusAbsent,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.NoError(t, ValidateStatusTransition(from, to))
		}
	}

	assert.ErrorIs(t, ValidateStatusTransition(attendancedomain.StatusPresent, "on-leave"),
		attendancedomain.ErrInvalidStatus)
	assert.ErrorIs(t, ValidateStatusTransition("", attendancedomain.StatusAbsent),
		attendancedomain.ErrInvalidStatus)
}

func TestCheckInWarnings(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)

	early := time.Date(2025, 3, 12, 6, 30, 0, 0, loc)
	normal := time.Date(2025, 3, 12, 8, 0, 0, 0, loc)

	assert.Contains(t, CheckInWarnings(early, day, policy, loc), WarningVeryEarlyCheckIn)
	assert.Empty(t, CheckInWarnings(normal, day, policy, loc))
}

func TestCheckOutWarnings(t *testing.T) {
	policy := settings.Defaults().Attendance

	assert.Contains(t, CheckOutWarnings(2.0, policy), WarningShortDuration)
	assert.Empty(t, CheckOutWarnings(5.0, policy))
}

func TestCalculateAttendancePercentage(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAttendancePercentage(0, 0, 0), "zero working days")
	assert.Equal(t, 100.0, CalculateAttendancePercentage(20, 0, 20))
	assert.Equal(t, 100.0, CalculateAttendancePercentage(2, 1, 3), "half days count as attended")
	assert.Equal(t, 66.7, CalculateAttendancePercentage(2, 0, 3), "one decimal")
	assert.Equal(t, 50.0, CalculateAttendancePercentage(9, 1, 20))
}
