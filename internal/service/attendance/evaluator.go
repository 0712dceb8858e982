package attendance

import (
	"math"
	"time"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
)

// StatusResult is the outcome of evaluating one day's punches against an
// attendance policy. Evaluation is pure: callers persist the result.
type StatusResult struct {
	Status    attendancedomain.Status
	WorkHours *float64
	IsLate    bool
}

// DetermineStatus classifies a day's record from its punches.
//
// With no check-in the day is absent. With a check-in and no check-out the
// day is provisionally present; the final status is settled at checkout or
// by the missing-checkout sweep. With both punches the worked duration
// decides: under the minimum it is absent, under the full-day cutoff it is
// a half day, otherwise present. On a half-Saturday the minimum alone earns
// a full present day.
//
// Lateness is independent of status: a check-in after the late threshold
// (compared as decimal hours of the day in loc) marks the day late even
// when the day ends up absent.
func DetermineStatus(checkIn, checkOut *time.Time, date time.Time, policy settings.AttendancePolicy, loc *time.Location) StatusResult {
	if checkIn == nil {
		return StatusResult{Status: attendancedomain.StatusAbsent}
	}

	result := StatusResult{IsLate: isLate(*checkIn, policy, loc)}

	if checkOut == nil {
		result.Status = attendancedomain.StatusPresent
		return result
	}

	hours := checkOut.Sub(*checkIn).Hours()
	if hours < 0 {
		hours = 0
	}
	result.WorkHours = &hours

	switch {
	case hours < policy.MinimumWorkHours:
		result.Status = attendancedomain.StatusAbsent
	case isHalfSaturday(date, policy):
		result.Status = attendancedomain.StatusPresent
	case hours < policy.FullDayHours:
		result.Status = attendancedomain.StatusHalfDay
	default:
		result.Status = attendancedomain.StatusPresent
	}
	return result
}

func isLate(checkIn time.Time, policy settings.AttendancePolicy, loc *time.Location) bool {
	local := checkIn.In(loc)
	decimal := float64(local.Hour()) + float64(local.Minute())/60.0 + float64(local.Second())/3600.0
	return decimal > policy.LateThresholdDecimal()
}

func isHalfSaturday(date time.Time, policy settings.AttendancePolicy) bool {
	return date.Weekday() == time.Saturday && policy.SaturdayWorkType == settings.SaturdayHalf
}

// ValidateStatusTransition checks an HR correction's status change. All
// transitions between the three valid statuses are allowed, including
// re-asserting the current one.
func ValidateStatusTransition(from, to attendancedomain.Status) error {
	if !from.Valid() || !to.Valid() {
		return attendancedomain.ErrInvalidStatus
	}
	return nil
}

// Check-in warning thresholds.
const (
	earlyCheckInWindow = 2 * time.Hour

	WarningVeryEarlyCheckIn = "very early check-in"
	WarningShortDuration    = "short work duration"
)

// CheckInWarnings returns advisory warnings for a check-in. Warnings never
// block the operation.
func CheckInWarnings(checkIn time.Time, date time.Time, policy settings.AttendancePolicy, loc *time.Location) []string {
	var warnings []string
	hours := policy.BusinessHoursOn(date, loc)
	if checkIn.Before(hours.WorkStart.Add(-earlyCheckInWindow)) {
		warnings = append(warnings, WarningVeryEarlyCheckIn)
	}
	return warnings
}

// CheckOutWarnings returns advisory warnings for a check-out.
func CheckOutWarnings(workHours float64, policy settings.AttendancePolicy) []string {
	var warnings []string
	if workHours < policy.MinimumWorkHours {
		warnings = append(warnings, WarningShortDuration)
	}
	return warnings
}

// CalculateAttendancePercentage computes attendance over a set of working
// days. Present and half days both count as attended in full; a half day
// reduces work hours, not attendance. The result is rounded to one
// decimal; zero working days yields zero rather than a division error.
func CalculateAttendancePercentage(presentDays, halfDays, totalWorkingDays int) float64 {
	if totalWorkingDays <= 0 {
		return 0
	}
	pct := float64(presentDays+halfDays) / float64(totalWorkingDays) * 100
	return math.Round(pct*10) / 10
}
