package settings

import (
	"time"

	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	Attendance AttendancePatch `json:"attendance"`
	Geofence   GeofencePatch   `json:"geofence"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	checkTime := func(field string, v *string) {
		if v != nil && !validator.IsValidTimeOfDay(*v) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a 24h HH:MM time",
			})
		}
	}
	checkTime("attendance.work_start", r.Attendance.WorkStart)
	checkTime("attendance.work_end", r.Attendance.WorkEnd)
	checkTime("attendance.late_threshold", r.Attendance.LateThreshold)

	if v := r.Attendance.MinimumWorkHours; v != nil && (*v <= 0 || *v > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance.minimum_work_hours",
			Message: "must be between 0 and 24",
		})
	}
	if v := r.Attendance.FullDayHours; v != nil && (*v <= 0 || *v > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance.full_day_hours",
			Message: "must be between 0 and 24",
		})
	}
	if r.Attendance.MinimumWorkHours != nil && r.Attendance.FullDayHours != nil &&
		*r.Attendance.MinimumWorkHours > *r.Attendance.FullDayHours {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance.minimum_work_hours",
			Message: "minimum work hours cannot exceed full day hours",
		})
	}

	if r.Attendance.SaturdayWorkType != nil {
		switch *r.Attendance.SaturdayWorkType {
		case SaturdayFull, SaturdayHalf, SaturdayOff:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "attendance.saturday_work_type",
				Message: "must be one of full, half, off",
			})
		}
	}
	if r.Attendance.SaturdayHolidays != nil {
		for _, n := range *r.Attendance.SaturdayHolidays {
			if n < 1 || n > 4 {
				errs = append(errs, validator.ValidationError{
					Field:   "attendance.saturday_holidays",
					Message: "ordinals must be between 1 and 4",
				})
				break
			}
		}
	}
	if r.Attendance.WorkingDays != nil {
		for _, d := range *r.Attendance.WorkingDays {
			if d < time.Sunday || d > time.Saturday {
				errs = append(errs, validator.ValidationError{
					Field:   "attendance.working_days",
					Message: "weekdays must be between 0 (Sunday) and 6 (Saturday)",
				})
				break
			}
		}
	}

	if v := r.Geofence.DefaultRadiusMeters; v != nil && *v <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence.default_radius_meters",
			Message: "must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	Scope      Scope           `json:"scope"`
	Department *string         `json:"department,omitempty"`
	Attendance AttendancePatch `json:"attendance"`
	Geofence   GeofencePatch   `json:"geofence"`
	UpdatedAt  string          `json:"updated_at"`
}

type EffectiveSettingsResponse struct {
	Department *string   `json:"department,omitempty"`
	Effective  Effective `json:"effective"`
}
