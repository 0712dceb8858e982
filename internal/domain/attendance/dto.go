package attendance

import (
	"github.com/kriyahr/hrms-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
	CapturedAt *string  `json:"captured_at,omitempty"` // RFC3339
}

func (r *CheckInRequest) Validate() error {
	return validateLocationFields(r.Latitude, r.Longitude, r.CapturedAt)
}

type CheckOutRequest struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
	CapturedAt *string  `json:"captured_at,omitempty"`
	Tasks      []string `json:"tasks"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validateLocationFields(r.Latitude, r.Longitude, r.CapturedAt); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateLocationFields(lat, lng *float64, capturedAt *string) error {
	var errs validator.ValidationErrors

	if (lat == nil) != (lng == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be supplied together",
		})
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if capturedAt != nil {
		if _, ok := validator.IsValidDateTime(*capturedAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "captured_at",
				Message: "must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest is an HR correction to a day's record.
type UpdateRequest struct {
	ID       string  `json:"-"`
	CheckIn  *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut *string `json:"check_out,omitempty"` // RFC3339
	Status   *string `json:"status,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of present, half-day, absent"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID             string        `json:"id"`
	EmployeeID     string        `json:"employee_id"`
	EmployeeName   string        `json:"employee_name,omitempty"`
	Department     *string       `json:"department,omitempty"`
	Date           string        `json:"date"`
	CheckIn        *string       `json:"check_in,omitempty"`
	CheckOut       *string       `json:"check_out,omitempty"`
	Status         Status        `json:"status"`
	WorkHours      *float64      `json:"work_hours,omitempty"`
	IsLate         bool          `json:"is_late"`
	Location       *Location     `json:"location,omitempty"`
	Geofence       *GeofenceInfo `json:"geofence,omitempty"`
	Warnings       []string      `json:"warnings,omitempty"`
	HolidayTitle   *string       `json:"holiday_title,omitempty"`
	CreatedAt      string        `json:"created_at,omitempty"`
	UpdatedAt      string        `json:"updated_at,omitempty"`
}

// GeofenceProbeResponse is the dry-run answer to "would a check-in from
// these coordinates pass right now". Nothing is recorded.
type GeofenceProbeResponse struct {
	Enforced       bool     `json:"enforced"`
	WithinFence    bool     `json:"within_fence"`
	Status         string   `json:"status,omitempty"`
	OfficeID       *string  `json:"office_id,omitempty"`
	OfficeName     *string  `json:"office_name,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	CanRequestWFH  bool     `json:"can_request_wfh,omitempty"`
	Message        string   `json:"message,omitempty"`
}

type Filter struct {
	EmployeeID   *string
	EmployeeName *string
	Department   *string
	Date         *string // YYYY-MM-DD
	StartDate    *string
	EndDate      *string
	Status       *string

	Page  int
	Limit int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	for field, v := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if v != nil && *v != "" {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be YYYY-MM-DD"})
			}
		}
	}
	if f.Status != nil && *f.Status != "" && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of present, half-day, absent"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListResponse struct {
	TotalCount  int64      `json:"total_count"`
	Page        int        `json:"page"`
	Limit       int        `json:"limit"`
	TotalPages  int        `json:"total_pages"`
	Attendances []Response `json:"attendances"`
}

// DayReport is one day of a range report, after the priority rules
// (record > leave > holiday > weekend > no check-in) are applied.
type DayReport struct {
	Date         string   `json:"date"`
	Status       Status   `json:"status"`
	IsLate       bool     `json:"is_late,omitempty"`
	WorkHours    *float64 `json:"work_hours,omitempty"`
	IsHoliday    bool     `json:"is_holiday,omitempty"`
	IsWeekend    bool     `json:"is_weekend,omitempty"`
	IsLeave      bool     `json:"is_leave,omitempty"`
	HolidayTitle *string  `json:"holiday_title,omitempty"`
	Annotation   string   `json:"annotation,omitempty"`
}

// ReportStats aggregates a range report.
type ReportStats struct {
	TotalWorkingDays int     `json:"total_working_days"`
	PresentDays      int     `json:"present_days"`
	HalfDays         int     `json:"half_days"`
	AbsentDays       int     `json:"absent_days"`
	LeaveDays        int     `json:"leave_days"`
	LateDays         int     `json:"late_days"`
	Percentage       float64 `json:"attendance_percentage"`
}

type RangeReportResponse struct {
	EmployeeID string      `json:"employee_id"`
	StartDate  string      `json:"start_date"`
	EndDate    string      `json:"end_date"`
	Days       []DayReport `json:"days"`
	Stats      ReportStats `json:"stats"`
}
