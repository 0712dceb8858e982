package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Scope identifies which level a settings document applies to. Department
// documents are sparse: any field left nil falls through to the global
// document, and from there to Defaults().
type Scope string

const (
	ScopeGlobal     Scope = "global"
	ScopeDepartment Scope = "department"
)

// SaturdayWorkType controls how Saturdays count for the full-day cutoff.
type SaturdayWorkType string

const (
	SaturdayFull SaturdayWorkType = "full"
	SaturdayHalf SaturdayWorkType = "half"
	SaturdayOff  SaturdayWorkType = "off"
)

// AttendancePolicy is the fully-resolved attendance configuration.
type AttendancePolicy struct {
	WorkStart        string           `json:"work_start"`     // "HH:MM"
	WorkEnd          string           `json:"work_end"`       // "HH:MM"
	LateThreshold    string           `json:"late_threshold"` // "HH:MM"
	MinimumWorkHours float64          `json:"minimum_work_hours"`
	FullDayHours     float64          `json:"full_day_hours"`
	WorkingDays      []time.Weekday   `json:"working_days"`
	SaturdayWorkType SaturdayWorkType `json:"saturday_work_type"`
	// SaturdayHolidays lists which ordinal Saturdays of the month (1-4) are
	// off, e.g. [2, 4] for 2nd and 4th Saturday holidays.
	SaturdayHolidays []int `json:"saturday_holidays"`
}

// GeofencePolicy is the fully-resolved geofence configuration.
type GeofencePolicy struct {
	Enabled             bool    `json:"enabled"`
	EnforceCheckIn      bool    `json:"enforce_check_in"`
	EnforceCheckOut     bool    `json:"enforce_check_out"`
	DefaultRadiusMeters float64 `json:"default_radius_meters"`
	AllowWFHBypass      bool    `json:"allow_wfh_bypass"`
}

// Effective is the merged result handed to the evaluators.
type Effective struct {
	Attendance AttendancePolicy `json:"attendance"`
	Geofence   GeofencePolicy   `json:"geofence"`
}

// AttendancePatch is a sparse attendance policy override.
type AttendancePatch struct {
	WorkStart        *string           `json:"work_start,omitempty"`
	WorkEnd          *string           `json:"work_end,omitempty"`
	LateThreshold    *string           `json:"late_threshold,omitempty"`
	MinimumWorkHours *float64          `json:"minimum_work_hours,omitempty"`
	FullDayHours     *float64          `json:"full_day_hours,omitempty"`
	WorkingDays      *[]time.Weekday   `json:"working_days,omitempty"`
	SaturdayWorkType *SaturdayWorkType `json:"saturday_work_type,omitempty"`
	SaturdayHolidays *[]int            `json:"saturday_holidays,omitempty"`
}

// GeofencePatch is a sparse geofence policy override.
type GeofencePatch struct {
	Enabled             *bool    `json:"enabled,omitempty"`
	EnforceCheckIn      *bool    `json:"enforce_check_in,omitempty"`
	EnforceCheckOut     *bool    `json:"enforce_check_out,omitempty"`
	DefaultRadiusMeters *float64 `json:"default_radius_meters,omitempty"`
	AllowWFHBypass      *bool    `json:"allow_wfh_bypass,omitempty"`
}

// Document is one stored settings row: the global document or a
// department-scoped override.
type Document struct {
	ID         string
	Scope      Scope
	Department *string
	Attendance AttendancePatch
	Geofence   GeofencePatch
	UpdatedAt  time.Time
}

// Defaults returns the hard-coded fallback used when a field is absent at
// both the department and global level, and when the settings store is
// unreachable entirely.
func Defaults() Effective {
	return Effective{
		Attendance: AttendancePolicy{
			WorkStart:        "09:00",
			WorkEnd:          "18:00",
			LateThreshold:    "09:55",
			MinimumWorkHours: 4,
			FullDayHours:     8,
			WorkingDays: []time.Weekday{
				time.Monday, time.Tuesday, time.Wednesday,
				time.Thursday, time.Friday, time.Saturday,
			},
			SaturdayWorkType: SaturdayFull,
			SaturdayHolidays: []int{},
		},
		Geofence: GeofencePolicy{
			Enabled:             false,
			EnforceCheckIn:      true,
			EnforceCheckOut:     false,
			DefaultRadiusMeters: 200,
			AllowWFHBypass:      true,
		},
	}
}

// Merge applies patches onto base field by field, later patches winning.
// Typical call: Merge(Defaults(), globalDoc, departmentDoc).
func Merge(base Effective, patches ...*Document) Effective {
	out := base
	for _, doc := range patches {
		if doc == nil {
			continue
		}
		a := doc.Attendance
		if a.WorkStart != nil {
			out.Attendance.WorkStart = *a.WorkStart
		}
		if a.WorkEnd != nil {
			out.Attendance.WorkEnd = *a.WorkEnd
		}
		if a.LateThreshold != nil {
			out.Attendance.LateThreshold = *a.LateThreshold
		}
		if a.MinimumWorkHours != nil {
			out.Attendance.MinimumWorkHours = *a.MinimumWorkHours
		}
		if a.FullDayHours != nil {
			out.Attendance.FullDayHours = *a.FullDayHours
		}
		if a.WorkingDays != nil {
			out.Attendance.WorkingDays = append([]time.Weekday(nil), (*a.WorkingDays)...)
		}
		if a.SaturdayWorkType != nil {
			out.Attendance.SaturdayWorkType = *a.SaturdayWorkType
		}
		if a.SaturdayHolidays != nil {
			out.Attendance.SaturdayHolidays = append([]int(nil), (*a.SaturdayHolidays)...)
		}

		g := doc.Geofence
		if g.Enabled != nil {
			out.Geofence.Enabled = *g.Enabled
		}
		if g.EnforceCheckIn != nil {
			out.Geofence.EnforceCheckIn = *g.EnforceCheckIn
		}
		if g.EnforceCheckOut != nil {
			out.Geofence.EnforceCheckOut = *g.EnforceCheckOut
		}
		if g.DefaultRadiusMeters != nil {
			out.Geofence.DefaultRadiusMeters = *g.DefaultRadiusMeters
		}
		if g.AllowWFHBypass != nil {
			out.Geofence.AllowWFHBypass = *g.AllowWFHBypass
		}
	}
	return out
}

// SaturdayOrdinal returns which Saturday of its month the date is, counting
// from the first Saturday, clamped to [1, 4]: a 5th Saturday behaves as the
// 4th for holiday-mask purposes. The result is 0 for non-Saturdays.
func SaturdayOrdinal(date time.Time) int {
	if date.Weekday() != time.Saturday {
		return 0
	}
	ordinal := (date.Day()-1)/7 + 1
	if ordinal > 4 {
		ordinal = 4
	}
	return ordinal
}

// IsWorkingDay reports whether the date's weekday is in the working-day set,
// applying the Saturday work type and the Nth-Saturday-holiday mask.
func (p AttendancePolicy) IsWorkingDay(date time.Time) bool {
	wd := date.Weekday()
	inSet := false
	for _, d := range p.WorkingDays {
		if d == wd {
			inSet = true
			break
		}
	}
	if !inSet {
		return false
	}
	if wd != time.Saturday {
		return true
	}
	if p.SaturdayWorkType == SaturdayOff {
		return false
	}
	ordinal := SaturdayOrdinal(date)
	for _, off := range p.SaturdayHolidays {
		if off == ordinal {
			return false
		}
	}
	return true
}

// LateThresholdDecimal returns the late threshold as a decimal hour of day,
// e.g. "09:55" -> 9.9167.
func (p AttendancePolicy) LateThresholdDecimal() float64 {
	h, m, err := parseTimeOfDay(p.LateThreshold)
	if err != nil {
		// Fallback matches Defaults().
		return 9.0 + 55.0/60.0
	}
	return float64(h) + float64(m)/60.0
}

// BusinessHours are a policy's time-of-day boundaries converted to absolute
// timestamps for one calendar date in the organization timezone.
type BusinessHours struct {
	WorkStart     time.Time
	WorkEnd       time.Time
	LateThreshold time.Time
	HalfDayEnd    time.Time
}

// BusinessHoursOn resolves the policy's time strings against the given
// calendar date in loc.
func (p AttendancePolicy) BusinessHoursOn(date time.Time, loc *time.Location) BusinessHours {
	at := func(tod string, fallbackH, fallbackM int) time.Time {
		h, m, err := parseTimeOfDay(tod)
		if err != nil {
			h, m = fallbackH, fallbackM
		}
		return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, loc)
	}
	start := at(p.WorkStart, 9, 0)
	return BusinessHours{
		WorkStart:     start,
		WorkEnd:       at(p.WorkEnd, 18, 0),
		LateThreshold: at(p.LateThreshold, 9, 55),
		HalfDayEnd:    start.Add(time.Duration(p.MinimumWorkHours * float64(time.Hour))),
	}
}

func parseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day %q out of range", s)
	}
	return hour, minute, nil
}
