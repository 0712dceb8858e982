package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
)

func TestClassifyDay(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance
	policy.SaturdayHolidays = []int{2, 4}

	holidays := map[string]string{
		"2025-03-14": "Holi",
		"2025-03-16": "Founders Day", // falls on a Sunday
	}

	tests := []struct {
		name   string
		date   time.Time
		class  DayType
		reason string
	}{
		{"regular working day", time.Date(2025, 3, 12, 0, 0, 0, 0, loc), DayWorking, ""},
		{"holiday", time.Date(2025, 3, 14, 0, 0, 0, 0, loc), DayHoliday, "Holi"},
		{"holiday wins over sunday", time.Date(2025, 3, 16, 0, 0, 0, 0, loc), DayHoliday, "Founders Day"},
		{"sunday", time.Date(2025, 3, 23, 0, 0, 0, 0, loc), DayWeekend, "Sunday"},
		{"second saturday off", time.Date(2025, 3, 8, 0, 0, 0, 0, loc), DayWeekend, "2nd Saturday"},
		{"fourth saturday off", time.Date(2025, 3, 22, 0, 0, 0, 0, loc), DayWeekend, "4th Saturday"},
		{"first saturday working", time.Date(2025, 3, 1, 0, 0, 0, 0, loc), DayWorking, ""},
		{"fifth saturday behaves as fourth", time.Date(2025, 3, 29, 0, 0, 0, 0, loc), DayWeekend, "4th Saturday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDay(tt.date, holidays, policy)
			assert.Equal(t, tt.class, got.Type)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestClassifyDay_SaturdayOffPolicy(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance
	policy.SaturdayWorkType = settings.SaturdayOff

	got := ClassifyDay(time.Date(2025, 3, 8, 0, 0, 0, 0, loc), nil, policy)
	assert.Equal(t, DayWeekend, got.Type)
	assert.Equal(t, "Saturday", got.Reason)
}

func TestProcessDayReport_Priority(t *testing.T) {
	loc := ist(t)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)
	holidayClass := DayClass{Type: DayHoliday, Reason: "Holi"}

	hours := 8.5
	record := &attendancedomain.Attendance{
		Status:    attendancedomain.StatusPresent,
		WorkHours: &hours,
		IsLate:    true,
	}

	t.Run("record wins over holiday, title kept as metadata", func(t *testing.T) {
		got := ProcessDayReport(date, record, false, holidayClass)
		assert.Equal(t, attendancedomain.StatusPresent, got.Status)
		assert.True(t, got.IsLate)
		assert.False(t, got.IsHoliday)
		require.NotNil(t, got.HolidayTitle)
		assert.Equal(t, "Holi", *got.HolidayTitle)
	})

	t.Run("leave wins over holiday", func(t *testing.T) {
		got := ProcessDayReport(date, nil, true, holidayClass)
		assert.Equal(t, attendancedomain.StatusAbsent, got.Status)
		assert.True(t, got.IsLeave)
		assert.False(t, got.IsHoliday)
		assert.Equal(t, "on leave", got.Annotation)
	})

	t.Run("holiday with no record", func(t *testing.T) {
		got := ProcessDayReport(date, nil, false, holidayClass)
		assert.Equal(t, attendancedomain.StatusAbsent, got.Status)
		assert.True(t, got.IsHoliday)
		assert.Equal(t, "Holi", got.Annotation)
	})

	t.Run("weekend with no record", func(t *testing.T) {
		got := ProcessDayReport(date, nil, false, DayClass{Type: DayWeekend, Reason: "Sunday"})
		assert.Equal(t, attendancedomain.StatusAbsent, got.Status)
		assert.True(t, got.IsWeekend)
		assert.Equal(t, "Sunday", got.Annotation)
	})

	t.Run("working day with no record is absent", func(t *testing.T) {
		got := ProcessDayReport(date, nil, false, DayClass{Type: DayWorking})
		assert.Equal(t, attendancedomain.StatusAbsent, got.Status)
		assert.Equal(t, "no check-in recorded", got.Annotation)
	})
}

func TestBuildRangeReport(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance

	// Mon 2025-03-10 through Sun 2025-03-16; Friday the 14th is a holiday.
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	to := time.Date(2025, 3, 16, 0, 0, 0, 0, loc)
	today := time.Date(2025, 3, 31, 0, 0, 0, 0, loc)

	full := 8.5
	half := 5.0
	records := map[string]*attendancedomain.Attendance{
		"2025-03-10": {Status: attendancedomain.StatusPresent, WorkHours: &full},
		"2025-03-11": {Status: attendancedomain.StatusHalfDay, WorkHours: &half, IsLate: true},
	}
	leaves := map[string]bool{"2025-03-12": true}
	holidays := map[string]string{"2025-03-14": "Holi"}

	days, stats := BuildRangeReport(from, to, today, records, leaves, holidays, policy)

	require.Len(t, days, 7)
	// Mon present, Tue half, Wed leave, Thu no record, Fri holiday,
	// Sat working no record, Sun weekend. The leave day stays in the
	// working-day count; holiday and weekend do not.
	assert.Equal(t, 5, stats.TotalWorkingDays)
	assert.Equal(t, 1, stats.PresentDays)
	assert.Equal(t, 1, stats.HalfDays)
	assert.Equal(t, 2, stats.AbsentDays)
	assert.Equal(t, 1, stats.LeaveDays)
	assert.Equal(t, 1, stats.LateDays)
	assert.Equal(t, 40.0, stats.Percentage)

	assert.Equal(t, "no check-in recorded", days[3].Annotation)
	assert.True(t, days[4].IsHoliday)
	assert.Equal(t, attendancedomain.StatusAbsent, days[4].Status)
	assert.True(t, days[6].IsWeekend)
}

func TestBuildRangeReport_LeaveDaysLowerPercentage(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance

	// Mon 2025-03-10 through Wed 2025-03-12: two present days, one leave.
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	to := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)
	today := time.Date(2025, 3, 31, 0, 0, 0, 0, loc)

	full := 9.0
	records := map[string]*attendancedomain.Attendance{
		"2025-03-10": {Status: attendancedomain.StatusPresent, WorkHours: &full},
		"2025-03-11": {Status: attendancedomain.StatusPresent, WorkHours: &full},
	}
	leaves := map[string]bool{"2025-03-12": true}

	_, stats := BuildRangeReport(from, to, today, records, leaves, nil, policy)

	assert.Equal(t, 3, stats.TotalWorkingDays)
	assert.Equal(t, 2, stats.PresentDays)
	assert.Equal(t, 1, stats.LeaveDays)
	assert.Equal(t, 66.7, stats.Percentage)
}

func TestBuildRangeReport_ExcludesFutureDays(t *testing.T) {
	loc := ist(t)
	policy := settings.Defaults().Attendance

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	to := time.Date(2025, 3, 21, 0, 0, 0, 0, loc)
	today := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)

	full := 9.0
	records := map[string]*attendancedomain.Attendance{
		"2025-03-10": {Status: attendancedomain.StatusPresent, WorkHours: &full},
		"2025-03-11": {Status: attendancedomain.StatusPresent, WorkHours: &full},
		"2025-03-12": {Status: attendancedomain.StatusPresent, WorkHours: &full},
	}

	days, stats := BuildRangeReport(from, to, today, records, nil, nil, policy)

	assert.Len(t, days, 3, "days after today are not reported")
	assert.Equal(t, 3, stats.TotalWorkingDays)
	assert.Equal(t, 100.0, stats.Percentage)
}
