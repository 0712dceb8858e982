package attendance

import (
	"fmt"
	"time"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
)

// DayType classifies a calendar date before any attendance data is
// considered.
type DayType string

const (
	DayHoliday DayType = "holiday"
	DayWeekend DayType = "weekend"
	DayWorking DayType = "working"
)

// DayClass is a date's classification plus a human-readable reason, e.g.
// "Republic Day" or "2nd Saturday".
type DayClass struct {
	Type   DayType
	Reason string
}

// ClassifyDay resolves a date against the holiday calendar and the working
// day policy. Holidays win over weekends; the holidays map is keyed by
// YYYY-MM-DD in the organization timezone.
func ClassifyDay(date time.Time, holidays map[string]string, policy settings.AttendancePolicy) DayClass {
	if title, ok := holidays[date.Format("2006-01-02")]; ok {
		return DayClass{Type: DayHoliday, Reason: title}
	}
	if !policy.IsWorkingDay(date) {
		return DayClass{Type: DayWeekend, Reason: nonWorkingReason(date, policy)}
	}
	return DayClass{Type: DayWorking}
}

func nonWorkingReason(date time.Time, policy settings.AttendancePolicy) string {
	wd := date.Weekday()
	if wd != time.Saturday {
		return wd.String()
	}
	if policy.SaturdayWorkType == settings.SaturdayOff {
		return "Saturday"
	}
	return fmt.Sprintf("%s Saturday", ordinalName(settings.SaturdayOrdinal(date)))
}

func ordinalName(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// ProcessDayReport resolves one day of a range report. Precedence: an
// attendance record always wins, then approved leave, then holiday, then
// weekend, then a bare working day with no record. Every day without a
// record reports absent; the leave/holiday/weekend annotation says why.
// A holiday title on a recorded day is carried as metadata without
// changing the record's status.
func ProcessDayReport(date time.Time, record *attendancedomain.Attendance, onLeave bool, class DayClass) attendancedomain.DayReport {
	report := attendancedomain.DayReport{Date: date.Format("2006-01-02")}

	if class.Type == DayHoliday {
		title := class.Reason
		report.HolidayTitle = &title
	}

	switch {
	case record != nil:
		report.Status = record.Status
		report.IsLate = record.IsLate
		report.WorkHours = record.WorkHours
	case onLeave:
		report.Status = attendancedomain.StatusAbsent
		report.IsLeave = true
		report.Annotation = "on leave"
	case class.Type == DayHoliday:
		report.Status = attendancedomain.StatusAbsent
		report.IsHoliday = true
		report.Annotation = class.Reason
	case class.Type == DayWeekend:
		report.Status = attendancedomain.StatusAbsent
		report.IsWeekend = true
		report.Annotation = class.Reason
	default:
		report.Status = attendancedomain.StatusAbsent
		report.Annotation = "no check-in recorded"
	}
	return report
}

// BuildRangeReport walks [from, to] day by day and aggregates stats. Days
// after today are excluded entirely so an in-progress month is not counted
// against the employee. All date arguments must be day boundaries in the
// organization timezone.
func BuildRangeReport(from, to, today time.Time, records map[string]*attendancedomain.Attendance, leaveDates map[string]bool, holidays map[string]string, policy settings.AttendancePolicy) ([]attendancedomain.DayReport, attendancedomain.ReportStats) {
	if to.After(today) {
		to = today
	}

	var days []attendancedomain.DayReport
	var stats attendancedomain.ReportStats

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		class := ClassifyDay(d, holidays, policy)
		report := ProcessDayReport(d, records[key], leaveDates[key], class)
		days = append(days, report)

		switch {
		case records[key] != nil:
			// Recorded days count as working days regardless of the
			// calendar: working on a holiday still counts.
			stats.TotalWorkingDays++
			switch report.Status {
			case attendancedomain.StatusPresent:
				stats.PresentDays++
			case attendancedomain.StatusHalfDay:
				stats.HalfDays++
			case attendancedomain.StatusAbsent:
				stats.AbsentDays++
			}
			if report.IsLate {
				stats.LateDays++
			}
		case report.IsLeave:
			// Leave is neither weekend nor holiday: the day stays in the
			// working-day denominator and lowers the percentage.
			stats.TotalWorkingDays++
			stats.LeaveDays++
		case class.Type == DayWorking:
			stats.TotalWorkingDays++
			stats.AbsentDays++
		}
	}

	stats.Percentage = CalculateAttendancePercentage(stats.PresentDays, stats.HalfDays, stats.TotalWorkingDays)
	return days, stats
}
