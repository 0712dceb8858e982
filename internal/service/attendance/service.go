package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/domain/holiday"
	"github.com/kriyahr/hrms-backend-go/internal/domain/leave"
	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
	"github.com/kriyahr/hrms-backend-go/internal/domain/taskreport"
	"github.com/kriyahr/hrms-backend-go/internal/domain/wfh"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
	"github.com/kriyahr/hrms-backend-go/internal/service/geofence"
	settingssvc "github.com/kriyahr/hrms-backend-go/internal/service/settings"
)

// UniqueEmployeeDayConstraint is the composite unique index that makes
// concurrent check-ins for the same (employee, day) collapse into one.
const UniqueEmployeeDayConstraint = "ux_attendance_employee_day"

// Notifier decouples attendance from the notification fan-out. A nil
// notifier disables delivery without changing any outcome.
type Notifier interface {
	NotifyMissingCheckout(ctx context.Context, employeeID string, date time.Time)
}

type Service struct {
	repo      attendancedomain.Repository
	employees employee.Repository
	offices   office.Repository
	wfhRepo   wfh.Repository
	tasks     taskreport.Repository
	holidays  holiday.Repository
	leaves    leave.Repository
	settings  *settingssvc.Service
	notifier  Notifier
	now       func() time.Time
}

func NewService(
	repo attendancedomain.Repository,
	employees employee.Repository,
	offices office.Repository,
	wfhRepo wfh.Repository,
	tasks taskreport.Repository,
	holidays holiday.Repository,
	leaves leave.Repository,
	settings *settingssvc.Service,
	notifier Notifier,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      repo,
		employees: employees,
		offices:   offices,
		wfhRepo:   wfhRepo,
		tasks:     tasks,
		holidays:  holidays,
		leaves:    leaves,
		settings:  settings,
		notifier:  notifier,
		now:       now,
	}
}

// dayOf truncates a timestamp to the organization timezone's midnight.
func (s *Service) dayOf(t time.Time) time.Time {
	local := t.In(s.settings.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.settings.Location())
}

// CheckIn opens today's attendance record for the employee. The record is
// created provisionally present; checkout settles the final status. A
// second check-in on the same day fails, whether detected by lookup or by
// the unique index under concurrency.
func (s *Service) CheckIn(ctx context.Context, employeeID string, req attendancedomain.CheckInRequest) (attendancedomain.Response, error) {
	if err := req.Validate(); err != nil {
		return attendancedomain.Response{}, err
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendancedomain.Response{}, err
	}
	if !emp.IsActive {
		return attendancedomain.Response{}, employee.ErrEmployeeInactive
	}

	now := s.now()
	day := s.dayOf(now)

	existing, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendancedomain.Response{}, err
	}
	if existing != nil {
		return attendancedomain.Response{}, attendancedomain.ErrAlreadyCheckedIn
	}

	eff := s.settings.GetEffective(ctx, &emp.Department)

	eval, err := s.evaluateGeofence(ctx, emp.ID, day, req.Latitude, req.Longitude, eff.Geofence, eff.Geofence.EnforceCheckIn)
	if err != nil {
		return attendancedomain.Response{}, err
	}

	result := DetermineStatus(&now, nil, day, eff.Attendance, s.settings.Location())

	record := attendancedomain.Attendance{
		ID:         uuid.New().String(),
		EmployeeID: emp.ID,
		Date:       day,
		CheckIn:    &now,
		Status:     result.Status,
		IsLate:     result.IsLate,
		Location:   buildLocation(req.Latitude, req.Longitude, req.Accuracy, req.CapturedAt),
		Geofence:   eval.Info(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		if database.IsUniqueViolation(err, UniqueEmployeeDayConstraint) {
			return attendancedomain.Response{}, attendancedomain.ErrAlreadyCheckedIn
		}
		return attendancedomain.Response{}, err
	}

	resp := s.toResponse(ctx, created)
	resp.Warnings = CheckInWarnings(now, day, eff.Attendance, s.settings.Location())
	return resp, nil
}

// CheckOut closes today's record, computes work hours, settles the final
// status and stores the submitted task report. Tasks are mandatory.
func (s *Service) CheckOut(ctx context.Context, employeeID string, req attendancedomain.CheckOutRequest) (attendancedomain.Response, error) {
	if err := req.Validate(); err != nil {
		return attendancedomain.Response{}, err
	}

	tasks := cleanTasks(req.Tasks)
	if len(tasks) == 0 {
		return attendancedomain.Response{}, attendancedomain.ErrTaskReportRequired
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendancedomain.Response{}, err
	}

	now := s.now()
	day := s.dayOf(now)

	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendancedomain.Response{}, err
	}
	if record == nil || record.CheckIn == nil {
		return attendancedomain.Response{}, attendancedomain.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendancedomain.Response{}, attendancedomain.ErrAlreadyCheckedOut
	}
	if now.Before(*record.CheckIn) {
		return attendancedomain.Response{}, attendancedomain.ErrCheckOutBeforeCheckIn
	}

	eff := s.settings.GetEffective(ctx, &emp.Department)

	eval, err := s.evaluateGeofence(ctx, emp.ID, day, req.Latitude, req.Longitude, eff.Geofence, eff.Geofence.EnforceCheckOut)
	if err != nil {
		return attendancedomain.Response{}, err
	}
	// Checkout validation refines the stored geofence outcome only when it
	// was actually enforced.
	if eval.Enforced {
		record.Geofence = eval.Info(now)
	}

	result := DetermineStatus(record.CheckIn, &now, day, eff.Attendance, s.settings.Location())
	record.CheckOut = &now
	record.Status = result.Status
	record.WorkHours = result.WorkHours
	record.IsLate = result.IsLate
	record.CheckoutLocation = buildLocation(req.Latitude, req.Longitude, req.Accuracy, req.CapturedAt)
	record.UpdatedAt = now

	if err := s.repo.Update(ctx, *record); err != nil {
		return attendancedomain.Response{}, err
	}

	report := taskreport.Report{
		ID:           uuid.New().String(),
		AttendanceID: record.ID,
		EmployeeID:   emp.ID,
		Date:         day,
		Tasks:        tasks,
		CreatedAt:    now,
	}
	if _, err := s.tasks.Create(ctx, report); err != nil {
		// The punch is already closed; losing the report is log-worthy but
		// must not undo the checkout.
		slog.Error("task report save failed after checkout", "attendance_id", record.ID, "error", err)
	}

	resp := s.toResponse(ctx, *record)
	if result.WorkHours != nil {
		resp.Warnings = CheckOutWarnings(*result.WorkHours, eff.Attendance)
	}
	return resp, nil
}

// evaluateGeofence gathers the inputs the pure evaluator needs: approved
// WFH for the day and the active office list. Both lookups are skipped
// entirely when geofencing cannot apply.
func (s *Service) evaluateGeofence(ctx context.Context, employeeID string, day time.Time, lat, lng *float64, policy settings.GeofencePolicy, enforce bool) (geofence.Evaluation, error) {
	if !policy.Enabled || !enforce {
		return geofence.Evaluation{Enforced: false}, nil
	}

	approved, err := s.wfhRepo.GetApprovedForDate(ctx, employeeID, day)
	if err != nil {
		return geofence.Evaluation{}, err
	}
	offices, err := s.offices.ListActive(ctx)
	if err != nil {
		return geofence.Evaluation{}, err
	}
	return geofence.Evaluate(policy, offices, lat, lng, approved != nil, enforce)
}

// GeofenceStatus dry-runs the check-in geofence decision for the given
// coordinates. Violations come back as data, not as an error, so clients
// can probe before punching.
func (s *Service) GeofenceStatus(ctx context.Context, employeeID string, lat, lng *float64) (attendancedomain.GeofenceProbeResponse, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendancedomain.GeofenceProbeResponse{}, err
	}

	eff := s.settings.GetEffective(ctx, &emp.Department)
	day := s.dayOf(s.now())

	eval, err := s.evaluateGeofence(ctx, emp.ID, day, lat, lng, eff.Geofence, eff.Geofence.EnforceCheckIn)
	if err != nil {
		var violation *geofence.ViolationError
		if errors.As(err, &violation) {
			return attendancedomain.GeofenceProbeResponse{
				Enforced:       true,
				WithinFence:    false,
				OfficeID:       &violation.OfficeID,
				OfficeName:     &violation.OfficeName,
				DistanceMeters: &violation.DistanceMeters,
				CanRequestWFH:  violation.CanRequestWFH,
				Message:        violation.Error(),
			}, nil
		}
		return attendancedomain.GeofenceProbeResponse{}, err
	}

	resp := attendancedomain.GeofenceProbeResponse{
		Enforced:    eval.Enforced,
		WithinFence: true,
	}
	if eval.Enforced {
		resp.Status = string(eval.Status)
		if eval.Office != nil {
			resp.OfficeID = &eval.Office.ID
			resp.OfficeName = &eval.Office.Name
		}
		resp.DistanceMeters = eval.DistanceMeters
	}
	return resp, nil
}

// Today returns the employee's record for the current day, or a synthetic
// absent response when none exists yet.
func (s *Service) Today(ctx context.Context, employeeID string) (attendancedomain.Response, error) {
	day := s.dayOf(s.now())
	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendancedomain.Response{}, err
	}
	if record == nil {
		return attendancedomain.Response{
			EmployeeID: employeeID,
			Date:       day.Format("2006-01-02"),
			Status:     attendancedomain.StatusAbsent,
		}, nil
	}
	return s.toResponse(ctx, *record), nil
}

// Update applies an HR correction to a record: punch times and/or an
// explicit status. When punches change without an explicit status the
// status and work hours are recomputed.
func (s *Service) Update(ctx context.Context, req attendancedomain.UpdateRequest) (attendancedomain.Response, error) {
	if err := req.Validate(); err != nil {
		return attendancedomain.Response{}, err
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendancedomain.Response{}, err
	}

	if req.CheckIn != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckIn)
		if err != nil {
			return attendancedomain.Response{}, fmt.Errorf("invalid check_in: %w", err)
		}
		record.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			return attendancedomain.Response{}, fmt.Errorf("invalid check_out: %w", err)
		}
		record.CheckOut = &t
	}
	if record.CheckIn != nil && record.CheckOut != nil && record.CheckOut.Before(*record.CheckIn) {
		return attendancedomain.Response{}, attendancedomain.ErrCheckOutBeforeCheckIn
	}

	emp, err := s.employees.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return attendancedomain.Response{}, err
	}
	eff := s.settings.GetEffective(ctx, &emp.Department)

	result := DetermineStatus(record.CheckIn, record.CheckOut, record.Date, eff.Attendance, s.settings.Location())
	record.WorkHours = result.WorkHours
	record.IsLate = result.IsLate

	if req.Status != nil {
		next := attendancedomain.Status(*req.Status)
		if err := ValidateStatusTransition(record.Status, next); err != nil {
			return attendancedomain.Response{}, err
		}
		record.Status = next
	} else {
		record.Status = result.Status
	}
	record.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, record); err != nil {
		return attendancedomain.Response{}, err
	}
	return s.toResponse(ctx, record), nil
}

// Apply rewrites a record's punches from an approved regularization and
// recomputes its outcome. Missing punches on the request leave the stored
// ones untouched.
func (s *Service) Apply(ctx context.Context, employeeID string, day time.Time, checkIn, checkOut *time.Time) error {
	day = s.dayOf(day)
	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return err
	}

	now := s.now()
	isNew := record == nil
	if isNew {
		record = &attendancedomain.Attendance{
			ID:         uuid.New().String(),
			EmployeeID: employeeID,
			Date:       day,
			CreatedAt:  now,
		}
	}
	if checkIn != nil {
		record.CheckIn = checkIn
	}
	if checkOut != nil {
		record.CheckOut = checkOut
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	eff := s.settings.GetEffective(ctx, &emp.Department)

	result := DetermineStatus(record.CheckIn, record.CheckOut, day, eff.Attendance, s.settings.Location())
	record.Status = result.Status
	record.WorkHours = result.WorkHours
	record.IsLate = result.IsLate
	record.UpdatedAt = now

	if isNew {
		_, err = s.repo.Create(ctx, *record)
		return err
	}
	return s.repo.Update(ctx, *record)
}

// MarkWFH retroactively tags a day's geofence status as wfh after a WFH
// approval. It returns the consumed record's ID, or nil when the day has
// no record yet.
func (s *Service) MarkWFH(ctx context.Context, employeeID string, day time.Time) (*string, error) {
	day = s.dayOf(day)
	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	now := s.now()
	if record.Geofence == nil {
		record.Geofence = &attendancedomain.GeofenceInfo{Enforced: true}
	}
	record.Geofence.Status = attendancedomain.GeofenceWFH
	record.Geofence.ValidatedAt = &now
	record.UpdatedAt = now

	if err := s.repo.Update(ctx, *record); err != nil {
		return nil, err
	}
	return &record.ID, nil
}

// List returns records matching the filter, for HR views.
func (s *Service) List(ctx context.Context, filter attendancedomain.Filter) (attendancedomain.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendancedomain.ListResponse{}, err
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return attendancedomain.ListResponse{}, err
	}

	resp := attendancedomain.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: make([]attendancedomain.Response, 0, len(records)),
	}
	for _, r := range records {
		resp.Attendances = append(resp.Attendances, s.toResponse(ctx, r))
	}
	return resp, nil
}

// RangeReport builds the day-by-day report for [from, to], applying the
// record > leave > holiday > weekend precedence and aggregating stats.
func (s *Service) RangeReport(ctx context.Context, employeeID, from, to string) (attendancedomain.RangeReportResponse, error) {
	loc := s.settings.Location()
	start, err := time.ParseInLocation("2006-01-02", from, loc)
	if err != nil {
		return attendancedomain.RangeReportResponse{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", to, loc)
	if err != nil {
		return attendancedomain.RangeReportResponse{}, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return attendancedomain.RangeReportResponse{}, fmt.Errorf("end date precedes start date")
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendancedomain.RangeReportResponse{}, err
	}
	eff := s.settings.GetEffective(ctx, &emp.Department)

	records, err := s.repo.ListRange(ctx, employeeID, start, end)
	if err != nil {
		return attendancedomain.RangeReportResponse{}, err
	}
	recordsByDay := make(map[string]*attendancedomain.Attendance, len(records))
	for i := range records {
		recordsByDay[records[i].Date.In(loc).Format("2006-01-02")] = &records[i]
	}

	holidayTitles, err := s.holidayTitles(ctx, start, end)
	if err != nil {
		return attendancedomain.RangeReportResponse{}, err
	}

	leaveDates := make(map[string]bool)
	approved, err := s.leaves.ListApprovedForRange(ctx, employeeID, start, end)
	if err != nil {
		return attendancedomain.RangeReportResponse{}, err
	}
	for _, l := range approved {
		for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
			leaveDates[d.In(loc).Format("2006-01-02")] = true
		}
	}

	today := s.dayOf(s.now())
	days, stats := BuildRangeReport(start, end, today, recordsByDay, leaveDates, holidayTitles, eff.Attendance)

	return attendancedomain.RangeReportResponse{
		EmployeeID: employeeID,
		StartDate:  from,
		EndDate:    to,
		Days:       days,
		Stats:      stats,
	}, nil
}

// SweepMissingCheckouts finalizes the previous day's open sessions: a
// session never closed has no verifiable work hours and settles absent,
// pending regularization. Already-settled records are not re-selected,
// so the sweep can rerun without re-notifying anyone.
func (s *Service) SweepMissingCheckouts(ctx context.Context) error {
	day := s.dayOf(s.now()).AddDate(0, 0, -1)

	open, err := s.repo.ListOpenSessions(ctx, day)
	if err != nil {
		return err
	}

	now := s.now()
	for _, record := range open {
		record.Status = attendancedomain.StatusAbsent
		record.UpdatedAt = now
		if err := s.repo.Update(ctx, record); err != nil {
			slog.Error("missing checkout sweep failed for record", "attendance_id", record.ID, "error", err)
			continue
		}
		if s.notifier != nil {
			s.notifier.NotifyMissingCheckout(ctx, record.EmployeeID, day)
		}
	}

	if len(open) > 0 {
		slog.Info("missing checkout sweep finished", "date", day.Format("2006-01-02"), "records", len(open))
	}
	return nil
}

func (s *Service) holidayTitles(ctx context.Context, from, to time.Time) (map[string]string, error) {
	list, err := s.holidays.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(list))
	for _, h := range list {
		titles[h.Date.In(s.settings.Location()).Format("2006-01-02")] = h.Title
	}
	return titles, nil
}

func (s *Service) toResponse(ctx context.Context, a attendancedomain.Attendance) attendancedomain.Response {
	resp := attendancedomain.Response{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		Status:     a.Status,
		WorkHours:  a.WorkHours,
		IsLate:     a.IsLate,
		Location:   a.Location,
		Geofence:   a.Geofence,
		Department: a.Department,
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	if !a.UpdatedAt.IsZero() {
		resp.UpdatedAt = a.UpdatedAt.Format(time.RFC3339)
	}

	if titles, err := s.holidayTitles(ctx, a.Date, a.Date); err == nil {
		if title, ok := titles[a.Date.Format("2006-01-02")]; ok {
			resp.HolidayTitle = &title
		}
	}
	return resp
}

func buildLocation(lat, lng, accuracy *float64, capturedAt *string) *attendancedomain.Location {
	if lat == nil || lng == nil {
		return nil
	}
	loc := &attendancedomain.Location{
		Latitude:  *lat,
		Longitude: *lng,
		Accuracy:  accuracy,
	}
	if capturedAt != nil {
		if t, err := time.Parse(time.RFC3339, *capturedAt); err == nil {
			loc.CapturedAt = &t
		}
	}
	return loc
}

func cleanTasks(tasks []string) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if trimmed := strings.TrimSpace(task); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
