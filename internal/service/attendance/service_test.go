package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/domain/holiday"
	"github.com/kriyahr/hrms-backend-go/internal/domain/leave"
	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
	"github.com/kriyahr/hrms-backend-go/internal/domain/taskreport"
	"github.com/kriyahr/hrms-backend-go/internal/domain/wfh"
	settingssvc "github.com/kriyahr/hrms-backend-go/internal/service/settings"
)

type fakeAttendanceRepo struct {
	records   map[string]attendancedomain.Attendance // by ID
	createErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendancedomain.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r attendancedomain.Attendance) (attendancedomain.Attendance, error) {
	if f.createErr != nil {
		return attendancedomain.Attendance{}, f.createErr
	}
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendancedomain.Attendance, error) {
	r, ok := f.records[id]
	if !ok {
		return attendancedomain.Attendance{}, attendancedomain.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*attendancedomain.Attendance, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(day) {
			out := r
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, r attendancedomain.Attendance) error {
	if _, ok := f.records[r.ID]; !ok {
		return attendancedomain.ErrAttendanceNotFound
	}
	f.records[r.ID] = r
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendancedomain.Filter) ([]attendancedomain.Attendance, int64, error) {
	var out []attendancedomain.Attendance
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendancedomain.Attendance, error) {
	var out []attendancedomain.Attendance
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenSessions(ctx context.Context, day time.Time) ([]attendancedomain.Attendance, error) {
	var out []attendancedomain.Attendance
	for _, r := range f.records {
		if r.Date.Equal(day) && r.CheckIn != nil && r.CheckOut == nil &&
			r.Status != attendancedomain.StatusAbsent {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) SearchByName(ctx context.Context, name string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeOfficeRepo struct {
	offices []office.Office
}

func (f *fakeOfficeRepo) Create(ctx context.Context, o office.Office) (office.Office, error) {
	f.offices = append(f.offices, o)
	return o, nil
}

func (f *fakeOfficeRepo) GetByID(ctx context.Context, id string) (office.Office, error) {
	for _, o := range f.offices {
		if o.ID == id {
			return o, nil
		}
	}
	return office.Office{}, office.ErrOfficeNotFound
}

func (f *fakeOfficeRepo) ListActive(ctx context.Context) ([]office.Office, error) {
	return f.offices, nil
}

func (f *fakeOfficeRepo) Update(ctx context.Context, o office.Office) error { return nil }
func (f *fakeOfficeRepo) Delete(ctx context.Context, id string) error       { return nil }

type fakeWFHRepo struct {
	approved map[string]wfh.Request // key employeeID + date
}

func (f *fakeWFHRepo) Create(ctx context.Context, r wfh.Request) (wfh.Request, error) {
	return r, nil
}

func (f *fakeWFHRepo) GetByID(ctx context.Context, id string) (wfh.Request, error) {
	return wfh.Request{}, wfh.ErrRequestNotFound
}

func (f *fakeWFHRepo) GetApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*wfh.Request, error) {
	r, ok := f.approved[employeeID+date.Format("2006-01-02")]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeWFHRepo) List(ctx context.Context, filter wfh.Filter) ([]wfh.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeWFHRepo) Update(ctx context.Context, r wfh.Request) error { return nil }

type fakeTaskRepo struct {
	reports []taskreport.Report
}

func (f *fakeTaskRepo) Create(ctx context.Context, r taskreport.Report) (taskreport.Report, error) {
	f.reports = append(f.reports, r)
	return r, nil
}

func (f *fakeTaskRepo) GetByAttendanceID(ctx context.Context, attendanceID string) (taskreport.Report, error) {
	for _, r := range f.reports {
		if r.AttendanceID == attendanceID {
			return r, nil
		}
	}
	return taskreport.Report{}, taskreport.ErrReportNotFound
}

func (f *fakeTaskRepo) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]taskreport.Report, error) {
	return f.reports, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) ListRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeLeaveRepo struct {
	leaves []leave.Leave
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	f.leaves = append(f.leaves, l)
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	return leave.Leave{}, leave.ErrLeaveNotFound
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.Filter) ([]leave.Leave, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) ListApprovedForRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, l leave.Leave) error { return nil }

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) GetGlobal(ctx context.Context) (settings.Document, error) {
	return settings.Document{}, settings.ErrSettingsNotFound
}

func (fakeSettingsRepo) GetDepartment(ctx context.Context, department string) (settings.Document, error) {
	return settings.Document{}, settings.ErrSettingsNotFound
}

func (fakeSettingsRepo) Upsert(ctx context.Context, doc settings.Document) (settings.Document, error) {
	return doc, nil
}

type recordingNotifier struct {
	missing []string
}

func (n *recordingNotifier) NotifyMissingCheckout(ctx context.Context, employeeID string, date time.Time) {
	n.missing = append(n.missing, employeeID)
}

type fixture struct {
	svc      *Service
	repo     *fakeAttendanceRepo
	tasks    *fakeTaskRepo
	notifier *recordingNotifier
	clock    *time.Time
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc := ist(t)

	now := time.Date(2025, 3, 12, 9, 30, 0, 0, loc) // Wednesday
	clock := &now

	repo := newFakeAttendanceRepo()
	tasks := &fakeTaskRepo{}
	notifier := &recordingNotifier{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", EmployeeCode: "EMP-0001", Name: "Asha Rao", Department: "engineering", IsActive: true},
		"emp-2": {ID: "emp-2", EmployeeCode: "EMP-0002", Name: "Vikram Shah", Department: "sales", IsActive: false},
	}}

	settingsSvc := settingssvc.NewService(fakeSettingsRepo{}, loc, func() time.Time { return *clock })

	svc := NewService(
		repo,
		employees,
		&fakeOfficeRepo{},
		&fakeWFHRepo{},
		tasks,
		&fakeHolidayRepo{},
		&fakeLeaveRepo{},
		settingsSvc,
		notifier,
		func() time.Time { return *clock },
	)
	return &fixture{svc: svc, repo: repo, tasks: tasks, notifier: notifier, clock: clock, loc: loc}
}

func (f *fixture) advanceTo(hour, minute int) {
	c := *f.clock
	*f.clock = time.Date(c.Year(), c.Month(), c.Day(), hour, minute, 0, 0, f.loc)
}

func TestCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	assert.Equal(t, attendancedomain.StatusPresent, resp.Status, "provisionally present until checkout")
	assert.False(t, resp.IsLate)
	require.NotNil(t, resp.CheckIn)
	assert.Nil(t, resp.WorkHours)
	require.NotNil(t, resp.Geofence)
	assert.False(t, resp.Geofence.Enforced, "geofencing is disabled by default")
}

func TestCheckIn_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	assert.ErrorIs(t, err, attendancedomain.ErrAlreadyCheckedIn)
}

func TestCheckIn_ConcurrentDuplicateMapsUniqueViolation(t *testing.T) {
	f := newFixture(t)
	f.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: UniqueEmployeeDayConstraint}

	_, err := f.svc.CheckIn(context.Background(), "emp-1", attendancedomain.CheckInRequest{})
	assert.ErrorIs(t, err, attendancedomain.ErrAlreadyCheckedIn)
}

func TestCheckIn_InactiveEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckIn(context.Background(), "emp-2", attendancedomain.CheckInRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestCheckIn_LateAfterThreshold(t *testing.T) {
	f := newFixture(t)
	f.advanceTo(10, 10)

	resp, err := f.svc.CheckIn(context.Background(), "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)
	assert.True(t, resp.IsLate)
}

func TestCheckOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	f.advanceTo(18, 0)
	resp, err := f.svc.CheckOut(ctx, "emp-1", attendancedomain.CheckOutRequest{
		Tasks: []string{"reviewed payroll module", "fixed report export"},
	})
	require.NoError(t, err)

	assert.Equal(t, attendancedomain.StatusPresent, resp.Status)
	require.NotNil(t, resp.WorkHours)
	assert.InDelta(t, 8.5, *resp.WorkHours, 0.001)
	assert.Empty(t, resp.Warnings)

	require.Len(t, f.tasks.reports, 1)
	assert.Equal(t, []string{"reviewed payroll module", "fixed report export"}, f.tasks.reports[0].Tasks)
}

func TestCheckOut_RequiresTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	f.advanceTo(18, 0)
	_, err = f.svc.CheckOut(ctx, "emp-1", attendancedomain.CheckOutRequest{Tasks: []string{"  ", ""}})
	assert.ErrorIs(t, err, attendancedomain.ErrTaskReportRequired)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckOut(context.Background(), "emp-1", attendancedomain.CheckOutRequest{Tasks: []string{"t"}})
	assert.ErrorIs(t, err, attendancedomain.ErrNotCheckedIn)
}

func TestCheckOut_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	f.advanceTo(18, 0)
	_, err = f.svc.CheckOut(ctx, "emp-1", attendancedomain.CheckOutRequest{Tasks: []string{"t"}})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(ctx, "emp-1", attendancedomain.CheckOutRequest{Tasks: []string{"t"}})
	assert.ErrorIs(t, err, attendancedomain.ErrAlreadyCheckedOut)
}

func TestCheckOut_ShortDayWarnsAndSettlesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	f.advanceTo(11, 30) // 2h worked
	resp, err := f.svc.CheckOut(ctx, "emp-1", attendancedomain.CheckOutRequest{Tasks: []string{"standup"}})
	require.NoError(t, err)

	assert.Equal(t, attendancedomain.StatusAbsent, resp.Status)
	assert.Contains(t, resp.Warnings, WarningShortDuration)
}

func TestToday_NoRecordYet(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Today(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendancedomain.StatusAbsent, resp.Status)
	assert.Empty(t, resp.ID)
}

func TestSweepMissingCheckouts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	// Next day: the open Wednesday session is swept.
	*f.clock = f.clock.AddDate(0, 0, 1)
	require.NoError(t, f.svc.SweepMissingCheckouts(ctx))

	assert.Equal(t, []string{"emp-1"}, f.notifier.missing)
	for _, r := range f.repo.records {
		assert.Equal(t, attendancedomain.StatusAbsent, r.Status)
		assert.Nil(t, r.CheckOut)
	}
}

func TestSweepMissingCheckouts_SecondRunIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	*f.clock = f.clock.AddDate(0, 0, 1)
	require.NoError(t, f.svc.SweepMissingCheckouts(ctx))
	require.NoError(t, f.svc.SweepMissingCheckouts(ctx))

	// A record already settled absent is not re-swept or re-notified.
	assert.Equal(t, []string{"emp-1"}, f.notifier.missing)
}

func TestUpdate_CorrectedPunchesRecomputeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)

	checkIn := time.Date(2025, 3, 12, 9, 0, 0, 0, f.loc).Format(time.RFC3339)
	checkOut := time.Date(2025, 3, 12, 18, 0, 0, 0, f.loc).Format(time.RFC3339)
	updated, err := f.svc.Update(ctx, attendancedomain.UpdateRequest{
		ID:       resp.ID,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	})
	require.NoError(t, err)
	assert.Equal(t, attendancedomain.StatusPresent, updated.Status)
	require.NotNil(t, updated.WorkHours)
	assert.InDelta(t, 9.0, *updated.WorkHours, 0.001)

	malformed := "12-03-2025 09:00"
	_, err = f.svc.Update(ctx, attendancedomain.UpdateRequest{ID: resp.ID, CheckIn: &malformed})
	assert.Error(t, err)
}

func TestMarkWFH(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("no record returns nil id", func(t *testing.T) {
		id, err := f.svc.MarkWFH(ctx, "emp-1", *f.clock)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("existing record is retagged", func(t *testing.T) {
		resp, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
		require.NoError(t, err)

		id, err := f.svc.MarkWFH(ctx, "emp-1", *f.clock)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, resp.ID, *id)

		stored := f.repo.records[resp.ID]
		require.NotNil(t, stored.Geofence)
		assert.Equal(t, attendancedomain.GeofenceWFH, stored.Geofence.Status)
	})
}

func TestRangeReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Work Monday the 10th fully, Tuesday the 11th short.
	*f.clock = time.Date(2025, 3, 10, 9, 0, 0, 0, f.loc)
	_, err := f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)
	f.advanceTo(18, 0)
	_, err = f.svc.CheckOut(ctx, "emp-1", attendancedomain.CheckOutRequest{Tasks: []string{"t"}})
	require.NoError(t, err)

	*f.clock = time.Date(2025, 3, 11, 10, 30, 0, 0, f.loc)
	_, err = f.svc.CheckIn(ctx, "emp-1", attendancedomain.CheckInRequest{})
	require.NoError(t, err)
	f.advanceTo(15, 30)
	_, err = f.svc.CheckOut(ctx, "emp-1", attendancedomain.CheckOutRequest{Tasks: []string{"t"}})
	require.NoError(t, err)

	*f.clock = time.Date(2025, 3, 12, 12, 0, 0, 0, f.loc)
	report, err := f.svc.RangeReport(ctx, "emp-1", "2025-03-10", "2025-03-16")
	require.NoError(t, err)

	require.Len(t, report.Days, 3, "future days are clamped to today")
	assert.Equal(t, attendancedomain.StatusPresent, report.Days[0].Status)
	assert.Equal(t, attendancedomain.StatusHalfDay, report.Days[1].Status)
	assert.True(t, report.Days[1].IsLate)
	assert.Equal(t, "no check-in recorded", report.Days[2].Annotation)

	assert.Equal(t, 3, report.Stats.TotalWorkingDays)
	assert.Equal(t, 1, report.Stats.PresentDays)
	assert.Equal(t, 1, report.Stats.HalfDays)
	assert.Equal(t, 1, report.Stats.AbsentDays)
	assert.Equal(t, 66.7, report.Stats.Percentage)
}

func TestRangeReport_InvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RangeReport(context.Background(), "emp-1", "2025-03-16", "2025-03-10")
	assert.Error(t, err)
}
