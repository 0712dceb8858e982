package payroll

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	"github.com/kriyahr/hrms-backend-go/internal/domain/payroll"
)

type fakeSlipRepo struct {
	slips map[string]payroll.Slip
}

func newFakeSlipRepo() *fakeSlipRepo {
	return &fakeSlipRepo{slips: make(map[string]payroll.Slip)}
}

func (f *fakeSlipRepo) Create(_ context.Context, s payroll.Slip) (payroll.Slip, error) {
	f.slips[s.ID] = s
	return s, nil
}

func (f *fakeSlipRepo) GetByID(_ context.Context, id string) (payroll.Slip, error) {
	s, ok := f.slips[id]
	if !ok {
		return payroll.Slip{}, payroll.ErrSlipNotFound
	}
	return s, nil
}

func (f *fakeSlipRepo) GetByMonth(_ context.Context, employeeID string, year int, month time.Month) (*payroll.Slip, error) {
	for _, s := range f.slips {
		if s.EmployeeID == employeeID && s.Year == year && s.Month == month {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSlipRepo) ListByEmployee(_ context.Context, employeeID string) ([]payroll.Slip, error) {
	var out []payroll.Slip
	for _, s := range f.slips {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.Filter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) SearchByName(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type fakeReporter struct {
	stats attendancedomain.ReportStats
}

func (f *fakeReporter) RangeReport(_ context.Context, employeeID, from, to string) (attendancedomain.RangeReportResponse, error) {
	return attendancedomain.RangeReportResponse{
		EmployeeID: employeeID,
		StartDate:  from,
		EndDate:    to,
		Stats:      f.stats,
	}, nil
}

type memoryStorage struct {
	files map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (m *memoryStorage) Upload(_ context.Context, file io.Reader, path string, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.files[path] = data
	return path, nil
}

func (m *memoryStorage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) Delete(_ context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func (m *memoryStorage) GetURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://files.test/" + path, nil
}

func (m *memoryStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

type recordingDispatcher struct {
	kinds []notification.Kind
}

func (d *recordingDispatcher) NotifyEmployee(_ context.Context, _ string, kind notification.Kind, _, _ string) {
	d.kinds = append(d.kinds, kind)
}

func (d *recordingDispatcher) NotifyManagers(_ context.Context, kind notification.Kind, _, _ string) {
	d.kinds = append(d.kinds, kind)
}

func floatPtr(v float64) *float64 { return &v }

type payrollFixture struct {
	svc        *Service
	slips      *fakeSlipRepo
	files      *memoryStorage
	dispatcher *recordingDispatcher
}

func newPayrollFixture(t *testing.T, stats attendancedomain.ReportStats) payrollFixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	slips := newFakeSlipRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:           "emp-1",
			EmployeeCode: "EMP-0001",
			Name:         "Asha Nair",
			Department:   "Engineering",
			BaseSalary:   floatPtr(60000),
		},
		"emp-2": {
			ID:           "emp-2",
			EmployeeCode: "EMP-0002",
			Name:         "Vikram Rao",
			Department:   "Sales",
		},
	}}
	files := newMemoryStorage()
	dispatcher := &recordingDispatcher{}
	now := func() time.Time { return time.Date(2025, 4, 5, 10, 0, 0, 0, loc) }

	svc := NewService(slips, employees, &fakeReporter{stats: stats}, files, dispatcher, "Kriya HR", loc, now)
	return payrollFixture{svc: svc, slips: slips, files: files, dispatcher: dispatcher}
}

func TestGenerateProratesDeductions(t *testing.T) {
	// 20 working days, 2 absent, 2 half days: deduction covers 3 day-salaries.
	fx := newPayrollFixture(t, attendancedomain.ReportStats{
		TotalWorkingDays: 20,
		PresentDays:      16,
		HalfDays:         2,
		AbsentDays:       2,
		LeaveDays:        0,
	})

	resp, err := fx.svc.Generate(context.Background(), payroll.GenerateRequest{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      3,
	})
	require.NoError(t, err)

	assert.Equal(t, 60000.0, resp.GrossSalary)
	assert.InDelta(t, 9000.0, resp.Deductions, 0.001) // 3000/day * (2 + 0.5*2)
	assert.InDelta(t, 51000.0, resp.NetSalary, 0.001)
	assert.Equal(t, 20, resp.WorkingDays)

	// The rendered PDF was stored and a notification dispatched.
	stored, ok := fx.files.files["payslips/emp-1/2025-03.pdf"]
	require.True(t, ok)
	assert.True(t, bytes.HasPrefix(stored, []byte("%PDF")))
	assert.Equal(t, []notification.Kind{notification.KindPayslipReady}, fx.dispatcher.kinds)
	assert.Contains(t, resp.DownloadURL, "payslips/emp-1/2025-03.pdf")
}

func TestGenerateZeroWorkingDaysMeansNoDeduction(t *testing.T) {
	fx := newPayrollFixture(t, attendancedomain.ReportStats{})

	resp, err := fx.svc.Generate(context.Background(), payroll.GenerateRequest{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      3,
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Deductions)
	assert.Equal(t, 60000.0, resp.NetSalary)
}

func TestGenerateTwiceFails(t *testing.T) {
	fx := newPayrollFixture(t, attendancedomain.ReportStats{TotalWorkingDays: 20, PresentDays: 20})

	req := payroll.GenerateRequest{EmployeeID: "emp-1", Year: 2025, Month: 3}
	_, err := fx.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = fx.svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrSlipExists)
}

func TestGenerateFutureMonthFails(t *testing.T) {
	fx := newPayrollFixture(t, attendancedomain.ReportStats{})

	_, err := fx.svc.Generate(context.Background(), payroll.GenerateRequest{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      5, // clock is April 2025
	})
	assert.ErrorIs(t, err, payroll.ErrFutureMonth)
}

func TestGenerateWithoutBaseSalaryFails(t *testing.T) {
	fx := newPayrollFixture(t, attendancedomain.ReportStats{TotalWorkingDays: 20})

	_, err := fx.svc.Generate(context.Background(), payroll.GenerateRequest{
		EmployeeID: "emp-2",
		Year:       2025,
		Month:      3,
	})
	assert.ErrorIs(t, err, payroll.ErrNoBaseSalary)
}

func TestDownloadStreamsStoredPDF(t *testing.T) {
	fx := newPayrollFixture(t, attendancedomain.ReportStats{TotalWorkingDays: 20, PresentDays: 20})

	resp, err := fx.svc.Generate(context.Background(), payroll.GenerateRequest{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      3,
	})
	require.NoError(t, err)

	rc, err := fx.svc.Download(context.Background(), resp.ID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
