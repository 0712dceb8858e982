package payroll

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	attendancedomain "github.com/kriyahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
	"github.com/kriyahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/storage"
	notificationsvc "github.com/kriyahr/hrms-backend-go/internal/service/notification"
)

// AttendanceReporter supplies the month's attendance aggregates that
// proration is based on.
type AttendanceReporter interface {
	RangeReport(ctx context.Context, employeeID, from, to string) (attendancedomain.RangeReportResponse, error)
}

type Service struct {
	repo      payroll.Repository
	employees employee.Repository
	reports   AttendanceReporter
	files     storage.FileStorage
	notifier  notificationsvc.Dispatcher
	orgName   string
	loc       *time.Location
	now       func() time.Time
}

func NewService(repo payroll.Repository, employees employee.Repository, reports AttendanceReporter, files storage.FileStorage, notifier notificationsvc.Dispatcher, orgName string, loc *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      repo,
		employees: employees,
		reports:   reports,
		files:     files,
		notifier:  notifier,
		orgName:   orgName,
		loc:       loc,
		now:       now,
	}
}

// Generate renders and stores the payslip for one employee-month. The
// gross is the base salary; unexcused absence and half days prorate the
// deduction against the month's working days.
func (s *Service) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.Response, error) {
	if err := req.Validate(); err != nil {
		return payroll.Response{}, err
	}

	month := time.Month(req.Month)
	now := s.now().In(s.loc)
	if req.Year > now.Year() || (req.Year == now.Year() && month > now.Month()) {
		return payroll.Response{}, payroll.ErrFutureMonth
	}

	existing, err := s.repo.GetByMonth(ctx, req.EmployeeID, req.Year, month)
	if err != nil {
		return payroll.Response{}, err
	}
	if existing != nil {
		return payroll.Response{}, payroll.ErrSlipExists
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.Response{}, err
	}
	if emp.BaseSalary == nil || *emp.BaseSalary <= 0 {
		return payroll.Response{}, payroll.ErrNoBaseSalary
	}

	first := time.Date(req.Year, month, 1, 0, 0, 0, 0, s.loc)
	last := first.AddDate(0, 1, -1)

	report, err := s.reports.RangeReport(ctx, req.EmployeeID, first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return payroll.Response{}, err
	}
	stats := report.Stats

	gross := *emp.BaseSalary
	var deductions float64
	if stats.TotalWorkingDays > 0 {
		perDay := gross / float64(stats.TotalWorkingDays)
		deductions = perDay * (float64(stats.AbsentDays) + 0.5*float64(stats.HalfDays))
	}
	deductions = round2(deductions)
	net := round2(gross - deductions)

	slip := payroll.Slip{
		ID:           uuid.New().String(),
		EmployeeID:   emp.ID,
		Year:         req.Year,
		Month:        month,
		GrossSalary:  gross,
		Deductions:   deductions,
		NetSalary:    net,
		WorkingDays:  stats.TotalWorkingDays,
		PresentDays:  stats.PresentDays,
		HalfDays:     stats.HalfDays,
		LeaveDays:    stats.LeaveDays,
		AbsentDays:   stats.AbsentDays,
		GeneratedAt:  s.now(),
		EmployeeName: emp.Name,
		EmployeeCode: emp.EmployeeCode,
		Department:   emp.Department,
	}

	pdf, err := s.renderPDF(slip)
	if err != nil {
		return payroll.Response{}, err
	}

	path := fmt.Sprintf("payslips/%s/%04d-%02d.pdf", emp.ID, req.Year, req.Month)
	stored, err := s.files.Upload(ctx, bytes.NewReader(pdf), path, "application/pdf")
	if err != nil {
		return payroll.Response{}, err
	}
	slip.FilePath = stored

	created, err := s.repo.Create(ctx, slip)
	if err != nil {
		return payroll.Response{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEmployee(ctx, emp.ID, notification.KindPayslipReady,
			"Payslip ready",
			fmt.Sprintf("Your payslip for %s %d is available.", month, req.Year))
	}
	return s.toResponse(ctx, created), nil
}

func (s *Service) Get(ctx context.Context, id string) (payroll.Response, error) {
	slip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return payroll.Response{}, err
	}
	return s.toResponse(ctx, slip), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Response, error) {
	slips, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]payroll.Response, 0, len(slips))
	for _, slip := range slips {
		out = append(out, s.toResponse(ctx, slip))
	}
	return out, nil
}

// Download returns the stored PDF stream for a slip.
func (s *Service) Download(ctx context.Context, id string) (io.ReadCloser, error) {
	slip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.files.Download(ctx, slip.FilePath)
}

func (s *Service) renderPDF(slip payroll.Slip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, s.orgName)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip - %s %d", slip.Month, slip.Year))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	row := func(label, value string) {
		pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	row("Employee", fmt.Sprintf("%s (%s)", slip.EmployeeName, slip.EmployeeCode))
	row("Department", slip.Department)
	pdf.Ln(4)

	row("Working days", fmt.Sprintf("%d", slip.WorkingDays))
	row("Present", fmt.Sprintf("%d", slip.PresentDays))
	row("Half days", fmt.Sprintf("%d", slip.HalfDays))
	row("Leave", fmt.Sprintf("%d", slip.LeaveDays))
	row("Absent", fmt.Sprintf("%d", slip.AbsentDays))
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	row("Gross salary", fmt.Sprintf("%.2f", slip.GrossSalary))
	row("Deductions", fmt.Sprintf("%.2f", slip.Deductions))
	row("Net salary", fmt.Sprintf("%.2f", slip.NetSalary))

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on %s", slip.GeneratedAt.In(s.loc).Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) toResponse(ctx context.Context, slip payroll.Slip) payroll.Response {
	resp := payroll.Response{
		ID:           slip.ID,
		EmployeeID:   slip.EmployeeID,
		EmployeeName: slip.EmployeeName,
		Year:         slip.Year,
		Month:        int(slip.Month),
		GrossSalary:  slip.GrossSalary,
		Deductions:   slip.Deductions,
		NetSalary:    slip.NetSalary,
		WorkingDays:  slip.WorkingDays,
		PresentDays:  slip.PresentDays,
		HalfDays:     slip.HalfDays,
		LeaveDays:    slip.LeaveDays,
		AbsentDays:   slip.AbsentDays,
		GeneratedAt:  slip.GeneratedAt.Format(time.RFC3339),
	}
	if slip.FilePath != "" {
		if url, err := s.files.GetURL(ctx, slip.FilePath, 15*time.Minute); err == nil {
			resp.DownloadURL = url
		}
	}
	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
