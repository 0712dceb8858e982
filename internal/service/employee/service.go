package employee

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kriyahr/hrms-backend-go/internal/domain/employee"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

const (
	uniqueCodeConstraint  = "ux_employees_code"
	uniqueEmailConstraint = "ux_employees_email"
)

type Service struct {
	repo employee.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo employee.Repository, loc *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, loc: loc, now: now}
}

func (s *Service) Create(ctx context.Context, req employee.CreateRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}

	joining, _ := time.ParseInLocation("2006-01-02", req.JoiningDate, s.loc)
	now := s.now()

	e := employee.Employee{
		ID:           uuid.New().String(),
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		Email:        req.Email,
		Department:   req.Department,
		JoiningDate:  joining,
		IsActive:     true,
		BaseSalary:   req.BaseSalary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, uniqueCodeConstraint):
			return employee.Response{}, employee.ErrEmployeeCodeExists
		case database.IsUniqueViolation(err, uniqueEmailConstraint):
			return employee.Response{}, employee.ErrEmailExists
		}
		return employee.Response{}, err
	}
	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (employee.Response, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.Response{}, err
	}
	return toResponse(e), nil
}

func (s *Service) List(ctx context.Context, filter employee.Filter) (employee.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListResponse{}, err
	}

	employees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return employee.ListResponse{}, err
	}

	resp := employee.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  make([]employee.Response, 0, len(employees)),
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, toResponse(e))
	}
	return resp, nil
}

// Search is the typeahead lookup used by manager screens; matching is
// a simple case-insensitive substring on the name.
func (s *Service) Search(ctx context.Context, name string) ([]employee.Response, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []employee.Response{}, nil
	}

	employees, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	out := make([]employee.Response, 0, len(employees))
	for _, e := range employees {
		out = append(out, toResponse(e))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, req employee.UpdateRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}

	e, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Response{}, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if req.BaseSalary != nil {
		e.BaseSalary = req.BaseSalary
	}
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return employee.Response{}, err
	}
	return toResponse(e), nil
}

func toResponse(e employee.Employee) employee.Response {
	return employee.Response{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		Department:   e.Department,
		JoiningDate:  e.JoiningDate.Format("2006-01-02"),
		IsActive:     e.IsActive,
		BaseSalary:   e.BaseSalary,
	}
}
