package master

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kriyahr/hrms-backend-go/internal/domain/holiday"
	"github.com/kriyahr/hrms-backend-go/internal/domain/office"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
)

const uniqueHolidayDateConstraint = "ux_holidays_date"

// Service manages the master data the attendance evaluators consume:
// offices (geofence anchors) and the holiday calendar.
type Service struct {
	offices  office.Repository
	holidays holiday.Repository
	loc      *time.Location
	now      func() time.Time
}

func NewService(offices office.Repository, holidays holiday.Repository, loc *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{offices: offices, holidays: holidays, loc: loc, now: now}
}

func (s *Service) CreateOffice(ctx context.Context, req office.CreateRequest) (office.Response, error) {
	if err := req.Validate(); err != nil {
		return office.Response{}, err
	}

	now := s.now()
	o := office.Office{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.offices.Create(ctx, o)
	if err != nil {
		return office.Response{}, err
	}
	return toOfficeResponse(created), nil
}

func (s *Service) UpdateOffice(ctx context.Context, req office.UpdateRequest) (office.Response, error) {
	if err := req.Validate(); err != nil {
		return office.Response{}, err
	}

	o, err := s.offices.GetByID(ctx, req.ID)
	if err != nil {
		return office.Response{}, err
	}

	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.Address != nil {
		o.Address = *req.Address
	}
	if req.Latitude != nil && req.Longitude != nil {
		o.Latitude = *req.Latitude
		o.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		o.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	o.UpdatedAt = s.now()

	if err := s.offices.Update(ctx, o); err != nil {
		return office.Response{}, err
	}
	return toOfficeResponse(o), nil
}

func (s *Service) ListOffices(ctx context.Context) ([]office.Response, error) {
	offices, err := s.offices.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]office.Response, 0, len(offices))
	for _, o := range offices {
		out = append(out, toOfficeResponse(o))
	}
	return out, nil
}

func (s *Service) DeleteOffice(ctx context.Context, id string) error {
	if _, err := s.offices.GetByID(ctx, id); err != nil {
		return err
	}
	return s.offices.Delete(ctx, id)
}

func (s *Service) CreateHoliday(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error) {
	if err := req.Validate(); err != nil {
		return holiday.Response{}, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	h := holiday.Holiday{
		ID:         uuid.New().String(),
		Date:       date,
		Title:      req.Title,
		IsOptional: req.IsOptional,
		CreatedAt:  s.now(),
	}

	created, err := s.holidays.Create(ctx, h)
	if err != nil {
		if database.IsUniqueViolation(err, uniqueHolidayDateConstraint) {
			return holiday.Response{}, holiday.ErrHolidayExists
		}
		return holiday.Response{}, err
	}
	return toHolidayResponse(created), nil
}

// ListHolidays returns the calendar for one year.
func (s *Service) ListHolidays(ctx context.Context, year int) ([]holiday.Response, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, s.loc)

	holidays, err := s.holidays.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]holiday.Response, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, toHolidayResponse(h))
	}
	return out, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := s.holidays.GetByID(ctx, id); err != nil {
		return err
	}
	return s.holidays.Delete(ctx, id)
}

func toOfficeResponse(o office.Office) office.Response {
	return office.Response{
		ID:           o.ID,
		Name:         o.Name,
		Address:      o.Address,
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		RadiusMeters: o.RadiusMeters,
		IsActive:     o.IsActive,
	}
}

func toHolidayResponse(h holiday.Holiday) holiday.Response {
	return holiday.Response{
		ID:         h.ID,
		Date:       h.Date.Format("2006-01-02"),
		Title:      h.Title,
		IsOptional: h.IsOptional,
	}
}
