package settings

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
)

// DefaultCacheTTL bounds how stale a resolved settings object may get in
// other processes; writes through this service invalidate immediately.
const DefaultCacheTTL = 5 * time.Minute

// Service resolves effective settings (department over global over
// defaults) and answers the calendar questions the attendance evaluator
// needs. Lookup failures degrade to defaults: attendance operations must
// never fail solely because the settings store is unreachable.
type Service struct {
	repo  settings.Repository
	cache *ttlCache
	loc   *time.Location
	now   func() time.Time
}

func NewService(repo settings.Repository, loc *time.Location, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:  repo,
		cache: newTTLCache(DefaultCacheTTL, now),
		loc:   loc,
		now:   now,
	}
}

// Location returns the organization timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// GetEffective merges the department document over the global document over
// Defaults(). The result is cached per department key.
func (s *Service) GetEffective(ctx context.Context, department *string) settings.Effective {
	key := cacheKey(department)
	if cached, ok := s.cache.get(key); ok {
		return cached
	}

	eff := s.resolve(ctx, department)
	s.cache.set(key, eff)
	return eff
}

func (s *Service) resolve(ctx context.Context, department *string) settings.Effective {
	var global, dept *settings.Document

	g, err := s.repo.GetGlobal(ctx)
	switch {
	case err == nil:
		global = &g
	case errors.Is(err, settings.ErrSettingsNotFound):
		// No global document yet; defaults apply.
	default:
		slog.Warn("settings lookup failed, falling back to defaults", "scope", "global", "error", err)
	}

	if department != nil && *department != "" {
		d, err := s.repo.GetDepartment(ctx, *department)
		switch {
		case err == nil:
			dept = &d
		case errors.Is(err, settings.ErrSettingsNotFound):
		default:
			slog.Warn("settings lookup failed, falling back to global", "scope", "department", "department", *department, "error", err)
		}
	}

	return settings.Merge(settings.Defaults(), global, dept)
}

// BusinessHours converts the resolved time-of-day strings into absolute
// timestamps for the given calendar date in the organization timezone.
func (s *Service) BusinessHours(ctx context.Context, date time.Time, department *string) settings.BusinessHours {
	eff := s.GetEffective(ctx, department)
	return eff.Attendance.BusinessHoursOn(date.In(s.loc), s.loc)
}

// IsWorkingDay applies the working-day mask and Saturday policy to a date.
func (s *Service) IsWorkingDay(ctx context.Context, date time.Time, department *string) bool {
	eff := s.GetEffective(ctx, department)
	return eff.Attendance.IsWorkingDay(date.In(s.loc))
}

// WorkHourThresholds returns the minimum and full-day hour cutoffs.
func (s *Service) WorkHourThresholds(ctx context.Context, department *string) (minimum, fullDay float64) {
	eff := s.GetEffective(ctx, department)
	return eff.Attendance.MinimumWorkHours, eff.Attendance.FullDayHours
}

// Invalidate drops cached settings for a scope. Global writes clear the
// whole cache because every department result embeds the global document.
func (s *Service) Invalidate(scope settings.Scope, department *string) {
	if scope == settings.ScopeGlobal {
		s.cache.invalidate("")
		return
	}
	s.cache.invalidate(cacheKey(department))
}

// GetDocument returns the raw stored document for a scope.
func (s *Service) GetDocument(ctx context.Context, scope settings.Scope, department *string) (settings.Document, error) {
	if scope == settings.ScopeDepartment {
		if department == nil || *department == "" {
			return settings.Document{}, settings.ErrInvalidScope
		}
		return s.repo.GetDepartment(ctx, *department)
	}
	return s.repo.GetGlobal(ctx)
}

// Update writes a settings document and invalidates the cache for its scope.
func (s *Service) Update(ctx context.Context, scope settings.Scope, department *string, req settings.UpdateSettingsRequest) (settings.Document, error) {
	if err := req.Validate(); err != nil {
		return settings.Document{}, err
	}
	if scope != settings.ScopeGlobal && scope != settings.ScopeDepartment {
		return settings.Document{}, settings.ErrInvalidScope
	}
	if scope == settings.ScopeDepartment && (department == nil || *department == "") {
		return settings.Document{}, settings.ErrInvalidScope
	}
	if scope == settings.ScopeGlobal {
		department = nil
	}

	doc := settings.Document{
		ID:         uuid.New().String(),
		Scope:      scope,
		Department: department,
		Attendance: req.Attendance,
		Geofence:   req.Geofence,
		UpdatedAt:  s.now(),
	}

	saved, err := s.repo.Upsert(ctx, doc)
	if err != nil {
		return settings.Document{}, err
	}

	s.Invalidate(scope, department)
	return saved, nil
}

func cacheKey(department *string) string {
	if department == nil {
		return "global"
	}
	return "dept:" + *department
}
