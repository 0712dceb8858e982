package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kriyahr/hrms-backend-go/internal/domain/settings"
)

type fakeRepo struct {
	global      *settings.Document
	departments map[string]settings.Document
	err         error
	globalGets  int
}

func (f *fakeRepo) GetGlobal(ctx context.Context) (settings.Document, error) {
	f.globalGets++
	if f.err != nil {
		return settings.Document{}, f.err
	}
	if f.global == nil {
		return settings.Document{}, settings.ErrSettingsNotFound
	}
	return *f.global, nil
}

func (f *fakeRepo) GetDepartment(ctx context.Context, department string) (settings.Document, error) {
	if f.err != nil {
		return settings.Document{}, f.err
	}
	doc, ok := f.departments[department]
	if !ok {
		return settings.Document{}, settings.ErrSettingsNotFound
	}
	return doc, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, doc settings.Document) (settings.Document, error) {
	if doc.Scope == settings.ScopeGlobal {
		f.global = &doc
	} else {
		if f.departments == nil {
			f.departments = make(map[string]settings.Document)
		}
		f.departments[*doc.Department] = doc
	}
	return doc, nil
}

func strPtr(s string) *string { return &s }

func f64Ptr(v float64) *float64 { return &v }

func ist(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func TestGetEffective_DefaultsWhenStoreEmpty(t *testing.T) {
	svc := NewService(&fakeRepo{}, ist(t), nil)

	eff := svc.GetEffective(context.Background(), nil)

	assert.Equal(t, "09:00", eff.Attendance.WorkStart)
	assert.Equal(t, "09:55", eff.Attendance.LateThreshold)
	assert.Equal(t, 4.0, eff.Attendance.MinimumWorkHours)
	assert.Equal(t, 8.0, eff.Attendance.FullDayHours)
	assert.Len(t, eff.Attendance.WorkingDays, 6)
}

func TestGetEffective_DefaultsWhenStoreUnavailable(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	svc := NewService(repo, ist(t), nil)

	// Must not propagate the error; attendance operations depend on this.
	eff := svc.GetEffective(context.Background(), strPtr("engineering"))
	assert.Equal(t, settings.Defaults(), eff)
}

func TestGetEffective_DepartmentOverridesGlobal(t *testing.T) {
	repo := &fakeRepo{
		global: &settings.Document{
			Scope: settings.ScopeGlobal,
			Attendance: settings.AttendancePatch{
				WorkStart:     strPtr("10:00"),
				LateThreshold: strPtr("10:15"),
				FullDayHours:  f64Ptr(9),
			},
		},
		departments: map[string]settings.Document{
			"engineering": {
				Scope:      settings.ScopeDepartment,
				Department: strPtr("engineering"),
				Attendance: settings.AttendancePatch{
					LateThreshold: strPtr("11:00"),
				},
			},
		},
	}
	svc := NewService(repo, ist(t), nil)

	eff := svc.GetEffective(context.Background(), strPtr("engineering"))

	// Department wins where it speaks, global where it does not, defaults
	// for the rest.
	assert.Equal(t, "11:00", eff.Attendance.LateThreshold)
	assert.Equal(t, "10:00", eff.Attendance.WorkStart)
	assert.Equal(t, 9.0, eff.Attendance.FullDayHours)
	assert.Equal(t, 4.0, eff.Attendance.MinimumWorkHours)
}

func TestGetEffective_CachesUntilTTL(t *testing.T) {
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	repo := &fakeRepo{}
	svc := NewService(repo, ist(t), now)

	ctx := context.Background()
	svc.GetEffective(ctx, nil)
	svc.GetEffective(ctx, nil)
	assert.Equal(t, 1, repo.globalGets, "second call should hit the cache")

	clock = clock.Add(DefaultCacheTTL + time.Second)
	svc.GetEffective(ctx, nil)
	assert.Equal(t, 2, repo.globalGets, "expired entry should re-resolve")
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, ist(t), nil)
	ctx := context.Background()

	before := svc.GetEffective(ctx, nil)
	assert.Equal(t, "09:55", before.Attendance.LateThreshold)

	_, err := svc.Update(ctx, settings.ScopeGlobal, nil, settings.UpdateSettingsRequest{
		Attendance: settings.AttendancePatch{LateThreshold: strPtr("10:30")},
	})
	require.NoError(t, err)

	after := svc.GetEffective(ctx, nil)
	assert.Equal(t, "10:30", after.Attendance.LateThreshold)
}

func TestUpdate_GlobalWriteInvalidatesDepartmentEntries(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, ist(t), nil)
	ctx := context.Background()
	dept := strPtr("sales")

	svc.GetEffective(ctx, dept) // warm the department entry

	_, err := svc.Update(ctx, settings.ScopeGlobal, nil, settings.UpdateSettingsRequest{
		Attendance: settings.AttendancePatch{WorkStart: strPtr("08:30")},
	})
	require.NoError(t, err)

	eff := svc.GetEffective(ctx, dept)
	assert.Equal(t, "08:30", eff.Attendance.WorkStart)
}

func TestUpdate_RejectsInvalidPatch(t *testing.T) {
	svc := NewService(&fakeRepo{}, ist(t), nil)

	_, err := svc.Update(context.Background(), settings.ScopeGlobal, nil, settings.UpdateSettingsRequest{
		Attendance: settings.AttendancePatch{LateThreshold: strPtr("25:00")},
	})
	assert.Error(t, err)

	_, err = svc.Update(context.Background(), settings.ScopeDepartment, nil, settings.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, settings.ErrInvalidScope)
}

func TestSaturdayOrdinal(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2025-03-01", 1}, // 1st of month is a Saturday
		{"2025-03-08", 2},
		{"2025-03-15", 3},
		{"2025-03-22", 4},
		{"2025-03-29", 4}, // 5th Saturday clamps to 4
		{"2025-03-03", 0}, // Monday
		{"2025-08-02", 1}, // first Saturday falls on the 2nd
		{"2025-08-09", 2},
	}
	for _, c := range cases {
		date, err := time.Parse("2006-01-02", c.date)
		require.NoError(t, err)
		got := settings.SaturdayOrdinal(date)
		assert.Equal(t, c.want, got, "date %s", c.date)
	}
}

func TestSaturdayOrdinal_IdempotentWithinMonth(t *testing.T) {
	date := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	first := settings.SaturdayOrdinal(date)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, settings.SaturdayOrdinal(date))
	}
}

func TestIsWorkingDay_SecondSaturdayOff(t *testing.T) {
	repo := &fakeRepo{
		global: &settings.Document{
			Scope: settings.ScopeGlobal,
			Attendance: settings.AttendancePatch{
				SaturdayHolidays: &[]int{2, 4},
			},
		},
	}
	svc := NewService(repo, ist(t), nil)
	ctx := context.Background()

	firstSat := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	secondSat := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	fourthSat := time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, svc.IsWorkingDay(ctx, firstSat, nil))
	assert.False(t, svc.IsWorkingDay(ctx, secondSat, nil))
	assert.False(t, svc.IsWorkingDay(ctx, fourthSat, nil))
	assert.False(t, svc.IsWorkingDay(ctx, sunday, nil))
	assert.True(t, svc.IsWorkingDay(ctx, monday, nil))
}

func TestIsWorkingDay_SaturdayOffPolicy(t *testing.T) {
	satOff := settings.SaturdayOff
	repo := &fakeRepo{
		global: &settings.Document{
			Scope: settings.ScopeGlobal,
			Attendance: settings.AttendancePatch{
				SaturdayWorkType: &satOff,
			},
		},
	}
	svc := NewService(repo, ist(t), nil)

	anySaturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.False(t, svc.IsWorkingDay(context.Background(), anySaturday, nil))
}

func TestBusinessHours_ResolvedInOrgTimezone(t *testing.T) {
	loc := ist(t)
	svc := NewService(&fakeRepo{}, loc, nil)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	bh := svc.BusinessHours(context.Background(), date, nil)

	assert.Equal(t, 9, bh.WorkStart.Hour())
	assert.Equal(t, 0, bh.WorkStart.Minute())
	assert.Equal(t, 18, bh.WorkEnd.Hour())
	assert.Equal(t, 9, bh.LateThreshold.Hour())
	assert.Equal(t, 55, bh.LateThreshold.Minute())
	assert.Equal(t, 13, bh.HalfDayEnd.Hour())
	assert.Equal(t, loc.String(), bh.WorkStart.Location().String())
}

func TestLateThresholdDecimal(t *testing.T) {
	p := settings.Defaults().Attendance
	assert.InDelta(t, 9.9167, p.LateThresholdDecimal(), 0.001)

	p.LateThreshold = "10:30"
	assert.InDelta(t, 10.5, p.LateThresholdDecimal(), 0.0001)
}
