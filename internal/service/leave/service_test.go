package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kriyahr/hrms-backend-go/internal/domain/leave"
	"github.com/kriyahr/hrms-backend-go/internal/domain/notification"
)

type fakeLeaveRepo struct {
	leaves  map[string]leave.Leave
	overlap bool
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[string]leave.Leave)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, l leave.Leave) (leave.Leave, error) {
	f.leaves[l.ID] = l
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.Filter) ([]leave.Leave, int64, error) {
	out := make([]leave.Leave, 0, len(f.leaves))
	for _, l := range f.leaves {
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) ListApprovedForRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved &&
			!l.StartDate.After(to) && !l.EndDate.Before(from) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) HasOverlap(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return f.overlap, nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, l leave.Leave) error {
	if _, ok := f.leaves[l.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	f.leaves[l.ID] = l
	return nil
}

type recordingDispatcher struct {
	employeeKinds []notification.Kind
	managerKinds  []notification.Kind
}

func (d *recordingDispatcher) NotifyEmployee(_ context.Context, _ string, kind notification.Kind, _, _ string) {
	d.employeeKinds = append(d.employeeKinds, kind)
}

func (d *recordingDispatcher) NotifyManagers(_ context.Context, kind notification.Kind, _, _ string) {
	d.managerKinds = append(d.managerKinds, kind)
}

func newLeaveFixture(t *testing.T) (*Service, *fakeLeaveRepo, *recordingDispatcher) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	repo := newFakeLeaveRepo()
	dispatcher := &recordingDispatcher{}
	now := func() time.Time { return time.Date(2025, 3, 10, 11, 0, 0, 0, loc) }
	return NewService(repo, dispatcher, loc, now), repo, dispatcher
}

func TestApplyCreatesPendingAndNotifiesManagers(t *testing.T) {
	svc, repo, dispatcher := newLeaveFixture(t)

	resp, err := svc.Apply(context.Background(), "emp-1", leave.ApplyRequest{
		Type:      "casual",
		StartDate: "2025-03-17",
		EndDate:   "2025-03-19",
		Reason:    "family function",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 3, resp.Days)
	require.Len(t, repo.leaves, 1)
	assert.Equal(t, []notification.Kind{notification.KindLeaveRequested}, dispatcher.managerKinds)
}

func TestApplyRejectsOverlap(t *testing.T) {
	svc, repo, _ := newLeaveFixture(t)
	repo.overlap = true

	_, err := svc.Apply(context.Background(), "emp-1", leave.ApplyRequest{
		Type:      "sick",
		StartDate: "2025-03-17",
		EndDate:   "2025-03-17",
		Reason:    "fever",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveOverlap)
	assert.Empty(t, repo.leaves)
}

func TestApplyRejectsInvertedRange(t *testing.T) {
	svc, _, _ := newLeaveFixture(t)

	_, err := svc.Apply(context.Background(), "emp-1", leave.ApplyRequest{
		Type:      "casual",
		StartDate: "2025-03-19",
		EndDate:   "2025-03-17",
		Reason:    "trip",
	})
	assert.Error(t, err)
}

func TestReviewApprovesAndNotifiesEmployee(t *testing.T) {
	svc, repo, dispatcher := newLeaveFixture(t)

	resp, err := svc.Apply(context.Background(), "emp-1", leave.ApplyRequest{
		Type:      "earned",
		StartDate: "2025-03-20",
		EndDate:   "2025-03-21",
		Reason:    "vacation",
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), "mgr-1", leave.ReviewRequest{
		ID:     resp.ID,
		Action: "approve",
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "mgr-1", *reviewed.ReviewedBy)
	assert.Equal(t, []notification.Kind{notification.KindLeaveReviewed}, dispatcher.employeeKinds)

	stored := repo.leaves[resp.ID]
	assert.Equal(t, leave.StatusApproved, stored.Status)
}

func TestReviewRejectRequiresNote(t *testing.T) {
	svc, _, _ := newLeaveFixture(t)

	resp, err := svc.Apply(context.Background(), "emp-1", leave.ApplyRequest{
		Type:      "casual",
		StartDate: "2025-03-20",
		EndDate:   "2025-03-20",
		Reason:    "errand",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), "mgr-1", leave.ReviewRequest{
		ID:     resp.ID,
		Action: "reject",
	})
	assert.Error(t, err)

	reviewed, err := svc.Review(context.Background(), "mgr-1", leave.ReviewRequest{
		ID:     resp.ID,
		Action: "reject",
		Note:   "short staffed that day",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", reviewed.Status)
}

func TestReviewTwiceFails(t *testing.T) {
	svc, _, _ := newLeaveFixture(t)

	resp, err := svc.Apply(context.Background(), "emp-1", leave.ApplyRequest{
		Type:      "casual",
		StartDate: "2025-03-20",
		EndDate:   "2025-03-20",
		Reason:    "errand",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), "mgr-1", leave.ReviewRequest{ID: resp.ID, Action: "approve"})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), "mgr-1", leave.ReviewRequest{ID: resp.ID, Action: "approve"})
	assert.ErrorIs(t, err, leave.ErrLeaveNotPending)
}

func TestCancelOwnPendingOnly(t *testing.T) {
	svc, repo, _ := newLeaveFixture(t)

	resp, err := svc.Apply(context.Background(), "emp-1", leave.ApplyRequest{
		Type:      "casual",
		StartDate: "2025-03-20",
		EndDate:   "2025-03-20",
		Reason:    "errand",
	})
	require.NoError(t, err)

	// Another employee cannot cancel it.
	err = svc.Cancel(context.Background(), "emp-2", resp.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)

	require.NoError(t, svc.Cancel(context.Background(), "emp-1", resp.ID))
	assert.Equal(t, leave.StatusCanceled, repo.leaves[resp.ID].Status)

	// Canceled requests stay canceled.
	err = svc.Cancel(context.Background(), "emp-1", resp.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveNotCancelable)
}
