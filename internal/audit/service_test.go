package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/shared"
)

type stubListRepo struct {
	events    []Event
	gotFilter Filters
	gotTenant string
}

func (s *stubListRepo) List(_ context.Context, tenantID string, filters Filters) ([]Event, error) {
	s.gotTenant = tenantID
	s.gotFilter = filters
	if filters.Limit < len(s.events) {
		return s.events[:filters.Limit], nil
	}
	return s.events, nil
}

func eventsWithTimes(n int) []Event {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, Event{
			ID:        "evt",
			TenantID:  "tenant-1",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return events
}

func TestListDefaultsLimit(t *testing.T) {
	repo := &stubListRepo{}
	svc := NewService(repo, nil)

	_, err := svc.List(scopedContext(&shared.Scope{TenantID: "tenant-1"}), Filters{})
	require.NoError(t, err)
	require.Equal(t, 25, repo.gotFilter.Limit)
	require.Equal(t, "tenant-1", repo.gotTenant)
}

func TestListClampsLimitToMax(t *testing.T) {
	repo := &stubListRepo{}
	svc := NewService(repo, nil)

	_, err := svc.List(scopedContext(&shared.Scope{TenantID: "tenant-1"}), Filters{Limit: 10000})
	require.NoError(t, err)
	require.Equal(t, 500, repo.gotFilter.Limit)
}

func TestListWithoutTenantReturnsEmpty(t *testing.T) {
	repo := &stubListRepo{events: eventsWithTimes(3)}
	svc := NewService(repo, nil)

	result, err := svc.List(context.Background(), Filters{})
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Nil(t, result.NextCursor)
	require.Empty(t, repo.gotTenant)
}

func TestListSetsNextCursorOnFullPage(t *testing.T) {
	repo := &stubListRepo{events: eventsWithTimes(5)}
	svc := NewService(repo, nil)

	result, err := svc.List(scopedContext(&shared.Scope{TenantID: "tenant-1"}), Filters{Limit: 5})
	require.NoError(t, err)
	require.Len(t, result.Items, 5)
	require.NotNil(t, result.NextCursor)
	require.Equal(t, result.Items[4].CreatedAt, *result.NextCursor)
}

func TestListNoCursorOnPartialPage(t *testing.T) {
	repo := &stubListRepo{events: eventsWithTimes(2)}
	svc := NewService(repo, nil)

	result, err := svc.List(scopedContext(&shared.Scope{TenantID: "tenant-1"}), Filters{Limit: 5})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.Nil(t, result.NextCursor)
}
