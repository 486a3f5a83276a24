package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/meridian-hris/meridian/internal/shared"
)

const (
	defaultListLimit = 25
	maxListLimit     = 500
)

// Filters narrows the audit event listing.
type Filters struct {
	Entity   string
	EntityID string
	Action   string
	From     time.Time
	To       time.Time
	// Cursor excludes events at or after the given creation time; pages walk
	// backwards from newest to oldest.
	Cursor time.Time
	Limit  int
}

// Repository reads persisted audit events.
type Repository interface {
	List(ctx context.Context, tenantID string, filters Filters) ([]Event, error)
}

// Result wraps one page of events with the cursor for the next page.
type Result struct {
	Items      []Event    `json:"items"`
	NextCursor *time.Time `json:"nextCursor,omitempty"`
}

// Service coordinates the audit read path.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs the audit query service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns tenant-scoped events newest first. A request without tenant
// context yields an empty result with a warning, mirroring the recorder's
// soft-failure policy.
func (s *Service) List(ctx context.Context, filters Filters) (Result, error) {
	sc := shared.ScopeFromContext(ctx)
	if sc == nil || sc.TenantID == "" {
		if s.logger != nil {
			s.logger.Warn("attempted to list audit events without tenant")
		}
		return Result{Items: []Event{}}, nil
	}

	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}
	if filters.Limit > maxListLimit {
		filters.Limit = maxListLimit
	}

	events, err := s.repo.List(ctx, sc.TenantID, filters)
	if err != nil {
		return Result{}, err
	}

	result := Result{Items: events}
	if len(events) == filters.Limit {
		last := events[len(events)-1].CreatedAt
		result.NextCursor = &last
	}
	return result, nil
}
