package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-hris/meridian/internal/observability"
	"github.com/meridian-hris/meridian/internal/shared"
)

// Store persists audit events.
type Store interface {
	Insert(ctx context.Context, event Event) error
}

// Recorder writes audit events keyed by the ambient request scope.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewRecorder constructs a Recorder. metrics may be nil.
func NewRecorder(store Store, logger *slog.Logger, metrics *observability.Metrics) *Recorder {
	return &Recorder{store: store, logger: logger, metrics: metrics, now: time.Now}
}

// Record persists one immutable event describing "who changed what, how".
// Tenant and actor are read from the request scope. A missing tenant is a
// deliberate no-op: the event is dropped with a warning so that an absent
// audit trail never blocks the primary business operation. Store failures
// propagate to the caller.
func (r *Recorder) Record(ctx context.Context, entity, entityID, action string, changes map[string]any) error {
	sc := shared.ScopeFromContext(ctx)
	if sc == nil || sc.TenantID == "" {
		if r.logger != nil {
			r.logger.Warn("attempted to record audit event without tenant",
				slog.String("entity", entity),
				slog.String("action", action))
		}
		r.metrics.CountAuditSkip()
		return nil
	}

	event := Event{
		ID:       uuid.NewString(),
		TenantID: sc.TenantID,
		ActorID:  sc.ActorID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Changes:  changes,
		Metadata: Metadata{
			IP:        sc.IP,
			UserAgent: sc.UserAgent,
		},
		CreatedAt: r.now().UTC(),
	}
	if err := r.store.Insert(ctx, event); err != nil {
		return err
	}
	r.metrics.CountAuditWrite()
	return nil
}
