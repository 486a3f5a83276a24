package travel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-hris/meridian/internal/audit"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

const defaultListLimit = 50

// Service implements travel request operations.
type Service struct {
	repo     Repository
	recorder *audit.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires a Service.
func NewService(repo Repository, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger, now: time.Now}
}

func (s *Service) scope(ctx context.Context) (*shared.Scope, error) {
	sc := shared.ScopeFromContext(ctx)
	if sc == nil || sc.TenantID == "" {
		return nil, fmt.Errorf("%w: %s", httpx.ErrUnauthorized, shared.ErrTenantMissing)
	}
	return sc, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequestRequest) (Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Request{}, err
	}

	now := s.now().UTC()
	request := Request{
		ID:            uuid.NewString(),
		TenantID:      sc.TenantID,
		EmployeeID:    req.EmployeeID,
		Destination:   req.Destination,
		Purpose:       req.Purpose,
		DepartsOn:     req.DepartsOn,
		ReturnsOn:     req.ReturnsOn,
		EstimatedCost: req.EstimatedCost,
		Currency:      req.Currency,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return Request{}, fmt.Errorf("create travel request: %w", err)
	}

	if err := s.recorder.Record(ctx, "travel_request", request.ID, "created", map[string]any{
		"employeeId":  request.EmployeeID,
		"destination": request.Destination,
	}); err != nil {
		return Request{}, err
	}
	return request, nil
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Request{}, err
	}
	return s.repo.Get(ctx, sc.TenantID, id)
}

func (s *Service) List(ctx context.Context, filter ListRequestsRequest) ([]Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.List(ctx, sc.TenantID, filter)
}

// Decide moves a pending request to APPROVED or REJECTED.
func (s *Service) Decide(ctx context.Context, id string, req DecideRequestRequest) (Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Request{}, err
	}

	current, err := s.repo.Get(ctx, sc.TenantID, id)
	if err != nil {
		return Request{}, err
	}
	if current.Status != StatusPending {
		return Request{}, fmt.Errorf("%w: request already %s", httpx.ErrValidation, current.Status)
	}
	if err := s.repo.UpdateStatus(ctx, sc.TenantID, id, req.Status); err != nil {
		return Request{}, fmt.Errorf("decide travel request: %w", err)
	}

	if err := s.recorder.Record(ctx, "travel_request", id, "decided", map[string]any{
		"status": map[string]any{"from": current.Status, "to": req.Status},
	}); err != nil {
		return Request{}, err
	}
	current.Status = req.Status
	current.UpdatedAt = s.now().UTC()
	return current, nil
}
