package leave

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

// Service implements leave request and balance operations.
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

func (s *Service) CreateRequest(ctx context.Context, req CreateRequestRequest) (Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Request{}, err
	}

	now := s.now().UTC()
	request := Request{
		ID:         uuid.NewString(),
		TenantID:   sc.TenantID,
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		From:       req.From,
		To:         req.To,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return Request{}, fmt.Errorf("create leave request: %w", err)
	}

	if err := s.recorder.Record(ctx, "leave_request", request.ID, "created", map[string]any{
		"employeeId": request.EmployeeID,
		"type":       request.Type,
	}); err != nil {
		return Request{}, err
	}
	return request, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Request{}, err
	}
	return s.repo.GetRequest(ctx, sc.TenantID, id)
}

func (s *Service) ListRequests(ctx context.Context, filter ListRequestsRequest) ([]Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.ListRequests(ctx, sc.TenantID, filter)
}

// Decide moves a pending request to APPROVED or REJECTED.
func (s *Service) Decide(ctx context.Context, id string, req DecideRequestRequest) (Request, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Request{}, err
	}

	current, err := s.repo.GetRequest(ctx, sc.TenantID, id)
	if err != nil {
		return Request{}, err
	}
	if current.Status != StatusPending {
		return Request{}, fmt.Errorf("%w: request already %s", httpx.ErrValidation, current.Status)
	}
	if err := s.repo.UpdateStatus(ctx, sc.TenantID, id, req.Status); err != nil {
		return Request{}, fmt.Errorf("decide leave request: %w", err)
	}

	if err := s.recorder.Record(ctx, "leave_request", id, "decided", map[string]any{
		"status": map[string]any{"from": current.Status, "to": req.Status},
	}); err != nil {
		return Request{}, err
	}
	current.Status = req.Status
	current.UpdatedAt = s.now().UTC()
	return current, nil
}

func (s *Service) Balances(ctx context.Context, employeeID string) ([]Balance, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Balances(ctx, sc.TenantID, employeeID)
}
