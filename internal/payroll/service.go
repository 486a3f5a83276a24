package payroll

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

// Service implements pay run and payslip operations.
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

func (s *Service) CreateRun(ctx context.Context, req CreateRunRequest) (Run, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Run{}, err
	}

	now := s.now().UTC()
	run := Run{
		ID:          uuid.NewString(),
		TenantID:    sc.TenantID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		PayDate:     req.PayDate,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return Run{}, fmt.Errorf("create pay run: %w", err)
	}

	if err := s.recorder.Record(ctx, "payroll_run", run.ID, "created", map[string]any{
		"periodStart": run.PeriodStart.Format("2006-01-02"),
		"periodEnd":   run.PeriodEnd.Format("2006-01-02"),
	}); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Service) GetRun(ctx context.Context, id string) (Run, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Run{}, err
	}
	return s.repo.GetRun(ctx, sc.TenantID, id)
}

func (s *Service) ListRuns(ctx context.Context, filter ListRunsRequest) ([]Run, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.ListRuns(ctx, sc.TenantID, filter)
}

func (s *Service) ListPayslips(ctx context.Context, runID string) ([]Payslip, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetRun(ctx, sc.TenantID, runID); err != nil {
		return nil, err
	}
	return s.repo.ListPayslips(ctx, sc.TenantID, runID)
}
