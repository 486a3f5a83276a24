package rosters

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

// Service implements roster and shift operations.
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

func (s *Service) Create(ctx context.Context, req CreateRosterRequest) (Roster, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Roster{}, err
	}

	now := s.now().UTC()
	roster := Roster{
		ID:        uuid.NewString(),
		TenantID:  sc.TenantID,
		Name:      req.Name,
		StartsOn:  req.StartsOn,
		EndsOn:    req.EndsOn,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, roster); err != nil {
		return Roster{}, fmt.Errorf("create roster: %w", err)
	}

	if err := s.recorder.Record(ctx, "roster", roster.ID, "created", map[string]any{
		"name": roster.Name,
	}); err != nil {
		return Roster{}, err
	}
	return roster, nil
}

func (s *Service) Get(ctx context.Context, id string) (Roster, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Roster{}, err
	}
	return s.repo.Get(ctx, sc.TenantID, id)
}

func (s *Service) List(ctx context.Context, req ListRostersRequest) ([]Roster, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		req.Limit = defaultListLimit
	}
	return s.repo.List(ctx, sc.TenantID, req.Limit, req.Offset)
}

// Generate expands the rotation pattern into shifts and stores them as the
// roster's full shift set.
func (s *Service) Generate(ctx context.Context, rosterID string, req GenerateShiftsRequest) ([]Shift, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Get(ctx, sc.TenantID, rosterID); err != nil {
		return nil, err
	}
	shifts, err := GenerateShifts(ctx, rosterID, sc.TenantID, req.Pattern, req.EmployeeIDs, req.From, req.Days)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceShifts(ctx, sc.TenantID, rosterID, shifts); err != nil {
		return nil, fmt.Errorf("store generated shifts: %w", err)
	}

	if err := s.recorder.Record(ctx, "roster", rosterID, "shifts_generated", map[string]any{
		"employees": len(req.EmployeeIDs),
		"shifts":    len(shifts),
	}); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (s *Service) ListShifts(ctx context.Context, rosterID string) ([]Shift, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, sc.TenantID, rosterID); err != nil {
		return nil, err
	}
	return s.repo.ListShifts(ctx, sc.TenantID, rosterID)
}
