package employees

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

// Service implements employee profile and cost split operations.
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

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Employee{}, err
	}

	now := s.now().UTC()
	employee := Employee{
		ID:            uuid.NewString(),
		TenantID:      sc.TenantID,
		GivenName:     req.GivenName,
		FamilyName:    req.FamilyName,
		Email:         req.Email,
		DepartmentID:  req.DepartmentID,
		PositionTitle: req.PositionTitle,
		StartDate:     req.StartDate,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}

	if err := s.recorder.Record(ctx, "employee", employee.ID, "created", map[string]any{
		"email":  employee.Email,
		"status": employee.Status,
	}); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Employee{}, err
	}
	return s.repo.Get(ctx, sc.TenantID, id)
}

func (s *Service) List(ctx context.Context, req ListEmployeesRequest) ([]Employee, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if req.Limit <= 0 {
		req.Limit = defaultListLimit
	}
	return s.repo.List(ctx, sc.TenantID, req)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Employee{}, err
	}

	employee, err := s.repo.Get(ctx, sc.TenantID, id)
	if err != nil {
		return Employee{}, err
	}

	changes := map[string]any{}
	if req.GivenName != nil && *req.GivenName != employee.GivenName {
		changes["givenName"] = map[string]any{"from": employee.GivenName, "to": *req.GivenName}
		employee.GivenName = *req.GivenName
	}
	if req.FamilyName != nil && *req.FamilyName != employee.FamilyName {
		changes["familyName"] = map[string]any{"from": employee.FamilyName, "to": *req.FamilyName}
		employee.FamilyName = *req.FamilyName
	}
	if req.DepartmentID != nil && *req.DepartmentID != employee.DepartmentID {
		changes["departmentId"] = map[string]any{"from": employee.DepartmentID, "to": *req.DepartmentID}
		employee.DepartmentID = *req.DepartmentID
	}
	if req.PositionTitle != nil && *req.PositionTitle != employee.PositionTitle {
		changes["positionTitle"] = map[string]any{"from": employee.PositionTitle, "to": *req.PositionTitle}
		employee.PositionTitle = *req.PositionTitle
	}
	if req.Status != nil && *req.Status != employee.Status {
		changes["status"] = map[string]any{"from": employee.Status, "to": *req.Status}
		employee.Status = *req.Status
	}
	if len(changes) == 0 {
		return employee, nil
	}

	employee.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, employee); err != nil {
		return Employee{}, fmt.Errorf("update employee: %w", err)
	}

	if err := s.recorder.Record(ctx, "employee", employee.ID, "updated", changes); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

// ReplaceCostSplits swaps the full set of cost splits for an employee.
// The new set must validate as a whole before anything is persisted.
func (s *Service) ReplaceCostSplits(ctx context.Context, employeeID string, req ReplaceCostSplitsRequest) ([]CostSplit, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Get(ctx, sc.TenantID, employeeID); err != nil {
		return nil, err
	}
	if err := ValidateCostSplits(req.Splits); err != nil {
		return nil, err
	}

	splits := make([]CostSplit, 0, len(req.Splits))
	for _, input := range req.Splits {
		splits = append(splits, CostSplit{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			TenantID:   sc.TenantID,
			CostCenter: input.CostCenter,
			Percent:    input.Percent,
			From:       input.From,
			To:         input.To,
		})
	}
	if err := s.repo.ReplaceCostSplits(ctx, sc.TenantID, employeeID, splits); err != nil {
		return nil, fmt.Errorf("replace cost splits: %w", err)
	}

	if err := s.recorder.Record(ctx, "employee", employeeID, "cost_splits_replaced", map[string]any{
		"count": len(splits),
	}); err != nil {
		return nil, err
	}
	return splits, nil
}

func (s *Service) ListCostSplits(ctx context.Context, employeeID string) ([]CostSplit, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, sc.TenantID, employeeID); err != nil {
		return nil, err
	}
	return s.repo.ListCostSplits(ctx, sc.TenantID, employeeID)
}
