package employees

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/audit"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

type stubEmployeeRepo struct {
	employees map[string]Employee
	splits    []CostSplit
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: map[string]Employee{}}
}

func (s *stubEmployeeRepo) List(_ context.Context, tenantID string, _ ListEmployeesRequest) ([]Employee, error) {
	var out []Employee
	for _, employee := range s.employees {
		if employee.TenantID == tenantID {
			out = append(out, employee)
		}
	}
	return out, nil
}

func (s *stubEmployeeRepo) Get(_ context.Context, tenantID, id string) (Employee, error) {
	employee, ok := s.employees[id]
	if !ok || employee.TenantID != tenantID {
		return Employee{}, httpx.ErrNotFound
	}
	return employee, nil
}

func (s *stubEmployeeRepo) Create(_ context.Context, employee Employee) error {
	s.employees[employee.ID] = employee
	return nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, employee Employee) error {
	s.employees[employee.ID] = employee
	return nil
}

func (s *stubEmployeeRepo) ReplaceCostSplits(_ context.Context, _, _ string, splits []CostSplit) error {
	s.splits = splits
	return nil
}

func (s *stubEmployeeRepo) ListCostSplits(_ context.Context, _, _ string) ([]CostSplit, error) {
	return s.splits, nil
}

type employeeAuditStore struct {
	err    error
	events []audit.Event
}

func (s *employeeAuditStore) Insert(_ context.Context, event audit.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func employeeContext() context.Context {
	sc := &shared.Scope{TenantID: "tenant-1", ActorID: "actor-1"}
	return shared.ContextWithScope(context.Background(), sc)
}

func employeeCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		GivenName:  "Mira",
		FamilyName: "Okafor",
		Email:      "mira.okafor@example.com",
		StartDate:  time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateEmployeeRecordsAudit(t *testing.T) {
	repo := newStubEmployeeRepo()
	sink := &employeeAuditStore{}
	svc := NewService(repo, audit.NewRecorder(sink, nil, nil), nil)

	employee, err := svc.Create(employeeContext(), employeeCreateRequest())
	require.NoError(t, err)
	require.Equal(t, StatusActive, employee.Status)
	require.Len(t, sink.events, 1)
	require.Equal(t, "employee", sink.events[0].Entity)
	require.Equal(t, "created", sink.events[0].Action)
}

func TestCreateEmployeeFailsWhenAuditStoreFails(t *testing.T) {
	repo := newStubEmployeeRepo()
	storeDown := errors.New("store down")
	svc := NewService(repo, audit.NewRecorder(&employeeAuditStore{err: storeDown}, nil, nil), nil)

	_, err := svc.Create(employeeContext(), employeeCreateRequest())
	require.ErrorIs(t, err, storeDown)
}

func TestReplaceCostSplitsFailsWhenAuditStoreFails(t *testing.T) {
	repo := newStubEmployeeRepo()
	repo.employees["e1"] = Employee{ID: "e1", TenantID: "tenant-1"}
	storeDown := errors.New("store down")
	svc := NewService(repo, audit.NewRecorder(&employeeAuditStore{err: storeDown}, nil, nil), nil)

	_, err := svc.ReplaceCostSplits(employeeContext(), "e1", ReplaceCostSplitsRequest{
		Splits: []CostSplitInput{{
			CostCenter: "OPS",
			Percent:    100,
			From:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	})
	require.ErrorIs(t, err, storeDown)
}
