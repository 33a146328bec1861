package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubEmployeeRepo struct {
	byID    map[string]domain.Employee
	nextID  int
	calls   int
	lastPre domain.Predicate
	err     error // if set, every call returns this error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byID: make(map[string]domain.Employee)}
}

func (r *stubEmployeeRepo) FindAll(_ context.Context) ([]domain.Employee, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, bool, error) {
	r.calls++
	if r.err != nil {
		return nil, false, r.err
	}
	e, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &e, true, nil
}

func (r *stubEmployeeRepo) Insert(_ context.Context, e domain.Employee) (*domain.Employee, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if e.ID != "" {
		return nil, errors.New("insert called with client id")
	}
	r.nextID++
	e.ID = "emp-" + strconv.Itoa(r.nextID)
	r.byID[e.ID] = e
	return &e, nil
}

func (r *stubEmployeeRepo) Replace(_ context.Context, id string, e domain.Employee) (bool, error) {
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	e.ID = id
	r.byID[id] = e
	return true, nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) (int64, error) {
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

// FindBy evaluates the predicate the same way the Mongo query would.
func (r *stubEmployeeRepo) FindBy(_ context.Context, p domain.Predicate) ([]domain.Employee, error) {
	r.calls++
	r.lastPre = p
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Employee
	for _, e := range r.byID {
		if matches(e, p) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matches(e domain.Employee, p domain.Predicate) bool {
	switch p.Field {
	case domain.FieldDepartment:
		return e.Department == p.Value.(string)
	case domain.FieldIsActive:
		return e.IsActive == p.Value.(bool)
	case domain.FieldSalary:
		v := p.Value.(float64)
		if p.Op == domain.CompareGt {
			return e.Salary > v
		}
		return e.Salary <= v
	case domain.FieldName:
		return strings.Contains(strings.ToLower(e.Name), strings.ToLower(p.Value.(string)))
	}
	return false
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(e domain.AuditEvent) { a.events = append(a.events, e) }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func sampleEmployee(name, dept string, salary float64, active bool) *domain.Employee {
	return &domain.Employee{
		Name:          name,
		Department:    dept,
		Email:         strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		DateOfJoining: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		JobTitle:      "Engineer",
		Salary:        salary,
		IsActive:      active,
	}
}

func seeded(t *testing.T) (*EmployeeService, *stubEmployeeRepo) {
	t.Helper()
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, nil, discardLogger)
	for _, e := range []*domain.Employee{
		sampleEmployee("John Doe", "IT", 50000, true),
		sampleEmployee("john smith", "HR", 60000, false),
		sampleEmployee("Jane Roe", "IT", 45000, true),
	} {
		if _, err := svc.Add(context.Background(), e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	repo.calls = 0
	return svc, repo
}

func names(emps []domain.Employee) map[string]bool {
	out := make(map[string]bool, len(emps))
	for _, e := range emps {
		out[e.Name] = true
	}
	return out
}

// ---------------------------------------------------------------------------
// CRUD tests
// ---------------------------------------------------------------------------

func TestEmployeeService_Add_AssignsStoreID(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, nil, discardLogger)

	in := sampleEmployee("John Doe", "IT", 50000, true)
	in.ID = "client-chosen"

	created, err := svc.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" || created.ID == "client-chosen" {
		t.Fatalf("expected store-assigned id, got %q", created.ID)
	}
	if in.ID != "client-chosen" {
		t.Errorf("caller's employee must not be mutated, id now %q", in.ID)
	}

	got, found, err := svc.GetByID(context.Background(), created.ID)
	if err != nil || !found {
		t.Fatalf("GetByID: found=%v err=%v", found, err)
	}
	want := *in
	want.ID = created.ID
	if *got != want {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *got, want)
	}
}

func TestEmployeeService_Add_Nil(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, nil, discardLogger)

	if _, err := svc.Add(context.Background(), nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if repo.calls != 0 {
		t.Errorf("repository must not be called, got %d calls", repo.calls)
	}
}

func TestEmployeeService_GetByID_Absent(t *testing.T) {
	svc, _ := seeded(t)

	emp, found, err := svc.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("absent id must not be an error: %v", err)
	}
	if found || emp != nil {
		t.Errorf("expected not found, got %+v", emp)
	}
}

func TestEmployeeService_Update(t *testing.T) {
	svc, repo := seeded(t)
	all, _ := svc.GetAll(context.Background())
	target := all[0]
	target.JobTitle = "Lead"

	matched, err := svc.Update(context.Background(), &target)
	if err != nil || !matched {
		t.Fatalf("Update: matched=%v err=%v", matched, err)
	}
	if repo.byID[target.ID].JobTitle != "Lead" {
		t.Errorf("update not persisted")
	}
}

func TestEmployeeService_Update_NotMatched(t *testing.T) {
	svc, _ := seeded(t)
	e := sampleEmployee("Ghost", "IT", 1, true)
	e.ID = "does-not-exist"

	matched, err := svc.Update(context.Background(), e)
	if err != nil {
		t.Fatalf("not matched must not be an error: %v", err)
	}
	if matched {
		t.Error("expected matched=false")
	}
}

func TestEmployeeService_Delete_Idempotent(t *testing.T) {
	svc, _ := seeded(t)
	all, _ := svc.GetAll(context.Background())
	id := all[0].ID

	deleted, err := svc.Delete(context.Background(), id)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = svc.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
	if deleted {
		t.Error("second delete must report nothing deleted")
	}
}

func TestEmployeeService_RepoErrorPropagates(t *testing.T) {
	repo := newStubEmployeeRepo()
	repo.err = domain.NewStoreError("find employees", errors.New("connection refused"))
	svc := NewEmployeeService(repo, nil, discardLogger)

	_, err := svc.GetAll(context.Background())
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := svc.Add(context.Background(), sampleEmployee("A", "B", 1, true)); !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected store error from Add, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Validation happens before any store call
// ---------------------------------------------------------------------------

func TestEmployeeService_Validation_NoStoreCall(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		call func(s *EmployeeService) error
	}{
		{"GetByID empty", func(s *EmployeeService) error { _, _, err := s.GetByID(ctx, ""); return err }},
		{"GetByID blank", func(s *EmployeeService) error { _, _, err := s.GetByID(ctx, "   "); return err }},
		{"Update nil", func(s *EmployeeService) error { _, err := s.Update(ctx, nil); return err }},
		{"Update empty id", func(s *EmployeeService) error {
			_, err := s.Update(ctx, sampleEmployee("A", "B", 1, true))
			return err
		}},
		{"Delete empty", func(s *EmployeeService) error { _, err := s.Delete(ctx, ""); return err }},
		{"GetByDepartment empty", func(s *EmployeeService) error { _, err := s.GetByDepartment(ctx, ""); return err }},
		{"GetBySalary negative", func(s *EmployeeService) error { _, err := s.GetBySalary(ctx, -1, true); return err }},
		{"GetByName empty", func(s *EmployeeService) error { _, err := s.GetByName(ctx, ""); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubEmployeeRepo()
			svc := NewEmployeeService(repo, nil, discardLogger)

			if err := tc.call(svc); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if repo.calls != 0 {
				t.Errorf("repository called %d times", repo.calls)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Predicate queries
// ---------------------------------------------------------------------------

func TestEmployeeService_GetBySalary_FlagSemantics(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	above, err := svc.GetBySalary(ctx, 50000, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(above); len(got) != 1 || !got["john smith"] {
		t.Errorf("includeEqual=true must select salary > 50000, got %v", got)
	}

	atOrBelow, err := svc.GetBySalary(ctx, 50000, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(atOrBelow); len(got) != 2 || !got["John Doe"] || !got["Jane Roe"] {
		t.Errorf("includeEqual=false must select salary <= 50000, got %v", got)
	}
}

func TestEmployeeService_GetByName_CaseInsensitive(t *testing.T) {
	svc, repo := seeded(t)

	got, err := svc.GetByName(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := names(got)
	if len(n) != 2 || !n["John Doe"] || !n["john smith"] {
		t.Errorf("expected both johns, got %v", n)
	}
	if repo.lastPre.Op != domain.CompareContainsCI {
		t.Errorf("expected contains_ci predicate, got %s", repo.lastPre.Op)
	}
}

func TestEmployeeService_GetByDepartment(t *testing.T) {
	svc, _ := seeded(t)

	got, err := svc.GetByDepartment(context.Background(), "IT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 IT employees, got %d", len(got))
	}
}

func TestEmployeeService_GetInactive(t *testing.T) {
	svc, repo := seeded(t)

	got, err := svc.GetInactive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "john smith" {
		t.Errorf("unexpected inactive set: %+v", got)
	}
	if repo.lastPre != domain.ByActive(false) {
		t.Errorf("unexpected predicate: %+v", repo.lastPre)
	}
}

// ---------------------------------------------------------------------------
// Audit trail
// ---------------------------------------------------------------------------

func TestEmployeeService_RecordsAudit(t *testing.T) {
	repo := newStubEmployeeRepo()
	audit := &stubAudit{}
	svc := NewEmployeeService(repo, audit, discardLogger)
	ctx := domain.ContextWithClaims(context.Background(), &domain.Claims{Username: "alice", Role: domain.RoleAdmin})

	created, _ := svc.Add(ctx, sampleEmployee("A", "IT", 1, true))
	_, _ = svc.Update(ctx, created)
	_, _ = svc.Delete(ctx, created.ID)
	_, _ = svc.Delete(ctx, created.ID) // nothing deleted: no event

	want := []domain.AuditAction{domain.AuditCreated, domain.AuditUpdated, domain.AuditDeleted}
	if len(audit.events) != len(want) {
		t.Fatalf("expected %d audit events, got %d", len(want), len(audit.events))
	}
	for i, e := range audit.events {
		if e.Action != want[i] || e.EmployeeID != created.ID || e.Actor != "alice" {
			t.Errorf("event %d: %+v", i, e)
		}
	}
}
