package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/empmanagement/employee-api/internal/core/domain"
	"github.com/empmanagement/employee-api/internal/core/ports"
)

// EmployeeService validates input and delegates to the store adapter.
type EmployeeService struct {
	repo   ports.EmployeeRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

// NewEmployeeService wires the service. audit may be nil, in which case no
// audit trail is recorded.
func NewEmployeeService(repo ports.EmployeeRepository, audit ports.AuditRecorder, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, audit: audit, logger: logger, now: time.Now}
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.FindAll(ctx)
}

func (s *EmployeeService) GetByID(ctx context.Context, id string) (*domain.Employee, bool, error) {
	if err := requireText("id", id); err != nil {
		return nil, false, err
	}
	return s.repo.FindByID(ctx, id)
}

// Add persists e under a freshly assigned id; any client-supplied id is dropped.
func (s *EmployeeService) Add(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: employee is required", domain.ErrInvalidArgument)
	}

	in := *e
	in.ID = ""
	created, err := s.repo.Insert(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create employee")
		return nil, err
	}

	s.logger.Info().Str("employee_id", created.ID).Str("department", created.Department).Msg("employee created")
	s.record(ctx, created.ID, domain.AuditCreated)
	return created, nil
}

// Update replaces the stored employee identified by e.ID. matched is false
// when no employee has that id.
func (s *EmployeeService) Update(ctx context.Context, e *domain.Employee) (bool, error) {
	if e == nil {
		return false, fmt.Errorf("%w: employee is required", domain.ErrInvalidArgument)
	}
	if err := requireText("id", e.ID); err != nil {
		return false, err
	}

	matched, err := s.repo.Replace(ctx, e.ID, *e)
	if err != nil {
		s.logger.Error().Err(err).Str("employee_id", e.ID).Msg("failed to update employee")
		return false, err
	}
	if !matched {
		s.logger.Warn().Str("employee_id", e.ID).Msg("update matched no employee")
		return false, nil
	}

	s.record(ctx, e.ID, domain.AuditUpdated)
	return true, nil
}

// Delete removes the employee with id. deleted is false when nothing matched.
func (s *EmployeeService) Delete(ctx context.Context, id string) (bool, error) {
	if err := requireText("id", id); err != nil {
		return false, err
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("employee_id", id).Msg("failed to delete employee")
		return false, err
	}
	if n == 0 {
		s.logger.Warn().Str("employee_id", id).Msg("delete matched no employee")
		return false, nil
	}

	s.record(ctx, id, domain.AuditDeleted)
	return true, nil
}

func (s *EmployeeService) GetInactive(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.FindBy(ctx, domain.ByActive(false))
}

func (s *EmployeeService) GetByDepartment(ctx context.Context, department string) ([]domain.Employee, error) {
	if err := requireText("department", department); err != nil {
		return nil, err
	}
	return s.repo.FindBy(ctx, domain.ByDepartment(department))
}

// GetBySalary keeps the established flag semantics: includeEqual=true selects
// salary > threshold, includeEqual=false selects salary <= threshold.
func (s *EmployeeService) GetBySalary(ctx context.Context, threshold float64, includeEqual bool) ([]domain.Employee, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: salary must not be negative", domain.ErrInvalidArgument)
	}
	return s.repo.FindBy(ctx, domain.BySalary(threshold, includeEqual))
}

func (s *EmployeeService) GetByName(ctx context.Context, pattern string) ([]domain.Employee, error) {
	if err := requireText("name", pattern); err != nil {
		return nil, err
	}
	return s.repo.FindBy(ctx, domain.ByNameContains(pattern))
}

func (s *EmployeeService) record(ctx context.Context, employeeID string, action domain.AuditAction) {
	if s.audit == nil {
		return
	}
	actor := ""
	if c, ok := domain.ClaimsFromContext(ctx); ok {
		actor = c.Username
	}
	s.audit.Record(domain.AuditEvent{
		EmployeeID: employeeID,
		Action:     action,
		Actor:      actor,
		At:         s.now().UTC(),
	})
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidArgument, field)
	}
	return nil
}
