package ports

import (
	"context"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// EmployeeService validates input before delegating to EmployeeRepository.
// Invalid input fails with domain.ErrInvalidArgument and never reaches the store.
type EmployeeService interface {
	GetAll(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, bool, error)
	Add(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) (matched bool, err error)
	Delete(ctx context.Context, id string) (deleted bool, err error)
	GetInactive(ctx context.Context) ([]domain.Employee, error)
	GetByDepartment(ctx context.Context, department string) ([]domain.Employee, error)
	GetBySalary(ctx context.Context, threshold float64, includeEqual bool) ([]domain.Employee, error)
	GetByName(ctx context.Context, pattern string) ([]domain.Employee, error)
}
