package ports

import (
	"context"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// EmployeeRepository is the Data Store Adapter contract for employees.
// Store failures surface as *domain.StoreError. "No match" is never an error:
// FindByID reports it through found, Replace through matched and Delete
// through a zero count.
type EmployeeRepository interface {
	FindAll(ctx context.Context) ([]domain.Employee, error)
	FindByID(ctx context.Context, id string) (emp *domain.Employee, found bool, err error)
	// Insert persists e with a store-assigned id and returns the stored entity.
	Insert(ctx context.Context, e domain.Employee) (*domain.Employee, error)
	Replace(ctx context.Context, id string, e domain.Employee) (matched bool, err error)
	Delete(ctx context.Context, id string) (deleted int64, err error)
	FindBy(ctx context.Context, p domain.Predicate) ([]domain.Employee, error)
}
