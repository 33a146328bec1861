package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// EmployeeRepository implements ports.EmployeeRepository using MongoDB.
type EmployeeRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

// NewEmployeeRepository binds the repository to a collection. timeout bounds
// each call; zero falls back to defaultTimeout.
func NewEmployeeRepository(db *mongo.Database, collection string, timeout time.Duration) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collection), timeout: operationTimeout(timeout)}
}

type employeeDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"Name"`
	Department    string             `bson:"Department"`
	Email         string             `bson:"Email"`
	DateOfJoining time.Time          `bson:"DateOfJoining"`
	JobTitle      string             `bson:"JobTitle"`
	Salary        float64            `bson:"Salary"`
	IsActive      bool               `bson:"IsActive"`
}

func toEmployeeDocument(e domain.Employee) employeeDocument {
	return employeeDocument{
		Name:          e.Name,
		Department:    e.Department,
		Email:         e.Email,
		DateOfJoining: e.DateOfJoining.UTC(),
		JobTitle:      e.JobTitle,
		Salary:        e.Salary,
		IsActive:      e.IsActive,
	}
}

func (d employeeDocument) toDomain() domain.Employee {
	return domain.Employee{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Department:    d.Department,
		Email:         d.Email,
		DateOfJoining: d.DateOfJoining.UTC(),
		JobTitle:      d.JobTitle,
		Salary:        d.Salary,
		IsActive:      d.IsActive,
	}
}

// FindAll returns every employee in store order.
func (r *EmployeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	return r.find(ctx, "find employees", bson.M{})
}

// FindByID looks an employee up by id. found is false when nothing matches.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, bool, error) {
	filter, ok := idFilter(id)
	if !ok {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc employeeDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, domain.NewStoreError("find employee", err)
	}
	e := doc.toDomain()
	return &e, true, nil
}

// Insert stores e under a new ObjectID and returns it with the id populated.
func (r *EmployeeRepository) Insert(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toEmployeeDocument(e)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, domain.NewStoreError("insert employee", err)
	}
	created := doc.toDomain()
	return &created, nil
}

// Replace overwrites the whole document with the given id.
func (r *EmployeeRepository) Replace(ctx context.Context, id string, e domain.Employee) (bool, error) {
	filter, ok := idFilter(id)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, filter, toEmployeeDocument(e))
	if err != nil {
		return false, domain.NewStoreError("replace employee", err)
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the document with the given id and reports how many went.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) (int64, error) {
	filter, ok := idFilter(id)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return 0, domain.NewStoreError("delete employee", err)
	}
	return res.DeletedCount, nil
}

// FindBy returns the employees matching a single-field predicate.
func (r *EmployeeRepository) FindBy(ctx context.Context, p domain.Predicate) ([]domain.Employee, error) {
	filter, err := predicateFilter(p)
	if err != nil {
		return nil, domain.NewStoreError("build employee filter", err)
	}
	return r.find(ctx, "find employees by "+string(p.Field), filter)
}

func (r *EmployeeRepository) find(ctx context.Context, op string, filter bson.M) ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}

	var docs []employeeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError(op, err)
	}

	out := make([]domain.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing the predicate queries.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: fieldDepartment, Value: 1}}},
		{Keys: bson.D{{Key: fieldSalary, Value: 1}}},
		{Keys: bson.D{{Key: fieldIsActive, Value: 1}}},
		{Keys: bson.D{{Key: fieldName, Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
