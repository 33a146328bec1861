package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// AuditRepository appends employee mutations to the audit collection.
type AuditRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewAuditRepository(db *mongo.Database, collection string, timeout time.Duration) *AuditRepository {
	return &AuditRepository{col: db.Collection(collection), timeout: operationTimeout(timeout)}
}

// InsertEvent persists a single audit record.
func (r *AuditRepository) InsertEvent(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := bson.M{
		"employeeId":  event.EmployeeID,
		"action":      string(event.Action),
		"at":          event.At.UTC(),
		"processedAt": time.Now().UTC(),
	}
	if event.Actor != "" {
		doc["actor"] = event.Actor
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.NewStoreError("insert audit event", err)
	}
	return nil
}
