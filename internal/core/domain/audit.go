package domain

import "time"

// AuditAction identifies the mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditDeleted AuditAction = "deleted"
)

// AuditEvent records a single employee mutation.
type AuditEvent struct {
	EmployeeID string
	Action     AuditAction
	Actor      string
	At         time.Time
}
