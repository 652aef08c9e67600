package types

import "time"

// Audit operation names recorded by the store on every mutation.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// AuditEntry is one row of the mutation audit trail. OpID is a UUID v7,
// so entries sort by creation time.
type AuditEntry struct {
	OpID      string    `json:"op_id"`
	Operation string    `json:"operation"`
	BookID    int64     `json:"book_id"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
