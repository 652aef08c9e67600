package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

// recordAudit appends one audit row inside the mutation's transaction,
// so the trail and the collection can never disagree.
func recordAudit(tx *sql.Tx, operation string, bookID int64, detail string) error {
	opID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating operation id: %w", err)
	}
	_, err = tx.Exec(
		"INSERT INTO audit_log (op_id, operation, book_id, detail, created_at) VALUES (?, ?, ?, ?, ?)",
		opID.String(), operation, bookID, detail, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}
	return nil
}

// AuditTrail returns the most recent audit entries, newest first.
// UUID v7 op IDs are time-ordered, so they double as the sort key.
// Engine failures are logged and yield an empty result.
func (s *Store) AuditTrail(limit int) []types.AuditEntry {
	if s.db == nil {
		return nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT op_id, operation, book_id, detail, created_at FROM audit_log ORDER BY op_id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		s.logger.Error("audit query failed", "error", err)
		return nil
	}
	defer rows.Close()

	var entries []types.AuditEntry
	for rows.Next() {
		var entry types.AuditEntry
		var createdAt string
		if err := rows.Scan(&entry.OpID, &entry.Operation, &entry.BookID, &entry.Detail, &createdAt); err != nil {
			s.logger.Error("audit scan failed", "error", err)
			return nil
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("audit query failed", "error", err)
		return nil
	}
	return entries
}
