// Package sqlite implements the persistent record store for bibliotek
// on top of an embedded SQLite database.
package sqlite

// Schema DDL. Applied idempotently on every open: the database file is
// the source of truth and must survive restarts.
const (
	createBooks = `CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    publication_year INTEGER NOT NULL,
    price REAL NOT NULL,
    created_at TEXT NOT NULL
);`

	createAuditLog = `CREATE TABLE IF NOT EXISTS audit_log (
    op_id TEXT PRIMARY KEY,
    operation TEXT NOT NULL,
    book_id INTEGER,
    detail TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// schemaStatements lists the DDL in application order.
var schemaStatements = []string{
	createBooks,
	createAuditLog,
}
