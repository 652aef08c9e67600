package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

// Store owns the persistent book collection. Writes propagate engine
// failures; read-type queries degrade to empty results with a log line,
// so a corrupted query never takes the interactive session down.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (or creates) the store at cfg.DatabasePath() and applies
// the schema. The database stays in rollback-journal mode so the whole
// store lives in a single file that snapshots can copy directly.
func Open(cfg types.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	path := cfg.DatabasePath()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	logger.Info("store opened", "path", path)
	return &Store{db: db, path: path, logger: logger}, nil
}

// Close releases the underlying database. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the location of the live database file.
func (s *Store) Path() string {
	return s.path
}

// Add persists a new book, assigning its ID and creation timestamp.
// Engine failures propagate: silent data loss on creation is not an
// option. The returned book has ID and CreatedAt populated.
func (s *Store) Add(book *types.Book) (*types.Book, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}

	book.CreatedAt = time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO books (title, author, publication_year, price, created_at) VALUES (?, ?, ?, ?, ?)",
		book.Title, book.Author, book.PublicationYear, book.Price,
		book.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading assigned id: %w", err)
	}
	book.ID = id

	if err := recordAudit(tx, types.OpAdd, id, fmt.Sprintf("added %q by %q", book.Title, book.Author)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing book: %w", err)
	}

	s.logger.Info("book added", "id", id, "title", book.Title)
	return book, nil
}

// Get looks a book up by ID. Absence is reported as types.ErrNotFound,
// a normal outcome. Engine-level read failures are logged and folded
// into the same not-found result.
func (s *Store) Get(id int64) (*types.Book, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}

	row := s.db.QueryRow(
		"SELECT id, title, author, publication_year, price, created_at FROM books WHERE id = ?",
		id,
	)
	book, err := hydrateBook(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("get failed", "id", id, "error", err)
		}
		return nil, types.ErrNotFound
	}
	return book, nil
}

// ListAll returns every book ordered by ID ascending. Engine failures
// are logged and yield an empty result.
func (s *Store) ListAll() []*types.Book {
	return s.queryBooks("SELECT id, title, author, publication_year, price, created_at FROM books ORDER BY id")
}

// SearchByAuthor returns books whose author contains the given text,
// case-insensitively.
func (s *Store) SearchByAuthor(author string) []*types.Book {
	pattern := "%" + strings.ToUpper(author) + "%"
	return s.queryBooks(
		"SELECT id, title, author, publication_year, price, created_at FROM books WHERE UPPER(author) LIKE ? ORDER BY id",
		pattern,
	)
}

// Search returns books whose title or author contains the given text,
// case-insensitively.
func (s *Store) Search(query string) []*types.Book {
	pattern := "%" + strings.ToUpper(query) + "%"
	return s.queryBooks(
		"SELECT id, title, author, publication_year, price, created_at FROM books WHERE UPPER(title) LIKE ? OR UPPER(author) LIKE ? ORDER BY id",
		pattern, pattern,
	)
}

// Update applies only the fields present in the patch, in a single
// statement so the row is never left half-updated. Returns false when
// the ID does not exist. Update does not validate; business-rule
// checking happens before persistence.
func (s *Store) Update(id int64, patch types.BookPatch) (bool, error) {
	if s.db == nil {
		return false, types.ErrStoreClosed
	}
	if patch.IsEmpty() {
		return false, nil
	}

	var clauses []string
	var args []any
	if patch.Title != nil {
		clauses = append(clauses, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Author != nil {
		clauses = append(clauses, "author = ?")
		args = append(args, *patch.Author)
	}
	if patch.PublicationYear != nil {
		clauses = append(clauses, "publication_year = ?")
		args = append(args, *patch.PublicationYear)
	}
	if patch.Price != nil {
		clauses = append(clauses, "price = ?")
		args = append(args, *patch.Price)
	}
	args = append(args, id)

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE books SET "+strings.Join(clauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("updating book %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating book %d: %w", id, err)
	}
	if affected == 0 {
		return false, nil
	}

	detail := "updated " + strings.Join(patch.Fields(), ", ")
	if err := recordAudit(tx, types.OpUpdate, id, detail); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing update: %w", err)
	}

	s.logger.Info("book updated", "id", id, "fields", patch.Fields())
	return true, nil
}

// Delete removes a book by ID. Returns false when the ID does not exist.
func (s *Store) Delete(id int64) (bool, error) {
	if s.db == nil {
		return false, types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting book %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting book %d: %w", id, err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := recordAudit(tx, types.OpDelete, id, fmt.Sprintf("deleted book %d", id)); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing delete: %w", err)
	}

	s.logger.Info("book deleted", "id", id)
	return true, nil
}

// Statistics computes aggregates over the full collection. All price
// aggregates default to zero on an empty store. Engine failures are
// logged and yield zero statistics.
func (s *Store) Statistics() types.Statistics {
	var stats types.Statistics
	if s.db == nil {
		return stats
	}

	row := s.db.QueryRow(`SELECT COUNT(id),
        COUNT(DISTINCT author),
        COALESCE(AVG(price), 0),
        COALESCE(MAX(price), 0),
        COALESCE(MIN(price), 0)
    FROM books`)
	err := row.Scan(&stats.TotalBooks, &stats.TotalAuthors,
		&stats.AveragePrice, &stats.MostExpensive, &stats.Cheapest)
	if err != nil {
		s.logger.Error("statistics failed", "error", err)
		return types.Statistics{}
	}
	return stats
}

// queryBooks runs a SELECT over the books columns and hydrates the
// result, degrading to an empty slice on any engine failure.
func (s *Store) queryBooks(query string, args ...any) []*types.Book {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logger.Error("query failed", "error", err)
		return nil
	}
	defer rows.Close()

	var books []*types.Book
	for rows.Next() {
		book, err := hydrateBook(rows)
		if err != nil {
			s.logger.Error("scan failed", "error", err)
			return nil
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("query failed", "error", err)
		return nil
	}
	return books
}

// scanner abstracts *sql.Row and *sql.Rows for hydration.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateBook maps one row of books columns onto a Book.
func hydrateBook(row scanner) (*types.Book, error) {
	var book types.Book
	var createdAt string
	err := row.Scan(&book.ID, &book.Title, &book.Author,
		&book.PublicationYear, &book.Price, &createdAt)
	if err != nil {
		return nil, err
	}
	book.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &book, nil
}
