// Package bookstore is the policy layer of bibliotek. It sequences
// validation, store mutation, and the automatic post-mutation snapshot,
// and maps every outcome to a uniform Result for the CLI.
package bookstore

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rfgalvao/bibliotek/internal/backup"
	"github.com/rfgalvao/bibliotek/internal/csvio"
	"github.com/rfgalvao/bibliotek/internal/report"
	"github.com/rfgalvao/bibliotek/internal/sqlite"
	"github.com/rfgalvao/bibliotek/internal/validation"
	"github.com/rfgalvao/bibliotek/pkg/types"
)

// Result is the uniform outcome of an operation: a success flag plus a
// user-facing message. Failures here are expected business outcomes,
// not process-fatal conditions.
type Result struct {
	OK      bool
	Message string
}

func failure(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

func success(format string, args ...any) Result {
	return Result{OK: true, Message: fmt.Sprintf(format, args...)}
}

// UpdateInput carries the raw optional fields of a partial update. A
// nil field was not supplied; a non-nil field holds the raw text to
// validate and apply.
type UpdateInput struct {
	Title  *string
	Author *string
	Year   *string
	Price  *string
}

// Service composes the record store, backup manager, CSV service, and
// report generator under the mutate-then-snapshot policy.
type Service struct {
	store     *sqlite.Store
	backups   *backup.Manager
	csv       *csvio.Service
	reports   *report.Generator
	validator *validation.Validator
	logger    *slog.Logger
}

// NewService opens the store described by cfg and wires up the
// collaborators. The caller must Close the service when done.
func NewService(cfg types.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := sqlite.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	validator := validation.New()
	return &Service{
		store:     store,
		backups:   backup.NewManager(cfg, logger),
		csv:       csvio.NewService(store, validator, cfg, logger),
		reports:   report.NewGenerator(store, cfg, logger),
		validator: validator,
		logger:    logger,
	}, nil
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// AddBook validates the raw candidate fields, persists the record, and
// takes an automatic snapshot. On success the stored book, with ID and
// CreatedAt populated, is returned alongside the result.
func (s *Service) AddBook(title, author, year, price string) (Result, *types.Book) {
	ok, reasons := s.validator.Book(title, author, year, price)
	if !ok {
		return failure("invalid book: %s", strings.Join(reasons, "; ")), nil
	}

	yearInt, _ := strconv.Atoi(strings.TrimSpace(year))
	priceFloat, _ := strconv.ParseFloat(strings.TrimSpace(price), 64)

	book, err := s.store.Add(types.NewBook(title, author, yearInt, priceFloat))
	if err != nil {
		s.logger.Error("add failed", "error", err)
		return failure("could not add book: %v", err), nil
	}

	s.autoBackup()
	return success("book added with id %d", book.ID), book
}

// GetBook looks a record up by ID.
func (s *Service) GetBook(id int64) (*types.Book, bool) {
	book, err := s.store.Get(id)
	if err != nil {
		return nil, false
	}
	return book, true
}

// ListBooks returns the full collection ordered by ID.
func (s *Service) ListBooks() []*types.Book {
	return s.store.ListAll()
}

// SearchByAuthor returns books whose author contains the text.
func (s *Service) SearchByAuthor(author string) []*types.Book {
	return s.store.SearchByAuthor(author)
}

// Search returns books whose title or author contains the text.
func (s *Service) Search(query string) []*types.Book {
	return s.store.Search(query)
}

// Statistics returns the catalog aggregates.
func (s *Service) Statistics() types.Statistics {
	return s.store.Statistics()
}

// UpdateBook validates the supplied fields, verifies the record
// exists, applies the partial update, and takes an automatic snapshot.
// An empty input short-circuits before touching the store.
func (s *Service) UpdateBook(id int64, input UpdateInput) Result {
	if input.Title == nil && input.Author == nil && input.Year == nil && input.Price == nil {
		return failure("no fields to update")
	}

	var reasons []string
	var patch types.BookPatch

	if input.Title != nil {
		if ok, reason := s.validator.Title(*input.Title); !ok {
			reasons = append(reasons, reason)
		} else {
			title := strings.ToUpper(strings.TrimSpace(*input.Title))
			patch.Title = &title
		}
	}
	if input.Author != nil {
		if ok, reason := s.validator.Author(*input.Author); !ok {
			reasons = append(reasons, reason)
		} else {
			author := strings.ToUpper(strings.TrimSpace(*input.Author))
			patch.Author = &author
		}
	}
	if input.Year != nil {
		if ok, reason := s.validator.Year(*input.Year); !ok {
			reasons = append(reasons, reason)
		} else {
			year, _ := strconv.Atoi(strings.TrimSpace(*input.Year))
			patch.PublicationYear = &year
		}
	}
	if input.Price != nil {
		if ok, reason := s.validator.Price(*input.Price); !ok {
			reasons = append(reasons, reason)
		} else {
			price, _ := strconv.ParseFloat(strings.TrimSpace(*input.Price), 64)
			patch.Price = &price
		}
	}
	if len(reasons) > 0 {
		return failure("invalid update: %s", strings.Join(reasons, "; "))
	}

	if _, ok := s.GetBook(id); !ok {
		return failure("book %d not found", id)
	}

	applied, err := s.store.Update(id, patch)
	if err != nil {
		s.logger.Error("update failed", "id", id, "error", err)
		return failure("could not update book %d: %v", id, err)
	}
	if !applied {
		return failure("book %d not found", id)
	}

	s.autoBackup()
	return success("book %d updated (%s)", id, strings.Join(patch.Fields(), ", "))
}

// DeleteBook verifies the record exists, removes it, and takes an
// automatic snapshot.
func (s *Service) DeleteBook(id int64) Result {
	if _, ok := s.GetBook(id); !ok {
		return failure("book %d not found", id)
	}

	deleted, err := s.store.Delete(id)
	if err != nil {
		s.logger.Error("delete failed", "id", id, "error", err)
		return failure("could not delete book %d: %v", id, err)
	}
	if !deleted {
		return failure("book %d not found", id)
	}

	s.autoBackup()
	return success("book %d deleted", id)
}

// ExportCSV writes the full collection to a CSV file.
func (s *Service) ExportCSV(filename string) Result {
	path, err := s.csv.Export(filename)
	if err != nil {
		s.logger.Error("export failed", "error", err)
		return failure("could not export: %v", err)
	}
	return success("catalog exported to %s", path)
}

// ExportSearchCSV writes only the books matching the query, by title
// or author, to a CSV file.
func (s *Service) ExportSearchCSV(query, filename string) Result {
	books := s.store.Search(query)
	if len(books) == 0 {
		return failure("no books match %q, nothing to export", query)
	}
	path, err := s.csv.ExportBooks(books, filename)
	if err != nil {
		s.logger.Error("filtered export failed", "error", err)
		return failure("could not export: %v", err)
	}
	return success("%d matching book(s) exported to %s", len(books), path)
}

// ImportCSV bulk-loads records from a CSV file. The automatic snapshot
// is taken only when at least one row was imported.
func (s *Service) ImportCSV(filename string) (Result, csvio.ImportResult) {
	result, err := s.csv.Import(filename)
	if err != nil {
		if errors.Is(err, types.ErrSourceMissing) {
			return failure("import file not found: %s", filename), result
		}
		s.logger.Error("import failed", "error", err)
		return failure("could not import: %v", err), result
	}

	if result.Imported > 0 {
		s.autoBackup()
	}

	return success("%s", importSummary(result)), result
}

// importSummary renders the tally plus the first few row errors.
func importSummary(result csvio.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "import finished: %d imported, %d failed", result.Imported, result.Failed)
	shown := result.Errors
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, msg := range shown {
		fmt.Fprintf(&b, "\n  - %s", msg)
	}
	if rest := len(result.Errors) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n  ... and %d more error(s)", rest)
	}
	return b.String()
}

// WriteImportTemplate creates a sample import CSV.
func (s *Service) WriteImportTemplate() Result {
	path, err := s.csv.WriteTemplate()
	if err != nil {
		return failure("could not write template: %v", err)
	}
	return success("import template written to %s", path)
}

// GenerateHTMLReport renders the catalog report as HTML.
func (s *Service) GenerateHTMLReport(filename string) Result {
	path, err := s.reports.HTML(filename)
	if err != nil {
		s.logger.Error("report failed", "error", err)
		return failure("could not generate report: %v", err)
	}
	return success("report generated at %s", path)
}

// GenerateTextReport renders the catalog report as plain text.
func (s *Service) GenerateTextReport(filename string) Result {
	path, err := s.reports.Text(filename)
	if err != nil {
		s.logger.Error("report failed", "error", err)
		return failure("could not generate report: %v", err)
	}
	return success("report generated at %s", path)
}

// CreateBackup takes a manual snapshot.
func (s *Service) CreateBackup() Result {
	path, err := s.backups.CreateSnapshot()
	if err != nil {
		if errors.Is(err, types.ErrSourceMissing) {
			return failure("no store file to back up yet")
		}
		s.logger.Error("backup failed", "error", err)
		return failure("could not create backup: %v", err)
	}
	return success("backup created: %s", path)
}

// ListBackups returns the available snapshots, newest first.
func (s *Service) ListBackups() ([]types.Snapshot, error) {
	return s.backups.ListSnapshots()
}

// TotalBackupSize returns the disk footprint of all snapshots.
func (s *Service) TotalBackupSize() types.BackupUsage {
	return s.backups.TotalSize()
}

// RestoreBackup copies the named snapshot over the live store. The
// store must be reopened by the caller afterwards; the CLI runs this
// as its own invocation, so the next command sees the restored state.
func (s *Service) RestoreBackup(name string) Result {
	if err := s.store.Close(); err != nil {
		return failure("could not close store for restore: %v", err)
	}
	if err := s.backups.Restore(name); err != nil {
		if errors.Is(err, types.ErrSnapshotMissing) {
			return failure("backup not found: %s", name)
		}
		s.logger.Error("restore failed", "name", name, "error", err)
		return failure("could not restore backup: %v", err)
	}
	return success("backup restored: %s", name)
}

// AuditTrail returns the most recent mutation audit entries.
func (s *Service) AuditTrail(limit int) []types.AuditEntry {
	return s.store.AuditTrail(limit)
}

// autoBackup snapshots the store after a successful mutation. A failed
// snapshot is logged but never fails the mutation that triggered it.
func (s *Service) autoBackup() {
	if _, err := s.backups.CreateSnapshot(); err != nil {
		s.logger.Error("automatic backup failed", "error", err)
	}
}
