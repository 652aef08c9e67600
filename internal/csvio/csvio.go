// Package csvio moves book records between the store and CSV files:
// full and filtered exports, best-effort imports with per-row error
// accounting, and import template generation.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rfgalvao/bibliotek/internal/validation"
	"github.com/rfgalvao/bibliotek/pkg/types"
)

// Import column names. Extra columns in the source file are ignored,
// which lets a full export be re-imported as-is.
const (
	colTitle  = "title"
	colAuthor = "author"
	colYear   = "publication_year"
	colPrice  = "price"
)

// exportHeader is the fixed column order for exports.
var exportHeader = []string{"id", "title", "author", "publication_year", "price", "created_at"}

// createdAtLayout is the human-readable timestamp format used in
// exported rows and reports.
const createdAtLayout = "2006-01-02 15:04:05"

// bookStore is the slice of the record store the CSV layer needs.
type bookStore interface {
	Add(book *types.Book) (*types.Book, error)
	ListAll() []*types.Book
}

// ImportResult is the tally of one import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// Service reads and writes CSV files against the record store.
type Service struct {
	store     bookStore
	validator *validation.Validator
	exportDir string
	importDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds a CSV service over the given store and validator.
// Empty export/import dirs default to siblings of the data dir.
func NewService(store bookStore, validator *validation.Validator, cfg types.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	exportDir := cfg.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(cfg.DataDir, "exports")
	}
	importDir := cfg.ImportDir
	if importDir == "" {
		importDir = filepath.Join(cfg.DataDir, "imports")
	}
	return &Service{
		store:     store,
		validator: validator,
		exportDir: exportDir,
		importDir: importDir,
		logger:    logger,
		now:       time.Now,
	}
}

// Export writes the full collection to a CSV file in the export
// directory and returns its path. An empty filename picks a
// timestamped default.
func (s *Service) Export(filename string) (string, error) {
	return s.export(s.store.ListAll(), filename, "books_export_")
}

// ExportBooks writes an arbitrary subset of records, e.g. search
// results, to a CSV file in the export directory.
func (s *Service) ExportBooks(books []*types.Book, filename string) (string, error) {
	return s.export(books, filename, "books_filtered_")
}

func (s *Service) export(books []*types.Book, filename, defaultPrefix string) (string, error) {
	if filename == "" {
		filename = defaultPrefix + s.now().Format("20060102_150405") + ".csv"
	}
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(s.exportDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(exportHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, book := range books {
		record := []string{
			strconv.FormatInt(book.ID, 10),
			book.Title,
			book.Author,
			strconv.Itoa(book.PublicationYear),
			strconv.FormatFloat(book.Price, 'f', 2, 64),
			book.CreatedAt.Format(createdAtLayout),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing record %d: %w", book.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing export: %w", err)
	}

	s.logger.Info("collection exported", "path", path, "records", len(books))
	return path, nil
}

// Import reads a CSV file of candidate records and adds the valid ones
// to the store, one at a time. Each row is handled independently: a bad
// row is counted and recorded, never aborting the run. Row numbers in
// error messages are 1-indexed with the header as row 1. A missing
// source file fails immediately with zero counts.
func (s *Service) Import(filename string) (ImportResult, error) {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.importDir, filename)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ImportResult{}, types.ErrSourceMissing
		}
		return ImportResult{}, fmt.Errorf("opening import file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading header: %w", err)
	}
	columns := headerIndex(header)

	var result ImportResult
	rowNum := 1 // header occupies row 1
	for {
		rowNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			s.logger.Warn("import row unreadable", "row", rowNum, "error", err)
			continue
		}

		title := strings.ToUpper(strings.TrimSpace(field(record, columns, colTitle)))
		author := strings.ToUpper(strings.TrimSpace(field(record, columns, colAuthor)))
		yearRaw := strings.TrimSpace(field(record, columns, colYear))
		priceRaw := strings.TrimSpace(field(record, columns, colPrice))

		if ok, reasons := s.validator.Book(title, author, yearRaw, priceRaw); !ok {
			result.Failed++
			msg := fmt.Sprintf("Row %d: %s", rowNum, strings.Join(reasons, "; "))
			result.Errors = append(result.Errors, msg)
			s.logger.Warn("import row rejected", "row", rowNum, "reasons", reasons)
			continue
		}

		year, _ := strconv.Atoi(yearRaw)
		price, _ := strconv.ParseFloat(priceRaw, 64)

		if _, err := s.store.Add(types.NewBook(title, author, year, price)); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			s.logger.Error("import row not persisted", "row", rowNum, "error", err)
			continue
		}
		result.Imported++
	}

	s.logger.Info("import finished", "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

// WriteTemplate creates a sample import file in the import directory
// showing the expected columns, and returns its path.
func (s *Service) WriteTemplate() (string, error) {
	if err := os.MkdirAll(s.importDir, 0o755); err != nil {
		return "", fmt.Errorf("creating import dir: %w", err)
	}
	path := filepath.Join(s.importDir, "template_import.csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating template: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	rows := [][]string{
		{colTitle, colAuthor, colYear, colPrice},
		{"THE LORD OF THE RINGS", "J.R.R. TOLKIEN", "1954", "89.90"},
		{"1984", "GEORGE ORWELL", "1949", "45.50"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing template: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing template: %w", err)
	}

	s.logger.Info("import template written", "path", path)
	return path, nil
}

// headerIndex maps column names to their positions. The first cell is
// stripped of a UTF-8 BOM so Excel-produced files resolve correctly.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

// field returns the named column of a record, or "" when the column is
// absent or the row is short. Missing values fail validation with the
// same reasons as empty ones.
func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
