package csvio

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfgalvao/bibliotek/internal/sqlite"
	"github.com/rfgalvao/bibliotek/internal/validation"
	"github.com/rfgalvao/bibliotek/pkg/types"
)

func fixed2024() time.Time {
	return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*Service, *sqlite.Store) {
	t.Helper()
	cfg := types.Config{
		DataDir:    t.TempDir(),
		ExportDir:  t.TempDir(),
		ImportDir:  t.TempDir(),
		MaxBackups: 5,
	}
	store, err := sqlite.Open(cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	validator := validation.NewWithClock(fixed2024)
	return NewService(store, validator, cfg, discardLogger()), store
}

func writeImportFile(t *testing.T, s *Service, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(s.importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.importDir, name), []byte(content), 0o644))
}

func TestImportTallyAndRowNumbers(t *testing.T) {
	s, store := newTestService(t)
	writeImportFile(t, s, "books.csv",
		"title,author,publication_year,price\n"+
			"The Hobbit,J.R.R. Tolkien,1937,54.00\n"+
			"1984,George Orwell,1949,45.50\n"+
			"Bad Book,Nobody,3000,10.00\n"+
			"Dune,Frank Herbert,1965,42.00\n")

	result, err := s.Import("books.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 4:", "first data row is row 2")
	assert.Contains(t, result.Errors[0], "2025", "reason cites the year bound")

	books := store.ListAll()
	require.Len(t, books, 3)
	assert.Equal(t, "THE HOBBIT", books[0].Title)
	assert.Equal(t, "J.R.R. TOLKIEN", books[0].Author)
}

func TestImportMissingFile(t *testing.T) {
	s, store := newTestService(t)

	result, err := s.Import("nope.csv")

	assert.ErrorIs(t, err, types.ErrSourceMissing)
	assert.Zero(t, result.Imported)
	assert.Zero(t, result.Failed)
	assert.Empty(t, store.ListAll())
}

func TestImportCollectsEveryReasonPerRow(t *testing.T) {
	s, _ := newTestService(t)
	writeImportFile(t, s, "books.csv",
		"title,author,publication_year,price\n"+
			",,bad-year,-1\n")

	result, err := s.Import("books.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	// All four field failures land in the one row message.
	msg := result.Errors[0]
	assert.Contains(t, msg, "title")
	assert.Contains(t, msg, "author")
	assert.Contains(t, msg, "year")
	assert.Contains(t, msg, "price")
}

func TestImportShortRowFailsCleanly(t *testing.T) {
	s, store := newTestService(t)
	writeImportFile(t, s, "books.csv",
		"title,author,publication_year,price\n"+
			"Only A Title\n"+
			"Dune,Frank Herbert,1965,42.00\n")

	result, err := s.Import("books.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported, "good row after a bad one still imports")
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, store.ListAll(), 1)
}

func TestImportIgnoresExtraColumns(t *testing.T) {
	s, store := newTestService(t)
	writeImportFile(t, s, "books.csv",
		"id,title,author,publication_year,price,created_at\n"+
			"7,Dune,Frank Herbert,1965,42.00,2020-01-01 10:00:00\n")

	result, err := s.Import("books.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	books := store.ListAll()
	require.Len(t, books, 1)
	assert.NotEqual(t, int64(7), books[0].ID, "ids are store-assigned, never client-supplied")
}

func TestImportStripsHeaderBOM(t *testing.T) {
	s, _ := newTestService(t)
	writeImportFile(t, s, "books.csv",
		"\uFEFFtitle,author,publication_year,price\n"+
			"Dune,Frank Herbert,1965,42.00\n")

	result, err := s.Import("books.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
}

func TestImportAbsolutePath(t *testing.T) {
	s, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), "elsewhere.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("title,author,publication_year,price\nDune,Frank Herbert,1965,42.00\n"), 0o644))

	result, err := s.Import(path)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
}

// failingStore rejects every write, standing in for a broken engine.
type failingStore struct{}

func (failingStore) Add(*types.Book) (*types.Book, error) { return nil, errors.New("disk full") }
func (failingStore) ListAll() []*types.Book               { return nil }

func TestImportCountsStoreFailures(t *testing.T) {
	cfg := types.Config{DataDir: t.TempDir(), ImportDir: t.TempDir(), MaxBackups: 5}
	s := NewService(failingStore{}, validation.NewWithClock(fixed2024), cfg, discardLogger())
	writeImportFile(t, s, "books.csv",
		"title,author,publication_year,price\n"+
			"Dune,Frank Herbert,1965,42.00\n")

	result, err := s.Import("books.csv")
	require.NoError(t, err)

	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "disk full")
}

func TestExportWritesFixedColumns(t *testing.T) {
	s, store := newTestService(t)
	_, err := store.Add(types.NewBook("The Hobbit", "J.R.R. Tolkien", 1937, 54.00))
	require.NoError(t, err)

	path, err := s.Export("out.csv")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "id,title,author,publication_year,price,created_at")
	assert.Contains(t, content, "THE HOBBIT,J.R.R. TOLKIEN,1937,54.00")
}

func TestExportDefaultFilenameTimestamped(t *testing.T) {
	s, _ := newTestService(t)
	s.now = fixed2024

	path, err := s.Export("")
	require.NoError(t, err)

	assert.Equal(t, "books_export_20240615_120000.csv", filepath.Base(path))
}

func TestExportBooksSubset(t *testing.T) {
	s, store := newTestService(t)
	_, err := store.Add(types.NewBook("The Hobbit", "J.R.R. Tolkien", 1937, 54.00))
	require.NoError(t, err)
	_, err = store.Add(types.NewBook("1984", "George Orwell", 1949, 45.50))
	require.NoError(t, err)

	path, err := s.ExportBooks(store.Search("orwell"), "subset.csv")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GEORGE ORWELL")
	assert.NotContains(t, string(data), "TOLKIEN")
}

func TestRoundTripExportImport(t *testing.T) {
	s, store := newTestService(t)
	seed := []*types.Book{
		types.NewBook("The Hobbit", "J.R.R. Tolkien", 1937, 54.00),
		types.NewBook("1984", "George Orwell", 1949, 45.50),
		types.NewBook("Dune", "Frank Herbert", 1965, 42.00),
	}
	for _, book := range seed {
		_, err := store.Add(book)
		require.NoError(t, err)
	}

	path, err := s.Export("roundtrip.csv")
	require.NoError(t, err)

	result, err := s.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Zero(t, result.Failed)

	books := store.ListAll()
	require.Len(t, books, 6)

	// The re-imported records reproduce the business-field tuples;
	// ids differ because add reassigns them.
	type tuple struct {
		title, author string
		year          int
		price         float64
	}
	counts := make(map[tuple]int)
	for _, book := range books {
		counts[tuple{book.Title, book.Author, book.PublicationYear, book.Price}]++
	}
	for _, book := range seed {
		assert.Equal(t, 2, counts[tuple{book.Title, book.Author, book.PublicationYear, book.Price}])
	}
}

func TestWriteTemplateIsImportable(t *testing.T) {
	s, store := newTestService(t)

	path, err := s.WriteTemplate()
	require.NoError(t, err)

	result, err := s.Import(filepath.Base(path))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Failed)
	assert.Len(t, store.ListAll(), 2)
}
