package report

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

// staticCatalog is a fixed catalogReader for template tests.
type staticCatalog struct {
	books []*types.Book
	stats types.Statistics
}

func (c staticCatalog) ListAll() []*types.Book       { return c.books }
func (c staticCatalog) Statistics() types.Statistics { return c.stats }

func sampleCatalog() staticCatalog {
	created := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	return staticCatalog{
		books: []*types.Book{
			{ID: 1, Title: "THE HOBBIT", Author: "J.R.R. TOLKIEN", PublicationYear: 1937, Price: 54.00, CreatedAt: created},
			{ID: 2, Title: "THE LORD OF THE RINGS", Author: "J.R.R. TOLKIEN", PublicationYear: 1954, Price: 89.90, CreatedAt: created},
			{ID: 3, Title: "1984", Author: "GEORGE ORWELL", PublicationYear: 1949, Price: 45.50, CreatedAt: created},
		},
		stats: types.Statistics{
			TotalBooks:    3,
			TotalAuthors:  2,
			AveragePrice:  63.13,
			MostExpensive: 89.90,
			Cheapest:      45.50,
		},
	}
}

func newTestGenerator(t *testing.T, catalog staticCatalog) *Generator {
	t.Helper()
	cfg := types.Config{DataDir: t.TempDir(), ReportDir: t.TempDir(), MaxBackups: 5}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := NewGenerator(catalog, cfg, logger)
	g.now = func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func TestHTMLReportContent(t *testing.T) {
	g := newTestGenerator(t, sampleCatalog())

	path, err := g.HTML("")
	require.NoError(t, err)

	assert.Equal(t, "report_20240615_120000.html", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "THE HOBBIT")
	assert.Contains(t, content, "89.90")
	assert.Contains(t, content, "2024-06-15 12:00:00")
}

func TestCollectRanksAuthorsByCount(t *testing.T) {
	g := newTestGenerator(t, sampleCatalog())

	data := g.collect()

	require.Len(t, data.TopAuthors, 2)
	assert.Equal(t, authorCount{Author: "J.R.R. TOLKIEN", Count: 2}, data.TopAuthors[0])
	assert.Equal(t, authorCount{Author: "GEORGE ORWELL", Count: 1}, data.TopAuthors[1])
	assert.Equal(t, []yearCount{{1937, 1}, {1949, 1}, {1954, 1}}, data.Years)
}

func TestTextReportContent(t *testing.T) {
	g := newTestGenerator(t, sampleCatalog())

	path, err := g.Text("catalog.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "LIBRARY CATALOG REPORT")
	assert.Contains(t, content, "Books:          3")
	assert.Contains(t, content, "J.R.R. TOLKIEN (2)")
	assert.Contains(t, content, "[1] THE HOBBIT - J.R.R. TOLKIEN (1937) 54.00")
	assert.Contains(t, content, "1937: 1")
}

func TestTopAuthorsCappedAtFive(t *testing.T) {
	catalog := staticCatalog{}
	for i := 0; i < 7; i++ {
		catalog.books = append(catalog.books, &types.Book{
			ID:     int64(i + 1),
			Title:  "BOOK",
			Author: string(rune('A' + i)),
		})
	}
	g := newTestGenerator(t, catalog)

	data := g.collect()

	assert.Len(t, data.TopAuthors, 5)
}

func TestEmptyCatalogReports(t *testing.T) {
	g := newTestGenerator(t, staticCatalog{})

	path, err := g.Text("")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No books catalogued.")
}

func TestHTMLEscapesBookFields(t *testing.T) {
	catalog := staticCatalog{
		books: []*types.Book{{ID: 1, Title: "<SCRIPT>ALERT(1)</SCRIPT>", Author: "X"}},
		stats: types.Statistics{TotalBooks: 1, TotalAuthors: 1},
	}
	g := newTestGenerator(t, catalog)

	path, err := g.HTML("")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<SCRIPT>")
	assert.Contains(t, string(data), "&lt;SCRIPT&gt;")
}
