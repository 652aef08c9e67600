// Package report renders read-only catalog summaries. Reports are
// regenerated on every call and never parsed back in.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

// catalogReader is the read-only slice of the record store a report
// needs.
type catalogReader interface {
	ListAll() []*types.Book
	Statistics() types.Statistics
}

// Generator renders HTML and plain-text reports into the report
// directory.
type Generator struct {
	store     catalogReader
	reportDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewGenerator builds a Generator. An empty ReportDir defaults to a
// "reports" directory beside the data dir.
func NewGenerator(store catalogReader, cfg types.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	reportDir := cfg.ReportDir
	if reportDir == "" {
		reportDir = filepath.Join(cfg.DataDir, "reports")
	}
	return &Generator{
		store:     store,
		reportDir: reportDir,
		logger:    logger,
		now:       time.Now,
	}
}

// authorCount is one entry of the top-authors ranking.
type authorCount struct {
	Author string
	Count  int
}

// yearCount is one entry of the publication-year distribution.
type yearCount struct {
	Year  int
	Count int
}

// reportData feeds both report templates.
type reportData struct {
	GeneratedAt string
	Stats       types.Statistics
	Books       []*types.Book
	TopAuthors  []authorCount
	Years       []yearCount
}

// HTML renders the full catalog report as a self-contained HTML
// document and returns its path. An empty filename picks a timestamped
// default.
func (g *Generator) HTML(filename string) (string, error) {
	return g.render(htmlTemplate, filename, ".html")
}

// Text renders the same report as plain text.
func (g *Generator) Text(filename string) (string, error) {
	return g.render(textTemplate, filename, ".txt")
}

func (g *Generator) render(tmpl executable, filename, ext string) (string, error) {
	if filename == "" {
		filename = "report_" + g.now().Format("20060102_150405") + ext
	}
	if err := os.MkdirAll(g.reportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}
	path := filepath.Join(g.reportDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, g.collect()); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	g.logger.Info("report generated", "path", path)
	return path, nil
}

// executable is the surface shared by html/template and text/template.
type executable interface {
	Execute(w io.Writer, data any) error
}

// collect gathers the catalog, statistics, top-5 authors, and the
// publication-year distribution.
func (g *Generator) collect() reportData {
	books := g.store.ListAll()

	byAuthor := make(map[string]int)
	byYear := make(map[int]int)
	for _, book := range books {
		byAuthor[book.Author]++
		byYear[book.PublicationYear]++
	}

	authors := make([]authorCount, 0, len(byAuthor))
	for author, count := range byAuthor {
		authors = append(authors, authorCount{Author: author, Count: count})
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Count != authors[j].Count {
			return authors[i].Count > authors[j].Count
		}
		return authors[i].Author < authors[j].Author
	})
	if len(authors) > 5 {
		authors = authors[:5]
	}

	years := make([]yearCount, 0, len(byYear))
	for year, count := range byYear {
		years = append(years, yearCount{Year: year, Count: count})
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	return reportData{
		GeneratedAt: g.now().Format("2006-01-02 15:04:05"),
		Stats:       g.store.Statistics(),
		Books:       books,
		TopAuthors:  authors,
		Years:       years,
	}
}
