// Shared output helpers for the CLI commands.
package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/rfgalvao/bibliotek/internal/bookstore"
	"github.com/rfgalvao/bibliotek/pkg/types"
)

// parseID converts a positional argument into a record ID.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}

func printResult(w io.Writer, result bookstore.Result) {
	if result.OK {
		fmt.Fprintln(w, result.Message)
		return
	}
	fmt.Fprintf(w, "error: %s\n", result.Message)
}

func printBooks(w io.Writer, books []*types.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "no books found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tPRICE\tADDED")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\t%s\n",
			b.ID, b.Title, b.Author, b.PublicationYear, b.Price,
			b.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d book(s)\n", len(books))
}

func printStatistics(w io.Writer, stats types.Statistics) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total books:\t%d\n", stats.TotalBooks)
	fmt.Fprintf(tw, "Distinct authors:\t%d\n", stats.TotalAuthors)
	fmt.Fprintf(tw, "Average price:\t%.2f\n", stats.AveragePrice)
	fmt.Fprintf(tw, "Most expensive:\t%.2f\n", stats.MostExpensive)
	fmt.Fprintf(tw, "Cheapest:\t%.2f\n", stats.Cheapest)
	tw.Flush()
}

func printSnapshots(w io.Writer, snapshots []types.Snapshot, usage types.BackupUsage) {
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "no backups found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED")
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			s.Name,
			humanize.Bytes(uint64(s.SizeBytes)),
			humanize.Time(s.Modified))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d backup(s), %s total\n", len(snapshots), humanize.Bytes(uint64(usage.Bytes)))
}

func printAuditEntries(w io.Writer, entries []types.AuditEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no audit entries")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tOP\tBOOK\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Operation, e.BookID, e.Detail)
	}
	tw.Flush()
}
