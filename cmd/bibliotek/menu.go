// Menu command runs the interactive numbered loop over all operations.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfgalvao/bibliotek/internal/bookstore"
	"github.com/rfgalvao/bibliotek/pkg/types"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	Long: `Menu starts an interactive session with a numbered list of
operations. Failed operations report their reason and return to the
menu; only option 0 ends the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runMenu(cmd.InOrStdin(), cmd.OutOrStdout())
		return nil
	},
}

const menuText = `
==== bibliotek ====
 1. Add book
 2. List books
 3. Update book
 4. Delete book
 5. Search by author
 6. Search title or author
 7. Export catalog to CSV
 8. Import books from CSV
 9. Generate report
10. Create backup
11. Show statistics
12. List backups
 0. Exit
`

func runMenu(in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)

	for {
		fmt.Fprint(out, menuText)
		choice, ok := prompt(reader, out, "Choose an option: ")
		if !ok {
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			menuAdd(reader, out)
		case "2":
			printBooks(out, svc.ListBooks())
		case "3":
			menuUpdate(reader, out)
		case "4":
			menuDelete(reader, out)
		case "5":
			if author, ok := prompt(reader, out, "Author: "); ok {
				printBooks(out, svc.SearchByAuthor(author))
			}
		case "6":
			if query, ok := prompt(reader, out, "Search text: "); ok {
				printBooks(out, svc.Search(query))
			}
		case "7":
			printResult(out, svc.ExportCSV(""))
		case "8":
			menuImport(reader, out)
		case "9":
			menuReport(reader, out)
		case "10":
			printResult(out, svc.CreateBackup())
		case "11":
			printStatistics(out, svc.Statistics())
		case "12":
			menuListBackups(out)
		case "0":
			menuExit(reader, out)
			return
		default:
			fmt.Fprintln(out, "invalid option, try again")
		}
	}
}

// prompt reads one line; ok is false when the input stream ends.
func prompt(reader *bufio.Reader, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

func menuAdd(reader *bufio.Reader, out io.Writer) {
	title, ok := prompt(reader, out, "Title: ")
	if !ok {
		return
	}
	author, ok := prompt(reader, out, "Author: ")
	if !ok {
		return
	}
	year, ok := prompt(reader, out, "Publication year: ")
	if !ok {
		return
	}
	price, ok := prompt(reader, out, "Price: ")
	if !ok {
		return
	}

	result, _ := svc.AddBook(title, author, year, price)
	printResult(out, result)
}

func menuUpdate(reader *bufio.Reader, out io.Writer) {
	raw, ok := prompt(reader, out, "Book id: ")
	if !ok {
		return
	}
	id, err := parseID(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	book, found := svc.GetBook(id)
	if !found {
		fmt.Fprintf(out, "error: book %d not found\n", id)
		return
	}
	printBooks(out, []*types.Book{book})
	fmt.Fprintln(out, "Leave a field blank to keep its current value.")

	var input bookstore.UpdateInput
	if title, ok := prompt(reader, out, "New title: "); !ok {
		return
	} else if strings.TrimSpace(title) != "" {
		input.Title = &title
	}
	if author, ok := prompt(reader, out, "New author: "); !ok {
		return
	} else if strings.TrimSpace(author) != "" {
		input.Author = &author
	}
	if year, ok := prompt(reader, out, "New publication year: "); !ok {
		return
	} else if strings.TrimSpace(year) != "" {
		input.Year = &year
	}
	if price, ok := prompt(reader, out, "New price: "); !ok {
		return
	} else if strings.TrimSpace(price) != "" {
		input.Price = &price
	}

	if input.Title == nil && input.Author == nil && input.Year == nil && input.Price == nil {
		fmt.Fprintln(out, "nothing to update")
		return
	}
	printResult(out, svc.UpdateBook(id, input))
}

func menuDelete(reader *bufio.Reader, out io.Writer) {
	raw, ok := prompt(reader, out, "Book id: ")
	if !ok {
		return
	}
	id, err := parseID(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	confirm, ok := prompt(reader, out, fmt.Sprintf("Delete book %d? [y/N]: ", id))
	if !ok || !strings.EqualFold(strings.TrimSpace(confirm), "y") {
		fmt.Fprintln(out, "delete cancelled")
		return
	}
	printResult(out, svc.DeleteBook(id))
}

func menuImport(reader *bufio.Reader, out io.Writer) {
	filename, ok := prompt(reader, out, "CSV filename [books.csv]: ")
	if !ok {
		return
	}
	if strings.TrimSpace(filename) == "" {
		filename = "books.csv"
	}
	result, _ := svc.ImportCSV(filename)
	printResult(out, result)
}

func menuReport(reader *bufio.Reader, out io.Writer) {
	format, ok := prompt(reader, out, "Format, html or text [html]: ")
	if !ok {
		return
	}
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		printResult(out, svc.GenerateTextReport(""))
		return
	}
	printResult(out, svc.GenerateHTMLReport(""))
}

func menuListBackups(out io.Writer) {
	snapshots, err := svc.ListBackups()
	if err != nil {
		fmt.Fprintf(out, "error: could not list backups: %v\n", err)
		return
	}
	printSnapshots(out, snapshots, svc.TotalBackupSize())
}

func menuExit(reader *bufio.Reader, out io.Writer) {
	confirm, ok := prompt(reader, out, "Take a final backup before exiting? [y/N]: ")
	if ok && strings.EqualFold(strings.TrimSpace(confirm), "y") {
		printResult(out, svc.CreateBackup())
	}
	fmt.Fprintln(out, "goodbye")
}
