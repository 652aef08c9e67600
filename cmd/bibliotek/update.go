// Update command applies a partial update to one book.
package main

import (
	"github.com/spf13/cobra"

	"github.com/rfgalvao/bibliotek/internal/bookstore"
)

var (
	updateTitle  string
	updateAuthor string
	updateYear   string
	updatePrice  string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a book",
	Long: `Update applies only the flags you pass; omitted fields keep their
current values.

Example:
  bibliotek update 3 --price 49.90
  bibliotek update 3 --title "The Silmarillion" --year 1977`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateAuthor, "author", "", "new author")
	updateCmd.Flags().StringVar(&updateYear, "year", "", "new publication year")
	updateCmd.Flags().StringVar(&updatePrice, "price", "", "new price")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	// Only flags the user actually passed become part of the patch, so
	// an explicitly empty value is still "supplied" and gets validated.
	var input bookstore.UpdateInput
	if cmd.Flags().Changed("title") {
		input.Title = &updateTitle
	}
	if cmd.Flags().Changed("author") {
		input.Author = &updateAuthor
	}
	if cmd.Flags().Changed("year") {
		input.Year = &updateYear
	}
	if cmd.Flags().Changed("price") {
		input.Price = &updatePrice
	}

	printResult(cmd.OutOrStdout(), svc.UpdateBook(id, input))
	return nil
}
