// Add command creates a new book record.
package main

import (
	"github.com/spf13/cobra"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

var (
	addTitle  string
	addAuthor string
	addYear   string
	addPrice  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Long: `Add validates the candidate fields, stores the book, and takes an
automatic backup.

Example:
  bibliotek add --title "The Hobbit" --author "J.R.R. Tolkien" --year 1937 --price 54.00`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "book title (required)")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "author name (required)")
	addCmd.Flags().StringVar(&addYear, "year", "", "publication year (required)")
	addCmd.Flags().StringVar(&addPrice, "price", "", "price (required)")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("author")
	_ = addCmd.MarkFlagRequired("year")
	_ = addCmd.MarkFlagRequired("price")
}

func runAdd(cmd *cobra.Command, args []string) error {
	result, book := svc.AddBook(addTitle, addAuthor, addYear, addPrice)
	printResult(cmd.OutOrStdout(), result)
	if result.OK {
		printBooks(cmd.OutOrStdout(), []*types.Book{book})
	}
	return nil
}
