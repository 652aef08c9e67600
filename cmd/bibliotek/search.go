// Search command finds books by title or author substring.
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchAuthorOnly bool

var searchCmd = &cobra.Command{
	Use:   "search <text>...",
	Short: "Search books by title or author",
	Long: `Search matches the text case-insensitively as a substring of the
title or the author. With --author, only authors are matched.

Example:
  bibliotek search tolkien
  bibliotek search --author "garcia marquez"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if searchAuthorOnly {
			printBooks(cmd.OutOrStdout(), svc.SearchByAuthor(query))
		} else {
			printBooks(cmd.OutOrStdout(), svc.Search(query))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchAuthorOnly, "author", false, "match authors only")
}
