// List command prints the full catalog.
package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books ordered by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		printBooks(cmd.OutOrStdout(), svc.ListBooks())
		return nil
	},
}
