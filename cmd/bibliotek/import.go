// Import command reads books out of a CSV file, row by row.
package main

import (
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [filename]",
	Short: "Import books from a CSV file",
	Long: `Import reads books from a CSV file. A relative filename is
looked up in the import directory; an absolute path is used directly.
Rows that fail validation are skipped and reported with their row
number; valid rows are still imported. The default filename is
books.csv.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := "books.csv"
		if len(args) == 1 {
			filename = args[0]
		}
		result, _ := svc.ImportCSV(filename)
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a sample import CSV",
	Long: `Template writes template_import.csv to the import directory
with the expected header and two sample rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printResult(cmd.OutOrStdout(), svc.WriteImportTemplate())
		return nil
	},
}
