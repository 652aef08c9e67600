// Export command writes the catalog to a CSV file.
package main

import (
	"github.com/spf13/cobra"
)

var (
	exportFile  string
	exportQuery string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to CSV",
	Long: `Export writes the catalog to a CSV file in the export
directory, with columns id, title, author, publication_year, price,
created_at. With --query, only books whose title or author matches the
text are exported. Without --file, a timestamped filename is chosen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportQuery != "" {
			printResult(cmd.OutOrStdout(), svc.ExportSearchCSV(exportQuery, exportFile))
			return nil
		}
		printResult(cmd.OutOrStdout(), svc.ExportCSV(exportFile))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output filename inside the export directory")
	exportCmd.Flags().StringVar(&exportQuery, "query", "", "export only books matching this title or author text")
}
