// Report command renders the catalog report.
package main

import (
	"github.com/spf13/cobra"
)

var (
	reportText bool
	reportFile string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a catalog report",
	Long: `Report renders the catalog statistics, top authors, year
distribution, and full book table to a file in the report directory.
The default format is HTML; pass --text for a plain text report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportText {
			printResult(cmd.OutOrStdout(), svc.GenerateTextReport(reportFile))
			return nil
		}
		printResult(cmd.OutOrStdout(), svc.GenerateHTMLReport(reportFile))
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportText, "text", false, "render plain text instead of HTML")
	reportCmd.Flags().StringVar(&reportFile, "file", "", "output filename inside the report directory")
}
