package main

import (
	"github.com/spf13/cobra"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the mutation audit trail",
	Long: `Audit lists the most recent add, update, and delete
operations recorded in the store, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printAuditEntries(cmd.OutOrStdout(), svc.AuditTrail(auditLimit))
		return nil
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "maximum number of entries to show")
}
