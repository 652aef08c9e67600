// Backup commands manage the rolling snapshots of the store file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage store snapshots",
	Long: `Backup manages the timestamped copies of the store file kept
in the backup directory. Snapshots are also taken automatically after
every mutation, with only the most recent ones retained.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Take a snapshot now",
	RunE: func(cmd *cobra.Command, args []string) error {
		printResult(cmd.OutOrStdout(), svc.CreateBackup())
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshots, err := svc.ListBackups()
		if err != nil {
			return fmt.Errorf("listing backups: %w", err)
		}
		printSnapshots(cmd.OutOrStdout(), snapshots, svc.TotalBackupSize())
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore a snapshot over the live store",
	Long: `Restore copies the named snapshot over the live store file.
The current store is saved beside it with a pre_restore prefix first,
so a bad restore can itself be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		printResult(cmd.OutOrStdout(), svc.RestoreBackup(args[0]))
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)
}
