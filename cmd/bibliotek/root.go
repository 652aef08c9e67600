// Root command wiring: flags, config loading, and the service
// lifecycle shared by every subcommand.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfgalvao/bibliotek/internal/bookstore"
	"github.com/rfgalvao/bibliotek/internal/paths"
	"github.com/rfgalvao/bibliotek/pkg/types"
)

const version = "0.1.0"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagVerbose   bool
)

// svc is the service instance shared by subcommands, opened by
// PersistentPreRunE and released by PersistentPostRunE.
var svc *bookstore.Service

var rootCmd = &cobra.Command{
	Use:     "bibliotek",
	Short:   "Bibliotek is a personal-library catalog manager",
	Version: version,
	Long: `Bibliotek manages a personal book catalog in a local SQLite store,
with CSV import/export, HTML and text reports, and rolling backups
taken automatically after every mutation.`,
	PersistentPreRunE:  openService,
	PersistentPostRunE: closeService,
	SilenceUsage:       true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.bibliotek-db)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log operations to stderr")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(menuCmd)
}

// openService loads the configuration, bootstraps the directory
// layout, and opens the record store.
func openService(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	cfg, err := resolveAppConfig()
	if err != nil {
		return err
	}

	if err := paths.EnsureLayout(cfg.DataDir, cfg.BackupDir, cfg.ExportDir, cfg.ImportDir, cfg.ReportDir); err != nil {
		return err
	}

	svc, err = bookstore.NewService(cfg, newLogger())
	return err
}

// closeService releases the store. Idempotent: restore closes it early.
func closeService(cmd *cobra.Command, args []string) error {
	if svc != nil {
		return svc.Close()
	}
	return nil
}

// newLogger returns the CLI logger. Operations log to stderr only when
// --verbose is set; otherwise logs are suppressed so command output
// stays clean.
func newLogger() *slog.Logger {
	level := slog.LevelError
	if flagVerbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveAppConfig merges flags, config.yaml, and environment into the
// effective configuration.
func resolveAppConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return types.Config{}, err
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		DataDir:    dataDir,
		BackupDir:  v.GetString(cfgKeyBackupDir),
		ExportDir:  v.GetString(cfgKeyExportDir),
		ImportDir:  v.GetString(cfgKeyImportDir),
		ReportDir:  v.GetString(cfgKeyReportDir),
		MaxBackups: v.GetInt(cfgKeyMaxBackups),
	}
	cfg = fillDirDefaults(cfg)
	return cfg, cfg.Validate()
}
