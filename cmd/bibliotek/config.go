// Config loading for the bibliotek CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDataDir    = "data_dir"
	cfgKeyBackupDir  = "backup_dir"
	cfgKeyExportDir  = "export_dir"
	cfgKeyImportDir  = "import_dir"
	cfgKeyReportDir  = "report_dir"
	cfgKeyMaxBackups = "max_backups"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Bibliotek CLI configuration

# Data directory holding bookstore.db (optional; overridable by --data-dir)
# data_dir:

# Directories for backups, CSV exchange, and reports.
# Empty values default to subdirectories of the data directory.
# backup_dir:
# export_dir:
# import_dir:
# report_dir:

# Number of backup snapshots retained.
max_backups: 5
`

// loadConfig reads config.yaml from the resolved config directory
// using Viper. The config directory and a default config.yaml are
// created on first run; a missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyMaxBackups, types.DefaultMaxBackups)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// fillDirDefaults resolves empty directory settings to subdirectories
// of the data dir, giving one self-contained tree per catalog.
func fillDirDefaults(cfg types.Config) types.Config {
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(cfg.DataDir, "backups")
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = filepath.Join(cfg.DataDir, "exports")
	}
	if cfg.ImportDir == "" {
		cfg.ImportDir = filepath.Join(cfg.DataDir, "imports")
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = filepath.Join(cfg.DataDir, "reports")
	}
	return cfg
}
