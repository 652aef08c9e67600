package types

import (
	"errors"
	"path/filepath"
)

// DatabaseFileName is the name of the live SQLite store inside DataDir.
const DatabaseFileName = "bookstore.db"

// DefaultMaxBackups is the retention bound applied when the
// configuration does not set one.
const DefaultMaxBackups = 5

// Config validation errors.
var (
	ErrDataDirEmpty      = errors.New("data_dir must not be empty")
	ErrMaxBackupsInvalid = errors.New("max_backups must be at least 1")
)

// Config holds the directory layout and retention policy for a catalog.
type Config struct {
	DataDir    string `json:"data_dir" yaml:"data_dir"`
	BackupDir  string `json:"backup_dir" yaml:"backup_dir"`
	ExportDir  string `json:"export_dir" yaml:"export_dir"`
	ImportDir  string `json:"import_dir" yaml:"import_dir"`
	ReportDir  string `json:"report_dir" yaml:"report_dir"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
}

// DatabasePath returns the path of the live store file.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFileName)
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.MaxBackups < 1 {
		return ErrMaxBackupsInvalid
	}
	return nil
}
