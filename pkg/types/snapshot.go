package types

import "time"

// Snapshot describes one backup file. Snapshots are opaque copies of
// the whole store, keyed by their timestamped filename.
type Snapshot struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Modified  time.Time `json:"modified"`
	SizeBytes int64     `json:"size_bytes"`
	SizeMiB   float64   `json:"size_mib"`
}

// BackupUsage is the total disk footprint of the backup directory.
type BackupUsage struct {
	Bytes int64   `json:"bytes"`
	MiB   float64 `json:"mib"`
}
