// Package backup creates, lists, restores, and prunes timestamped
// file-level snapshots of the live store.
package backup

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

// Snapshot file naming. The timestamp layouts sort lexically, so the
// filename doubles as the creation-order key.
const (
	snapshotPrefix     = "backup_bookstore_"
	snapshotExt        = ".db"
	snapshotTimeLayout = "2006-01-02_15-04-05"

	preRestorePrefix     = "pre_restore_"
	preRestoreTimeLayout = "20060102_150405"
)

// Manager snapshots the store file into a backup directory with a
// bounded retention policy.
type Manager struct {
	sourceDB   string
	backupDir  string
	maxBackups int
	logger     *slog.Logger
	now        func() time.Time
}

// NewManager builds a Manager for the store described by cfg. An empty
// BackupDir defaults to a "backups" directory beside the data dir.
func NewManager(cfg types.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	backupDir := cfg.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(cfg.DataDir, "backups")
	}
	maxBackups := cfg.MaxBackups
	if maxBackups < 1 {
		maxBackups = types.DefaultMaxBackups
	}
	return &Manager{
		sourceDB:   cfg.DatabasePath(),
		backupDir:  backupDir,
		maxBackups: maxBackups,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateSnapshot copies the live store into the backup directory under
// a timestamped name. Existing snapshots are pruned down to
// maxBackups-1 first, so at most maxBackups remain afterwards.
// Fails with ErrSourceMissing when there is no store file yet.
func (m *Manager) CreateSnapshot() (string, error) {
	if _, err := os.Stat(m.sourceDB); err != nil {
		if os.IsNotExist(err) {
			return "", types.ErrSourceMissing
		}
		return "", fmt.Errorf("stat store file: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	m.prune(m.maxBackups - 1)

	name := snapshotPrefix + m.now().Format(snapshotTimeLayout) + snapshotExt
	path := filepath.Join(m.backupDir, name)
	if err := copyFile(m.sourceDB, path); err != nil {
		return "", fmt.Errorf("copying store to %s: %w", name, err)
	}

	m.logger.Info("snapshot created", "name", name)
	return path, nil
}

// ListSnapshots returns the snapshots in the backup directory, newest
// first. A missing directory yields an empty list.
func (m *Manager) ListSnapshots() ([]types.Snapshot, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup dir: %w", err)
	}

	var snapshots []types.Snapshot
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			m.logger.Error("stat snapshot failed", "name", name, "error", err)
			continue
		}
		snapshots = append(snapshots, types.Snapshot{
			Name:      name,
			Path:      filepath.Join(m.backupDir, name),
			Modified:  info.ModTime(),
			SizeBytes: info.Size(),
			SizeMiB:   roundMiB(info.Size()),
		})
	}

	// Timestamped names sort lexically by creation time.
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name > snapshots[j].Name
	})
	return snapshots, nil
}

// Restore copies the named snapshot over the live store. The current
// store, if present, is first saved beside it as a timestamped
// pre-restore copy so a bad restore is itself recoverable.
func (m *Manager) Restore(name string) error {
	snapshotPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(snapshotPath); err != nil {
		if os.IsNotExist(err) {
			return types.ErrSnapshotMissing
		}
		return fmt.Errorf("stat snapshot: %w", err)
	}

	if _, err := os.Stat(m.sourceDB); err == nil {
		preName := preRestorePrefix + m.now().Format(preRestoreTimeLayout) + snapshotExt
		prePath := filepath.Join(filepath.Dir(m.sourceDB), preName)
		if err := copyFile(m.sourceDB, prePath); err != nil {
			return fmt.Errorf("saving pre-restore copy: %w", err)
		}
		m.logger.Info("pre-restore copy saved", "name", preName)
	}

	if err := copyFile(snapshotPath, m.sourceDB); err != nil {
		return fmt.Errorf("restoring %s: %w", name, err)
	}

	m.logger.Info("snapshot restored", "name", name)
	return nil
}

// TotalSize sums the sizes of all snapshots.
func (m *Manager) TotalSize() types.BackupUsage {
	snapshots, err := m.ListSnapshots()
	if err != nil {
		m.logger.Error("total size failed", "error", err)
		return types.BackupUsage{}
	}

	var total int64
	for _, snapshot := range snapshots {
		total += snapshot.SizeBytes
	}
	return types.BackupUsage{Bytes: total, MiB: roundMiB(total)}
}

// prune deletes the oldest snapshots until at most keep remain.
// Deletion failures are logged and skipped; a stuck file must not
// block the new snapshot.
func (m *Manager) prune(keep int) {
	if keep < 0 {
		keep = 0
	}
	snapshots, err := m.ListSnapshots()
	if err != nil {
		m.logger.Error("prune listing failed", "error", err)
		return
	}
	for _, old := range snapshots[min(keep, len(snapshots)):] {
		if err := os.Remove(old.Path); err != nil {
			m.logger.Error("prune failed", "name", old.Name, "error", err)
			continue
		}
		m.logger.Info("old snapshot removed", "name", old.Name)
	}
}

// roundMiB converts bytes to mebibytes rounded to two decimals.
func roundMiB(bytes int64) float64 {
	return math.Round(float64(bytes)/(1024*1024)*100) / 100
}

// copyFile copies src to dst, truncating any existing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
