package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfgalvao/bibliotek/pkg/types"
)

func newTestManager(t *testing.T) (*Manager, types.Config) {
	t.Helper()
	cfg := types.Config{
		DataDir:    t.TempDir(),
		BackupDir:  t.TempDir(),
		MaxBackups: 5,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(cfg, logger), cfg
}

func writeStore(t *testing.T, cfg types.Config, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(cfg.DatabasePath(), []byte(content), 0o644))
}

// tickingClock returns a clock advancing one minute per call, so every
// snapshot gets a distinct sortable name.
func tickingClock() func() time.Time {
	base := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
}

func TestCreateSnapshotMissingSource(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.CreateSnapshot()

	assert.ErrorIs(t, err, types.ErrSourceMissing)
}

func TestCreateSnapshotCopiesStore(t *testing.T) {
	m, cfg := newTestManager(t)
	writeStore(t, cfg, "store-bytes")
	m.now = func() time.Time {
		return time.Date(2024, time.March, 1, 10, 30, 45, 0, time.UTC)
	}

	path, err := m.CreateSnapshot()
	require.NoError(t, err)

	assert.Equal(t, "backup_bookstore_2024-03-01_10-30-45.db", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "store-bytes", string(data))
}

func TestRetentionKeepsMostRecentFive(t *testing.T) {
	m, cfg := newTestManager(t)
	writeStore(t, cfg, "v1")
	m.now = tickingClock()

	var created []string
	for i := 0; i < 7; i++ {
		path, err := m.CreateSnapshot()
		require.NoError(t, err)
		created = append(created, filepath.Base(path))
	}

	snapshots, err := m.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, snapshots, 5, "retention bound is 5")

	// The retained snapshots are the 5 most recently created, newest first.
	for i, snapshot := range snapshots {
		assert.Equal(t, created[len(created)-1-i], snapshot.Name)
	}
}

func TestRetentionFewerThanBound(t *testing.T) {
	m, cfg := newTestManager(t)
	writeStore(t, cfg, "v1")
	m.now = tickingClock()

	for i := 0; i < 3; i++ {
		_, err := m.CreateSnapshot()
		require.NoError(t, err)
	}

	snapshots, err := m.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, snapshots, 3)
}

func TestListSnapshotsEmptyDir(t *testing.T) {
	m, _ := newTestManager(t)

	snapshots, err := m.ListSnapshots()

	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestListSnapshotsReportsSizes(t *testing.T) {
	m, cfg := newTestManager(t)
	writeStore(t, cfg, "0123456789")
	m.now = tickingClock()

	_, err := m.CreateSnapshot()
	require.NoError(t, err)

	snapshots, err := m.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, int64(10), snapshots[0].SizeBytes)
	assert.Equal(t, 0.0, snapshots[0].SizeMiB, "10 bytes round to 0.00 MiB")
	assert.False(t, snapshots[0].Modified.IsZero())
}

func TestListSnapshotsIgnoresForeignFiles(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, os.MkdirAll(m.backupDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(m.backupDir, "notes.txt"), []byte("x"), 0o644))

	snapshots, err := m.ListSnapshots()

	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestRestoreOverwritesLiveStore(t *testing.T) {
	m, cfg := newTestManager(t)
	writeStore(t, cfg, "old-state")
	m.now = tickingClock()

	path, err := m.CreateSnapshot()
	require.NoError(t, err)

	writeStore(t, cfg, "new-state")
	require.NoError(t, m.Restore(filepath.Base(path)))

	data, err := os.ReadFile(cfg.DatabasePath())
	require.NoError(t, err)
	assert.Equal(t, "old-state", string(data))

	// The overwritten store was saved as a pre-restore copy first.
	matches, err := filepath.Glob(filepath.Join(cfg.DataDir, "pre_restore_*.db"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	saved, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "new-state", string(saved))
}

func TestRestoreUnknownSnapshot(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.Restore("backup_bookstore_1999-01-01_00-00-00.db")

	assert.ErrorIs(t, err, types.ErrSnapshotMissing)
}

func TestTotalSize(t *testing.T) {
	m, cfg := newTestManager(t)
	m.now = tickingClock()

	for i := 0; i < 3; i++ {
		writeStore(t, cfg, fmt.Sprintf("%04d", i))
		_, err := m.CreateSnapshot()
		require.NoError(t, err)
	}

	usage := m.TotalSize()

	assert.Equal(t, int64(12), usage.Bytes)
	assert.Equal(t, 0.0, usage.MiB)
}

func TestTotalSizeEmpty(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Equal(t, types.BackupUsage{}, m.TotalSize())
}

func TestNewManagerDefaults(t *testing.T) {
	dataDir := t.TempDir()
	m := NewManager(types.Config{DataDir: dataDir}, nil)

	assert.Equal(t, filepath.Join(dataDir, "backups"), m.backupDir)
	assert.Equal(t, types.DefaultMaxBackups, m.maxBackups)
}
