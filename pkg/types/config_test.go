package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid config",
			config: Config{DataDir: "/tmp/data", MaxBackups: 5},
		},
		{
			name:    "empty data dir rejected",
			config:  Config{MaxBackups: 5},
			wantErr: ErrDataDirEmpty,
		},
		{
			name:    "zero max backups rejected",
			config:  Config{DataDir: "/tmp/data"},
			wantErr: ErrMaxBackupsInvalid,
		},
		{
			name:    "negative max backups rejected",
			config:  Config{DataDir: "/tmp/data", MaxBackups: -1},
			wantErr: ErrMaxBackupsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDatabasePath(t *testing.T) {
	c := Config{DataDir: "/var/lib/bibliotek"}
	assert.Equal(t, filepath.Join("/var/lib/bibliotek", DatabaseFileName), c.DatabasePath())
}
