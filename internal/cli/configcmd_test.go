package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
)

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		overwrite bool
		wantErr   bool
		wantOut   string
	}{
		{name: "fresh file", wantOut: "Created"},
		{name: "existing without force", existing: "continuous: true\n", wantErr: true},
		{name: "existing with force", existing: "continuous: true\n", overwrite: true, wantOut: "Created"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), config.ConfigFileName)
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0644))
			}

			var out bytes.Buffer
			err := InitConfig(&out, InitOptions{Path: path, Overwrite: tt.overwrite, NonInteractive: true})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				data, _ := os.ReadFile(path)
				assert.Equal(t, tt.existing, string(data), "existing config must not change")
				return
			}

			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOut)

			cfg, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, config.DefaultConfig(), cfg)
		})
	}
}

func TestConfigInitPath(t *testing.T) {
	local, err := configInitPath(false)
	require.NoError(t, err)
	assert.Equal(t, config.ConfigFileName, local)

	home := t.TempDir()
	t.Setenv("HOME", home)
	global, err := configInitPath(true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "sysmon", "config.yaml"), global)
}
