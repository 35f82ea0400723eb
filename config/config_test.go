// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ifmigrate/internal/constants"
	"github.com/stratastor/ifmigrate/pkg/errors"
)

func resetConfig() {
	once = sync.Once{}
	instance = nil
	configPath = ""
}

func TestLoadConfigDefaults(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NotNil(t, cfg)

	assert.Equal(t, constants.DefaultInterfacesPath, cfg.Paths.Interfaces)
	assert.Equal(t, constants.DefaultRouteTablesPath, cfg.Paths.RouteTables)
	assert.Equal(t, constants.DefaultOutputDir, cfg.Paths.Output)
	assert.Equal(t, constants.DefaultTablesConfPath, cfg.Paths.TablesConf)
	assert.Equal(t, 0, cfg.Systemd.Version)
	assert.False(t, cfg.Writer.AssumeYes)
	assert.Equal(t, GetBackupDir(), cfg.Writer.BackupDir)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	path := filepath.Join(t.TempDir(), "ifmigrate.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
paths:
  interfaces: /srv/interfaces
  output: /srv/network
systemd:
  version: 247
logger:
  logLevel: debug
`), 0o644))
	t.Setenv("IFMIGRATE_WRITER_ASSUMEYES", "true")

	cfg := LoadConfig(path)
	assert.Equal(t, "/srv/interfaces", cfg.Paths.Interfaces)
	assert.Equal(t, "/srv/network", cfg.Paths.Output)
	assert.Equal(t, constants.DefaultRouteTablesPath, cfg.Paths.RouteTables)
	assert.Equal(t, 247, cfg.Systemd.Version)
	assert.True(t, cfg.Writer.AssumeYes)
	assert.Equal(t, path, GetLoadedConfigPath())

	assert.Equal(t, "debug", NewLoggerConfig(cfg).LogLevel)
	assert.Equal(t, "info", NewLoggerConfig(nil).LogLevel)
}

func TestSaveConfig(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	path := filepath.Join(t.TempDir(), "nested", "ifmigrate.yml")
	require.NoError(t, SaveConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "interfaces: /etc/network/interfaces")
	assert.Contains(t, string(data), "tablesConf: /etc/systemd/networkd.conf.d/tables.conf")
	assert.Equal(t, path, GetLoadedConfigPath())

	resetConfig()
	cfg := LoadConfig(path)
	assert.Equal(t, constants.DefaultOutputDir, cfg.Paths.Output)
}

func TestReadConfigErrors(t *testing.T) {
	t.Cleanup(resetConfig)

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "ifmigrate.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("Missing", func(t *testing.T) {
		cfg, found, err := readConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, constants.DefaultOutputDir, cfg.Paths.Output)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		cfg, _, err := readConfig(write(t, "paths: [unterminated\n"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ConfigInvalid))
		assert.Equal(t, constants.DefaultInterfacesPath, cfg.Paths.Interfaces)
	})

	t.Run("WrongType", func(t *testing.T) {
		cfg, found, err := readConfig(write(t, "systemd:\n  version: latest\n"))
		require.Error(t, err)
		assert.True(t, found)
		assert.True(t, errors.HasCode(err, errors.ConfigUnmarshalFailed))
		assert.Equal(t, 0, cfg.Systemd.Version)
		assert.Equal(t, constants.DefaultOutputDir, cfg.Paths.Output)
	})
}

func TestValidate(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Systemd.Version = -1
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigValidationFailed))

	bad = *cfg
	bad.Paths.Output = ""
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=paths.output")
}

func TestSaveConfigPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}
	resetConfig()
	t.Cleanup(resetConfig)

	LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := SaveConfig(filepath.Join(dir, "ifmigrate.yml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigPermissionDenied))
}
