// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/backups")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "backups"), got)

	got, err = ExpandPath("/etc/systemd/network")
	require.NoError(t, err)
	assert.Equal(t, "/etc/systemd/network", got)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir, 0o755))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.False(t, FileExists(dir))
	f := filepath.Join(dir, "x.network")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	assert.True(t, FileExists(f))
}
