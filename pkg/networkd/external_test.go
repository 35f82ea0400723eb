// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package networkd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindExternallyManaged(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("10-wired.network", "[Match]\nName=eth0 eth1\n\n[Network]\nDHCP=yes\n")
	write("eth2.network", "[Match]\nName=eth2\n")
	write("20-lan.link", "[Match]\nOriginalName=eth3\n")

	found, err := FindExternallyManaged(dir, map[string]bool{"eth2.network": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"eth0": "10-wired.network",
		"eth1": "10-wired.network",
	}, found)

	t.Run("Conflicts", func(t *testing.T) {
		m := NewModel()
		for _, iface := range []string{"eth1", "eth2"} {
			rec, err := m.File(NetworkFile(iface)).Single("Match")
			require.NoError(t, err)
			rec.Set("Name", iface)
		}
		assert.Equal(t, []string{"eth1"}, Conflicts(m, found))
	})

	t.Run("MissingDir", func(t *testing.T) {
		found, err := FindExternallyManaged(filepath.Join(dir, "nope"), nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
