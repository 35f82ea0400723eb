// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

func TestParseSystemdVersion(t *testing.T) {
	t.Run("Debian", func(t *testing.T) {
		out := "systemd 252 (252.22-1~deb12u1)\n+PAM +AUDIT +SELINUX +APPARMOR +IMA\n"
		v, err := parseSystemdVersion(out)
		require.NoError(t, err)
		assert.Equal(t, 252, v)
	})

	t.Run("Old", func(t *testing.T) {
		v, err := parseSystemdVersion("systemd 247 (247.3-7+deb11u4)")
		require.NoError(t, err)
		assert.Equal(t, 247, v)
	})

	t.Run("Garbage", func(t *testing.T) {
		for _, out := range []string{"", "bash: systemctl: command not found", "systemd two"} {
			_, err := parseSystemdVersion(out)
			require.Error(t, err, out)
			assert.True(t, errors.HasCode(err, errors.SystemdVersionUnparsable))
		}
	})
}
