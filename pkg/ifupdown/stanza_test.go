// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package ifupdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

const sampleInterfaces = `# The loopback network interface
auto lo
iface lo inet loopback

auto eth0
iface eth0 inet static
    address 192.168.0.2
    netmask 255.255.255.0
    gateway 192.168.0.1
    post-up ip route add 10.0.0.0/8 via 192.168.0.254
    post-up   ip   rule  add from 192.168.0.2 table vpn

iface eth0 inet6 dhcp
	hostname box
`

func TestParse(t *testing.T) {
	stanzas, err := Parse(strings.NewReader(sampleInterfaces))
	require.NoError(t, err)
	require.Len(t, stanzas, 3)

	t.Run("Loopback", func(t *testing.T) {
		lo := stanzas[0]
		assert.Equal(t, "lo", lo.Name)
		assert.Equal(t, FamilyIPv4, lo.Family)
		assert.Equal(t, MethodLoopback, lo.Method)
		assert.Equal(t, 3, lo.Line)
		// "auto eth0" follows the lo stanza and lands there as a directive
		assert.Equal(t, []string{"auto"}, lo.Options.Keys())
	})

	t.Run("Static", func(t *testing.T) {
		eth0 := stanzas[1]
		assert.Equal(t, "eth0", eth0.Name)
		assert.True(t, eth0.IsIPv4())
		assert.Equal(t, MethodStatic, eth0.Method)

		addr, ok := eth0.Options.Get("address")
		require.True(t, ok)
		assert.Equal(t, "192.168.0.2", addr)

		assert.Equal(t, []string{
			"ip route add 10.0.0.0/8 via 192.168.0.254",
			"ip rule add from 192.168.0.2 table vpn",
		}, eth0.Options.All("post-up"))
		assert.Equal(t,
			[]string{"address", "netmask", "gateway", "post-up"},
			eth0.Options.Keys())
	})

	t.Run("SelectInterleavesAliases", func(t *testing.T) {
		st, err := Parse(strings.NewReader("iface eth1 inet manual\n" +
			"  up one\n  post-up two\n  mtu 1500\n  up three\n"))
		require.NoError(t, err)
		require.Len(t, st, 1)

		opts := st[0].Options
		assert.Equal(t, []string{"one", "two", "three"}, opts.Select("post-up", "up"))
		assert.Equal(t, []string{"one", "three"}, opts.All("up"))
		assert.Empty(t, opts.Select("pre-up"))
	})

	t.Run("IPv6", func(t *testing.T) {
		v6 := stanzas[2]
		assert.Equal(t, FamilyIPv6, v6.Family)
		assert.Equal(t, "inet6", v6.Family.String())
		assert.Equal(t, MethodDHCP, v6.Method)
		assert.True(t, v6.Options.Has("hostname"))
		assert.False(t, v6.Options.Has("address"))
	})
}

func TestParseEdgeCases(t *testing.T) {
	t.Run("DirectivesBeforeFirstIface", func(t *testing.T) {
		stanzas, err := Parse(strings.NewReader("address 10.0.0.1\nsource /etc/network/interfaces.d/*\n"))
		require.NoError(t, err)
		assert.Empty(t, stanzas)
	})

	t.Run("UnknownFamilyIsIPv4", func(t *testing.T) {
		stanzas, err := Parse(strings.NewReader("iface eth0 ipx static\n"))
		require.NoError(t, err)
		require.Len(t, stanzas, 1)
		assert.Equal(t, FamilyIPv4, stanzas[0].Family)
	})

	t.Run("MethodKeptVerbatim", func(t *testing.T) {
		stanzas, err := Parse(strings.NewReader("iface ppp0 inet ppp\n"))
		require.NoError(t, err)
		assert.Equal(t, "ppp", stanzas[0].Method)
	})

	t.Run("KeyWithoutValue", func(t *testing.T) {
		stanzas, err := Parse(strings.NewReader("iface eth0 inet manual\n  bond-slaves\n"))
		require.NoError(t, err)
		v, ok := stanzas[0].Options.Get("bond-slaves")
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("MalformedIface", func(t *testing.T) {
		_, err := Parse(strings.NewReader("iface eth0\n  address 10.0.0.1\n\niface eth0 inet\n"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.IfupdownStanzaMalformed))
		assert.Contains(t, err.Error(), "line=1")
	})

	t.Run("Empty", func(t *testing.T) {
		stanzas, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, stanzas)
	})
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interfaces")
	require.NoError(t, os.WriteFile(path, []byte(sampleInterfaces), 0o644))

	stanzas, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, stanzas, 3)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.IfupdownReadFailed))
}
