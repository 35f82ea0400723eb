// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ifmigrate/config"
	"github.com/stratastor/ifmigrate/pkg/writer"
)

const interfaces = `auto eth0
iface eth0 inet static
    address 192.168.0.100
    netmask 255.255.255.0
    gateway 192.168.0.1
    post-up ip route add 10.10.0.0/16 via 192.168.0.254 table vpn
`

func TestConvertCommand(t *testing.T) {
	config.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))

	dir := t.TempDir()
	ifaces := filepath.Join(dir, "interfaces")
	tables := filepath.Join(dir, "rt_tables")
	output := filepath.Join(dir, "network")
	tablesConf := filepath.Join(dir, "tables.conf")
	require.NoError(t, os.WriteFile(ifaces, []byte(interfaces), 0o644))
	require.NoError(t, os.WriteFile(tables, []byte("100\tvpn\n"), 0o644))

	run := func(t *testing.T, extra ...string) string {
		t.Helper()
		var out bytes.Buffer
		cmd := NewConvertCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{
			"-i", ifaces,
			"-t", tables,
			"-o", output,
			"--tables-conf", tablesConf,
			"--systemd-version", "249",
			"--backup-dir", "",
		}, extra...))
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	t.Run("DryRun", func(t *testing.T) {
		out := run(t, "--dry-run")
		assert.Contains(t, out, "Converting "+ifaces)
		assert.Contains(t, out, "New configuration "+filepath.Join(output, "eth0.network"))
		assert.Contains(t, out, "1 stanzas, 2 files: 0 written, 0 unchanged, 0 skipped, 2 dry-run")
		_, err := os.Stat(output)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Yes", func(t *testing.T) {
		out := run(t, "--yes")
		assert.Contains(t, out, "2 written")

		data, err := os.ReadFile(filepath.Join(output, "eth0.network"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Address = 192.168.0.100/24\n")
		assert.Contains(t, string(data), "Table = vpn\n")

		conf, err := os.ReadFile(tablesConf)
		require.NoError(t, err)
		assert.Equal(t, "[Network]\nRouteTable=vpn:100\n", string(conf))
	})

	t.Run("Rerun", func(t *testing.T) {
		out := run(t, "--yes")
		assert.Contains(t, out, "0 written, 2 unchanged")
	})
}

func TestResolveOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Paths.Interfaces = "/cfg/interfaces"
	cfg.Paths.Output = "/cfg/network"
	cfg.Systemd.Version = 245
	cfg.Writer.AssumeYes = true
	cfg.Writer.BackupDir = "/cfg/backup"

	cmd := NewConvertCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-o", "/flag/network", "--systemd-version", "250"}))

	var f convertFlags
	f.output = "/flag/network"
	f.systemdVersion = 250
	opts, wopts := resolveOptions(cmd, f, cfg)

	assert.Equal(t, "/cfg/interfaces", opts.InterfacesPath)
	assert.Equal(t, "/flag/network", opts.OutputDir)
	assert.Equal(t, 250, opts.SystemdVersion)
	assert.Equal(t, "/cfg/backup", wopts.BackupDir)
	assert.Equal(t, writer.AutoConfirmer{Answer: true}, wopts.Confirmer)
}
