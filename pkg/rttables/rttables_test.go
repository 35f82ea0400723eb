// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package rttables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stratastor/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

const sampleTables = `#
# reserved values
#
255	local
254	main
253	default
0	unspec
#
# local
#
100	vpn
200	uplink
300 spaced
400	too	many
`

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	l, err := logger.NewTag(logger.Config{LogLevel: "debug"}, "test")
	require.NoError(t, err)
	return l
}

func TestParse(t *testing.T) {
	m, err := Parse(newTestLogger(t), strings.NewReader(sampleTables))
	require.NoError(t, err)

	assert.Equal(t, []string{"vpn", "uplink"}, m.Names())
	id, ok := m.ID("uplink")
	assert.True(t, ok)
	assert.Equal(t, "200", id)

	_, ok = m.ID("main")
	assert.False(t, ok, "reserved tables are not mapped")
	_, ok = m.ID("spaced")
	assert.False(t, ok, "space separated lines are malformed")
}

func TestLoad(t *testing.T) {
	l := newTestLogger(t)

	t.Run("Missing", func(t *testing.T) {
		m, err := Load(l, filepath.Join(t.TempDir(), "rt_tables"))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("Present", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rt_tables")
		require.NoError(t, os.WriteFile(path, []byte(sampleTables), 0o644))
		m, err := Load(l, path)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := Load(l, t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.RouteTableReadFailed))
	})
}

func TestPolicy(t *testing.T) {
	m := NewMapping()
	m.Set("vpn", "100")

	assert.Equal(t, PolicyID, Decide(247))
	assert.Equal(t, PolicyName, Decide(248))
	assert.Equal(t, PolicyName, Decide(255))

	t.Run("Name", func(t *testing.T) {
		got, err := PolicyName.Resolve(m, "vpn")
		require.NoError(t, err)
		assert.Equal(t, "vpn", got)
	})

	t.Run("ID", func(t *testing.T) {
		tests := map[string]string{
			"vpn":  "100",
			"42":   "42",
			"main": "254",
		}
		for in, want := range tests {
			got, err := PolicyID.Resolve(m, in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}

		_, err := PolicyID.Resolve(m, "unknown")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.NetworkRoutingTableInvalid))
	})
}

func TestSupplemental(t *testing.T) {
	_, ok := Supplemental(NewMapping())
	assert.False(t, ok)

	m := NewMapping()
	m.Set("vpn", "100")
	m.Set("uplink", "200")
	content, ok := Supplemental(m)
	require.True(t, ok)
	assert.Equal(t, "[Network]\nRouteTable=vpn:100 uplink:200\n", string(content))
}
