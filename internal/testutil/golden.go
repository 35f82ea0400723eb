// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/stratastor/logger"
	"github.com/stretchr/testify/require"
)

// AssertGolden compares got with testdata/<name> and reports a unified
// diff on mismatch.
func AssertGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	want, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "reading golden file %s", name)

	if string(want) == string(got) {
		return
	}

	edits := myers.ComputeEdits("golden", string(want), string(got))
	t.Errorf("%s does not match golden output:\n%s",
		name, fmt.Sprint(gotextdiff.ToUnified(name, "output", string(want), edits)))
}

// NewLogger returns a debug logger for tests.
func NewLogger(t *testing.T) logger.Logger {
	t.Helper()
	l, err := logger.NewTag(logger.Config{LogLevel: "debug"}, "test")
	require.NoError(t, err)
	return l
}
