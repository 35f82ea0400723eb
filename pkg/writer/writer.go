// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package writer shows what a generated file changes and writes it once
// the operator agrees.
package writer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stratastor/logger"

	"github.com/stratastor/ifmigrate/internal/common"
	"github.com/stratastor/ifmigrate/internal/constants"
	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Result is the outcome of one Write call.
type Result int

const (
	ResultUnchanged Result = iota
	ResultWritten
	ResultSkipped
	ResultDryRun
)

func (r Result) String() string {
	switch r {
	case ResultUnchanged:
		return "unchanged"
	case ResultWritten:
		return "written"
	case ResultSkipped:
		return "skipped"
	case ResultDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

type Options struct {
	// Out receives diffs and previews. Defaults to os.Stdout.
	Out io.Writer
	// Confirmer defaults to HuhConfirmer.
	Confirmer Confirmer
	// DryRun shows changes without prompting or writing.
	DryRun bool
	// BackupDir, when set, receives a copy of every file before it is
	// overwritten, under <BackupDir>/<RunID>/<original path>.
	BackupDir string
	// RunID defaults to a random UUID.
	RunID string
}

type Writer struct {
	logger    logger.Logger
	out       io.Writer
	confirmer Confirmer
	dryRun    bool
	backupDir string
	runID     string
}

func New(l logger.Logger, opts Options) *Writer {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Confirmer == nil {
		opts.Confirmer = HuhConfirmer{}
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	return &Writer{
		logger:    l,
		out:       opts.Out,
		confirmer: opts.Confirmer,
		dryRun:    opts.DryRun,
		backupDir: opts.BackupDir,
		runID:     opts.RunID,
	}
}

// RunID identifies this run's backup directory.
func (w *Writer) RunID() string {
	return w.runID
}

// Write compares content with the file at path, shows the difference and
// writes it after confirmation. An identical file is left alone without
// prompting.
func (w *Writer) Write(ctx context.Context, path string, content []byte) (Result, error) {
	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return ResultSkipped, errors.Wrap(err, errors.FileReadFailed).
			WithMetadata("path", path)
	}

	if exists {
		if bytes.Equal(existing, content) {
			w.logger.Info("Configuration not changed", "path", path)
			fmt.Fprintf(w.out, "Configuration %s not changed\n", path)
			return ResultUnchanged, nil
		}

		diff, err := unifiedDiff(path, existing, content)
		if err != nil {
			return ResultSkipped, err
		}
		fmt.Fprintf(w.out, "Showing diff of %s\n", path)
		fmt.Fprint(w.out, diff)
	} else {
		fmt.Fprintf(w.out, "New configuration %s\n", path)
		fmt.Fprint(w.out, string(content))
	}

	if w.dryRun {
		w.logger.Debug("Dry run, not writing", "path", path)
		return ResultDryRun, nil
	}

	ok, err := w.confirmer.Confirm(ctx, "Write to "+path)
	if err != nil {
		return ResultSkipped, err
	}
	if !ok {
		w.logger.Info("Write declined", "path", path)
		return ResultSkipped, nil
	}

	if exists && w.backupDir != "" {
		if err := w.backup(path, existing); err != nil {
			return ResultSkipped, err
		}
	}

	if err := common.EnsureDir(filepath.Dir(path), constants.UnitDirMode); err != nil {
		return ResultSkipped, errors.Wrap(err, errors.WriterDirectoryFail).
			WithMetadata("path", path)
	}
	if err := os.WriteFile(path, content, constants.UnitFileMode); err != nil {
		return ResultSkipped, errors.Wrap(err, errors.WriterWriteFailed).
			WithMetadata("path", path)
	}

	w.logger.Info("Wrote configuration", "path", path, "bytes", len(content))
	return ResultWritten, nil
}

func (w *Writer) backup(path string, data []byte) error {
	backupDir, err := common.ExpandPath(w.backupDir)
	if err != nil {
		return errors.Wrap(err, errors.WriterBackupFailed)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, errors.WriterBackupFailed).WithMetadata("path", path)
	}
	dst := filepath.Join(backupDir, w.runID, strings.TrimPrefix(abs, string(filepath.Separator)))

	if err := common.EnsureDir(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(err, errors.WriterBackupFailed).WithMetadata("path", dst)
	}
	if err := os.WriteFile(dst, data, constants.UnitFileMode); err != nil {
		return errors.Wrap(err, errors.WriterBackupFailed).WithMetadata("path", dst)
	}

	w.logger.Info("Backed up existing file", "path", path, "backup", dst)
	return nil
}

func unifiedDiff(path string, before, after []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   "-",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", errors.Wrap(err, errors.WriterDiffFailed).WithMetadata("path", path)
	}
	return text, nil
}
