// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import (
	"context"
	"strconv"
	"strings"

	"github.com/stratastor/logger"

	"github.com/stratastor/ifmigrate/internal/command"
	"github.com/stratastor/ifmigrate/pkg/errors"
)

// VersionProber returns the running systemd version.
type VersionProber func(ctx context.Context, l logger.Logger) (int, error)

// ProbeSystemdVersion runs "systemctl --version".
func ProbeSystemdVersion(ctx context.Context, l logger.Logger) (int, error) {
	out, err := command.ExecCommand(ctx, l, "systemctl", "--version")
	if err != nil {
		return 0, errors.Wrap(err, errors.SystemdProbeFailed)
	}

	version, err := parseSystemdVersion(string(out))
	if err != nil {
		return 0, err
	}

	l.Info("Found systemd version", "version", version)
	return version, nil
}

// parseSystemdVersion reads the version from the first line of
// systemctl --version, e.g. "systemd 252 (252.22-1~deb12u1)".
func parseSystemdVersion(output string) (int, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	parts := strings.Fields(line)
	if len(parts) < 2 || parts[0] != "systemd" {
		return 0, errors.New(errors.SystemdVersionUnparsable, "unexpected output").
			WithMetadata("output", line)
	}

	version, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.New(errors.SystemdVersionUnparsable, "version is not a number").
			WithMetadata("output", line)
	}
	return version, nil
}
