// Copyright 2024 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"

	"github.com/stratastor/ifmigrate/internal/constants"
)

var (
	configDir string // Directory for configuration files
	backupDir string // Directory for copies of overwritten units
)

func init() {
	if os.Geteuid() == 0 {
		configDir = constants.SystemConfigDir
	} else if homeDir, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(homeDir, constants.UserConfigDir)
	} else {
		configDir = filepath.Join(os.TempDir(), constants.UserConfigDir)
	}

	backupDir = filepath.Join(configDir, "backup")
}

// GetConfigDir returns the appropriate configuration directory
// If running as root, it returns the system config directory
// Otherwise, it returns the user config directory
func GetConfigDir() string {
	return configDir
}

// GetBackupDir returns the default directory for file backups
func GetBackupDir() string {
	return backupDir
}
