// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package constants

// Build-time variables set via ldflags
var (
	Version   = "v0.0.1-dev" // Set via -X flag during build
	CommitSHA = "unknown"    // Set via -X flag during build
	BuildTime = "unknown"    // Set via -X flag during build
)

const (
	ToolName = "ifmigrate"

	// config
	ConfigFileName  = "ifmigrate.yml"
	ConfigEnvVar    = "IFMIGRATE_CONFIG"
	EnvPrefix       = "IFMIGRATE"
	SystemConfigDir = "/etc/ifmigrate"
	UserConfigDir   = ".ifmigrate"

	// default paths
	DefaultInterfacesPath  = "/etc/network/interfaces"
	DefaultRouteTablesPath = "/etc/iproute2/rt_tables"
	DefaultOutputDir       = "/etc/systemd/network"
	DefaultTablesConfPath  = "/etc/systemd/networkd.conf.d/tables.conf"

	// systemd-networkd accepts route table names (RouteTable= in
	// networkd.conf) starting with this version.
	TableNameMinSystemdVersion = 248

	UnitFileMode = 0o644
	UnitDirMode  = 0o755
)
