/*
 * Copyright 2024-2025 Raamsri Kumar <raam@tinkershack.in>
 * Copyright 2024-2025 The StrataSTOR Authors and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package errors

const (
	DomainConfig  Domain = "CONFIG"
	DomainCommand Domain = "CMD"
	DomainSystem  Domain = "SYSTEM"
	DomainSystemd Domain = "SYSTEMD"
	DomainWriter  Domain = "WRITER"
)

// ErrorCode represents unique error identifiers
type ErrorCode int

// Domain represents the subsystem where the error originated
type Domain string

// Process exit codes attached to error definitions. The CLI exits with the
// code of the error that ended the run.
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitInput    = 3
	ExitSystem   = 4
	ExitInternal = 70
)

type MigrateError struct {
	Code    ErrorCode `json:"code"`
	Domain  Domain    `json:"domain"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`

	ExitCode int `json:"-"`

	// Metadata carries the input that triggered the error: file paths,
	// line numbers, offending values. It is printed with the error and
	// attached to log lines.
	Metadata map[string]string `json:"metadata,omitempty"`

	cause error
}

// Error code ranges:
// 1000-1099: Configuration errors
// 1300-1399: Command execution
// 1400-1449: System errors
// 1450-1499: systemd probe errors
// 1500-1599: Writer errors
// 1900-1999: Network translation errors (see networking.go)
const (
	// Configuration Errors (1000-1099)
	ConfigNotFound           = 1000 + iota // Config file not found
	ConfigInvalid                          // Invalid config format
	ConfigLoadFailed                       // Failed to load config
	ConfigWriteFailed                      // Failed to write config
	ConfigPermissionDenied                 // Permission denied accessing config
	ConfigDirectoryError                   // Config directory error
	ConfigValidationFailed                 // Config validation failed
	ConfigMarshalFailed                    // Config serialization failed
	ConfigUnmarshalFailed                  // Config deserialization failed
)

const (
	// Command Execution Errors (1300-1399)
	CommandNotFound     = 1300 + iota // Command not found
	CommandExecution                  // Command execution failed
	CommandTimeout                    // Command timed out
	CommandPermission                 // Permission denied
	CommandInvalidInput               // Invalid command input
)

const (
	// System Errors (1400-1449)
	FileReadFailed = 1400 + iota // Failed to read a file
)

const (
	// systemd Errors (1450-1499)
	SystemdProbeFailed       = 1450 + iota // systemctl --version failed
	SystemdVersionUnparsable               // systemctl output did not carry a version
)

const (
	// Writer Errors (1500-1599)
	WriterWriteFailed   = 1500 + iota // Failed to write a unit file
	WriterBackupFailed                // Failed to back up an existing file
	WriterPromptFailed                // Confirmation prompt failed
	WriterDiffFailed                  // Failed to compute the diff
	WriterDirectoryFail               // Failed to create the destination directory
)

var errorDefinitions = map[ErrorCode]struct {
	message  string
	domain   Domain
	exitCode int
}{
	// Configuration error definitions
	ConfigNotFound: {
		"Configuration file not found",
		DomainConfig,
		ExitUsage,
	},
	ConfigInvalid: {
		"Invalid configuration",
		DomainConfig,
		ExitUsage,
	},
	ConfigLoadFailed: {
		"Failed to load configuration",
		DomainConfig,
		ExitUsage,
	},
	ConfigWriteFailed: {
		"Failed to write configuration",
		DomainConfig,
		ExitFailure,
	},
	ConfigPermissionDenied: {
		"Permission denied accessing configuration",
		DomainConfig,
		ExitFailure,
	},
	ConfigDirectoryError: {
		"Configuration directory error",
		DomainConfig,
		ExitFailure,
	},
	ConfigValidationFailed: {
		"Configuration validation failed",
		DomainConfig,
		ExitUsage,
	},
	ConfigMarshalFailed: {
		"Failed to serialize configuration",
		DomainConfig,
		ExitInternal,
	},
	ConfigUnmarshalFailed: {
		"Failed to parse configuration",
		DomainConfig,
		ExitUsage,
	},

	// Command error definitions
	CommandNotFound: {
		"Command not found",
		DomainCommand,
		ExitSystem,
	},
	CommandExecution: {
		"Command execution failed",
		DomainCommand,
		ExitSystem,
	},
	CommandTimeout: {
		"Command timed out",
		DomainCommand,
		ExitSystem,
	},
	CommandPermission: {
		"Permission denied executing command",
		DomainCommand,
		ExitSystem,
	},
	CommandInvalidInput: {
		"Invalid command input",
		DomainCommand,
		ExitInternal,
	},

	// System error definitions
	FileReadFailed: {
		"Failed to read file",
		DomainSystem,
		ExitInput,
	},

	// systemd error definitions
	SystemdProbeFailed: {
		"Failed to determine the systemd version",
		DomainSystemd,
		ExitSystem,
	},
	SystemdVersionUnparsable: {
		"Unrecognized systemctl --version output",
		DomainSystemd,
		ExitSystem,
	},

	// Writer error definitions
	WriterWriteFailed: {
		"Failed to write file",
		DomainWriter,
		ExitFailure,
	},
	WriterBackupFailed: {
		"Failed to back up existing file",
		DomainWriter,
		ExitFailure,
	},
	WriterPromptFailed: {
		"Confirmation prompt failed",
		DomainWriter,
		ExitFailure,
	},
	WriterDiffFailed: {
		"Failed to compute diff",
		DomainWriter,
		ExitInternal,
	},
	WriterDirectoryFail: {
		"Failed to create destination directory",
		DomainWriter,
		ExitFailure,
	},
}
