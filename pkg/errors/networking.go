// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"maps"
)

const (
	DomainIfupdown   Domain = "IFUPDOWN"
	DomainRouteTable Domain = "ROUTETABLE"
	DomainNetwork    Domain = "NETWORK"
	DomainNetworkd   Domain = "NETWORKD"
)

// Network error codes (1900-1999)
const (
	// ifupdown input errors (1900-1919)
	IfupdownReadFailed      = 1900 + iota // Failed to read the interfaces file
	IfupdownStanzaMalformed               // iface line is missing attributes
)

const (
	// Route table errors (1920-1939)
	RouteTableReadFailed = 1920 + iota // Failed to read rt_tables
)

const (
	// Translation errors (1940-1969)
	NetworkAddressInvalid       = 1940 + iota // Invalid address or netmask
	NetworkBondModeInvalid                    // Unknown bond mode
	NetworkBondConfigInvalid                  // Invalid bond option value
	NetworkRoutingTableInvalid                // Route table cannot be resolved
	NetworkVLANIDInvalid                      // VLAN ID out of range
)

const (
	// networkd output model errors (1970-1999)
	NetworkdSectionShapeMismatch = 1970 + iota // Section used as both single and list
	NetworkdDecodeFailed                       // Failed to decode a unit file
	NetworkdScanFailed                         // Failed to scan the unit directory
)

func init() {
	networkErrorDefinitions := map[ErrorCode]struct {
		message  string
		domain   Domain
		exitCode int
	}{
		IfupdownReadFailed: {
			"Failed to read interfaces file",
			DomainIfupdown,
			ExitInput,
		},
		IfupdownStanzaMalformed: {
			"Malformed iface stanza",
			DomainIfupdown,
			ExitInput,
		},

		RouteTableReadFailed: {
			"Failed to read route table file",
			DomainRouteTable,
			ExitInput,
		},

		NetworkAddressInvalid: {
			"Invalid network address",
			DomainNetwork,
			ExitInput,
		},
		NetworkBondModeInvalid: {
			"Invalid bond mode",
			DomainNetwork,
			ExitInput,
		},
		NetworkBondConfigInvalid: {
			"Invalid bond configuration",
			DomainNetwork,
			ExitInput,
		},
		NetworkRoutingTableInvalid: {
			"Invalid routing table",
			DomainNetwork,
			ExitInput,
		},
		NetworkVLANIDInvalid: {
			"Invalid VLAN ID",
			DomainNetwork,
			ExitInput,
		},

		NetworkdSectionShapeMismatch: {
			"Section used with conflicting shapes",
			DomainNetworkd,
			ExitInternal,
		},
		NetworkdDecodeFailed: {
			"Failed to decode unit file",
			DomainNetworkd,
			ExitFailure,
		},
		NetworkdScanFailed: {
			"Failed to scan unit directory",
			DomainNetworkd,
			ExitFailure,
		},
	}

	maps.Copy(errorDefinitions, networkErrorDefinitions)
}
