// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import "github.com/stratastor/ifmigrate/pkg/ifupdown"

const (
	dhcpNone = "no"
	dhcpV4   = "ipv4"
	dhcpV6   = "ipv6"
	dhcpBoth = "yes"
)

// mergeDHCP folds one more DHCP family into networkd's DHCP= value. The
// value only ever widens: no -> ipv4|ipv6 -> yes.
func mergeDHCP(current string, family ifupdown.Family) string {
	if current == "" {
		current = dhcpNone
	}

	switch current {
	case dhcpNone:
		if family == ifupdown.FamilyIPv6 {
			return dhcpV6
		}
		return dhcpV4
	case dhcpV4:
		if family == ifupdown.FamilyIPv6 {
			return dhcpBoth
		}
	case dhcpV6:
		if family == ifupdown.FamilyIPv4 {
			return dhcpBoth
		}
	}
	return current
}

// dhcpv4Options are copied verbatim into [DHCPv4] for inet dhcp stanzas.
var dhcpv4Options = []struct {
	key       string
	directive string
}{
	{"hostname", "Hostname"},
	{"metric", "RouteMetric"},
	{"vendor", "VendorClassIdentifier"},
	{"client", "UserClass"},
}
