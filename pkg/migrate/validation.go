// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// The validators below never block a conversion. ifupdown accepted the
// input, so the projector copies values through and reports anything
// suspicious as a warning.

// validateIPAddressFormat validates IP address format (supports both single IP and CIDR)
func validateIPAddressFormat(address string) error {
	if address == "" {
		return fmt.Errorf("IP address cannot be empty")
	}

	if strings.Contains(address, "/") {
		if _, _, err := net.ParseCIDR(address); err != nil {
			return fmt.Errorf("invalid CIDR notation: %v", err)
		}
		return nil
	}

	if net.ParseIP(address) == nil {
		return fmt.Errorf("invalid IP address: %s", address)
	}
	return nil
}

var macPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`), // XX:XX:XX:XX:XX:XX or XX-XX-XX-XX-XX-XX
	regexp.MustCompile(`^([0-9A-Fa-f]{4}\.){2}([0-9A-Fa-f]{4})$`),   // XXXX.XXXX.XXXX
	regexp.MustCompile(`^([0-9A-Fa-f]{12})$`),                       // XXXXXXXXXXXX
}

// validateMACAddressFormat validates MAC address format
func validateMACAddressFormat(mac string) error {
	if mac == "" {
		return fmt.Errorf("MAC address cannot be empty")
	}

	for _, p := range macPatterns {
		if p.MatchString(mac) {
			return nil
		}
	}

	return fmt.Errorf("invalid MAC address format: %s", mac)
}

// validateVLANID validates VLAN ID
func validateVLANID(vlanID int) error {
	if vlanID < 1 || vlanID > 4094 {
		return errors.New(errors.NetworkVLANIDInvalid, "must be between 1 and 4094").
			WithMetadata("vlan_id", strconv.Itoa(vlanID))
	}
	return nil
}

// validateMTU validates MTU value
func validateMTU(mtu string) error {
	n, err := strconv.Atoi(mtu)
	if err != nil {
		return fmt.Errorf("invalid MTU: %q is not a number", mtu)
	}
	if n < 68 || n > 65536 {
		return fmt.Errorf("invalid MTU: %d (must be between 68 and 65536)", n)
	}
	return nil
}

// validateRouteMetric validates route metric
func validateRouteMetric(metric string) error {
	if _, err := strconv.ParseUint(metric, 10, 32); err != nil {
		return fmt.Errorf("invalid route metric: %q (must be between 0 and 4294967295)", metric)
	}
	return nil
}
