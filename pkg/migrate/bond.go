// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import (
	"slices"
	"strconv"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Bonding driver modes, indexed by their numeric value.
var bondModes = []string{
	"balance-rr",
	"active-backup",
	"balance-xor",
	"broadcast",
	"802.3ad",
	"balance-tlb",
	"balance-alb",
}

// ifupdown expresses the LACP rate as the LACPDU interval in seconds.
var lacpRates = map[string]string{
	"30": "slow",
	"1":  "fast",
}

// bondMode maps a bond-mode value to networkd's Mode=. Both the numeric
// index and the mode name are accepted.
func bondMode(value string) (string, error) {
	if n, err := strconv.Atoi(value); err == nil {
		if n >= 0 && n < len(bondModes) {
			return bondModes[n], nil
		}
	} else if slices.Contains(bondModes, value) {
		return value, nil
	}

	return "", errors.New(errors.NetworkBondModeInvalid,
		"bond-mode must be 0-6 or a bonding mode name").
		WithMetadata("bond-mode", value)
}

// bondMIIMonitor converts bond-miimon milliseconds to seconds.
func bondMIIMonitor(value string) (string, error) {
	ms, err := strconv.ParseFloat(value, 64)
	if err != nil || ms < 0 {
		return "", errors.New(errors.NetworkBondConfigInvalid,
			"bond-miimon must be a number of milliseconds").
			WithMetadata("bond-miimon", value)
	}
	return strconv.FormatFloat(ms/1000, 'f', -1, 64), nil
}

// bondLACPRate maps bond-lacp-rate to LACPTransmitRate=.
func bondLACPRate(value string) (string, error) {
	if rate, ok := lacpRates[value]; ok {
		return rate, nil
	}
	if value == "slow" || value == "fast" {
		return value, nil
	}

	return "", errors.New(errors.NetworkBondConfigInvalid,
		"unsupported bond-lacp-rate, expected 30 (slow) or 1 (fast)").
		WithMetadata("bond-lacp-rate", value)
}
