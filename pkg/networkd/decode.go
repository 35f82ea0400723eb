// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package networkd

import (
	"gopkg.in/ini.v1"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Sections that networkd allows to repeat within one unit.
var manySections = map[string]bool{
	"Address":           true,
	"Route":             true,
	"RoutingPolicyRule": true,
	"BridgeFDB":         true,
	"BridgeVLAN":        true,
	"NextHop":           true,
	"SR-IOV":            true,
}

// IsManySection reports whether networkd accepts repeated [name] sections.
func IsManySection(name string) bool {
	return manySections[name]
}

// Decode parses unit file text into a File named name. Repeated keys become
// list values; repeated or known-repeatable sections become many-shaped.
func Decode(name string, data []byte) (*File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowShadows:           true,
		AllowNonUniqueSections: true,
		IgnoreInlineComment:    true,
		KeyValueDelimiters:     "=",
	}, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.NetworkdDecodeFailed).
			WithMetadata("file", name)
	}

	counts := make(map[string]int)
	for _, sec := range cfg.Sections() {
		counts[sec.Name()]++
	}

	f := NewFile(name)
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}

		var rec *Record
		if counts[sec.Name()] > 1 || IsManySection(sec.Name()) {
			rec, err = f.Append(sec.Name())
		} else {
			rec, err = f.Single(sec.Name())
		}
		if err != nil {
			return nil, err
		}

		for _, key := range sec.Keys() {
			values := key.ValueWithShadows()
			if len(values) == 1 {
				rec.Set(key.Name(), values[0])
				continue
			}
			for _, v := range values {
				rec.Add(key.Name(), v)
			}
		}
	}

	return f, nil
}
