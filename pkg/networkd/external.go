// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package networkd

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// FindExternallyManaged scans dir for .network units that are not about to
// be written (generated holds the file names of this run) and returns the
// interface names they match, mapped to the claiming file. Glob patterns in
// Name= are returned as written. A missing directory yields an empty map.
func FindExternallyManaged(dir string, generated map[string]bool) (map[string]string, error) {
	result := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, errors.Wrap(err, errors.NetworkdScanFailed).
			WithMetadata("dir", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".network") {
			continue
		}
		if generated[entry.Name()] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrap(err, errors.NetworkdScanFailed).
				WithMetadata("file", name)
		}

		f, err := Decode(name, data)
		if err != nil {
			return nil, err
		}

		for _, rec := range f.Records("Match") {
			for _, v := range rec.List("Name") {
				for _, iface := range strings.Fields(v) {
					if _, seen := result[iface]; !seen {
						result[iface] = name
					}
				}
			}
		}
	}

	return result, nil
}

// Conflicts returns the interfaces configured by m that are already
// claimed in external, sorted by name.
func Conflicts(m *Model, external map[string]string) []string {
	var out []string
	for _, f := range m.Files() {
		for _, rec := range f.Records("Match") {
			for _, iface := range rec.List("Name") {
				if _, ok := external[iface]; ok {
					out = append(out, iface)
				}
			}
		}
	}
	sort.Strings(out)
	return out
}
