// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package networkd

import (
	"fmt"
	"strings"

	"github.com/stratastor/ifmigrate/internal/constants"
)

// RenderOptions controls the comment header of rendered units.
type RenderOptions struct {
	// Source is the interfaces file the units were generated from.
	Source string
	// Tool names the generator on the second header line.
	Tool string
}

// DefaultRenderOptions returns the header used for /etc/network/interfaces.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Source: constants.DefaultInterfacesPath,
		Tool:   constants.ToolName,
	}
}

// Render writes f as a unit file. Sections and keys keep insertion order,
// list values repeat their key and many-shaped sections repeat their
// header per record.
func Render(f *File, opts RenderOptions) []byte {
	if opts.Source == "" {
		opts.Source = constants.DefaultInterfacesPath
	}
	if opts.Tool == "" {
		opts.Tool = constants.ToolName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Generated from %s\n", opts.Source)
	fmt.Fprintf(&b, "# Using %s\n", opts.Tool)

	for _, s := range f.Sections() {
		for _, r := range s.Records {
			writeRecord(&b, s.Name, r)
		}
	}

	return []byte(b.String())
}

// RenderAll renders every file of m keyed by file name.
func RenderAll(m *Model, opts RenderOptions) map[string][]byte {
	out := make(map[string][]byte, m.Len())
	for _, f := range m.Files() {
		out[f.Name] = Render(f, opts)
	}
	return out
}

func writeRecord(b *strings.Builder, section string, r *Record) {
	fmt.Fprintf(b, "[%s]\n", section)
	for _, key := range r.Keys() {
		for _, v := range r.List(key) {
			fmt.Fprintf(b, "%s = %s\n", key, v)
		}
	}
	b.WriteString("\n")
}
