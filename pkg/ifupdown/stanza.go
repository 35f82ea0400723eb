// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package ifupdown reads Debian ifupdown interfaces(5) files into
// per-interface stanzas.
package ifupdown

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Family is the address family of an iface stanza.
type Family int

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

func (f Family) String() string {
	if f == FamilyIPv6 {
		return "inet6"
	}
	return "inet"
}

// Common methods. Any other method string is carried verbatim.
const (
	MethodStatic   = "static"
	MethodDHCP     = "dhcp"
	MethodManual   = "manual"
	MethodLoopback = "loopback"
)

// Stanza is one "iface <name> <family> <method>" block and its directives.
type Stanza struct {
	Name    string
	Family  Family
	Method  string
	Line    int
	Options *Options
}

func (s *Stanza) IsIPv4() bool {
	return s.Family == FamilyIPv4
}

// Parse scans r and returns the stanzas in file order. Lines before the
// first iface line and comment lines are ignored.
func Parse(r io.Reader) ([]*Stanza, error) {
	var (
		stanzas []*Stanza
		current *Stanza
		lineno  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == "iface" {
			st, err := parseIface(fields, lineno)
			if err != nil {
				return nil, err
			}
			stanzas = append(stanzas, st)
			current = st
			continue
		}

		if current == nil {
			continue
		}
		current.Options.Add(fields[0], strings.Join(fields[1:], " "))
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.IfupdownReadFailed).
			WithMetadata("line", strconv.Itoa(lineno))
	}

	return stanzas, nil
}

// ParseFile parses the interfaces file at path.
func ParseFile(path string) ([]*Stanza, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.IfupdownReadFailed).
			WithMetadata("path", path)
	}
	defer f.Close()

	stanzas, err := Parse(f)
	if err != nil {
		if e, ok := err.(*errors.MigrateError); ok {
			return nil, e.WithMetadata("path", path)
		}
		return nil, err
	}
	return stanzas, nil
}

func parseIface(fields []string, lineno int) (*Stanza, error) {
	if len(fields) < 4 {
		return nil, errors.New(errors.IfupdownStanzaMalformed,
			"expected: iface <name> <family> <method>").
			WithMetadata("line", strconv.Itoa(lineno)).
			WithMetadata("text", strings.Join(fields, " "))
	}

	family := FamilyIPv4
	if fields[2] == "inet6" {
		family = FamilyIPv6
	}

	return &Stanza{
		Name:    fields[1],
		Family:  family,
		Method:  fields[3],
		Line:    lineno,
		Options: NewOptions(),
	}, nil
}
