// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package rttables reads iproute2 rt_tables files and decides how route
// tables are referenced in generated networkd units.
package rttables

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/stratastor/logger"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Reserved iproute2 tables. They are known to networkd by name and are
// never part of a Mapping.
var reservedIDs = map[string]string{
	"local":   "255",
	"main":    "254",
	"default": "253",
	"unspec":  "0",
}

// Mapping is an ordered table name to numeric ID mapping.
type Mapping struct {
	names []string
	ids   map[string]string
}

func NewMapping() *Mapping {
	return &Mapping{ids: make(map[string]string)}
}

// Set records name -> id. A repeated name keeps its first position and
// takes the latest id.
func (m *Mapping) Set(name, id string) {
	if _, ok := m.ids[name]; !ok {
		m.names = append(m.names, name)
	}
	m.ids[name] = id
}

func (m *Mapping) ID(name string) (string, bool) {
	id, ok := m.ids[name]
	return id, ok
}

// Names returns table names in file order.
func (m *Mapping) Names() []string {
	return m.names
}

func (m *Mapping) Len() int {
	return len(m.names)
}

// IsReserved reports whether name is one of the built-in iproute2 tables.
func IsReserved(name string) bool {
	_, ok := reservedIDs[name]
	return ok
}

// Load reads an rt_tables file. A missing file yields an empty mapping.
func Load(l logger.Logger, path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.Debug("Route table file not found, assuming no custom tables", "path", path)
			return NewMapping(), nil
		}
		return nil, errors.Wrap(err, errors.RouteTableReadFailed).
			WithMetadata("path", path)
	}
	defer f.Close()

	m, err := Parse(l, f)
	if err != nil {
		return nil, errors.Wrap(err, errors.RouteTableReadFailed).
			WithMetadata("path", path)
	}

	l.Debug("Loaded route tables", "path", path, "count", m.Len())
	return m, nil
}

// Parse reads "<id>\t<name>" lines. Comments, reserved names and lines that
// do not split into exactly two tab-separated fields are skipped.
func Parse(l logger.Logger, r io.Reader) (*Mapping, error) {
	m := NewMapping()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			l.Debug("Skipping malformed route table line", "line", line)
			continue
		}

		id, name := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
		if id == "" || name == "" || IsReserved(name) {
			continue
		}
		m.Set(name, id)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
