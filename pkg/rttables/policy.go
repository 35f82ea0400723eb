// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package rttables

import (
	"strconv"
	"strings"

	"github.com/stratastor/ifmigrate/internal/constants"
	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Policy selects how Table= values are written into units.
type Policy int

const (
	// PolicyID writes numeric table IDs.
	PolicyID Policy = iota
	// PolicyName writes table names and relies on RouteTable= in
	// networkd.conf to resolve them.
	PolicyName
)

func (p Policy) String() string {
	if p == PolicyName {
		return "name"
	}
	return "id"
}

// Decide picks the policy for a systemd version.
func Decide(systemdVersion int) Policy {
	if systemdVersion >= constants.TableNameMinSystemdVersion {
		return PolicyName
	}
	return PolicyID
}

// Resolve turns a table reference from a post-up command into the value
// written to Table=.
func (p Policy) Resolve(m *Mapping, table string) (string, error) {
	if p == PolicyName {
		return table, nil
	}

	if _, err := strconv.ParseUint(table, 10, 32); err == nil {
		return table, nil
	}
	if id, ok := reservedIDs[table]; ok {
		return id, nil
	}
	if m != nil {
		if id, ok := m.ID(table); ok {
			return id, nil
		}
	}

	return "", errors.New(errors.NetworkRoutingTableInvalid,
		"table name not found in route table file").
		WithMetadata("table", table)
}

// Supplemental renders the networkd.conf.d snippet that declares the
// custom tables. ok is false when there is nothing to declare.
func Supplemental(m *Mapping) (content []byte, ok bool) {
	if m == nil || m.Len() == 0 {
		return nil, false
	}

	pairs := make([]string, 0, m.Len())
	for _, name := range m.Names() {
		id, _ := m.ID(name)
		pairs = append(pairs, name+":"+id)
	}

	return []byte("[Network]\nRouteTable=" + strings.Join(pairs, " ") + "\n"), true
}
