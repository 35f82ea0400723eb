// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import (
	"net"
	"strconv"
	"strings"

	"github.com/stratastor/logger"

	"github.com/stratastor/ifmigrate/pkg/errors"
	"github.com/stratastor/ifmigrate/pkg/ifupdown"
	"github.com/stratastor/ifmigrate/pkg/networkd"
	"github.com/stratastor/ifmigrate/pkg/rttables"
)

// Projector applies ifupdown stanzas to a networkd model.
type Projector struct {
	logger logger.Logger
	policy rttables.Policy
	tables *rttables.Mapping
}

func NewProjector(l logger.Logger, policy rttables.Policy, tables *rttables.Mapping) *Projector {
	if tables == nil {
		tables = rttables.NewMapping()
	}
	return &Projector{logger: l, policy: policy, tables: tables}
}

type projection func(st *ifupdown.Stanza, m *networkd.Model, network *networkd.File) error

// Project merges one stanza into m. Directives are inspected in a fixed
// order so that section and key order in the output is deterministic.
func (p *Projector) Project(st *ifupdown.Stanza, m *networkd.Model) error {
	network := m.File(networkd.NetworkFile(st.Name))
	match, err := network.Single("Match")
	if err != nil {
		return p.annotate(st, err)
	}
	match.Set("Name", st.Name)

	steps := []projection{
		p.projectAddresses,
		p.projectAcceptRA,
		p.projectGateways,
		p.projectLink,
		p.projectVLAN,
		p.projectBond,
		p.projectCommands,
		p.projectDHCP,
	}
	for _, step := range steps {
		if err := step(st, m, network); err != nil {
			return p.annotate(st, err)
		}
	}

	return nil
}

func (p *Projector) annotate(st *ifupdown.Stanza, err error) error {
	if e, ok := err.(*errors.MigrateError); ok {
		return e.WithMetadata("interface", st.Name).
			WithMetadata("line", strconv.Itoa(st.Line))
	}
	return err
}

func (p *Projector) warn(st *ifupdown.Stanza, msg string, err error) {
	p.logger.Warn(msg, "interface", st.Name, "line", st.Line, "err", err)
}

func (p *Projector) projectAddresses(st *ifupdown.Stanza, _ *networkd.Model, network *networkd.File) error {
	netmask, hasMask := st.Options.Get("netmask")

	for _, addr := range st.Options.All("address") {
		if hasMask && !strings.Contains(addr, "/") {
			prefix, err := prefixLength(netmask)
			if err != nil {
				return err
			}
			addr = addr + "/" + prefix
		}
		if err := validateIPAddressFormat(addr); err != nil {
			p.warn(st, "Suspicious address, copying as is", err)
		}

		rec, err := network.Append("Address")
		if err != nil {
			return err
		}
		rec.Set("Address", addr)

		if st.Method != ifupdown.MethodStatic {
			continue
		}
		if v, ok := st.Options.Get("scope"); ok {
			rec.Set("Scope", v)
		}
		if v, ok := st.Options.Get("pointopoint"); ok {
			rec.Set("Peer", v)
		}
		if v, ok := st.Options.Get("metric"); ok {
			if err := validateRouteMetric(v); err != nil {
				p.warn(st, "Suspicious metric, copying as is", err)
			}
			rec.Set("RouteMetric", v)
		}
	}

	return nil
}

// prefixLength accepts a dotted IPv4 netmask or a bare prefix length.
func prefixLength(netmask string) (string, error) {
	if n, err := strconv.Atoi(netmask); err == nil {
		if n < 0 || n > 128 {
			return "", errors.New(errors.NetworkAddressInvalid, "prefix length out of range").
				WithMetadata("netmask", netmask)
		}
		return strconv.Itoa(n), nil
	}

	ip := net.ParseIP(netmask).To4()
	if ip == nil {
		return "", errors.New(errors.NetworkAddressInvalid, "netmask is not an IPv4 mask").
			WithMetadata("netmask", netmask)
	}
	ones, bits := net.IPMask(ip).Size()
	if bits == 0 {
		return "", errors.New(errors.NetworkAddressInvalid, "netmask is not contiguous").
			WithMetadata("netmask", netmask)
	}
	return strconv.Itoa(ones), nil
}

func (p *Projector) projectAcceptRA(st *ifupdown.Stanza, _ *networkd.Model, network *networkd.File) error {
	if st.Method != ifupdown.MethodStatic || st.IsIPv4() {
		return nil
	}
	rec, err := network.Single("Network")
	if err != nil {
		return err
	}
	rec.Set("IPv6AcceptRA", "no")
	return nil
}

func (p *Projector) projectGateways(st *ifupdown.Stanza, _ *networkd.Model, network *networkd.File) error {
	gateways := st.Options.All("gateway")
	if len(gateways) == 0 {
		return nil
	}
	rec, err := network.Single("Network")
	if err != nil {
		return err
	}
	for _, gw := range gateways {
		if err := validateIPAddressFormat(gw); err != nil {
			p.warn(st, "Suspicious gateway, copying as is", err)
		}
		rec.Add("Gateway", gw)
	}
	return nil
}

func (p *Projector) projectLink(st *ifupdown.Stanza, _ *networkd.Model, network *networkd.File) error {
	if hw, ok := st.Options.Get("hwaddress"); ok {
		if mac, ok := etherAddress(hw); ok {
			if err := validateMACAddressFormat(mac); err != nil {
				p.warn(st, "Suspicious MAC address, copying as is", err)
			}
			rec, err := network.Single("Link")
			if err != nil {
				return err
			}
			rec.Set("MACAddress", mac)
		} else {
			p.logger.Debug("Ignoring non-ethernet hwaddress", "interface", st.Name, "hwaddress", hw)
		}
	}

	if mtu, ok := st.Options.Get("mtu"); ok {
		if err := validateMTU(mtu); err != nil {
			p.warn(st, "Suspicious MTU, copying as is", err)
		}
		rec, err := network.Single("Link")
		if err != nil {
			return err
		}
		rec.Set("MTUBytes", mtu)
	}

	return nil
}

// etherAddress extracts the MAC from "ether <mac>". A lone MAC, as newer
// ifupdown accepts, is taken too.
func etherAddress(hw string) (string, bool) {
	fields := strings.Fields(hw)
	switch {
	case len(fields) >= 2 && fields[0] == "ether":
		return fields[1], true
	case len(fields) == 1 && validateMACAddressFormat(fields[0]) == nil:
		return fields[0], true
	}
	return "", false
}

func (p *Projector) projectVLAN(st *ifupdown.Stanza, m *networkd.Model, _ *networkd.File) error {
	parent, id, ok := splitVLAN(st.Name)
	if !ok {
		return nil
	}
	if err := validateVLANID(id); err != nil {
		p.warn(st, "VLAN ID out of range", err)
	}

	netdev := m.File(networkd.NetdevFile(st.Name))
	nd, err := netdev.Single("NetDev")
	if err != nil {
		return err
	}
	nd.Set("Name", st.Name)
	nd.Set("Kind", "vlan")

	vlan, err := netdev.Single("VLAN")
	if err != nil {
		return err
	}
	vlan.Set("Id", strconv.Itoa(id))

	raw := m.File(networkd.NetworkFile(parent))
	match, err := raw.Single("Match")
	if err != nil {
		return err
	}
	match.Set("Name", parent)

	rec, err := raw.Single("Network")
	if err != nil {
		return err
	}
	rec.AddUnique("VLAN", st.Name)
	return nil
}

// splitVLAN recognizes "<parent>.<id>" interface names.
func splitVLAN(name string) (parent string, id int, ok bool) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return "", 0, false
	}
	suffix := name[idx+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	id, err := strconv.Atoi(suffix)
	if err != nil {
		return "", 0, false
	}
	return name[:idx], id, true
}

func (p *Projector) projectBond(st *ifupdown.Stanza, m *networkd.Model, network *networkd.File) error {
	netdevName := networkd.NetdevFile(st.Name)

	if slaves, ok := st.Options.Get("bond-slaves"); ok {
		nd, err := m.File(netdevName).Single("NetDev")
		if err != nil {
			return err
		}
		nd.Set("Name", st.Name)
		nd.Set("Kind", "bond")

		for _, slave := range strings.Fields(slaves) {
			if slave == "none" {
				continue
			}
			// Bond= first, then Match for slaves without a stanza of their own
			sf := m.File(networkd.NetworkFile(slave))
			rec, err := sf.Single("Network")
			if err != nil {
				return err
			}
			rec.Set("Bond", st.Name)

			match, err := sf.Single("Match")
			if err != nil {
				return err
			}
			match.Set("Name", slave)
		}
	}

	if master, ok := st.Options.Get("bond-master"); ok {
		rec, err := network.Single("Network")
		if err != nil {
			return err
		}
		rec.Set("Bond", master)
	}

	options := []struct {
		key       string
		directive string
		convert   func(string) (string, error)
	}{
		{"bond-xmit-hash-policy", "TransmitHashPolicy", nil},
		{"bond-mode", "Mode", bondMode},
		{"bond-miimon", "MIIMonitorSec", bondMIIMonitor},
		{"bond-lacp-rate", "LACPTransmitRate", bondLACPRate},
		{"ad_actor_sys_prio", "AdActorSystemPriority", nil},
		{"ad_select", "AdSelect", nil},
	}
	for _, opt := range options {
		value, ok := st.Options.Get(opt.key)
		if !ok {
			continue
		}
		if opt.convert != nil {
			v, err := opt.convert(value)
			if err != nil {
				return err
			}
			value = v
		}

		rec, err := m.File(netdevName).Single("Bond")
		if err != nil {
			return err
		}
		rec.Set(opt.directive, value)
	}

	return nil
}

// ipDirectives maps ip(8) keywords to [Route] and [RoutingPolicyRule] keys.
var ipDirectives = map[string]string{
	"via":   "Gateway",
	"table": "Table",
	"from":  "From",
}

func (p *Projector) projectCommands(st *ifupdown.Stanza, _ *networkd.Model, network *networkd.File) error {
	commands := st.Options.Select("post-up", "up")

	for _, line := range commands {
		cmd, ok := parseIPCommand(line)
		if !ok {
			p.logger.Debug("Ignoring command", "interface", st.Name, "command", line)
			continue
		}

		section := "Route"
		if cmd.kind == ipRuleAdd {
			section = "RoutingPolicyRule"
		}

		// resolve first so a failing table leaves no partial record
		values := make([]string, len(cmd.options))
		for i, opt := range cmd.options {
			values[i] = opt.value
			if opt.keyword != "table" {
				continue
			}
			table, err := p.policy.Resolve(p.tables, opt.value)
			if err != nil {
				return err
			}
			values[i] = table
		}

		rec, err := network.Append(section)
		if err != nil {
			return err
		}
		if cmd.kind == ipRouteAdd {
			rec.Set("Destination", cmd.destination)
		}
		for i, opt := range cmd.options {
			rec.Set(ipDirectives[opt.keyword], values[i])
		}
	}

	return nil
}

func (p *Projector) projectDHCP(st *ifupdown.Stanza, _ *networkd.Model, network *networkd.File) error {
	if st.Method != ifupdown.MethodDHCP {
		return nil
	}

	rec, err := network.Single("Network")
	if err != nil {
		return err
	}
	current, _ := rec.Get("DHCP")
	rec.Set("DHCP", mergeDHCP(current, st.Family))

	if !st.IsIPv4() {
		return nil
	}
	for _, opt := range dhcpv4Options {
		value, ok := st.Options.Get(opt.key)
		if !ok {
			continue
		}
		dhcp, err := network.Single("DHCPv4")
		if err != nil {
			return err
		}
		dhcp.Set(opt.directive, value)
	}

	return nil
}
