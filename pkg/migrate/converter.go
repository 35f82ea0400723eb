// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package migrate translates ifupdown stanzas into systemd-networkd units
// and drives a full conversion run.
package migrate

import (
	"context"
	"path/filepath"

	"github.com/stratastor/logger"

	"github.com/stratastor/ifmigrate/internal/constants"
	"github.com/stratastor/ifmigrate/pkg/ifupdown"
	"github.com/stratastor/ifmigrate/pkg/networkd"
	"github.com/stratastor/ifmigrate/pkg/rttables"
	"github.com/stratastor/ifmigrate/pkg/writer"
)

// FileWriter persists one generated file.
type FileWriter interface {
	Write(ctx context.Context, path string, content []byte) (writer.Result, error)
}

// Options configures a conversion run.
type Options struct {
	InterfacesPath  string
	RouteTablesPath string
	OutputDir       string
	TablesConfPath  string
	// SystemdVersion skips probing when positive.
	SystemdVersion int
}

func (o *Options) applyDefaults() {
	if o.InterfacesPath == "" {
		o.InterfacesPath = constants.DefaultInterfacesPath
	}
	if o.RouteTablesPath == "" {
		o.RouteTablesPath = constants.DefaultRouteTablesPath
	}
	if o.OutputDir == "" {
		o.OutputDir = constants.DefaultOutputDir
	}
	if o.TablesConfPath == "" {
		o.TablesConfPath = constants.DefaultTablesConfPath
	}
}

// FileReport is the outcome for one destination path.
type FileReport struct {
	Path   string
	Result writer.Result
}

// Report summarizes a run.
type Report struct {
	SystemdVersion int
	Policy         rttables.Policy
	Tables         int
	Stanzas        int
	Files          []FileReport
	// Conflicts lists interfaces already matched by units this run does
	// not write.
	Conflicts []string
}

type Converter struct {
	logger logger.Logger
	opts   Options
	writer FileWriter
	probe  VersionProber
}

func NewConverter(l logger.Logger, opts Options, w FileWriter) *Converter {
	opts.applyDefaults()
	return &Converter{
		logger: l,
		opts:   opts,
		writer: w,
		probe:  ProbeSystemdVersion,
	}
}

// WithProber replaces the systemd version probe.
func (c *Converter) WithProber(p VersionProber) *Converter {
	c.probe = p
	return c
}

// Convert projects stanzas, in order, into a fresh model.
func Convert(stanzas []*ifupdown.Stanza, p *Projector) (*networkd.Model, error) {
	m := networkd.NewModel()
	for _, st := range stanzas {
		if err := p.Project(st, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Run performs the conversion end to end. Input and projection errors
// abort before any file is touched; a write error stops the run with
// earlier files already written.
func (c *Converter) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	version := c.opts.SystemdVersion
	if version <= 0 {
		v, err := c.probe(ctx, c.logger)
		if err != nil {
			return report, err
		}
		version = v
	}
	report.SystemdVersion = version

	tables, err := rttables.Load(c.logger, c.opts.RouteTablesPath)
	if err != nil {
		return report, err
	}
	policy := rttables.Decide(version)
	report.Policy = policy
	report.Tables = tables.Len()

	c.logger.Info("Converting interfaces",
		"interfaces", c.opts.InterfacesPath,
		"output", c.opts.OutputDir,
		"systemd", version,
		"table_policy", policy.String(),
		"tables", tables.Len())

	stanzas, err := ifupdown.ParseFile(c.opts.InterfacesPath)
	if err != nil {
		return report, err
	}
	report.Stanzas = len(stanzas)

	model, err := Convert(stanzas, NewProjector(c.logger, policy, tables))
	if err != nil {
		return report, err
	}

	// nothing is written until every stanza has been projected
	if policy == rttables.PolicyName {
		if content, ok := rttables.Supplemental(tables); ok {
			if err := c.write(ctx, report, c.opts.TablesConfPath, content); err != nil {
				return report, err
			}
		}
	}

	generated := make(map[string]bool, model.Len())
	for _, f := range model.Files() {
		generated[f.Name] = true
	}
	external, err := networkd.FindExternallyManaged(c.opts.OutputDir, generated)
	if err != nil {
		c.logger.Warn("Failed to scan existing units", "dir", c.opts.OutputDir, "err", err)
	}
	report.Conflicts = networkd.Conflicts(model, external)
	for _, iface := range report.Conflicts {
		c.logger.Warn("Interface is also matched by an existing unit",
			"interface", iface, "unit", external[iface])
	}

	opts := networkd.RenderOptions{Source: c.opts.InterfacesPath, Tool: constants.ToolName}
	for _, f := range model.Files() {
		path := filepath.Join(c.opts.OutputDir, f.Name)
		if err := c.write(ctx, report, path, networkd.Render(f, opts)); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (c *Converter) write(ctx context.Context, report *Report, path string, content []byte) error {
	res, err := c.writer.Write(ctx, path, content)
	if err != nil {
		return err
	}
	report.Files = append(report.Files, FileReport{Path: path, Result: res})
	return nil
}
