// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/stratastor/logger"

	"github.com/stratastor/ifmigrate/config"
	"github.com/stratastor/ifmigrate/pkg/migrate"
	"github.com/stratastor/ifmigrate/pkg/writer"
)

type convertFlags struct {
	interfaces     string
	tables         string
	output         string
	tablesConf     string
	systemdVersion int
	assumeYes      bool
	dryRun         bool
	backupDir      string
}

func NewConvertCmd() *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert /etc/network/interfaces to systemd-networkd units",
		Long: `Reads an ifupdown interfaces file and writes the equivalent
systemd-networkd .network and .netdev units. Every file is shown as a diff
(or in full when new) and written only after confirmation.

Custom route tables from rt_tables are referenced by name on systemd 248
and later, with a networkd.conf.d snippet declaring them; older versions
get numeric table IDs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.interfaces, "interfaces", "i", "", "ifupdown interfaces file (default from config: /etc/network/interfaces)")
	flags.StringVarP(&f.tables, "tables", "t", "", "iproute2 rt_tables file (default from config: /etc/iproute2/rt_tables)")
	flags.StringVarP(&f.output, "output", "o", "", "directory for generated units (default from config: /etc/systemd/network)")
	flags.StringVar(&f.tablesConf, "tables-conf", "", "networkd.conf.d snippet declaring route tables")
	flags.IntVar(&f.systemdVersion, "systemd-version", 0, "assume this systemd version instead of asking systemctl")
	flags.BoolVarP(&f.assumeYes, "yes", "y", false, "write every changed file without prompting")
	flags.BoolVar(&f.dryRun, "dry-run", false, "show changes without writing anything")
	flags.StringVar(&f.backupDir, "backup-dir", "", "directory for copies of overwritten files")

	return cmd
}

// resolveOptions merges flags over configuration. Flags win when set.
func resolveOptions(cmd *cobra.Command, f convertFlags, cfg *config.Config) (migrate.Options, writer.Options) {
	pick := func(flag, value, fallback string) string {
		if cmd.Flags().Changed(flag) {
			return value
		}
		return fallback
	}

	opts := migrate.Options{
		InterfacesPath:  pick("interfaces", f.interfaces, cfg.Paths.Interfaces),
		RouteTablesPath: pick("tables", f.tables, cfg.Paths.RouteTables),
		OutputDir:       pick("output", f.output, cfg.Paths.Output),
		TablesConfPath:  pick("tables-conf", f.tablesConf, cfg.Paths.TablesConf),
		SystemdVersion:  cfg.Systemd.Version,
	}
	if cmd.Flags().Changed("systemd-version") {
		opts.SystemdVersion = f.systemdVersion
	}

	assumeYes := cfg.Writer.AssumeYes
	if cmd.Flags().Changed("yes") {
		assumeYes = f.assumeYes
	}

	wopts := writer.Options{
		Out:       cmd.OutOrStdout(),
		DryRun:    f.dryRun,
		BackupDir: pick("backup-dir", f.backupDir, cfg.Writer.BackupDir),
	}
	if assumeYes {
		wopts.Confirmer = writer.AutoConfirmer{Answer: true}
	}

	return opts, wopts
}

func runConvert(cmd *cobra.Command, f convertFlags) error {
	cfg := config.GetConfig()
	l, err := logger.NewTag(config.NewLoggerConfig(cfg), "convert")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, wopts := resolveOptions(cmd, f, cfg)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converting %s to systemd-networkd configs in %s\n", opts.InterfacesPath, opts.OutputDir)

	w := writer.New(l, wopts)
	report, err := migrate.NewConverter(l, opts, w).Run(cmd.Context())
	if report != nil {
		printSummary(out, report, w.RunID(), wopts.BackupDir)
	}
	if err != nil {
		l.Error("Conversion failed", "err", err)
		return err
	}
	return nil
}

func printSummary(out io.Writer, report *migrate.Report, runID, backupDir string) {
	if report.SystemdVersion > 0 {
		fmt.Fprintf(out, "\nsystemd %d, route tables by %s (%d custom)\n",
			report.SystemdVersion, report.Policy, report.Tables)
	}

	counts := make(map[writer.Result]int)
	for _, fr := range report.Files {
		counts[fr.Result]++
	}
	fmt.Fprintf(out, "%d stanzas, %d files: %d written, %d unchanged, %d skipped, %d dry-run\n",
		report.Stanzas, len(report.Files),
		counts[writer.ResultWritten], counts[writer.ResultUnchanged],
		counts[writer.ResultSkipped], counts[writer.ResultDryRun])

	for _, iface := range report.Conflicts {
		fmt.Fprintf(out, "warning: %s is also matched by a unit not generated by this run\n", iface)
	}
	if counts[writer.ResultWritten] > 0 && backupDir != "" {
		fmt.Fprintf(out, "Backups of replaced files (if any): %s/%s\n", backupDir, runID)
	}
	if len(report.Files) > 0 && counts[writer.ResultWritten] > 0 {
		fmt.Fprintln(out, "Run 'networkctl reload' or restart systemd-networkd to apply.")
	}
}
