// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stratastor/ifmigrate/cmd/config"
	"github.com/stratastor/ifmigrate/cmd/convert"
	"github.com/stratastor/ifmigrate/cmd/version"
	cfg "github.com/stratastor/ifmigrate/config"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ifmigrate",
		Short: "ifmigrate: convert ifupdown interfaces to systemd-networkd units",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.LoadConfig(configPath)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to ifmigrate configuration file")

	rootCmd.AddCommand(convert.NewConvertCmd())
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(config.NewConfigCmd())

	return rootCmd
}
