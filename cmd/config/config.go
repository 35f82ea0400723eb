package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/stratastor/ifmigrate/config"
	"github.com/stratastor/ifmigrate/internal/common"
	"github.com/stratastor/ifmigrate/pkg/errors"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ifmigrate configuration",
	}

	cmd.AddCommand(NewLoadConfigCmd())
	cmd.AddCommand(NewPrintConfigCmd())
	cmd.AddCommand(NewInitConfigCmd())
	return cmd
}

func NewLoadConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the configuration file and report where it came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = config.GetConfig()
			path := config.GetLoadedConfigPath()
			if !common.FileExists(path) {
				return errors.New(errors.ConfigNotFound, "defaults are in effect").
					WithMetadata("path", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration loaded from: %s\n", path)
			return nil
		},
	}
}

func NewPrintConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the currently loaded configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if cfg == nil {
				return errors.New(errors.ConfigLoadFailed, "no configuration loaded")
			}

			// Convert the config to YAML format
			ymlData, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, errors.ConfigMarshalFailed)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Current Configuration:\n%s\n", string(ymlData))
			return nil
		},
	}

	return cmd
}

func NewInitConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to: %s\n", config.GetLoadedConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "Destination file (defaults to the per-user or system config path)")
	return cmd
}
