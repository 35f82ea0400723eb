// Copyright 2024 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/stratastor/logger"
	"gopkg.in/yaml.v3"

	"github.com/stratastor/ifmigrate/internal/constants"
	"github.com/stratastor/ifmigrate/pkg/errors"
)

var (
	instance   *Config
	once       sync.Once
	configPath string // Tracks where the config was loaded from
)

type Config struct {
	Paths struct {
		Interfaces  string `mapstructure:"interfaces"  yaml:"interfaces"`
		RouteTables string `mapstructure:"routeTables" yaml:"routeTables"`
		Output      string `mapstructure:"output"      yaml:"output"`
		TablesConf  string `mapstructure:"tablesConf"  yaml:"tablesConf"` // networkd.conf.d snippet with RouteTable=
	} `mapstructure:"paths" yaml:"paths"`

	Systemd struct {
		// Version overrides probing systemctl when positive.
		Version int `mapstructure:"version" yaml:"version"`
	} `mapstructure:"systemd" yaml:"systemd"`

	Writer struct {
		AssumeYes bool   `mapstructure:"assumeYes" yaml:"assumeYes"`
		BackupDir string `mapstructure:"backupDir" yaml:"backupDir"` // empty disables backups
	} `mapstructure:"writer" yaml:"writer"`

	Logger struct {
		LogLevel     string `mapstructure:"logLevel"     yaml:"logLevel"`
		EnableSentry bool   `mapstructure:"enableSentry" yaml:"enableSentry"`
		SentryDSN    string `mapstructure:"sentryDSN"    yaml:"sentryDSN"`
	} `mapstructure:"logger" yaml:"logger"`

	Environment string `mapstructure:"environment" yaml:"environment"`
}

func setDefaults() {
	viper.SetDefault("environment", "prod")

	viper.SetDefault("paths.interfaces", constants.DefaultInterfacesPath)
	viper.SetDefault("paths.routeTables", constants.DefaultRouteTablesPath)
	viper.SetDefault("paths.output", constants.DefaultOutputDir)
	viper.SetDefault("paths.tablesConf", constants.DefaultTablesConfPath)

	viper.SetDefault("systemd.version", 0)

	viper.SetDefault("writer.assumeYes", false)
	viper.SetDefault("writer.backupDir", GetBackupDir())

	viper.SetDefault("logger.logLevel", "info")
	viper.SetDefault("logger.enableSentry", false)
	viper.SetDefault("logger.sentryDSN", "")
}

// LoadConfig loads the configuration with precedence rules. A missing
// config file is not an error: defaults and environment overrides apply.
// A file that cannot be parsed is logged and defaults are used.
func LoadConfig(configFilePath string) *Config {
	once.Do(func() {
		// Setup basic logger for initialization
		l, err := logger.NewTag(logger.Config{LogLevel: "info"}, "config")
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}

		if configFilePath != "" {
			// 1. Priority: Explicit path from command line
			configPath = configFilePath
		} else if envPath := os.Getenv(constants.ConfigEnvVar); envPath != "" {
			// 2. Priority: Environment variable
			configPath = envPath
		} else {
			// 3. Priority: Per-user or system-wide config
			configPath = filepath.Join(GetConfigDir(), constants.ConfigFileName)
		}

		if absPath, err := filepath.Abs(configPath); err == nil {
			configPath = absPath
		}

		cfg, found, err := readConfig(configPath)
		switch {
		case err != nil:
			l.Error("Error reading config file, using defaults", "path", configPath, "err", err)
		case !found:
			l.Debug("Config file not found, using defaults", "path", configPath)
		default:
			l.Debug("Config file loaded", "path", configPath)
		}
		instance = cfg

		l.Debug("Loaded configuration", "config", fmt.Sprintf("%+v", *cfg))
	})

	return instance
}

// readConfig resets viper and reads path over the defaults and environment.
// found is false when the file does not exist. A file that fails to parse
// or decode yields an error and a config holding the defaults.
func readConfig(path string) (cfg *Config, found bool, err error) {
	// Reset viper to avoid any potential carryover
	viper.Reset()
	viper.SetConfigType("yaml")
	viper.SetConfigFile(path)

	setDefaults()

	// Bind environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if rerr := viper.ReadInConfig(); rerr != nil {
		if _, ok := rerr.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(rerr) {
			err = errors.Wrap(rerr, errors.ConfigInvalid).WithMetadata("path", path)
		}
	} else {
		found = true
	}

	cfg = &Config{}
	if uerr := viper.Unmarshal(cfg); uerr != nil {
		err = errors.Wrap(uerr, errors.ConfigUnmarshalFailed).WithMetadata("path", path)

		viper.Reset()
		setDefaults()
		cfg = &Config{}
		_ = viper.Unmarshal(cfg)
	}

	return cfg, found, err
}

// Validate checks values that no default can repair.
func (c *Config) Validate() error {
	paths := []struct {
		key   string
		value string
	}{
		{"paths.interfaces", c.Paths.Interfaces},
		{"paths.routeTables", c.Paths.RouteTables},
		{"paths.output", c.Paths.Output},
		{"paths.tablesConf", c.Paths.TablesConf},
	}
	for _, p := range paths {
		if p.value == "" {
			return errors.New(errors.ConfigValidationFailed, "path must not be empty").
				WithMetadata("key", p.key)
		}
	}

	if c.Systemd.Version < 0 {
		return errors.New(errors.ConfigValidationFailed, "systemd version must be 0 (probe) or positive").
			WithMetadata("key", "systemd.version").
			WithMetadata("value", strconv.Itoa(c.Systemd.Version))
	}
	return nil
}

// SaveConfig persists the current configuration to a specified path.
func SaveConfig(path string) error {
	if path == "" {
		path = filepath.Join(GetConfigDir(), constants.ConfigFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		if os.IsPermission(err) {
			return errors.Wrap(err, errors.ConfigPermissionDenied).WithMetadata("path", path)
		}
		return errors.Wrap(err, errors.ConfigDirectoryError).WithMetadata("path", path)
	}

	configYAML, err := yaml.Marshal(GetConfig())
	if err != nil {
		return errors.Wrap(err, errors.ConfigMarshalFailed)
	}

	if err := os.WriteFile(path, configYAML, 0644); err != nil {
		if os.IsPermission(err) {
			return errors.Wrap(err, errors.ConfigPermissionDenied).WithMetadata("path", path)
		}
		return errors.Wrap(err, errors.ConfigWriteFailed).WithMetadata("path", path)
	}

	// Update the tracked config path
	configPath = path

	return nil
}

// GetLoadedConfigPath returns the path of the currently loaded configuration file.
func GetLoadedConfigPath() string {
	return configPath
}

// GetConfig returns the current configuration instance.
func GetConfig() *Config {
	if instance == nil {
		return LoadConfig("")
	}
	return instance
}

func NewLoggerConfig(cfg *Config) logger.Config {
	if cfg == nil {
		return logger.Config{
			LogLevel:     "info",
			EnableSentry: false,
			SentryDSN:    "",
		}
	}

	return logger.Config{
		LogLevel:     cfg.Logger.LogLevel,
		EnableSentry: cfg.Logger.EnableSentry,
		SentryDSN:    cfg.Logger.SentryDSN,
	}
}
