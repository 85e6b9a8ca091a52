package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/perfbase/baseliner/internal/model"
)

// appConfig holds the runtime configuration resolved from flags,
// environment variables and the optional config file, in that order
// of precedence.
type appConfig struct {
	// LogsDir is the directory scanned for raw benchmark logs.
	LogsDir string `mapstructure:"logs-dir"`

	// BaselinesDir is where extracted baselines are stored as JSON.
	BaselinesDir string `mapstructure:"baselines-dir"`

	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose"`
}

// loadConfig builds the effective configuration. Settings are resolved
// with viper: command line flags win over BASELINER_* environment
// variables, which win over the config file, which wins over defaults.
// A missing config file is not an error.
func loadConfig(configPath string, flags *pflag.FlagSet) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, errors.Wrap(err, "finding home directory")
	}

	v := viper.New()
	v.SetEnvPrefix("BASELINER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("logs-dir", model.DefaultLogsDir)
	v.SetDefault("baselines-dir", model.DefaultBaselinesDir)
	v.SetDefault("verbose", false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, errors.Wrap(err, "binding flags")
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "baseliner", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return cfg, errors.Wrapf(err, "reading config file %s", v.ConfigFileUsed())
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing configuration")
	}

	if strings.HasPrefix(cfg.LogsDir, "~/") {
		cfg.LogsDir = filepath.Join(home, cfg.LogsDir[2:])
	}
	if strings.HasPrefix(cfg.BaselinesDir, "~/") {
		cfg.BaselinesDir = filepath.Join(home, cfg.BaselinesDir[2:])
	}

	return cfg, nil
}
