package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     appConfig
)

// rootCmd builds the command tree. Configuration is resolved once in
// the persistent pre-run hook so every subcommand sees the same view.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseliner",
		Short: "Extract and manage performance baselines from benchmark logs",
		Long: `baseliner turns the raw log files captured during a benchmark run
into a performance baseline: latency percentiles, throughput, resource
usage and cluster health, stored as JSON for later comparison.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			configureLogging(cfg)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/baseliner/config.yml)")
	cmd.PersistentFlags().String("logs-dir", "", "directory holding raw benchmark logs")
	cmd.PersistentFlags().String("baselines-dir", "", "directory holding stored baselines")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		extractCmd(),
		listCmd(),
		showCmd(),
		pruneCmd(),
		versionCmd(),
	)

	return cmd
}

// configureLogging sends log lines to stderr so report output on
// stdout stays clean for piping.
func configureLogging(cfg appConfig) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
}
