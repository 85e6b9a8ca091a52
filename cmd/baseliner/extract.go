package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/perfbase/baseliner/internal/baseline"
	"github.com/perfbase/baseliner/internal/model"
	"github.com/perfbase/baseliner/internal/report"
	"github.com/perfbase/baseliner/internal/store"
)

func extractCmd() *cobra.Command {
	var (
		all           bool
		entityCount   int
		logsPerEntity int
		output        string
		noSave        bool
	)

	cmd := &cobra.Command{
		Use:   "extract [log-prefix]",
		Short: "Extract baseline metrics from a benchmark run's logs",
		Long: `Extract parses the cluster health, node stats, transform stats and
Kibana stats logs that share the given filename prefix and assembles
them into a baseline. With --all, every run prefix discovered in the
logs directory is extracted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			testCfg := model.TestConfig{
				EntityCount:   entityCount,
				LogsPerEntity: logsPerEntity,
			}

			var prefixes []string
			switch {
			case all:
				var err error
				prefixes, err = baseline.DiscoverRunPrefixes(cfg.LogsDir)
				if err != nil {
					return err
				}
				if len(prefixes) == 0 {
					return errors.Errorf("no benchmark runs found in %s", cfg.LogsDir)
				}
			case len(args) == 1 && args[0] != "":
				prefixes = args
			default:
				return errors.New("a log prefix is required unless --all is given")
			}

			baselines, err := baseline.ExtractAll(cmd.Context(), cfg.LogsDir, prefixes, testCfg)
			if err != nil {
				return err
			}

			st := store.New(cfg.BaselinesDir)
			for _, b := range baselines {
				if !noSave {
					if _, err := st.Save(b); err != nil {
						return err
					}
				}
				if err := renderBaseline(cmd, b, output); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "extract every run discovered in the logs directory")
	cmd.Flags().IntVar(&entityCount, "entity-count", 0, "number of entities the run simulated")
	cmd.Flags().IntVar(&logsPerEntity, "logs-per-entity", 0, "log volume per entity in the run")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the baseline without persisting it")

	return cmd
}

// renderBaseline writes one baseline to the command's stdout in the
// requested format.
func renderBaseline(cmd *cobra.Command, b *model.BaselineMetrics, output string) error {
	if output == "text" {
		return report.WriteText(cmd.OutOrStdout(), b)
	}
	formatter, err := report.ByName(output)
	if err != nil {
		return err
	}
	out, err := formatter(b)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
