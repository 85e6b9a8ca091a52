package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/perfbase/baseliner/internal/store"
)

func showCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [pattern]",
		Short: "Show a stored baseline, the most recent by default",
		Long: `Show prints one stored baseline. A pattern selects by test name or
filename fragment; an exact filename match wins, otherwise the most
recently modified candidate is used. Without a pattern the newest
baseline is shown. The command exits with an error when nothing
matches.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}

			b, path, err := store.New(cfg.BaselinesDir).LoadWithPattern(pattern)
			if err != nil {
				log.Fatal(err)
			}
			log.WithField("path", path).Debug("resolved baseline")

			if err := renderBaseline(cmd, b, output); err != nil {
				log.Fatal(err)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	return cmd
}
