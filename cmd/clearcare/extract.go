package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Harshitha061298/Clearcare-Project/internal/exitcode"
	"github.com/Harshitha061298/Clearcare-Project/internal/extract"
	"github.com/Harshitha061298/Clearcare-Project/internal/logging"
)

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Extract a nested JSON MRF",
	RunE:  runFormat(extract.FormatJSON),
}

var tallCmd = &cobra.Command{
	Use:   "tall",
	Short: "Extract a tall flat CSV (one code per ordinal slot per row)",
	RunE:  runFormat(extract.FormatTall),
}

var wideCmd = &cobra.Command{
	Use:   "wide",
	Short: "Extract a wide pivoted CSV (payer/plan prices flattened into columns)",
	RunE:  runFormat(extract.FormatWide),
}

func init() {
	for _, cmd := range []*cobra.Command{jsonCmd, tallCmd, wideCmd} {
		cmd.Flags().BoolVar(&cfg.WriteParquet, "parquet", false, "Also mirror the canonical output to a Parquet file")
		rootCmd.AddCommand(cmd)
	}
}

func runFormat(format extract.Format) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log := logging.Setup(cfg.LogFormat)

		if err := cfg.Validate(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}

		summary, err := extract.Run(log, &cfg, format)
		if err != nil {
			var pe *extract.PipelineError
			if errors.As(err, &pe) {
				log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("extraction failed")
				switch pe.Phase {
				case "registry":
					os.Exit(exitcode.RegistryError)
				case "config":
					os.Exit(exitcode.ConfigError)
				case "walk":
					os.Exit(exitcode.ExtractError)
				case "output", "devlog", "layout":
					os.Exit(exitcode.WriteError)
				default:
					os.Exit(exitcode.ExtractError)
				}
			}
			log.Error().Err(err).Msg("extraction failed")
			os.Exit(exitcode.ExtractError)
		}

		fmt.Printf("Extraction complete: %d records into %s (%.1fs)\n",
			summary.RecordsWritten, summary.OutputPath, summary.DurationTotal.Seconds())
		return nil
	}
}
