package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flare-analytics/flarestats/internal/exitcode"
	"github.com/flare-analytics/flarestats/internal/logging"
	"github.com/flare-analytics/flarestats/internal/pipeline"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Run the full enrichment and aggregation pipeline",
	RunE:  runPrepare,
}

func init() {
	f := prepareCmd.Flags()
	f.StringVar(&cfg.InputFile, "input", "", "Path to incident Parquet file (required)")
	f.StringVar(&cfg.OutputDir, "output-dir", "public/data", "Directory for output JSON documents")
	f.StringVar(&cfg.ZipLookupFile, "zip-lookup", cfg.ZipLookupFile, "ZIP → county FIPS CSV")
	f.StringVar(&cfg.OrgMappingFile, "org-mapping", cfg.OrgMappingFile, "County → chapter/region/division JSON")
	f.StringVar(&cfg.DemographicsFile, "demographics", cfg.DemographicsFile, "County demographics JSON")
	_ = prepareCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file load failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateOutput(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateTables(); err != nil {
		log.Error().Err(err).Msg("lookup table validation failed")
		os.Exit(exitcode.LookupError)
	}

	summary, err := pipeline.Run(log, &cfg)
	if err != nil {
		var pe *pipeline.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("pipeline failed")
			switch pe.Phase {
			case "tables":
				os.Exit(exitcode.LookupError)
			case "write":
				os.Exit(exitcode.WriteError)
			default:
				os.Exit(exitcode.AggregateError)
			}
		}
		log.Error().Err(err).Msg("pipeline failed")
		os.Exit(exitcode.AggregateError)
	}

	fmt.Printf("Prepare complete: %d rows aggregated, %d skipped, %d counties (%.1fs)\n",
		summary.RowsAggregated, summary.RowsSkipped, summary.Counties,
		summary.DurationTotal.Seconds())
	return nil
}
