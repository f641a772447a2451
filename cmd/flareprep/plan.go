package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/flare-analytics/flarestats/internal/exitcode"
	"github.com/flare-analytics/flarestats/internal/geo"
	"github.com/flare-analytics/flarestats/internal/logging"
	"github.com/flare-analytics/flarestats/internal/model"
	"github.com/flare-analytics/flarestats/internal/parquetread"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.InputFile, "input", "", "Path to incident Parquet file (required)")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	reader, err := parquetread.Open(cfg.InputFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to open parquet file")
		os.Exit(exitcode.ValidationError)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		log.Error().Err(err).Msg("schema validation failed")
		os.Exit(exitcode.ValidationError)
	}

	numRows := reader.NumRows()

	// Sample rows to estimate category mix and ZIP match rate.
	sampleSize := int64(1000)
	if sampleSize > numRows {
		sampleSize = numRows
	}

	labelCounts := make(map[string]int64)
	var sampled, coordMissing, zipFound int64

	buf := make([]model.IncidentRow, 256)
	for sampled < sampleSize {
		n, readErr := reader.Read(buf)
		for i := 0; i < n && sampled < sampleSize; i++ {
			sampled++
			row := &buf[i]

			if _, ok := model.ParseCategory(row.MasterLabel); ok {
				labelCounts[row.MasterLabel]++
			} else {
				labelCounts["(unrecognized)"]++
			}
			if row.Lat == nil || row.Lon == nil || (*row.Lat == 0 && *row.Lon == 0) {
				coordMissing++
			}
			for _, field := range row.AddressFields() {
				if field != "" && geo.ExtractZip(field) != "" {
					zipFound++
					break
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Error().Err(readErr).Msg("failed to read sample rows")
			os.Exit(exitcode.ValidationError)
		}
	}

	fmt.Println("=== flareprep plan ===")
	fmt.Printf("File:       %s\n", cfg.InputFile)
	fmt.Printf("Total rows: %d\n", numRows)
	fmt.Printf("Sampled:    %d rows\n", sampled)
	fmt.Println()
	fmt.Println("Category distribution (sampled):")
	for _, label := range []string{
		"Fire with RC Care",
		"Fire with RC Notification",
		"Fire without RC Notification",
		"(unrecognized)",
	} {
		if count := labelCounts[label]; count > 0 {
			fmt.Printf("  %-30s %6d\n", label, count)
		}
	}
	fmt.Println()
	if sampled > 0 {
		fmt.Printf("Missing coordinates: %d (%.1f%%)\n", coordMissing,
			float64(coordMissing)/float64(sampled)*100)
		fmt.Printf("ZIP extractable:     %d (%.1f%%)\n", zipFound,
			float64(zipFound)/float64(sampled)*100)
	}
	fmt.Println("Schema validation: OK")

	return nil
}
