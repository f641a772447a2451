package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/flare-analytics/flarestats/internal/exitcode"
	"github.com/flare-analytics/flarestats/internal/logging"
	"github.com/flare-analytics/flarestats/internal/model"
	"github.com/flare-analytics/flarestats/internal/pipeline"
	"github.com/flare-analytics/flarestats/internal/stations"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Fetch the fire-station registry and merge per-county counts",
	RunE:  runStations,
}

func init() {
	f := stationsCmd.Flags()
	f.StringVar(&cfg.OutputDir, "output-dir", "public/data", "Directory for output JSON documents")
	f.StringVar(&cfg.StationServiceURL, "service-url", cfg.StationServiceURL, "Station feature service URL (default HIFLD)")
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file load failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateOutput(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	client := stations.NewClient(cfg.StationServiceURL, cfg.StationPageSize,
		cfg.StationMaxRetries, 60*time.Second, log)

	log.Info().Msg("downloading fire stations")
	records, err := client.FetchAll(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("station fetch failed")
		os.Exit(exitcode.FetchError)
	}

	doc, counts, skipped := stations.Count(records)
	log.Info().
		Int("valid", doc.Count).
		Int("skipped", skipped).
		Int("counties", len(counts)).
		Msg("stations counted")

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error().Err(err).Msg("create output dir failed")
		os.Exit(exitcode.WriteError)
	}
	if err := pipeline.WriteJSON(filepath.Join(cfg.OutputDir, "fire-stations.json"), doc); err != nil {
		log.Error().Err(err).Msg("write stations failed")
		os.Exit(exitcode.WriteError)
	}
	if err := pipeline.WriteJSON(filepath.Join(cfg.OutputDir, "fire-station-counts.json"), counts); err != nil {
		log.Error().Err(err).Msg("write station counts failed")
		os.Exit(exitcode.WriteError)
	}

	// Merge counts into the county document when a prepare run already wrote it.
	countyPath := filepath.Join(cfg.OutputDir, "by-county.json")
	if data, err := os.ReadFile(countyPath); err == nil {
		var counties []model.CountyEntry
		if err := json.Unmarshal(data, &counties); err != nil {
			log.Error().Err(err).Msg("parse by-county.json failed")
			os.Exit(exitcode.WriteError)
		}
		enriched := stations.MergeCounts(counties, counts)
		if err := pipeline.WriteJSON(countyPath, counties); err != nil {
			log.Error().Err(err).Msg("rewrite by-county.json failed")
			os.Exit(exitcode.WriteError)
		}
		log.Info().
			Int("enriched", enriched).
			Int("counties", len(counties)).
			Msg("county document enriched with station counts")
	}

	fmt.Printf("Stations complete: %d valid stations, %d counties with stations\n",
		doc.Count, len(counts))
	return nil
}
