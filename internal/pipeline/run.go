// Package pipeline orchestrates the batch run: load tables, stream the
// incident file through enrichment and aggregation, build the report
// documents, and write them out.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/flare-analytics/flarestats/internal/aggregate"
	"github.com/flare-analytics/flarestats/internal/config"
	"github.com/flare-analytics/flarestats/internal/enrich"
	"github.com/flare-analytics/flarestats/internal/lookup"
	"github.com/flare-analytics/flarestats/internal/model"
	"github.com/flare-analytics/flarestats/internal/parquetread"
	"github.com/flare-analytics/flarestats/internal/report"
)

const readBatchSize = 1024

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full pipeline: tables → aggregate → report → write.
func Run(log zerolog.Logger, cfg *config.Config) (*model.RunSummary, error) {
	totalStart := time.Now()

	summary := &model.RunSummary{
		RunID:     uuid.New().String(),
		InputFile: cfg.InputFile,
	}
	log = log.With().Str("run_id", summary.RunID).Logger()

	// Phase 1: static tables. A missing or malformed table aborts the run
	// before any aggregation.
	log.Info().Msg("loading lookup tables")
	tablesStart := time.Now()
	tables, err := lookup.LoadTables(cfg.ZipLookupFile, cfg.OrgMappingFile, cfg.DemographicsFile)
	if err != nil {
		return nil, &PipelineError{Phase: "tables", Err: err}
	}
	summary.DurationTables = time.Since(tablesStart)
	log.Info().
		Int("zip_codes", len(tables.Zip)).
		Int("counties", len(tables.Org)).
		Int("demographics", len(tables.Demo)).
		Dur("duration", summary.DurationTables).
		Msg("lookup tables loaded")

	// Phase 2: single pass, enrich and aggregate.
	log.Info().Str("file", cfg.InputFile).Msg("starting aggregation pass")
	aggStart := time.Now()
	engine, err := runPass(log, cfg.InputFile, tables)
	if err != nil {
		return nil, &PipelineError{Phase: "aggregate", Err: err}
	}
	summary.DurationAggregate = time.Since(aggStart)
	summary.RowsRead = engine.Processed + engine.Skipped
	summary.RowsAggregated = engine.Processed
	summary.RowsSkipped = engine.Skipped
	summary.ZipMatches = engine.ZipMatches
	summary.Counties = engine.ByCounty.Len()
	summary.Chapters = engine.ByChapter.Len()
	summary.Regions = engine.ByRegion.Len()
	summary.Divisions = engine.ByDivision.Len()

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_aggregated", summary.RowsAggregated).
		Int64("rows_skipped", summary.RowsSkipped).
		Int64("zip_matches", summary.ZipMatches).
		Int("counties", summary.Counties).
		Int("chapters", summary.Chapters).
		Int("regions", summary.Regions).
		Int("divisions", summary.Divisions).
		Str("duration", summary.DurationAggregate.String()).
		Msg("aggregation pass complete")

	// Phase 3: report building.
	reportStart := time.Now()
	docs := report.Build(engine, tables.Demo, nil)
	summary.DurationReport = time.Since(reportStart)

	// Phase 4: write documents.
	writeStart := time.Now()
	if err := WriteDocuments(cfg.OutputDir, docs, log); err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}
	summary.DurationWrite = time.Since(writeStart)

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Str("output_dir", cfg.OutputDir).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("pipeline complete")

	return summary, nil
}

// runPass streams the incident file once through the enricher and engine.
func runPass(log zerolog.Logger, inputFile string, tables *lookup.Tables) (*aggregate.Engine, error) {
	reader, err := parquetread.Open(inputFile)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, err
	}

	enricher := enrich.New(tables.Zip, tables.Org)
	engine := aggregate.New()

	buf := make([]model.IncidentRow, readBatchSize)
	var rowNum int64
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			rowNum++
			row := &buf[i]
			res, zipMatched := enricher.Enrich(row)
			if engine.Observe(row, res) && zipMatched {
				engine.ZipMatches++
			}
			if rowNum%20000 == 0 {
				log.Info().Int64("rows", rowNum).Msg("processing")
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read incidents at row %d: %w", rowNum, readErr)
		}
	}

	return engine, nil
}
