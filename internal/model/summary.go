package model

import "time"

// RunSummary captures metrics from a single pipeline run.
type RunSummary struct {
	RunID          string
	InputFile      string
	RowsRead       int64
	RowsAggregated int64
	RowsSkipped    int64
	ZipMatches     int64

	Counties  int
	Chapters  int
	Regions   int
	Divisions int

	DurationTables    time.Duration
	DurationAggregate time.Duration
	DurationReport    time.Duration
	DurationWrite     time.Duration
	DurationTotal     time.Duration
}
