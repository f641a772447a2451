package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/flare-analytics/flarestats/internal/report"
)

// WriteDocuments writes every report document as compact JSON into dir.
// Output is fully deterministic: re-running the pass on the same input
// yields byte-identical files.
func WriteDocuments(dir string, docs *report.Documents, log zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := []struct {
		name string
		doc  any
	}{
		{"fires-points.json", docs.Points},
		{"summary.json", docs.Summary},
		{"funnel.json", docs.Funnel},
		{"by-state.json", docs.ByState},
		{"by-month.json", docs.ByMonth},
		{"by-day.json", docs.ByDay},
		{"by-department.json", docs.ByDepartment},
		{"by-county.json", docs.ByCounty},
		{"by-chapter.json", docs.ByChapter},
		{"by-region.json", docs.ByRegion},
		{"by-division.json", docs.ByDivision},
		{"gap-analysis.json", docs.GapAnalysis},
		{"risk-distribution.json", docs.Risk},
	}

	for _, f := range files {
		if err := WriteJSON(filepath.Join(dir, f.name), f.doc); err != nil {
			return err
		}
		log.Info().Str("file", f.name).Msg("document written")
	}
	return nil
}

// WriteJSON writes v as compact JSON to path.
func WriteJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
