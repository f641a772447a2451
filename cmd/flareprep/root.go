package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flare-analytics/flarestats/internal/config"
	"github.com/flare-analytics/flarestats/internal/exitcode"
)

var cfg = config.FromEnv()

var rootCmd = &cobra.Command{
	Use:   "flareprep",
	Short: "Fire-incident enrichment and aggregation pipeline",
	Long: "Streams a fire-incident Parquet export through the ZIP → county → " +
		"organization lookup chain and emits pre-aggregated JSON documents for the dashboard.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigFile, "config", os.Getenv("FLARE_CONFIG"), "Path to YAML config file (or set FLARE_CONFIG)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}

// loadConfigFile merges the optional YAML config file into cfg.
func loadConfigFile() error {
	if cfg.ConfigFile == "" {
		return nil
	}
	return cfg.LoadFromFile(cfg.ConfigFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
