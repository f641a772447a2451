package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a flareprep run.
type Config struct {
	InputFile  string
	OutputDir  string
	ConfigFile string
	LogFormat  string // "text" or "json"

	ZipLookupFile    string
	OrgMappingFile   string
	DemographicsFile string

	StationServiceURL string
	StationPageSize   int
	StationMaxRetries int
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	ZipLookup         string `yaml:"zip_lookup"`
	OrgMapping        string `yaml:"org_mapping"`
	Demographics      string `yaml:"demographics"`
	StationServiceURL string `yaml:"station_service_url"`
	StationPageSize   int    `yaml:"station_page_size"`
	StationMaxRetries int    `yaml:"station_max_retries"`
}

// FromEnv returns a Config seeded from environment variables (a .env file is
// honored when present) with built-in defaults.
func FromEnv() Config {
	_ = godotenv.Load()
	return Config{
		ZipLookupFile:     envOrDefault("FLARE_ZIP_LOOKUP", "data/zip_to_county.csv"),
		OrgMappingFile:    envOrDefault("FLARE_ORG_MAPPING", "data/county_org_mapping.json"),
		DemographicsFile:  envOrDefault("FLARE_DEMOGRAPHICS", "data/county_demographics.json"),
		StationServiceURL: os.Getenv("FLARE_STATION_URL"),
		StationPageSize:   2000,
		StationMaxRetries: 4,
	}
}

// LoadFromFile reads a YAML config file and merges non-empty values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.ZipLookup != "" {
		c.ZipLookupFile = yc.ZipLookup
	}
	if yc.OrgMapping != "" {
		c.OrgMappingFile = yc.OrgMapping
	}
	if yc.Demographics != "" {
		c.DemographicsFile = yc.Demographics
	}
	if yc.StationServiceURL != "" {
		c.StationServiceURL = yc.StationServiceURL
	}
	if yc.StationPageSize > 0 {
		c.StationPageSize = yc.StationPageSize
	}
	if yc.StationMaxRetries > 0 {
		c.StationMaxRetries = yc.StationMaxRetries
	}
	return nil
}

// Validate checks the incident input file. A missing input source is fatal
// before any aggregation begins.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("--input is required")
	}
	if _, err := os.Stat(c.InputFile); err != nil {
		return fmt.Errorf("input not accessible: %w", err)
	}
	return nil
}

// ValidateTables checks every static lookup table path. A missing
// authoritative table aborts the run before any aggregation begins.
func (c *Config) ValidateTables() error {
	tables := map[string]string{
		"zip lookup":   c.ZipLookupFile,
		"org mapping":  c.OrgMappingFile,
		"demographics": c.DemographicsFile,
	}
	for name, path := range tables {
		if path == "" {
			return fmt.Errorf("%s table path is required", name)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s table not accessible: %w", name, err)
		}
	}
	return nil
}

// ValidateOutput checks the output directory flag.
func (c *Config) ValidateOutput() error {
	if c.OutputDir == "" {
		return fmt.Errorf("--output-dir is required")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
