// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Options holds the generation-behavior toggles sent to the backend with
// every generation request.
type Options struct {
	UseLineageTables         bool   `yaml:"use_lineage_tables"`
	UseLineageProcesses      bool   `yaml:"use_lineage_processes"`
	UseProfile               bool   `yaml:"use_profile"`
	UseDataQuality           bool   `yaml:"use_data_quality"`
	UseExtDocuments          bool   `yaml:"use_ext_documents"`
	PersistToDataplexCatalog bool   `yaml:"persist_to_dataplex_catalog"`
	StageForReview           bool   `yaml:"stage_for_review"`
	TopValuesInDescription   bool   `yaml:"top_values_in_description"`
	DescriptionHandling      string `yaml:"description_handling"`
	DescriptionPrefix        string `yaml:"description_prefix"`
}

// Config holds connection parameters and generation settings for the
// metadata wizard backend. It is the single shared settings record edited
// by the configuration form and read by every other page.
type Config struct {
	// BaseDir is the root directory for mwiz local state (config, task
	// history, logs).
	BaseDir string `yaml:"-"`

	APIURL           string `yaml:"api_url"`
	ProjectID        string `yaml:"project_id"`
	LLMLocation      string `yaml:"llm_location"`
	DataplexLocation string `yaml:"dataplex_location"`

	// Default scope for generation and review operations.
	DatasetID           string `yaml:"dataset_id"`
	TableID             string `yaml:"table_id"`
	DocumentationURI    string `yaml:"documentation_uri"`
	DocumentationCSVURI string `yaml:"documentation_csv_uri"`
	Strategy            string `yaml:"strategy"`

	Options Options `yaml:"options"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:          getDefaultBaseDir(),
		APIURL:           "http://localhost:8000",
		LLMLocation:      "us-central1",
		DataplexLocation: "us-central1",
		Strategy:         "NAIVE",
		Options: Options{
			UseLineageTables:         false,
			UseLineageProcesses:      false,
			UseProfile:               false,
			UseDataQuality:           false,
			UseExtDocuments:          false,
			PersistToDataplexCatalog: true,
			StageForReview:           true,
			TopValuesInDescription:   true,
			DescriptionHandling:      "append",
			DescriptionPrefix:        "---AI generated description---",
		},
	}
}

// getDefaultBaseDir returns the default base directory path
func getDefaultBaseDir() string {
	if envDir := os.Getenv("MWIZ_HOME"); envDir != "" {
		return envDir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mwiz"
	}
	return filepath.Join(homeDir, ".mwiz")
}

// LoadConfig loads configuration from the config file and environment.
// Precedence: defaults < config.yaml < environment variables. A .env file
// in the working directory is folded into the environment first.
func LoadConfig() (*Config, error) {
	// Ignore a missing .env; it is an optional convenience.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile() error {
	path := filepath.Join(c.BaseDir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	for env, target := range map[string]*string{
		"MWIZ_API_URL":           &c.APIURL,
		"MWIZ_PROJECT_ID":        &c.ProjectID,
		"MWIZ_LLM_LOCATION":      &c.LLMLocation,
		"MWIZ_DATAPLEX_LOCATION": &c.DataplexLocation,
		"MWIZ_DATASET_ID":        &c.DatasetID,
		"MWIZ_TABLE_ID":          &c.TableID,
	} {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base directory cannot be empty")
	}

	absPath, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	c.BaseDir = absPath

	if c.APIURL == "" {
		return fmt.Errorf("API URL cannot be empty")
	}

	return nil
}

// Save writes the configuration to config.yaml under the base dir.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.BaseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create base directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(c.BaseDir, configFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// HistoryPath returns the path of the local task history database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.BaseDir, "history.db")
}

// RequireProject returns an error when no project id is configured.
// Generation and review calls cannot be built without one.
func (c *Config) RequireProject() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project id not configured (set MWIZ_PROJECT_ID or run 'mwiz config set project_id <id>')")
	}
	return nil
}

// RequireDataset returns an error when no dataset id is configured.
func (c *Config) RequireDataset() error {
	if err := c.RequireProject(); err != nil {
		return err
	}
	if c.DatasetID == "" {
		return fmt.Errorf("dataset id not configured (set MWIZ_DATASET_ID or run 'mwiz config set dataset_id <id>')")
	}
	return nil
}

// RequireTable returns an error when no table id is configured.
func (c *Config) RequireTable() error {
	if err := c.RequireDataset(); err != nil {
		return err
	}
	if c.TableID == "" {
		return fmt.Errorf("table id not configured (set MWIZ_TABLE_ID or run 'mwiz config set table_id <id>')")
	}
	return nil
}

// Set updates a configuration field by its yaml key. Boolean option keys
// accept "true"/"false".
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "project_id":
		c.ProjectID = value
	case "llm_location":
		c.LLMLocation = value
	case "dataplex_location":
		c.DataplexLocation = value
	case "dataset_id":
		c.DatasetID = value
	case "table_id":
		c.TableID = value
	case "documentation_uri":
		c.DocumentationURI = value
	case "documentation_csv_uri":
		c.DocumentationCSVURI = value
	case "strategy":
		c.Strategy = value
	case "description_handling":
		c.Options.DescriptionHandling = value
	case "description_prefix":
		c.Options.DescriptionPrefix = value
	case "use_lineage_tables", "use_lineage_processes", "use_profile",
		"use_data_quality", "use_ext_documents", "persist_to_dataplex_catalog",
		"stage_for_review", "top_values_in_description":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		c.setOption(key, b)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func (c *Config) setOption(key string, value bool) {
	switch key {
	case "use_lineage_tables":
		c.Options.UseLineageTables = value
	case "use_lineage_processes":
		c.Options.UseLineageProcesses = value
	case "use_profile":
		c.Options.UseProfile = value
	case "use_data_quality":
		c.Options.UseDataQuality = value
	case "use_ext_documents":
		c.Options.UseExtDocuments = value
	case "persist_to_dataplex_catalog":
		c.Options.PersistToDataplexCatalog = value
	case "stage_for_review":
		c.Options.StageForReview = value
	case "top_values_in_description":
		c.Options.TopValuesInDescription = value
	}
}

func parseBool(value string) (bool, error) {
	switch value {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("want true or false, got %q", value)
}
