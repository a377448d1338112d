// Package config holds run configuration for the screener.
//
// Settings come from env vars (SCREENER_*), an optional screener.config.yaml,
// and defaults, merged by Viper. The resolved Config struct is passed into
// the pipeline explicitly so tests can substitute endpoints and file paths.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Viper keys. Each maps to an env var with the SCREENER_ prefix
// (e.g. "ollama_base_url" → SCREENER_OLLAMA_BASE_URL) and to a YAML field
// in screener.config.yaml.
const (
	KeyProvider      = "provider"
	KeyModel         = "model"
	KeyOllamaBaseURL = "ollama_base_url"
	KeyOpenAIAPIKey  = "openai_api_key"
	KeyOpenAIBaseURL = "openai_base_url"
	KeyPromptsFile   = "prompts_file"
	KeyFiltersFile   = "pii_filters_file"
	KeyTaxonomyFile  = "categories_file"
	KeyOutputFile    = "output_file"
)

// Defaults match the file names and endpoint of the original library layout.
const (
	DefaultProvider     = "ollama"
	DefaultModel        = "llama3.2:latest"
	DefaultOllamaURL    = "http://localhost:11434"
	DefaultPromptsFile  = "system_prompts.csv"
	DefaultFiltersFile  = "pii.txt"
	DefaultTaxonomyFile = "categories.csv"
	DefaultOutputFile   = "cleaned_prompts.csv"
)

// Config holds resolved configuration for one screener run.
type Config struct {
	Provider      string // "ollama" or "openai"
	Model         string // model identifier sent to the provider
	OllamaBaseURL string // Ollama API endpoint
	OpenAIAPIKey  string // OpenAI key (openai provider only)
	OpenAIBaseURL string // OpenAI-compatible endpoint override

	PromptsFile  string // input prompt library CSV
	FiltersFile  string // advisory PII filter list
	TaxonomyFile string // category taxonomy CSV
	OutputFile   string // cleaned output CSV
}

func init() {
	viper.SetEnvPrefix("SCREENER")
	viper.AutomaticEnv()
	viper.SetDefault(KeyProvider, DefaultProvider)
	viper.SetDefault(KeyModel, DefaultModel)
	viper.SetDefault(KeyOllamaBaseURL, DefaultOllamaURL)
	viper.SetDefault(KeyPromptsFile, DefaultPromptsFile)
	viper.SetDefault(KeyFiltersFile, DefaultFiltersFile)
	viper.SetDefault(KeyTaxonomyFile, DefaultTaxonomyFile)
	viper.SetDefault(KeyOutputFile, DefaultOutputFile)
}

// Load reads configuration from Viper (which merges env vars, config file,
// and defaults) and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		Provider:      viper.GetString(KeyProvider),
		Model:         viper.GetString(KeyModel),
		OllamaBaseURL: viper.GetString(KeyOllamaBaseURL),
		OpenAIAPIKey:  viper.GetString(KeyOpenAIAPIKey),
		OpenAIBaseURL: viper.GetString(KeyOpenAIBaseURL),
		PromptsFile:   viper.GetString(KeyPromptsFile),
		FiltersFile:   viper.GetString(KeyFiltersFile),
		TaxonomyFile:  viper.GetString(KeyTaxonomyFile),
		OutputFile:    viper.GetString(KeyOutputFile),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case "ollama":
	case "openai":
		if c.OpenAIAPIKey == "" && c.OpenAIBaseURL == "" {
			return fmt.Errorf("provider openai requires %s or %s", KeyOpenAIAPIKey, KeyOpenAIBaseURL)
		}
	default:
		return fmt.Errorf("provider must be ollama or openai (got %q)", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.PromptsFile == "" || c.TaxonomyFile == "" || c.OutputFile == "" {
		return fmt.Errorf("input and output file paths must not be empty")
	}
	return nil
}
