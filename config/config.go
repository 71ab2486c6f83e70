package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the preprocessing pipeline.
// Every field has a working default; an empty Config is fully usable.
type Config struct {
	Preprocess PreprocessConfig `json:"preprocess" yaml:"preprocess"`
	Intent     IntentConfig     `json:"intent" yaml:"intent"`
	Expansion  ExpansionConfig  `json:"expansion" yaml:"expansion"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Embedding  EmbeddingConfig  `json:"embedding,omitempty" yaml:"embedding,omitempty"`
}

// PreprocessConfig holds the orchestrator-level tunables.
type PreprocessConfig struct {
	// EnableDeduplication controls semantic deduplication of conversation
	// history. Default: true.
	EnableDeduplication *bool `json:"enable_deduplication,omitempty" yaml:"enable_deduplication,omitempty"`
	// DeduplicationThreshold is the strict cosine-similarity cutoff above
	// which a history turn counts as a duplicate. Range [0,1]. Default: 0.95.
	// A pointer so an explicit 0.0 is distinguishable from unset.
	DeduplicationThreshold *float64 `json:"deduplication_threshold,omitempty" yaml:"deduplication_threshold,omitempty"`
	// TokenEncoding names the tiktoken encoding used for token-savings
	// diagnostics. Default: cl100k_base. A heuristic estimator is used when
	// the encoding cannot be loaded.
	TokenEncoding string `json:"token_encoding,omitempty" yaml:"token_encoding,omitempty"`
}

// IntentConfig extends the classifier's built-in keyword lexicon.
type IntentConfig struct {
	// ExtraKeywords maps an intent type name (e.g. "greeting") to extra
	// trigger terms merged into the built-in lexicon.
	ExtraKeywords map[string][]string `json:"extra_keywords,omitempty" yaml:"extra_keywords,omitempty"`
}

// ExpansionConfig extends the expander's built-in synonym tables.
type ExpansionConfig struct {
	// ExtraSynonyms maps a source term to additional synonyms merged into
	// the built-in acronym/tech/education tables.
	ExtraSynonyms map[string][]string `json:"extra_synonyms,omitempty" yaml:"extra_synonyms,omitempty"`
	// MaxExpansions caps the number of generated expansion strings per call.
	// Zero means unlimited.
	MaxExpansions int `json:"max_expansions,omitempty" yaml:"max_expansions,omitempty"`
}

// ExtractionConfig extends the extractor's built-in lexicons.
type ExtractionConfig struct {
	// ExtraSkills are additional skill/technology names tagged as SKILL.
	ExtraSkills []string `json:"extra_skills,omitempty" yaml:"extra_skills,omitempty"`
	// ExtraDifficultyTerms maps a difficulty level (beginner, intermediate,
	// advanced) to additional trigger words.
	ExtraDifficultyTerms map[string][]string `json:"extra_difficulty_terms,omitempty" yaml:"extra_difficulty_terms,omitempty"`
}

// EmbeddingConfig defines the optional embedding provider callers can use to
// attach embeddings to history messages before preprocessing. The core
// pipeline never consults it.
type EmbeddingConfig struct {
	Provider   string `json:"provider,omitempty" yaml:"provider,omitempty"` // Available options: openai
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config bytes.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// DeduplicationEnabled resolves the tri-state enable flag (default true).
func (c *PreprocessConfig) DeduplicationEnabled() bool {
	if c.EnableDeduplication == nil {
		return true
	}
	return *c.EnableDeduplication
}

// Threshold resolves the deduplication threshold (default 0.95). An explicit
// 0.0 is honored, not treated as unset.
func (c *PreprocessConfig) Threshold() float64 {
	if c.DeduplicationThreshold == nil {
		return DefaultDeduplicationThreshold
	}
	return *c.DeduplicationThreshold
}
