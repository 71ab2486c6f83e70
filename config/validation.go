package config

import "fmt"

const (
	// DefaultDeduplicationThreshold is the strict similarity cutoff used
	// when none is configured.
	DefaultDeduplicationThreshold = 0.95

	// DefaultTokenEncoding is the tiktoken encoding used for token-savings
	// diagnostics.
	DefaultTokenEncoding = "cl100k_base"
)

// ApplyDefaults fills unset fields with working defaults. The tri-state
// fields (enable flag, threshold) stay nil and resolve through their
// accessors, so an explicit zero value survives.
func (c *Config) ApplyDefaults() {
	if c.Preprocess.TokenEncoding == "" {
		c.Preprocess.TokenEncoding = DefaultTokenEncoding
	}
	if c.Embedding.Provider != "" && c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
}

// Validate checks value ranges. It does not mutate the config.
func (c *Config) Validate() error {
	if t := c.Preprocess.DeduplicationThreshold; t != nil && (*t < 0 || *t > 1) {
		return fmt.Errorf("deduplication_threshold must be in [0,1], got %v", *t)
	}
	if c.Expansion.MaxExpansions < 0 {
		return fmt.Errorf("max_expansions must be >= 0, got %d", c.Expansion.MaxExpansions)
	}
	for term, syns := range c.Expansion.ExtraSynonyms {
		if term == "" {
			return fmt.Errorf("extra_synonyms contains an empty source term")
		}
		if len(syns) == 0 {
			return fmt.Errorf("extra_synonyms for %q has no synonyms", term)
		}
	}
	switch c.Embedding.Provider {
	case "", "openai":
	default:
		return fmt.Errorf("unknown embedding provider: %s", c.Embedding.Provider)
	}
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding dimensions must be >= 0, got %d", c.Embedding.Dimensions)
	}
	return nil
}
