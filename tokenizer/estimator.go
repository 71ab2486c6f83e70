// Package tokenizer estimates token counts for diagnostics such as the
// tokens-saved figure reported after history deduplication. Counts are
// advisory; nothing on the hot path branches on them.
package tokenizer

import (
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/coursemesh/nlp-preprocess/common/logger"
)

// Estimator counts approximate tokens in a text.
type Estimator interface {
	EstimateText(text string) int
}

// TiktokenEstimator counts tokens with a real BPE encoding.
type TiktokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenEstimator loads the named encoding (e.g. cl100k_base). Loading
// may fetch encoding data on first use, so construct once and reuse.
func NewTiktokenEstimator(encodingName string) (*TiktokenEstimator, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return &TiktokenEstimator{encoding: enc}, nil
}

// EstimateText returns the exact token count under the loaded encoding.
func (e *TiktokenEstimator) EstimateText(text string) int {
	if text == "" {
		return 0
	}
	return len(e.encoding.Encode(text, nil, nil))
}

// HeuristicEstimator approximates one token per four characters, the rule of
// thumb for English under GPT-family encodings.
type HeuristicEstimator struct{}

// EstimateText returns the character-based approximation, minimum 1 for
// non-empty text.
func (HeuristicEstimator) EstimateText(text string) int {
	if text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// NewEstimator returns a tiktoken-backed estimator for encodingName, falling
// back to the heuristic when the encoding cannot be loaded (for example with
// no network access to fetch encoding data).
func NewEstimator(encodingName string) Estimator {
	est, err := NewTiktokenEstimator(encodingName)
	if err != nil {
		logger.Warnf("tiktoken encoding %q unavailable, using heuristic estimator: %v", encodingName, err)
		return HeuristicEstimator{}
	}
	return est
}
