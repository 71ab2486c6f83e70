package metrics

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/coursemesh/nlp-preprocess/common/logger"
)

// PreprocessMetrics records the complete diagnostic trace of one
// preprocessing call. It is JSON-marshalable so callers can forward it to
// whatever log pipeline they run.
type PreprocessMetrics struct {
	QueryID   string    `json:"query_id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`

	Intent           string  `json:"intent,omitempty"`
	IntentConfidence float64 `json:"intent_confidence,omitempty"`
	ShouldCallLLM    bool    `json:"should_call_llm"`

	EntityCount    int `json:"entity_count"`
	ExpansionCount int `json:"expansion_count"`

	DedupEnabled bool `json:"dedup_enabled"`
	HistorySize  int  `json:"history_size,omitempty"`
	DedupKept    int  `json:"dedup_kept,omitempty"`
	DedupDropped int  `json:"dedup_dropped,omitempty"`
	TokensSaved  int  `json:"tokens_saved,omitempty"`

	ClassifyLatencyUs int64 `json:"classify_latency_us,omitempty"`
	ExtractLatencyUs  int64 `json:"extract_latency_us,omitempty"`
	ExpandLatencyUs   int64 `json:"expand_latency_us,omitempty"`
	DedupLatencyUs    int64 `json:"dedup_latency_us,omitempty"`

	TotalLatencyMs float64 `json:"total_latency_ms"`
}

// NewPreprocessMetrics creates a per-call metrics record with a fresh query ID.
func NewPreprocessMetrics(query string) *PreprocessMetrics {
	return &PreprocessMetrics{
		QueryID:   uuid.NewString(),
		Query:     query,
		Timestamp: time.Now(),
	}
}

// RecordIntent records the classification outcome.
func (m *PreprocessMetrics) RecordIntent(intent string, confidence float64, shouldCallLLM bool) {
	m.Intent = intent
	m.IntentConfidence = confidence
	m.ShouldCallLLM = shouldCallLLM
}

// RecordDedup records deduplication outcome for this call.
func (m *PreprocessMetrics) RecordDedup(historySize, kept, tokensSaved int) {
	m.DedupEnabled = true
	m.HistorySize = historySize
	m.DedupKept = kept
	m.DedupDropped = historySize - kept
	m.TokensSaved = tokensSaved
}

// Log emits the record as a single JSON line at debug level.
func (m *PreprocessMetrics) Log() {
	if data, err := json.Marshal(m); err == nil {
		logger.Debugf("[PREPROCESS_METRICS] %s", string(data))
	}
}
