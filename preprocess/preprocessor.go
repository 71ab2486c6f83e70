// Package preprocess orchestrates the query preprocessing pipeline: intent
// classification, entity extraction, query expansion, and semantic
// deduplication of conversation history. Process is pure with respect to its
// inputs and performs no I/O, so it is safe on the request hot path.
package preprocess

import (
	"context"
	"strings"
	"time"

	"github.com/coursemesh/nlp-preprocess/common/logger"
	"github.com/coursemesh/nlp-preprocess/config"
	"github.com/coursemesh/nlp-preprocess/expand"
	"github.com/coursemesh/nlp-preprocess/extract"
	"github.com/coursemesh/nlp-preprocess/intent"
	"github.com/coursemesh/nlp-preprocess/metrics"
	"github.com/coursemesh/nlp-preprocess/schema"
	"github.com/coursemesh/nlp-preprocess/similarity"
	"github.com/coursemesh/nlp-preprocess/tokenizer"
)

// Preprocessor runs the full pipeline. Construct once with New and share
// across goroutines; all components are read-only after construction except
// the expander, which guards its dictionary with its own lock.
type Preprocessor struct {
	classifier *intent.Classifier
	extractor  *extract.Extractor
	expander   *expand.Expander
	estimator  tokenizer.Estimator
	cfg        *config.Config
}

// Option overrides per-call behavior.
type Option func(*callOptions)

type callOptions struct {
	dedupEnabled bool
	threshold    float64
}

// WithDeduplication enables or disables history deduplication for one call.
func WithDeduplication(enabled bool) Option {
	return func(o *callOptions) { o.dedupEnabled = enabled }
}

// WithThreshold overrides the similarity threshold for one call.
func WithThreshold(threshold float64) Option {
	return func(o *callOptions) { o.threshold = threshold }
}

// New builds a preprocessor from config. A nil config uses all defaults.
func New(cfg *config.Config) *Preprocessor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Preprocessor{
		classifier: intent.New(cfg.Intent.ExtraKeywords),
		extractor:  extract.New(cfg.Extraction.ExtraSkills, cfg.Extraction.ExtraDifficultyTerms),
		expander:   expand.New(cfg.Expansion.ExtraSynonyms, cfg.Expansion.MaxExpansions),
		estimator:  tokenizer.NewEstimator(cfg.Preprocess.TokenEncoding),
		cfg:        cfg,
	}
}

// Expander exposes the underlying expander so callers can register synonyms
// at runtime.
func (p *Preprocessor) Expander() *expand.Expander {
	return p.expander
}

// Process runs the pipeline over one query and its conversation history. It
// is total: every input, including empty strings and history without
// embeddings, produces a result rather than an error. The context is
// accepted for interface symmetry with the rest of the stack; no stage
// blocks on it.
func (p *Preprocessor) Process(ctx context.Context, query string, history []schema.ConversationMessage, opts ...Option) *schema.PreprocessingResult {
	start := time.Now()
	call := callOptions{
		dedupEnabled: p.cfg.Preprocess.DeduplicationEnabled(),
		threshold:    p.cfg.Preprocess.Threshold(),
	}
	for _, opt := range opts {
		opt(&call)
	}
	diag := metrics.NewPreprocessMetrics(query)

	stageStart := time.Now()
	queryIntent := p.classifier.Classify(query)
	diag.ClassifyLatencyUs = time.Since(stageStart).Microseconds()
	diag.RecordIntent(string(queryIntent.IntentType), queryIntent.Confidence, queryIntent.ShouldCallLLM)

	stageStart = time.Now()
	entities := p.extractor.Extract(query)
	diag.ExtractLatencyUs = time.Since(stageStart).Microseconds()
	diag.EntityCount = len(entities)

	var expanded *schema.ExpandedQuery
	if strings.TrimSpace(query) != "" {
		stageStart = time.Now()
		expanded = p.expander.Expand(query)
		diag.ExpandLatencyUs = time.Since(stageStart).Microseconds()
		diag.ExpansionCount = len(expanded.Expansions)
	}

	result := &schema.PreprocessingResult{
		Intent:        queryIntent,
		Entities:      entities,
		ExpandedQuery: expanded,
		ShouldCallLLM: queryIntent.ShouldCallLLM,
		Metadata: map[string]any{
			"query_id": diag.QueryID,
		},
	}

	if len(history) > 0 {
		if call.dedupEnabled {
			stageStart = time.Now()
			kept, tokensSaved := p.deduplicate(history, call.threshold)
			diag.DedupLatencyUs = time.Since(stageStart).Microseconds()
			diag.RecordDedup(len(history), len(kept), tokensSaved)
			result.DeduplicatedHistory = kept
			result.Metadata["history_dropped"] = len(history) - len(kept)
			if tokensSaved > 0 {
				result.Metadata["tokens_saved"] = tokensSaved
			}
			metrics.ObserveDedup(len(history) - len(kept))
		} else {
			result.DeduplicatedHistory = history
		}
	}

	if !queryIntent.ShouldCallLLM {
		result.DirectResponse = p.directResponse(queryIntent, entities)
	}

	result.ProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	metrics.ObservePreprocess(start)
	metrics.IncIntent(string(queryIntent.IntentType), queryIntent.ShouldCallLLM)
	metrics.ObserveEntities(len(entities))
	metrics.ObserveExpansion(diag.ExpansionCount)
	diag.TotalLatencyMs = result.ProcessingTimeMs
	diag.Log()
	logger.Debugf("preprocessed query intent=%s entities=%d llm=%v in %.3fms",
		queryIntent.IntentType, len(entities), queryIntent.ShouldCallLLM, result.ProcessingTimeMs)

	return result
}

// deduplicate drops history turns whose embedding is a near-duplicate of an
// already-kept turn. Turns without an embedding are always kept and never
// compared. Returns the surviving turns in original order and the estimated
// token savings of the dropped ones.
func (p *Preprocessor) deduplicate(history []schema.ConversationMessage, threshold float64) ([]schema.ConversationMessage, int) {
	kept := make([]schema.ConversationMessage, 0, len(history))
	keptEmbeddings := make([][]float32, 0, len(history))
	tokensSaved := 0
	for _, msg := range history {
		if len(msg.Embedding) == 0 {
			kept = append(kept, msg)
			continue
		}
		dup := false
		for _, prev := range keptEmbeddings {
			if similarity.CosineSimilarity(msg.Embedding, prev) > threshold {
				dup = true
				break
			}
		}
		if dup {
			tokensSaved += p.estimator.EstimateText(msg.Content)
			continue
		}
		kept = append(kept, msg)
		keptEmbeddings = append(keptEmbeddings, msg.Embedding)
	}
	return kept, tokensSaved
}

// directResponse builds the canned payload for intents that bypass the LLM.
// Entities of the types relevant to the intent are echoed back so the caller
// can resolve the lookup without re-extracting.
func (p *Preprocessor) directResponse(queryIntent schema.Intent, entities []schema.Entity) *schema.DirectResponse {
	resp := &schema.DirectResponse{
		Type: string(queryIntent.IntentType),
		Data: map[string]any{"confidence": queryIntent.Confidence},
	}
	switch queryIntent.IntentType {
	case schema.IntentGreeting:
		resp.Message = "Hello! Ask me about courses, skills, or learning paths."
	case schema.IntentFeedback:
		resp.Message = "Thanks for the feedback."
	case schema.IntentPrerequisiteCheck:
		resp.Message = "Prerequisite lookup request."
		resp.Entities = filterEntities(entities, schema.EntityCourse, schema.EntityTopic, schema.EntitySkill)
	case schema.IntentCourseLookup:
		resp.Message = "Course lookup request."
		resp.Entities = filterEntities(entities, schema.EntityCourse, schema.EntityTopic, schema.EntitySkill, schema.EntityDifficulty, schema.EntityDuration)
	case schema.IntentSkillLookup:
		resp.Message = "Skill lookup request."
		resp.Entities = filterEntities(entities, schema.EntitySkill, schema.EntityTopic, schema.EntityDifficulty)
	case schema.IntentLearningPath:
		resp.Message = "Learning path request."
		resp.Entities = filterEntities(entities, schema.EntityCourse, schema.EntityTopic, schema.EntitySkill, schema.EntityDifficulty, schema.EntityDuration)
	}
	return resp
}

func filterEntities(entities []schema.Entity, types ...schema.EntityType) []schema.Entity {
	var out []schema.Entity
	for _, e := range entities {
		for _, t := range types {
			if e.EntityType == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
