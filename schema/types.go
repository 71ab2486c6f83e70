package schema

// IntentType is the closed taxonomy of query intents.
type IntentType string

const (
	IntentQuestion           IntentType = "question"
	IntentPrerequisiteCheck  IntentType = "prerequisite_check"
	IntentCourseLookup       IntentType = "course_lookup"
	IntentSkillLookup        IntentType = "skill_lookup"
	IntentLearningPath       IntentType = "learning_path"
	IntentConceptExplanation IntentType = "concept_explanation"
	IntentFeedback           IntentType = "feedback"
	IntentCommand            IntentType = "command"
	IntentClarification      IntentType = "clarification"
	IntentGreeting           IntentType = "greeting"
	IntentUnknown            IntentType = "unknown"
)

// ShouldCallLLM reports whether a query with this intent structurally
// requires a language-model call. Lookup-style intents and greetings can be
// answered by direct lookup or a canned response.
func (t IntentType) ShouldCallLLM() bool {
	switch t {
	case IntentPrerequisiteCheck, IntentCourseLookup, IntentSkillLookup,
		IntentLearningPath, IntentGreeting, IntentFeedback:
		return false
	default:
		return true
	}
}

// EntityType classifies an extracted span.
type EntityType string

const (
	EntityCourse       EntityType = "COURSE"
	EntityTopic        EntityType = "TOPIC"
	EntitySkill        EntityType = "SKILL"
	EntityConcept      EntityType = "CONCEPT"
	EntityPerson       EntityType = "PERSON"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityDifficulty   EntityType = "DIFFICULTY"
	EntityDuration     EntityType = "DURATION"
)

// Span holds character offsets into the original query string.
// Invariant: 0 <= Start < End <= len(query).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Entity is one extracted, typed span of the query.
type Entity struct {
	Text       string         `json:"text"`
	EntityType EntityType     `json:"entity_type"`
	Confidence float64        `json:"confidence"`
	Span       Span           `json:"span"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Intent is the classification outcome for one query.
type Intent struct {
	IntentType    IntentType     `json:"intent_type"`
	Confidence    float64        `json:"confidence"`
	Keywords      []string       `json:"keywords,omitempty"`
	ShouldCallLLM bool           `json:"should_call_llm"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ExpandedQuery is the expansion outcome for one query.
// Invariant: if Expansions is empty, Combined equals Original verbatim.
type ExpandedQuery struct {
	Original       string              `json:"original"`
	Expansions     []string            `json:"expansions"`
	Combined       string              `json:"combined"`
	ExpansionTerms map[string][]string `json:"expansion_terms,omitempty"`
}

// ConversationMessage is one turn of caller-owned conversation history.
// The embedding, when present, is precomputed by the caller; the pipeline
// never generates embeddings on the hot path.
type ConversationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// SemanticSimilarity is one pairwise comparison between two history turns.
// Index1 < Index2 by construction.
type SemanticSimilarity struct {
	Index1      int     `json:"index1"`
	Index2      int     `json:"index2"`
	Similarity  float64 `json:"similarity"`
	IsDuplicate bool    `json:"is_duplicate"`
}

// DirectResponse is a structured payload that bypasses the LLM, populated
// for intents resolvable by lookup or canned reply. Type echoes the intent
// category; Data is caller-extensible.
type DirectResponse struct {
	Type     string         `json:"type"`
	Message  string         `json:"message,omitempty"`
	Entities []Entity       `json:"entities,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// PreprocessingResult is the aggregate returned to the caller for one query.
type PreprocessingResult struct {
	Intent              Intent                `json:"intent"`
	Entities            []Entity              `json:"entities"`
	ExpandedQuery       *ExpandedQuery        `json:"expanded_query,omitempty"`
	DeduplicatedHistory []ConversationMessage `json:"deduplicated_history,omitempty"`
	ShouldCallLLM       bool                  `json:"should_call_llm"`
	DirectResponse      *DirectResponse       `json:"direct_response,omitempty"`
	ProcessingTimeMs    float64               `json:"processing_time_ms"`
	Metadata            map[string]any        `json:"metadata,omitempty"`
}
