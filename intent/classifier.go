// Package intent classifies queries into a closed taxonomy using keyword and
// pattern rules. Rule order is the priority order: the first category whose
// cues fire wins, so classification is deterministic for any input.
package intent

import (
	"strings"

	"github.com/coursemesh/nlp-preprocess/schema"
)

// Lexicon holds the trigger terms for each rule. Multi-word entries match as
// phrases; all matching is case-insensitive and whole-word.
type Lexicon struct {
	Greetings     []string
	Prerequisites []string
	LearningPath  []string
	LookupVerbs   []string
	CourseNouns   []string
	SkillNouns    []string
	Feedback      []string
	Explanation   []string
	Commands      []string
	Clarification []string
	QuestionWords []string
}

// DefaultLexicon returns the built-in trigger terms.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Greetings:     []string{"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening", "howdy"},
		Prerequisites: []string{"prerequisite", "prerequisites", "prereq", "prereqs", "required before", "need to know before", "need before"},
		LearningPath:  []string{"learning path", "roadmap", "road map", "study plan", "curriculum", "course sequence", "where do i start", "where should i start"},
		LookupVerbs:   []string{"find", "show me", "search", "search for", "list", "recommend", "suggest", "looking for", "are there"},
		CourseNouns:   []string{"course", "courses", "class", "classes", "tutorial", "tutorials", "lesson", "lessons", "program", "programs"},
		SkillNouns:    []string{"skill", "skills", "competency", "competencies", "proficiency"},
		Feedback:      []string{"thanks", "thank you", "great", "awesome", "helpful", "perfect", "feedback", "not helpful", "didn't help", "wrong answer"},
		Explanation:   []string{"explain", "what is", "what are", "what does", "how does", "how do", "why is", "why does", "describe", "tell me about"},
		Commands:      []string{"create", "update", "delete", "add", "remove", "set", "enable", "disable", "reset"},
		Clarification: []string{"what do you mean", "i don't understand", "i dont understand", "can you clarify", "clarify", "rephrase", "say that again", "confused"},
		QuestionWords: []string{"what", "when", "where", "who", "which", "how", "why", "can", "could", "should", "would", "is", "are", "do", "does"},
	}
}

// Merge appends extra trigger terms by category name. Unknown category names
// are ignored. Recognized names: greeting, prerequisite_check, learning_path,
// course_lookup, skill_lookup, feedback, concept_explanation, command,
// clarification, question.
func (l *Lexicon) Merge(extra map[string][]string) {
	for name, terms := range extra {
		switch strings.ToLower(name) {
		case "greeting":
			l.Greetings = append(l.Greetings, terms...)
		case "prerequisite_check":
			l.Prerequisites = append(l.Prerequisites, terms...)
		case "learning_path":
			l.LearningPath = append(l.LearningPath, terms...)
		case "course_lookup":
			l.CourseNouns = append(l.CourseNouns, terms...)
		case "skill_lookup":
			l.SkillNouns = append(l.SkillNouns, terms...)
		case "feedback":
			l.Feedback = append(l.Feedback, terms...)
		case "concept_explanation":
			l.Explanation = append(l.Explanation, terms...)
		case "command":
			l.Commands = append(l.Commands, terms...)
		case "clarification":
			l.Clarification = append(l.Clarification, terms...)
		case "question":
			l.QuestionWords = append(l.QuestionWords, terms...)
		}
	}
}

// Classifier is a rule-based intent classifier. Construct with New.
type Classifier struct {
	lexicon *Lexicon
}

// New builds a classifier from the default lexicon merged with any extra
// keywords. Pass nil extras to use the built-ins as-is.
func New(extraKeywords map[string][]string) *Classifier {
	lex := DefaultLexicon()
	if len(extraKeywords) > 0 {
		lex.Merge(extraKeywords)
	}
	return &Classifier{lexicon: lex}
}

// Classify assigns an intent to the query. Rules are checked in fixed
// priority order; Keywords lists the cues that fired for the winning rule.
// Empty or whitespace-only input classifies as unknown.
func (c *Classifier) Classify(query string) schema.Intent {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return newIntent(schema.IntentUnknown, 0.2, nil, "empty")
	}
	lower := strings.ToLower(trimmed)

	if hits := matchAny(lower, c.lexicon.Greetings); len(hits) > 0 && isShortGreeting(lower) {
		return newIntent(schema.IntentGreeting, 0.95, hits, "keyword")
	}
	if hits := matchAny(lower, c.lexicon.Prerequisites); len(hits) > 0 {
		return newIntent(schema.IntentPrerequisiteCheck, 0.9, hits, "keyword")
	}
	courseHits := matchAny(lower, c.lexicon.CourseNouns)
	skillHits := matchAny(lower, c.lexicon.SkillNouns)
	lookupHits := matchAny(lower, c.lexicon.LookupVerbs)
	if len(lookupHits) > 0 || hasQuoted(trimmed) {
		if len(courseHits) > 0 {
			return newIntent(schema.IntentCourseLookup, 0.8, append(lookupHits, courseHits...), "keyword")
		}
		if len(skillHits) > 0 {
			return newIntent(schema.IntentSkillLookup, 0.8, append(lookupHits, skillHits...), "keyword")
		}
	}
	if hits := matchAny(lower, c.lexicon.LearningPath); len(hits) > 0 {
		return newIntent(schema.IntentLearningPath, 0.85, hits, "keyword")
	}
	if hits := matchAny(lower, c.lexicon.Feedback); len(hits) > 0 {
		return newIntent(schema.IntentFeedback, 0.7, hits, "keyword")
	}
	if hits := matchAny(lower, c.lexicon.Explanation); len(hits) > 0 {
		return newIntent(schema.IntentConceptExplanation, 0.75, hits, "keyword")
	}
	if cmd, ok := startsWithAny(lower, c.lexicon.Commands); ok {
		return newIntent(schema.IntentCommand, 0.7, []string{cmd}, "prefix")
	}
	if hits := matchAny(lower, c.lexicon.Clarification); len(hits) > 0 {
		return newIntent(schema.IntentClarification, 0.6, hits, "keyword")
	}
	if strings.HasSuffix(trimmed, "?") {
		return newIntent(schema.IntentQuestion, 0.6, nil, "punctuation")
	}
	if w, ok := startsWithAny(lower, c.lexicon.QuestionWords); ok {
		return newIntent(schema.IntentQuestion, 0.6, []string{w}, "prefix")
	}
	return newIntent(schema.IntentUnknown, 0.2, nil, "fallback")
}

func newIntent(t schema.IntentType, confidence float64, keywords []string, matcher string) schema.Intent {
	if keywords == nil {
		keywords = []string{}
	}
	return schema.Intent{
		IntentType:    t,
		Confidence:    confidence,
		Keywords:      keywords,
		ShouldCallLLM: t.ShouldCallLLM(),
		Metadata:      map[string]any{"matcher": matcher},
	}
}

// isShortGreeting guards against greeting words buried in a longer request
// ("hi, find me a python course"). Greetings win only when the query is a
// few words with no question mark.
func isShortGreeting(lower string) bool {
	return len(strings.Fields(lower)) <= 4 && !strings.Contains(lower, "?")
}

// matchAny returns the terms that occur in s as whole words or phrases, in
// lexicon order.
func matchAny(s string, terms []string) []string {
	var hits []string
	for _, term := range terms {
		if containsWord(s, term) {
			hits = append(hits, term)
		}
	}
	return hits
}

// startsWithAny reports whether the first word of s is one of terms.
func startsWithAny(s string, terms []string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	first := strings.Trim(fields[0], ",.!?:;")
	for _, term := range terms {
		if first == term {
			return term, true
		}
	}
	return "", false
}

func hasQuoted(s string) bool {
	return strings.Count(s, `"`) >= 2 || strings.Count(s, `'`) >= 2
}

func containsWord(s, term string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	return i >= len(s) || !isWordByte(s[i])
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
