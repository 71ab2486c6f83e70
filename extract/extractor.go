// Package extract pulls typed entities out of a raw query string using
// pattern and lexicon strategies. No model calls, no I/O: every strategy is a
// regex or dictionary scan over the input.
package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coursemesh/nlp-preprocess/expand"
	"github.com/coursemesh/nlp-preprocess/schema"
)

var (
	quotedRe = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	// Number plus a time unit, e.g. "3 weeks", "1.5 hours", "45 mins".
	durationRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(hours?|hrs?|days?|weeks?|months?|minutes?|mins?|years?)\b`)
)

// courseContext are cue words that make a quoted span a COURSE rather than a
// generic TOPIC.
var courseContext = []string{
	"course", "courses", "class", "classes", "prerequisite", "prerequisites",
	"enroll", "enrol", "take", "taking", "register", "syllabus", "curriculum",
}

func defaultDifficultyTerms() map[string][]string {
	return map[string][]string{
		"beginner":     {"beginner", "novice", "introductory", "basic", "entry-level", "entry level", "starter"},
		"intermediate": {"intermediate", "mid-level", "mid level"},
		"advanced":     {"advanced", "expert", "in-depth", "professional"},
	}
}

// Extractor finds entities via a fixed set of strategies. Construct with New;
// the zero value has empty lexicons.
type Extractor struct {
	skills          []string
	difficultyTerms map[string][]string
}

// New builds an extractor. The skill lexicon is seeded from the expander's
// technology dictionary so both components recognize the same vocabulary;
// extraSkills and extraDifficulty extend the built-ins.
func New(extraSkills []string, extraDifficulty map[string][]string) *Extractor {
	skills := make([]string, 0, 32)
	seen := map[string]bool{}
	for term := range expand.DefaultTechSynonyms() {
		if !seen[term] {
			seen[term] = true
			skills = append(skills, term)
		}
	}
	for _, s := range extraSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !seen[s] {
			seen[s] = true
			skills = append(skills, s)
		}
	}

	// Map iteration order is random; sorted skills keep scans deterministic.
	sort.Strings(skills)

	diff := defaultDifficultyTerms()
	for level, terms := range extraDifficulty {
		level = strings.ToLower(strings.TrimSpace(level))
		if level == "" {
			continue
		}
		diff[level] = append(diff[level], terms...)
	}
	return &Extractor{skills: skills, difficultyTerms: diff}
}

// Extract runs all strategies over the query and returns the entities found,
// ordered by span start; ties keep strategy order (quoted, difficulty, skill,
// duration). Overlapping entities from different strategies are all kept;
// disambiguation is the caller's job. Spans index bytes of the original
// string.
func (e *Extractor) Extract(query string) []schema.Entity {
	if strings.TrimSpace(query) == "" {
		return []schema.Entity{}
	}
	folded := foldQuery(query)

	entities := make([]schema.Entity, 0, 4)
	entities = append(entities, e.extractQuoted(query, folded.lower)...)
	entities = append(entities, e.extractDifficulty(query, folded)...)
	entities = append(entities, e.extractSkills(query, folded)...)
	entities = append(entities, e.extractDurations(query)...)
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Span.Start < entities[j].Span.Start
	})
	return entities
}

// extractQuoted tags text inside single or double quotes. Course cue words
// anywhere in the query promote the span from TOPIC to COURSE.
func (e *Extractor) extractQuoted(query, lower string) []schema.Entity {
	matches := quotedRe.FindAllStringSubmatchIndex(query, -1)
	if matches == nil {
		return nil
	}
	entityType := schema.EntityTopic
	for _, cue := range courseContext {
		if containsWord(lower, cue) {
			entityType = schema.EntityCourse
			break
		}
	}
	out := make([]schema.Entity, 0, len(matches))
	for _, m := range matches {
		// Group 1 is double-quoted, group 2 single-quoted.
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		text := query[start:end]
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, schema.Entity{
			Text:       text,
			EntityType: entityType,
			Confidence: 0.9,
			Span:       schema.Span{Start: start, End: end},
			Metadata:   map[string]any{"strategy": "quoted"},
		})
	}
	return out
}

// extractDifficulty scans the difficulty lexicons. The normalized level name
// goes in metadata so callers can filter on it without re-parsing.
func (e *Extractor) extractDifficulty(query string, folded foldedQuery) []schema.Entity {
	var out []schema.Entity
	for _, level := range []string{"beginner", "intermediate", "advanced"} {
		for _, term := range e.difficultyTerms[level] {
			for _, span := range findWordSpans(folded, term) {
				out = append(out, schema.Entity{
					Text:       query[span.Start:span.End],
					EntityType: schema.EntityDifficulty,
					Confidence: 0.8,
					Span:       span,
					Metadata:   map[string]any{"strategy": "difficulty_lexicon", "level": level},
				})
			}
		}
	}
	return out
}

// extractSkills scans the technology/skill lexicon.
func (e *Extractor) extractSkills(query string, folded foldedQuery) []schema.Entity {
	var out []schema.Entity
	for _, skill := range e.skills {
		for _, span := range findWordSpans(folded, skill) {
			out = append(out, schema.Entity{
				Text:       query[span.Start:span.End],
				EntityType: schema.EntitySkill,
				Confidence: 0.75,
				Span:       span,
				Metadata:   map[string]any{"strategy": "skill_lexicon"},
			})
		}
	}
	return out
}

// extractDurations tags number+unit spans like "3 weeks". Value and unit are
// split into metadata.
func (e *Extractor) extractDurations(query string) []schema.Entity {
	matches := durationRe.FindAllStringSubmatchIndex(query, -1)
	if matches == nil {
		return nil
	}
	out := make([]schema.Entity, 0, len(matches))
	for _, m := range matches {
		start, end := m[0], m[1]
		out = append(out, schema.Entity{
			Text:       query[start:end],
			EntityType: schema.EntityDuration,
			Confidence: 0.85,
			Span:       schema.Span{Start: start, End: end},
			Metadata: map[string]any{
				"strategy": "duration_pattern",
				"value":    query[m[2]:m[3]],
				"unit":     strings.ToLower(query[m[4]:m[5]]),
			},
		})
	}
	return out
}

// foldedQuery pairs a lowercased copy of the query with a byte-offset map
// back into the original string. Lowering can change the byte length of
// non-ASCII runes, so matches found in the lowered copy cannot index the
// original directly.
type foldedQuery struct {
	lower string
	// orig[i] is the original-string byte offset of the rune that produced
	// lowered byte i; orig[len(lower)] is len(original).
	orig []int
}

func foldQuery(query string) foldedQuery {
	var b strings.Builder
	b.Grow(len(query))
	orig := make([]int, 0, len(query)+1)
	for i, r := range query {
		lr := unicode.ToLower(r)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			orig = append(orig, i)
		}
		b.WriteRune(lr)
	}
	orig = append(orig, len(query))
	return foldedQuery{lower: b.String(), orig: orig}
}

// findWordSpans returns the spans of every whole-word occurrence of term
// (lowercase) in the folded query, as byte offsets into the original string.
func findWordSpans(f foldedQuery, term string) []schema.Span {
	var spans []schema.Span
	idx := 0
	for {
		i := strings.Index(f.lower[idx:], term)
		if i < 0 {
			return spans
		}
		start := idx + i
		end := start + len(term)
		if boundaryBefore(f.lower, start) && boundaryAfter(f.lower, end) {
			spans = append(spans, schema.Span{Start: f.orig[start], End: f.orig[end]})
			idx = end
		} else {
			idx = start + 1
		}
	}
}

func containsWord(s, term string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		if boundaryBefore(s, start) && boundaryAfter(s, start+len(term)) {
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
