// Package expand rewrites a user query into synonym and acronym variants so
// downstream retrieval can match documents that phrase the same concept
// differently. Expansion is pure string work: deterministic, allocation-light,
// and safe to run on every query.
package expand

import (
	"sort"
	"strings"
	"sync"

	"github.com/coursemesh/nlp-preprocess/schema"
)

// Expander generates query variants from a synonym dictionary. The zero value
// is not usable; construct with New.
type Expander struct {
	mu            sync.RWMutex
	synonyms      map[string][]string
	maxExpansions int
}

// New builds an expander seeded with the built-in acronym, technology, and
// education tables, plus any extras. Extra synonyms are appended after the
// built-ins for the same term. maxExpansions caps the number of variants per
// call; zero means unlimited.
func New(extra map[string][]string, maxExpansions int) *Expander {
	syns := mergedDefaults()
	for term, vals := range extra {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" {
			continue
		}
		syns[key] = append(syns[key], vals...)
	}
	return &Expander{synonyms: syns, maxExpansions: maxExpansions}
}

// AddSynonym registers additional synonyms for a term at runtime.
func (e *Expander) AddSynonym(term string, synonyms ...string) {
	key := strings.ToLower(strings.TrimSpace(term))
	if key == "" || len(synonyms) == 0 {
		return
	}
	e.mu.Lock()
	e.synonyms[key] = append(e.synonyms[key], synonyms...)
	e.mu.Unlock()
}

// Synonyms returns a copy of the registered synonyms for a term, or nil.
func (e *Expander) Synonyms(term string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	vals, ok := e.synonyms[strings.ToLower(term)]
	if !ok {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Terms returns all dictionary source terms, sorted. The extractor uses this
// to seed its skill lexicon.
func (e *Expander) Terms() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	terms := make([]string, 0, len(e.synonyms))
	for term := range e.synonyms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Expand produces the expanded form of a query. Matching is case-insensitive
// and whole-word. Each matched term contributes one variant per synonym, with
// the term replaced in place; the original casing of unmatched text is kept.
// A query with no dictionary hits comes back with an empty Expansions slice
// and Combined equal to the original, byte for byte. Identical to repeated
// calls: same input always yields the same output.
func (e *Expander) Expand(query string) *schema.ExpandedQuery {
	result := &schema.ExpandedQuery{
		Original:       query,
		Expansions:     []string{},
		Combined:       query,
		ExpansionTerms: map[string][]string{},
	}
	if strings.TrimSpace(query) == "" {
		return result
	}

	lower := strings.ToLower(query)

	e.mu.RLock()
	matched := make([]string, 0, 4)
	for term := range e.synonyms {
		if containsWord(lower, term) {
			matched = append(matched, term)
		}
	}
	// Map iteration order is random; sort so output is stable across calls.
	sort.Strings(matched)

	seen := map[string]bool{query: true, lower: true}
	for _, term := range matched {
		syns := e.synonyms[term]
		result.ExpansionTerms[term] = append([]string(nil), syns...)
		for _, syn := range syns {
			variant := replaceWord(lower, term, strings.ToLower(syn))
			if variant == lower || seen[variant] {
				continue
			}
			seen[variant] = true
			result.Expansions = append(result.Expansions, variant)
		}
	}
	e.mu.RUnlock()

	if e.maxExpansions > 0 && len(result.Expansions) > e.maxExpansions {
		result.Expansions = result.Expansions[:e.maxExpansions]
	}
	if len(result.Expansions) > 0 {
		parts := make([]string, 0, len(result.Expansions)+1)
		parts = append(parts, "("+query+")")
		for _, exp := range result.Expansions {
			parts = append(parts, "("+exp+")")
		}
		result.Combined = strings.Join(parts, " OR ")
	}
	return result
}

// containsWord reports whether term occurs in s as a whole word. Both inputs
// must already be lowercase.
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

// replaceWord replaces every whole-word occurrence of term in s with repl.
func replaceWord(s, term, repl string) string {
	var b strings.Builder
	idx := 0
	for {
		i := strings.Index(s[idx:], term)
		if i < 0 {
			b.WriteString(s[idx:])
			return b.String()
		}
		start := idx + i
		end := start + len(term)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			b.WriteString(s[idx:start])
			b.WriteString(repl)
			idx = end
		} else {
			b.WriteString(s[idx : start+1])
			idx = start + 1
		}
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
