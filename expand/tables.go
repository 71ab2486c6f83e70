package expand

// Built-in lookup tables merged into every expander. Keys are lowercase and
// matched as whole words only. Entries here are shared read-only data; the
// expander copies them at construction so runtime AddSynonym calls never
// touch these maps.

// DefaultAcronyms maps common acronyms to their spelled-out forms.
func DefaultAcronyms() map[string][]string {
	return map[string][]string{
		"ml":     {"machine learning"},
		"ai":     {"artificial intelligence"},
		"dl":     {"deep learning"},
		"nlp":    {"natural language processing"},
		"cv":     {"computer vision"},
		"db":     {"database"},
		"js":     {"javascript"},
		"ts":     {"typescript"},
		"k8s":    {"kubernetes"},
		"oop":    {"object oriented programming"},
		"api":    {"application programming interface"},
		"sql":    {"structured query language"},
		"ui":     {"user interface"},
		"ux":     {"user experience"},
		"devops": {"development operations"},
	}
}

// DefaultTechSynonyms maps technology and skill names to close variants.
// The extractor's skill lexicon is derived from this table so the two
// components stay in vocabulary lockstep.
func DefaultTechSynonyms() map[string][]string {
	return map[string][]string{
		"python":     {"python programming", "python development"},
		"javascript": {"js", "ecmascript"},
		"typescript": {"ts"},
		"java":       {"java programming"},
		"golang":     {"go programming"},
		"rust":       {"rust programming"},
		"kubernetes": {"k8s", "container orchestration"},
		"docker":     {"containers", "containerization"},
		"database":   {"db", "datastore"},
		"react":      {"reactjs", "react.js"},
		"node":       {"nodejs", "node.js"},
		"tensorflow": {"tf"},
		"pytorch":    {"torch"},
		"pandas":     {"dataframes"},
		"linux":      {"unix"},
		"git":        {"version control"},
		"aws":        {"amazon web services"},
		"sql":        {"structured query language", "relational queries"},
		"html":       {"hypertext markup language"},
		"css":        {"stylesheets"},
	}
}

// DefaultEducationSynonyms maps education-domain terms to interchangeable
// phrasings used across course catalogs.
func DefaultEducationSynonyms() map[string][]string {
	return map[string][]string{
		"course":       {"class", "tutorial", "lesson", "program"},
		"courses":      {"classes", "tutorials", "lessons", "programs"},
		"learn":        {"study", "master", "understand"},
		"learning":     {"studying", "training"},
		"teach":        {"instruct", "train"},
		"teacher":      {"instructor", "tutor"},
		"beginner":     {"introductory", "basic", "entry level"},
		"advanced":     {"expert", "in-depth"},
		"prerequisite": {"requirement", "precondition"},
		"certificate":  {"certification", "credential"},
		"exam":         {"test", "assessment"},
		"homework":     {"assignment", "exercise"},
	}
}

// mergedDefaults builds the combined table the expander starts from. Terms
// present in more than one table get the union of their synonyms, first
// occurrence order.
func mergedDefaults() map[string][]string {
	merged := make(map[string][]string, 48)
	for _, table := range []map[string][]string{
		DefaultAcronyms(),
		DefaultTechSynonyms(),
		DefaultEducationSynonyms(),
	} {
		for term, syns := range table {
			for _, syn := range syns {
				if !contains(merged[term], syn) {
					merged[term] = append(merged[term], syn)
				}
			}
		}
	}
	return merged
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
