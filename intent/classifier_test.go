package intent

import (
	"testing"

	"github.com/coursemesh/nlp-preprocess/schema"
)

func TestClassifyTable(t *testing.T) {
	c := New(nil)
	tests := []struct {
		name  string
		query string
		want  schema.IntentType
	}{
		{"greeting", "Hello!", schema.IntentGreeting},
		{"greeting casual", "hey there", schema.IntentGreeting},
		{"greeting long query demoted", "hi, find me a python course please now", schema.IntentCourseLookup},
		{"prerequisite", "What are the prerequisites for Machine Learning?", schema.IntentPrerequisiteCheck},
		{"prerequisite singular", "Is calculus a prerequisite?", schema.IntentPrerequisiteCheck},
		{"course lookup", "Find me a beginner python course", schema.IntentCourseLookup},
		{"course lookup show", "Show me classes on databases", schema.IntentCourseLookup},
		{"skill lookup", "List the skills needed for data engineering", schema.IntentSkillLookup},
		{"learning path", "What is the best learning path for data science?", schema.IntentLearningPath},
		{"learning path roadmap", "roadmap to becoming a backend developer", schema.IntentLearningPath},
		{"feedback", "thanks, that was helpful", schema.IntentFeedback},
		{"feedback negative", "that was the wrong answer", schema.IntentFeedback},
		{"explanation", "Explain gradient descent", schema.IntentConceptExplanation},
		{"explanation what is", "What is a closure in javascript?", schema.IntentConceptExplanation},
		{"command", "delete my saved preferences", schema.IntentCommand},
		{"clarification", "I don't understand", schema.IntentClarification},
		{"question mark fallback", "Python any good?", schema.IntentQuestion},
		{"question word fallback", "does it run on linux", schema.IntentQuestion},
		{"unknown", "asdf qwerty", schema.IntentUnknown},
		{"empty", "", schema.IntentUnknown},
		{"whitespace", "   ", schema.IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query)
			if got.IntentType != tt.want {
				t.Errorf("Classify(%q) = %s, want %s (keywords %v)", tt.query, got.IntentType, tt.want, got.Keywords)
			}
		})
	}
}

func TestClassifyShouldCallLLM(t *testing.T) {
	c := New(nil)
	direct := []string{
		"Hello!",
		"What are the prerequisites for calculus?",
		"Find me a python course",
		"List the skills for devops",
		"study plan for machine learning",
		"thanks a lot",
	}
	for _, q := range direct {
		if got := c.Classify(q); got.ShouldCallLLM {
			t.Errorf("Classify(%q): ShouldCallLLM = true, want false (intent %s)", q, got.IntentType)
		}
	}
	llm := []string{
		"Explain gradient descent",
		"delete my saved entry",
		"I don't understand",
		"Python any good?",
		"asdf qwerty",
	}
	for _, q := range llm {
		if got := c.Classify(q); !got.ShouldCallLLM {
			t.Errorf("Classify(%q): ShouldCallLLM = false, want true (intent %s)", q, got.IntentType)
		}
	}
}

func TestClassifyConfidence(t *testing.T) {
	c := New(nil)
	tests := []struct {
		query string
		want  float64
	}{
		{"Hello!", 0.95},
		{"prerequisites for calculus", 0.9},
		{"roadmap for data science", 0.85},
		{"find me a course", 0.8},
		{"", 0.2},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.query); got.Confidence != tt.want {
			t.Errorf("Classify(%q).Confidence = %v, want %v", tt.query, got.Confidence, tt.want)
		}
	}
}

func TestClassifyKeywordsReported(t *testing.T) {
	c := New(nil)
	got := c.Classify("Find me a beginner python course")
	if len(got.Keywords) == 0 {
		t.Fatal("no keywords reported")
	}
	hasFind, hasCourse := false, false
	for _, k := range got.Keywords {
		if k == "find" {
			hasFind = true
		}
		if k == "course" {
			hasCourse = true
		}
	}
	if !hasFind || !hasCourse {
		t.Errorf("Keywords = %v, want find and course", got.Keywords)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(nil)
	query := "Show me advanced kubernetes classes"
	first := c.Classify(query)
	for i := 0; i < 20; i++ {
		got := c.Classify(query)
		if got.IntentType != first.IntentType || got.Confidence != first.Confidence {
			t.Fatalf("run %d: %s/%v, want %s/%v", i, got.IntentType, got.Confidence, first.IntentType, first.Confidence)
		}
	}
}

func TestClassifyExtraKeywords(t *testing.T) {
	c := New(map[string][]string{"greeting": {"yo"}})
	if got := c.Classify("yo"); got.IntentType != schema.IntentGreeting {
		t.Errorf("extra greeting keyword not applied: %s", got.IntentType)
	}
}

func TestClassifyQuotedTitleTriggersLookup(t *testing.T) {
	c := New(nil)
	got := c.Classify(`"Intro to Go" course`)
	if got.IntentType != schema.IntentCourseLookup {
		t.Errorf("Classify(quoted) = %s, want %s", got.IntentType, schema.IntentCourseLookup)
	}
}
