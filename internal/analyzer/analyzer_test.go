package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_SuspiciousPatterns(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name  string
		text  string
		match bool
	}{
		{"breaking", "BREAKING: markets fall", true},
		{"shocking", "This is SHOCKING news", true},
		{"wont believe", "You won't believe what happened next", true},
		{"cure for aging", "Scientists discover cure for aging", true},
		{"big pharma", "What big pharma hides", true},
		{"plain", "The council met on Tuesday to discuss the budget.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := a.Analyze(tt.text)
			assert.Equal(t, tt.match, s.SuspiciousMatches > 0)
		})
	}
}

func TestAnalyzer_CrediblePatterns(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 2, a.Analyze("A peer-reviewed study published in Nature found...").CredibleMatches)
	assert.Positive(t, a.Analyze("According to a study by the university").CredibleMatches)
	assert.Positive(t, a.Analyze("Officials confirmed the figures").CredibleMatches)
	assert.Zero(t, a.Analyze("Scientists discover cure for aging").CredibleMatches)
}

func TestAnalyzer_Polarity(t *testing.T) {
	a := NewAnalyzer()

	assert.Zero(t, a.Analyze("The meeting starts at noon").Polarity)
	assert.Greater(t, a.Analyze("great great wonderful day").Polarity, 0.5)
	assert.Less(t, a.Analyze("terrible awful horrible day").Polarity, -0.5)
	assert.Zero(t, a.Analyze("").Polarity)
}

func TestAnalyzer_Complexity(t *testing.T) {
	a := NewAnalyzer()

	prose := a.Analyze("A peer-reviewed study published in Nature found...")
	assert.Equal(t, 7, prose.Words)
	assert.InDelta(t, 0.74, prose.Complexity, 0.01)

	short := a.Analyze("Hi! Yo! Ok!")
	assert.Less(t, short.Complexity, prose.Complexity)

	assert.Zero(t, a.Analyze("   ").Complexity)
}

func TestAnalyzer_Emotional(t *testing.T) {
	a := NewAnalyzer()

	calm := a.Analyze("The report was released on Monday.")
	assert.Less(t, calm.Emotional, 0.4)

	loud := a.Analyze("SHOCKING!!! UNBELIEVABLE BOMBSHELL!!!")
	assert.Equal(t, 1.0, loud.Emotional)
}

func TestTokenize_StripsPunctuation(t *testing.T) {
	assert.Equal(t, []string{"Hello", "world", "peer-reviewed"}, tokenize("Hello, world! (peer-reviewed) ..."))
}

func TestSentenceCount(t *testing.T) {
	assert.Equal(t, 1, sentenceCount("no terminator"))
	assert.Equal(t, 2, sentenceCount("One. Two!"))
	assert.Equal(t, 1, sentenceCount("..."))
}
