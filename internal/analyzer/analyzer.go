// Package analyzer extracts the raw numeric signals the scorer combines.
// Nothing here decides credibility; thresholds live in the scoring policy.
package analyzer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var suspiciousPatterns = []string{
	`\bSHOCKING\b`,
	`\bBREAKING[:\s]`,
	`\bURGENT[:\s]`,
	`you won'?t believe`,
	`doctors hate`,
	`this one (trick|secret|weird trick)`,
	`what .+ don'?t want you to know`,
	`share (this )?before (it'?s|they) (deleted?|remove)`,
	`big pharma`,
	`they don'?t want you to know`,
	`mainstream media (won'?t|refuses to)`,
	`\bcure for (cancer|aids|diabetes|aging)`,
	`secrets? (they|the government)`,
	`\bact now\b`,
	`\bmiracle (cure|pill|drug)`,
}

var crediblePatterns = []string{
	`according to (a |the )?(study|research|report|survey|data)`,
	`published in`,
	`(scientists?|researchers?) (say|said|found|discovered)`,
	`peer[- ]reviewed`,
	`study shows?`,
	`research indicates?`,
	`\bet al\.`,
	`\bdoi:\s*10\.`,
	`(officials?|spokesperson|ministry) (said|confirmed|stated)`,
}

var emotionalWords = []string{
	"shocking", "amazing", "incredible", "unbelievable", "mindblowing",
	"devastating", "terrifying", "outrageous", "scandal", "bombshell",
}

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "incredible": {}, "wonderful": {},
	"best": {}, "happy": {}, "love": {}, "perfect": {}, "fantastic": {}, "brilliant": {},
	"miracle": {}, "breakthrough": {}, "revolutionary": {}, "awesome": {}, "beautiful": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "horrible": {}, "worst": {}, "hate": {},
	"shocking": {}, "devastating": {}, "terrifying": {}, "outrageous": {}, "disaster": {},
	"evil": {}, "corrupt": {}, "lies": {}, "scandal": {}, "deadly": {}, "weird": {},
	"dangerous": {}, "fraud": {},
}

// Signals is the numeric reading of a text. Each field is independent of the others.
type Signals struct {
	SuspiciousMatches int
	CredibleMatches   int
	// Polarity ranges from -1 (negative) to 1 (positive); 0 is neutral.
	Polarity float64
	// Complexity ranges from 0 to 1; higher means closer to ordinary editorial prose.
	Complexity float64
	Words      int
	// Emotional ranges from 0 to 1.
	Emotional float64
}

type AnalyzerInterface interface {
	Analyze(text string) Signals
}

type Analyzer struct {
	suspicious *regexp.Regexp
	credible   *regexp.Regexp
}

func NewAnalyzer() AnalyzerInterface {
	return &Analyzer{
		suspicious: compile(suspiciousPatterns),
		credible:   compile(crediblePatterns),
	}
}

func compile(patterns []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + strings.Join(patterns, "|"))
}

func (a *Analyzer) Analyze(text string) Signals {
	words := tokenize(text)
	return Signals{
		SuspiciousMatches: len(a.suspicious.FindAllStringIndex(text, -1)),
		CredibleMatches:   len(a.credible.FindAllStringIndex(text, -1)),
		Polarity:          polarity(words),
		Complexity:        complexity(text, words),
		Words:             len(words),
		Emotional:         emotional(text),
	}
}

// tokenize splits on whitespace and strips surrounding punctuation.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func polarity(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	pos, neg := 0, 0
	for _, w := range words {
		lw := strings.ToLower(w)
		if _, ok := positiveWords[lw]; ok {
			pos++
		}
		if _, ok := negativeWords[lw]; ok {
			neg++
		}
	}
	return clamp(float64(pos-neg)/float64(len(words)), -1, 1)
}

// complexity rewards average word length near 5 characters and average
// sentence length near 20 words.
func complexity(text string, words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	letters := 0
	for _, w := range words {
		letters += utf8.RuneCountInString(w)
	}
	avgWord := float64(letters) / float64(len(words))
	avgSentence := float64(len(words)) / float64(sentenceCount(text))

	wordScore := 1 - abs(avgWord-5)/10
	sentenceScore := 1 - abs(avgSentence-20)/30
	return clamp((wordScore+sentenceScore)/2, 0, 1)
}

func sentenceCount(text string) int {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return max(n, 1)
}

// emotional combines sensational vocabulary, shouting and exclamation marks.
func emotional(text string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, w := range emotionalWords {
		if strings.Contains(lower, w) {
			hits++
		}
	}

	upper, total := 0, 0
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	capsRatio := float64(upper) / float64(max(total, 1))
	exclamations := strings.Count(text, "!")

	return clamp(float64(hits)*0.2+capsRatio*2+float64(exclamations)*0.1, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
