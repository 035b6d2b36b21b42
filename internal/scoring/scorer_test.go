package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credd/internal/analyzer"
	"credd/internal/models"
	"credd/internal/structures"
)

type stubAnalyzer struct {
	signals analyzer.Signals
}

func (s stubAnalyzer) Analyze(string) analyzer.Signals { return s.signals }

func newTestScorer(a analyzer.AnalyzerInterface) ScorerInterface {
	return NewScorer(&structures.Config{Scoring: DefaultPolicy()}, a)
}

// polarity 1 keeps the neutrality signal from firing.
var quiet = analyzer.Signals{Polarity: 1}

func TestBand(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, models.VerdictVerified, Band(85, p))
	assert.Equal(t, models.VerdictVerified, Band(70, p))
	assert.Equal(t, models.VerdictUnclear, Band(60, p))
	assert.Equal(t, models.VerdictUnclear, Band(50, p))
	assert.Equal(t, models.VerdictLikelyFake, Band(49, p))
	assert.Equal(t, models.VerdictLikelyFake, Band(40, p))
	assert.Equal(t, models.VerdictLikelyFake, Band(10, p))
	assert.Equal(t, models.VerdictLikelyFake, Band(0, p))
}

func TestScorer_NoSignalsReturnsBase(t *testing.T) {
	res := newTestScorer(stubAnalyzer{quiet}).Score("anything", nil)

	assert.Equal(t, 50, res.Score)
	assert.Equal(t, models.VerdictUnclear, res.Verdict)
	assert.Empty(t, res.Reasons)
	assert.Equal(t, 0.5, res.Confidence)
	assert.Len(t, res.Signals, 5)
}

func TestScorer_SignalsInOrder(t *testing.T) {
	sig := analyzer.Signals{
		SuspiciousMatches: 1,
		CredibleMatches:   1,
		Polarity:          0,
		Complexity:        0.9,
		Words:             12,
		Emotional:         0.8,
	}
	res := newTestScorer(stubAnalyzer{sig}).Score("x", nil)

	assert.Equal(t, []string{
		ReasonSuspicious,
		ReasonCredible,
		ReasonNeutral,
		ReasonComplexity,
		ReasonEmotional,
	}, res.Reasons)
	// 50 - 40 + 30 + 15 + 10 - 15
	assert.Equal(t, 50, res.Score)
	// three for, two against
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)
}

func TestScorer_ComplexityNeedsMinimumWords(t *testing.T) {
	sig := quiet
	sig.Complexity = 0.9
	sig.Words = 4

	res := newTestScorer(stubAnalyzer{sig}).Score("x", nil)
	assert.Equal(t, 50, res.Score)

	sig.Words = 5
	res = newTestScorer(stubAnalyzer{sig}).Score("x", nil)
	assert.Equal(t, 60, res.Score)
	assert.Equal(t, models.VerdictUnclear, res.Verdict)
}

func TestScorer_ClampsToRange(t *testing.T) {
	high := analyzer.Signals{CredibleMatches: 3, Complexity: 1, Words: 50}
	res := newTestScorer(stubAnalyzer{high}).Score("x", nil)
	assert.Equal(t, 100, res.Score)

	low := analyzer.Signals{SuspiciousMatches: 2, Polarity: -1, Emotional: 1}
	res = newTestScorer(stubAnalyzer{low}).Score("x", nil)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, models.VerdictLikelyFake, res.Verdict)
}

func TestScorer_DomainBlend(t *testing.T) {
	s := newTestScorer(stubAnalyzer{quiet})

	trusted := &models.SourceCredibilityRecord{Domain: "reuters.com", Credibility: 0.95}
	res := s.Score("x", trusted)
	// 0.7*50 + 0.3*95 = 63.5
	assert.Equal(t, 64, res.Score)
	assert.Empty(t, res.Reasons)
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)

	shady := &models.SourceCredibilityRecord{Domain: "example.biz", Credibility: 0.1}
	res = s.Score("x", shady)
	// 0.7*50 + 0.3*10 = 38
	assert.Equal(t, 38, res.Score)
	assert.Equal(t, models.VerdictLikelyFake, res.Verdict)
	require.Len(t, res.Reasons, 1)
	assert.Equal(t, "Source example.biz has a low credibility rating", res.Reasons[0])
}

func TestScorer_ConfidenceIsCapped(t *testing.T) {
	sig := analyzer.Signals{CredibleMatches: 1, Complexity: 1, Words: 30}
	src := &models.SourceCredibilityRecord{Domain: "apnews.com", Credibility: 0.94}

	res := newTestScorer(stubAnalyzer{sig}).Score("x", src)
	// four agreeing signals would give 0.9; still below the cap
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)

	conf := DefaultPolicy()
	conf.SignalConfidence = 0.2
	capped := NewScorer(&structures.Config{Scoring: conf}, stubAnalyzer{sig}).Score("x", src)
	assert.Equal(t, 0.95, capped.Confidence)
}

func TestScorer_NeverConfirmsFake(t *testing.T) {
	sig := analyzer.Signals{SuspiciousMatches: 5, Polarity: -1, Emotional: 1}
	src := &models.SourceCredibilityRecord{Domain: "x.test", Credibility: 0}

	res := newTestScorer(stubAnalyzer{sig}).Score("x", src)
	assert.Equal(t, models.VerdictLikelyFake, res.Verdict)
}

func TestScorer_Scenarios(t *testing.T) {
	s := newTestScorer(analyzer.NewAnalyzer())

	fake := s.Score("Breaking news: Scientists discover cure for aging!", nil)
	assert.Equal(t, models.VerdictLikelyFake, fake.Verdict)
	assert.Less(t, fake.Score, 50)
	assert.Contains(t, fake.Reasons, ReasonSuspicious)

	verified := s.Score("A peer-reviewed study published in Nature found...", nil)
	assert.Equal(t, 100, verified.Score)
	assert.Equal(t, models.VerdictVerified, verified.Verdict)
	assert.Contains(t, verified.Reasons, ReasonCredible)
	assert.GreaterOrEqual(t, verified.Confidence, 0.5)
	assert.LessOrEqual(t, verified.Confidence, 0.95)
}

func TestScorer_Deterministic(t *testing.T) {
	s := newTestScorer(analyzer.NewAnalyzer())
	text := "Officials said the bridge will reopen next week after repairs."

	assert.Equal(t, s.Score(text, nil), s.Score(text, nil))
}
