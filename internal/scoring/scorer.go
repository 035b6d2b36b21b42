// Package scoring turns analyzer signals into a credibility score, a confidence
// value and a verdict. It performs no I/O.
package scoring

import (
	"fmt"
	"math"

	"credd/internal/analyzer"
	"credd/internal/models"
	"credd/internal/structures"
)

const (
	SignalSuspicious = "suspicious_pattern"
	SignalCredible   = "credible_pattern"
	SignalNeutral    = "sentiment_neutrality"
	SignalComplexity = "structural_complexity"
	SignalEmotional  = "emotional_language"
	SignalDomain     = "source_domain"
)

const (
	ReasonSuspicious = "Sensational language detected"
	ReasonCredible   = "References to studies or research found"
	ReasonNeutral    = "Neutral, factual tone"
	ReasonComplexity = "Well-structured writing"
	ReasonEmotional  = "Excessive emotional or sensational language"
)

// Signal records one evaluated check. Direction is +1 when the signal argues for
// credibility and -1 when it argues against; it is 0 for signals that did not fire.
type Signal struct {
	Name      string  `json:"name"`
	Fired     bool    `json:"fired"`
	Delta     float64 `json:"delta"`
	Direction int     `json:"direction"`
	Reason    string  `json:"reason,omitempty"`
}

type Result struct {
	Score      int
	Confidence float64
	Verdict    models.Verdict
	Reasons    []string
	Signals    []Signal
}

type ScorerInterface interface {
	Score(content string, source *models.SourceCredibilityRecord) Result
}

type Scorer struct {
	policy   structures.ScoringConfig
	analyzer analyzer.AnalyzerInterface
}

func NewScorer(conf *structures.Config, a analyzer.AnalyzerInterface) ScorerInterface {
	return &Scorer{policy: conf.Scoring, analyzer: a}
}

// Score evaluates the signals in a fixed order, blends in the source rating when
// one is known, clamps and bands the result. source may be nil.
func (s *Scorer) Score(content string, source *models.SourceCredibilityRecord) Result {
	p := s.policy
	sig := s.analyzer.Analyze(content)

	signals := []Signal{
		check(SignalSuspicious, sig.SuspiciousMatches > 0, -p.SuspiciousPenalty, ReasonSuspicious),
		check(SignalCredible, sig.CredibleMatches > 0, p.CrediblePoints, ReasonCredible),
		check(SignalNeutral, math.Abs(sig.Polarity) < p.NeutralityThreshold, p.NeutralityPoints, ReasonNeutral),
		check(SignalComplexity, sig.Words >= p.ComplexityMinWords && sig.Complexity >= p.ComplexityThreshold, p.ComplexityPoints, ReasonComplexity),
		check(SignalEmotional, sig.Emotional >= p.EmotionalThreshold, -p.EmotionalPenalty, ReasonEmotional),
	}

	score := p.BaseScore
	for _, sg := range signals {
		score += sg.Delta
	}

	if source != nil {
		rating := clamp(source.Credibility, 0, 1) * 100
		blended := (1-p.DomainWeight)*score + p.DomainWeight*rating
		ds := Signal{Name: SignalDomain, Fired: true, Delta: blended - score, Direction: 1}
		if source.Credibility < p.LowTrustThreshold {
			ds.Direction = -1
			ds.Reason = fmt.Sprintf("Source %s has a low credibility rating", source.Domain)
		}
		signals = append(signals, ds)
		score = blended
	}

	final := int(math.Round(clamp(score, 0, 100)))

	reasons := make([]string, 0, len(signals))
	for _, sg := range signals {
		if sg.Reason != "" {
			reasons = append(reasons, sg.Reason)
		}
	}

	return Result{
		Score:      final,
		Confidence: s.confidence(signals),
		Verdict:    Band(final, p),
		Reasons:    reasons,
		Signals:    signals,
	}
}

func check(name string, fired bool, delta float64, reason string) Signal {
	if !fired {
		return Signal{Name: name}
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	return Signal{Name: name, Fired: true, Delta: delta, Direction: dir, Reason: reason}
}

// confidence grows with the size of the agreeing majority and shrinks with the
// size of the opposing minority.
func (s *Scorer) confidence(signals []Signal) float64 {
	pos, neg := 0, 0
	for _, sg := range signals {
		switch {
		case !sg.Fired:
		case sg.Direction > 0:
			pos++
		case sg.Direction < 0:
			neg++
		}
	}
	p := s.policy
	c := p.BaseConfidence + p.SignalConfidence*float64(max(pos, neg)) - p.ConflictPenalty*float64(min(pos, neg))
	return clamp(c, 0, math.Min(p.MaxConfidence, 1))
}

// Band maps a final score to a verdict. Heuristic scores never reach
// CONFIRMED_FAKE; that verdict belongs to the known-fakes registry.
func Band(score int, p structures.ScoringConfig) models.Verdict {
	switch {
	case score >= p.VerifiedThreshold:
		return models.VerdictVerified
	case score >= p.UnclearThreshold:
		return models.VerdictUnclear
	default:
		return models.VerdictLikelyFake
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
