package scoring

import "credd/internal/structures"

// DefaultPolicy returns the stock weights and thresholds.
func DefaultPolicy() structures.ScoringConfig {
	return structures.ScoringConfig{
		BaseScore:         50,
		SuspiciousPenalty: 40,
		CrediblePoints:    30,
		NeutralityPoints:  15,
		ComplexityPoints:  10,
		EmotionalPenalty:  15,

		NeutralityThreshold: 0.2,
		ComplexityThreshold: 0.5,
		ComplexityMinWords:  5,
		EmotionalThreshold:  0.4,

		DomainWeight:      0.3,
		LowTrustThreshold: 0.5,

		VerifiedThreshold: 70,
		UnclearThreshold:  50,

		BaseConfidence:      0.5,
		SignalConfidence:    0.1,
		ConflictPenalty:     0.1,
		MaxConfidence:       0.95,
		KnownFakeScore:      5,
		KnownFakeConfidence: 0.99,
	}
}
