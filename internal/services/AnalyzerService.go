package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"credd/internal/factcheck"
	"credd/internal/fingerprint"
	"credd/internal/models"
	"credd/internal/providers"
	"credd/internal/scoring"
	"credd/internal/storage"
	"credd/internal/structures"
)

type AnalyzerServiceInterface interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.ScanResult, error)
}

// outcome is what the lookup chain produced for one submission.
type outcome interface {
	isOutcome()
}

// fastPathHit: the fingerprint is a registered known fake.
type fastPathHit struct {
	record  *models.KnownFakeRecord
	reports int
}

// cacheHit: a result for the fingerprint is still within its TTL.
type cacheHit struct {
	result *models.ScanResult
}

// computed: the content went through the scorer.
type computed struct {
	scored  scoring.Result
	sources []models.Source
}

func (fastPathHit) isOutcome() {}
func (cacheHit) isOutcome()    {}
func (computed) isOutcome()    {}

type AnalyzerService struct {
	policy   structures.ScoringConfig
	scorer   scoring.ScorerInterface
	registry KnownFakeRegistry
	sources  SourceRatings
	history  HistoryStore
	cache    *ResultCache
	finder   factcheck.Finder
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	now      func() time.Time
	newID    func() string
}

func NewAnalyzerService(
	conf *structures.Config,
	scorer scoring.ScorerInterface,
	registry KnownFakeRegistry,
	sources SourceRatings,
	history HistoryStore,
	cache *ResultCache,
	finder factcheck.Finder,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) AnalyzerServiceInterface {
	return &AnalyzerService{
		policy:   conf.Scoring,
		scorer:   scorer,
		registry: registry,
		sources:  sources,
		history:  history,
		cache:    cache,
		finder:   finder,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Analyze scores one submission. Registry, source and history failures abort the
// request; cache failures never do. Cache hits are returned without a history write.
func (s *AnalyzerService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.ScanResult, error) {
	started := time.Now()
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	fp := fingerprint.Compute(req.Content)

	out, err := s.resolve(ctx, req, fp)
	if err != nil {
		return nil, err
	}

	var res *models.ScanResult
	switch o := out.(type) {
	case cacheHit:
		res = o.result
		res.Cached = true
		res.UserHash = req.UserHash
		res.ProcessingMs = time.Since(started).Milliseconds()
		s.logger.Debugf(providers.TypePipeline, "scan %s served from cache (fp %s)", res.ID, fp)
		return res, nil
	case fastPathHit:
		res = s.knownFakeResult(req, fp, o)
		s.metrics.IncKnownFakeHits()
	case computed:
		res = s.computedResult(req, fp, o)
	default:
		return nil, fmt.Errorf("unexpected pipeline outcome %T", out)
	}
	res.ProcessingMs = time.Since(started).Milliseconds()

	if err := s.history.Append(ctx, res); err != nil {
		s.logger.Errorf(providers.TypePipeline, "history append %s failed: %v", res.ID, err)
		return nil, err
	}
	_ = s.cache.Put(ctx, fp, res)

	s.metrics.IncVerdict(string(res.Verdict), res.ProcessingTier)
	s.logger.Infof(providers.TypePipeline, "scan %s: %s score=%d confidence=%.2f tier=%d",
		res.ID, res.Verdict, res.Score, res.Confidence, res.ProcessingTier)
	return res, nil
}

func (s *AnalyzerService) resolve(ctx context.Context, req *models.AnalyzeRequest, fp string) (outcome, error) {
	known, err := s.registry.Lookup(ctx, fp)
	if err != nil {
		return nil, err
	}
	if known != nil {
		reports, err := s.registry.IncrementReports(ctx, fp)
		if err != nil {
			return nil, err
		}
		return fastPathHit{record: known, reports: reports}, nil
	}

	// the source domain feeds the score, so a result cached for another domain is a miss
	if cached, ok := s.cache.Get(ctx, fp); ok {
		if storage.NormalizeDomain(cached.SourceDomain) == storage.NormalizeDomain(req.SourceDomain) {
			return cacheHit{result: cached}, nil
		}
		s.logger.Debugf(providers.TypePipeline, "cached %s is for domain %q, rescoring for %q",
			fp, cached.SourceDomain, req.SourceDomain)
	}

	var source *models.SourceCredibilityRecord
	if req.SourceDomain != "" {
		source, err = s.sources.Lookup(ctx, req.SourceDomain)
		if err != nil {
			return nil, err
		}
	}

	started := time.Now()
	scored := s.scorer.Score(req.Content, source)
	s.metrics.ObserveScoringDuration(time.Since(started))

	return computed{scored: scored, sources: s.citations(ctx, req.Content)}, nil
}

// citations never fail the request; a finder error leaves the result without sources.
func (s *AnalyzerService) citations(ctx context.Context, content string) []models.Source {
	if s.finder == nil {
		return []models.Source{}
	}
	found, err := s.finder.Find(ctx, content)
	if err != nil {
		s.logger.Warnf(providers.TypePipeline, "citation lookup failed: %v", err)
		return []models.Source{}
	}
	if found == nil {
		return []models.Source{}
	}
	return found
}

func (s *AnalyzerService) knownFakeResult(req *models.AnalyzeRequest, fp string, o fastPathHit) *models.ScanResult {
	return &models.ScanResult{
		ID:          s.newID(),
		Content:     req.Content,
		ContentType: req.ContentType,
		Fingerprint: fp,
		Verdict:     models.VerdictConfirmedFake,
		Score:       s.policy.KnownFakeScore,
		Confidence:  s.policy.KnownFakeConfidence,
		Summary:     models.Summary(models.VerdictConfirmedFake),
		Reasons: []string{
			"Previously verified as false by " + o.record.FactChecker,
			fmt.Sprintf("Reported %d times", o.reports),
		},
		Sources:        []models.Source{},
		SourceApp:      req.SourceApp,
		SourceDomain:   req.SourceDomain,
		UserHash:       req.UserHash,
		ProcessingTier: models.TierKnownFake,
		CreatedAt:      s.now().UTC(),
	}
}

func (s *AnalyzerService) computedResult(req *models.AnalyzeRequest, fp string, o computed) *models.ScanResult {
	reasons := o.scored.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return &models.ScanResult{
		ID:             s.newID(),
		Content:        req.Content,
		ContentType:    req.ContentType,
		Fingerprint:    fp,
		Verdict:        o.scored.Verdict,
		Score:          o.scored.Score,
		Confidence:     o.scored.Confidence,
		Summary:        models.Summary(o.scored.Verdict),
		Reasons:        reasons,
		Sources:        o.sources,
		SourceApp:      req.SourceApp,
		SourceDomain:   req.SourceDomain,
		UserHash:       req.UserHash,
		ProcessingTier: models.TierComputed,
		CreatedAt:      s.now().UTC(),
	}
}
