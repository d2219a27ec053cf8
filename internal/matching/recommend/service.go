// internal/matching/recommend/service.go
package recommend

import (
	"context"
	"errors"
	"time"

	"matching-workers/internal/catalog"
	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/matching/intent"
	"matching-workers/internal/matching/scoring"
	"matching-workers/internal/matching/synthesis"
	"matching-workers/internal/models"
)

const DefaultTopN = 3

// Options tune a Service. Zero values fall back to the 65/35 weights and
// DefaultTopN.
type Options struct {
	Weights       scoring.Weights
	TopN          int
	Logger        logger.Logger
	Observability *observability.Observability
}

// Service runs analyze, score, truncate and synthesize for one request. It
// keeps no per-request state and takes one catalog snapshot per call.
type Service struct {
	analyzer    *intent.Analyzer
	scorer      *scoring.Scorer
	synthesizer *synthesis.Synthesizer
	catalog     catalog.Provider
	topN        int
	logger      logger.Logger
	obs         *observability.Observability
}

// NewService creates a Service reading from provider.
func NewService(provider catalog.Provider, opts Options) *Service {
	weights := opts.Weights
	if weights.Structural == 0 && weights.Precision == 0 {
		weights = scoring.DefaultWeights()
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	obs := opts.Observability
	if obs == nil {
		obs = observability.NewNoop()
	}

	return &Service{
		analyzer:    intent.NewAnalyzer(),
		scorer:      scoring.NewScorer(weights),
		synthesizer: synthesis.NewSynthesizer(),
		catalog:     provider,
		topN:        topN,
		logger:      log,
		obs:         obs,
	}
}

func (s *Service) Analyzer() *intent.Analyzer          { return s.analyzer }
func (s *Service) Scorer() *scoring.Scorer             { return s.scorer }
func (s *Service) Synthesizer() *synthesis.Synthesizer { return s.synthesizer }
func (s *Service) TopN() int                           { return s.topN }

// MatchCompany recommends tools for a company request.
func (s *Service) MatchCompany(ctx context.Context, req CompanyRequest) (*models.CompanyRecommendation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	profile := s.analyzer.AnalyzeBusiness(req.FrictionPoint, req.hints())
	tools := snap.ListTools()

	ranked, err := s.scorer.ScoreTools(profile, tools)
	if err != nil {
		return nil, MapError(err)
	}
	ranked = Truncate(ranked, s.topN)

	rec := BuildCompany(s.synthesizer, profile, ranked)
	s.observe(ctx, models.TrackBusiness, len(tools), ranked, start, snap.Version())
	return rec, nil
}

// MatchIndividual recommends products for a personal request.
func (s *Service) MatchIndividual(ctx context.Context, req IndividualRequest) (*models.IndividualRecommendation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	profile := s.analyzer.AnalyzeIndividual(req.Need, req.hints())
	products := snap.ListProducts()

	ranked, err := s.scorer.ScoreProducts(profile, products)
	if err != nil {
		return nil, MapError(err)
	}
	ranked = Truncate(ranked, s.topN)

	rec := BuildIndividual(s.synthesizer, profile, ranked)
	s.observe(ctx, models.TrackIndividual, len(products), ranked, start, snap.Version())
	return rec, nil
}

func (s *Service) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError("recommend", err)
	}
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, MapError(err)
	}
	return snap, nil
}

func (s *Service) observe(ctx context.Context, track models.Track, scored int, ranked []models.ScoredMatch, start time.Time, version string) {
	metrics.RecommendationRequests.WithLabelValues(string(track)).Inc()
	s.obs.RecordCandidates(ctx, string(track), scored)

	fields := map[string]interface{}{
		"track":          string(track),
		"scored":         scored,
		"returned":       len(ranked),
		"catalogVersion": version,
		"durationMicros": time.Since(start).Microseconds(),
	}
	if len(ranked) > 0 {
		metrics.RecommendationTopScore.WithLabelValues(string(track)).Observe(ranked[0].Score)
		fields["topId"] = ranked[0].Record.ID
		fields["topScore"] = ranked[0].Score
	}
	s.logger.Info("recommendation generated", fields)
}

// Truncate keeps the first n ranked matches. n <= 0 keeps everything.
func Truncate(ranked []models.ScoredMatch, n int) []models.ScoredMatch {
	if n <= 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// BuildCompany synthesizes one entry per ranked tool and the aggregate texts.
func BuildCompany(synth *synthesis.Synthesizer, profile models.IntentProfile, ranked []models.ScoredMatch) *models.CompanyRecommendation {
	recs := make([]models.ToolRecommendation, 0, len(ranked))
	for _, m := range ranked {
		recs = append(recs, synth.SynthesizeToolGuide(m.Record, profile.Business, m.Score))
	}
	return &models.CompanyRecommendation{
		IntentAnalysis:     profile,
		Recommendations:    recs,
		DeploymentStrategy: synth.BuildStrategy(recs, profile.Business),
		EstimatedImpact:    synth.EstimateImpact(profile.Business, recs),
	}
}

// BuildIndividual synthesizes one entry per ranked product, the comparison
// matrix and the buying guide.
func BuildIndividual(synth *synthesis.Synthesizer, profile models.IntentProfile, ranked []models.ScoredMatch) *models.IndividualRecommendation {
	recs := make([]models.ProductRecommendation, 0, len(ranked))
	for _, m := range ranked {
		recs = append(recs, synth.SynthesizeProductGuide(m.Record, profile.Individual, m.Score))
	}
	return &models.IndividualRecommendation{
		IntentAnalysis:   profile,
		Recommendations:  recs,
		ComparisonMatrix: synth.BuildComparison(recs),
		BuyingGuide:      synth.BuildBuyingGuide(recs, profile.Individual),
	}
}

// MapError turns matching and catalog failures into job error codes.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, scoring.ErrTrackMismatch) {
		return apperrors.NewTrackMismatchError(err)
	}
	return catalog.ToStandardError(err, "", "")
}
