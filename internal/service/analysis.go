package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/cache"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/pipeline"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

// AnalysisCacheDuration is how long a memoized report stays valid
const AnalysisCacheDuration = 30 * time.Minute

// analysisVersion is part of every memo key; bump it when report semantics change
const analysisVersion = "v1"

type analysisService struct {
	loader   *loader
	pipeline *pipeline.Pipeline
	cache    cache.Cache
	ttl      time.Duration
}

// NewAnalysisService creates a new analysis service. c may be nil to disable memoization.
func NewAnalysisService(
	days DayService,
	profiles ProfileService,
	products *repository.ProductResolver,
	p *pipeline.Pipeline,
	c cache.Cache,
	ttl time.Duration,
) AnalysisService {
	return newAnalysisService(&loader{days: days, profiles: profiles, products: products}, p, c, ttl)
}

func newAnalysisService(l *loader, p *pipeline.Pipeline, c cache.Cache, ttl time.Duration) *analysisService {
	if ttl <= 0 {
		ttl = AnalysisCacheDuration
	}
	return &analysisService{loader: l, pipeline: p, cache: c, ttl: ttl}
}

func (s *analysisService) Analyze(ctx context.Context, userID string, n int, until time.Time) (*models.AnalysisReport, error) {
	if n <= 0 {
		n = s.pipeline.Engine().Config().HistoryWindow
	}
	snap, err := s.loader.load(ctx, userID, n, until)
	if err != nil {
		return nil, err
	}
	report := s.report(ctx, snap)
	return &report, nil
}

// report returns the memoized analysis of snap, computing it on a miss.
// Analysis is a pure function of its inputs, so the key is a content hash.
func (s *analysisService) report(ctx context.Context, snap *snapshot) models.AnalysisReport {
	log := logger.Ctx(ctx)
	key, keyed := analysisKey(snap)

	if s.cache != nil && keyed {
		data, found, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("analysis cache read failed", logger.Err(err))
		}
		if found {
			var report models.AnalysisReport
			if err := json.Unmarshal(data, &report); err == nil {
				return report
			}
		}
	}

	start := time.Now()
	report := s.pipeline.Analyze(snap.days(), snap.profile, snap.index)
	log.Debug("analysis computed",
		logger.Int("days", report.Confidence.Days),
		logger.Int("valid_days", report.Confidence.ValidDays),
		logger.Duration("took", time.Since(start)),
		logger.Bool("cacheable", keyed),
	)

	if s.cache != nil && keyed {
		if data, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				log.Warn("analysis cache write failed", logger.Err(err))
			}
		}
	}
	return report
}

func analysisKey(snap *snapshot) (string, bool) {
	data, err := json.Marshal(struct {
		Version  string             `json:"v"`
		Days     []models.DayRecord `json:"days"`
		Profile  models.Profile     `json:"profile"`
		Products []models.Product   `json:"products"`
	}{analysisVersion, snap.days(), snap.profile, snap.products})
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(data)
	return "analysis:" + hex.EncodeToString(sum[:]), true
}
