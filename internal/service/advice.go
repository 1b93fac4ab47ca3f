package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/advice"
	"github.com/JonnyWalker81/nutrisense/backend/internal/cache"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/pipeline"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

// shownTTL bounds how long the last-shown times of reminders are kept
const shownTTL = 24 * time.Hour

type adviceService struct {
	analysis *analysisService
	pipeline *pipeline.Pipeline
	cache    cache.Cache
}

// NewAdviceService creates a new advice service. It shares its memo with an
// analysis service built from the same collaborators. c may be nil.
func NewAdviceService(
	days DayService,
	profiles ProfileService,
	products *repository.ProductResolver,
	p *pipeline.Pipeline,
	c cache.Cache,
	ttl time.Duration,
) AdviceService {
	l := &loader{days: days, profiles: profiles, products: products}
	return &adviceService{
		analysis: newAnalysisService(l, p, c, ttl),
		pipeline: p,
		cache:    c,
	}
}

func (s *adviceService) GetAdvice(ctx context.Context, userID string, at time.Time, limit int) (*models.AdviceResponse, error) {
	if limit <= 0 {
		limit = s.pipeline.Config().Advice.MaxItems
	}

	window := s.pipeline.Engine().Config().HistoryWindow
	snap, err := s.analysis.loader.load(ctx, userID, window, at)
	if err != nil {
		return nil, err
	}

	report := s.analysis.report(ctx, snap)
	result := s.pipeline.Advise(pipeline.Request{
		Today:     snap.today,
		History:   snap.history,
		Profile:   snap.profile,
		PIndex:    snap.index,
		Now:       at,
		LastShown: s.lastShown(ctx, userID),
		Report:    &report,
	})

	advices := advice.Limit(result.Advices, limit)
	if advices == nil {
		advices = []models.Candidate{}
	}
	s.markShown(ctx, userID, advices, at)

	logger.Ctx(ctx).Debug("advice generated",
		logger.Int("candidates", len(result.Advices)),
		logger.Int("returned", len(advices)),
		logger.String("products", string(snap.source)),
		logger.Float64("kcal_pct", result.Context.KcalPct),
		logger.Bool("refeed_day", snap.today.IsRefeedDay),
	)

	actx := result.Context
	return &models.AdviceResponse{
		Date:           snap.today.Date,
		Advices:        advices,
		Total:          len(result.Advices),
		Hour:           actx.Hour,
		KcalPct:        actx.KcalPct,
		Streak:         actx.CurrentStreak,
		Tone:           string(actx.Tone),
		SpecialDay:     string(actx.SpecialDay),
		EmotionalState: string(actx.EmotionalState),
	}, nil
}

func shownKey(userID string) string {
	return "shown:" + userID
}

// lastShown returns when each advice id was last returned to the user
func (s *adviceService) lastShown(ctx context.Context, userID string) map[string]time.Time {
	if s.cache == nil {
		return nil
	}
	data, found, err := s.cache.Get(ctx, shownKey(userID))
	if err != nil || !found {
		return nil
	}
	var shown map[string]time.Time
	if err := json.Unmarshal(data, &shown); err != nil {
		return nil
	}
	return shown
}

func (s *adviceService) markShown(ctx context.Context, userID string, advices []models.Candidate, at time.Time) {
	if s.cache == nil || len(advices) == 0 {
		return
	}
	shown := s.lastShown(ctx, userID)
	if shown == nil {
		shown = make(map[string]time.Time, len(advices))
	}
	for _, a := range advices {
		shown[a.ID] = at
	}
	data, err := json.Marshal(shown)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, shownKey(userID), data, shownTTL); err != nil {
		logger.Ctx(ctx).Warn("failed to record shown advice", logger.Err(err))
	}
}
