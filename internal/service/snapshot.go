package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/nutrition"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

// snapshot is everything the pipeline reads for one user at one moment
type snapshot struct {
	today    models.DayRecord
	history  []models.DayRecord // before today, most recent first
	profile  models.Profile
	products []models.Product
	index    *models.ProductIndex
	source   repository.ProductSource
}

// days returns history plus today, in the order the engine accepts
func (s *snapshot) days() []models.DayRecord {
	out := make([]models.DayRecord, 0, len(s.history)+1)
	out = append(out, s.history...)
	return append(out, s.today)
}

// loader fetches the collaborators of one evaluation concurrently
type loader struct {
	days     DayService
	profiles ProfileService
	products *repository.ProductResolver
}

func (l *loader) load(ctx context.Context, userID string, n int, at time.Time) (*snapshot, error) {
	var (
		days     []models.DayRecord
		profile  *models.Profile
		products []models.Product
		source   repository.ProductSource
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		days, err = l.days.GetDays(gctx, userID, n, at)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = l.profiles.GetProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		products, source, err = l.products.Products(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to resolve products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot{
		today:    models.DayRecord{Date: at.Format(models.DateLayout)},
		profile:  *profile,
		products: products,
		source:   source,
	}
	for _, d := range days {
		if d.Date == snap.today.Date {
			snap.today = d
			continue
		}
		snap.history = append(snap.history, d)
	}
	snap.index = nutrition.BuildProductIndex(products)
	return snap, nil
}
