package main

import (
	"context"
	"fmt"
	"io"

	"github.com/JonnyWalker81/nutrisense/backend/internal/cache"
	"github.com/JonnyWalker81/nutrisense/backend/internal/config"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/pipeline"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
	"github.com/JonnyWalker81/nutrisense/backend/internal/service"
	"github.com/JonnyWalker81/nutrisense/backend/internal/store"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

// app is the wired object graph shared by every subcommand
type app struct {
	cfg      *config.Config
	log      logger.Logger
	supabase *supabase.Client // nil for the sqlite driver

	days     service.DayService
	profiles service.ProfileService
	products service.ProductService
	analysis service.AnalysisService
	advice   service.AdviceService

	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", logger.Err(err))
		}
	}
}

// newApp wires storage, cache and services. Logs go to logOut.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logCfg := cfg.Logging.Logger()
	logCfg.Output = logOut
	log := logger.New(logCfg)
	logger.SetDefault(log)

	a := &app{cfg: cfg, log: log}

	var (
		dayRepo     repository.DayRepository
		profileRepo repository.ProfileRepository
		productRepo repository.ProductRepository
	)

	switch cfg.Storage.Driver {
	case config.DriverSupabase:
		a.supabase = supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		dayRepo = repository.NewDayRepository(a.supabase)
		profileRepo = repository.NewProfileRepository(a.supabase)
		productRepo = repository.NewProductRepository(a.supabase)
		log.Info("using supabase storage", logger.String("url", cfg.Supabase.URL))
	default:
		s, err := store.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		a.closers = append(a.closers, s.Close)

		defaults, err := repository.DefaultProducts()
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to load default catalog: %w", err)
		}
		seeded, err := s.SeedProducts(ctx, defaults)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed products: %w", err)
		}
		dayRepo = s.Days()
		profileRepo = s.Profiles()
		productRepo = s.Products()
		log.Info("using sqlite storage",
			logger.String("path", cfg.Storage.SQLitePath),
			logger.Int("seeded_products", seeded),
		)
	}

	var c cache.Cache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: "nutrisense:",
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c = rc
		log.Info("using redis cache", logger.String("addr", cfg.Redis.Addr))
	} else {
		c = cache.NewMemory()
	}
	a.closers = append(a.closers, c.Close)

	resolver := repository.NewProductResolver(productRepo, c, cfg.Redis.TTL)
	p := pipeline.New(cfg.Engine, log)

	a.days = service.NewDayService(dayRepo)
	a.profiles = service.NewProfileService(profileRepo)
	a.products = service.NewProductService(resolver)
	a.analysis = service.NewAnalysisService(a.days, a.profiles, resolver, p, c, service.AnalysisCacheDuration)
	a.advice = service.NewAdviceService(a.days, a.profiles, resolver, p, c, service.AnalysisCacheDuration)

	return a, nil
}
