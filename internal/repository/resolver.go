package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/cache"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/nutrition"
)

// ProductSource names the tier a product index was resolved from
type ProductSource string

const (
	SourcePrimary ProductSource = "primary"
	SourceCache   ProductSource = "cache"
	SourceDefault ProductSource = "default"
)

// DefaultProductCacheTTL bounds how stale the secondary tier may get
const DefaultProductCacheTTL = 6 * time.Hour

// ProductResolver resolves a user's product catalog in a fixed order:
// primary store, then cache, then the embedded default catalog.
// A successful primary read refreshes the cache.
type ProductResolver struct {
	primary ProductRepository
	cache   cache.Cache
	ttl     time.Duration
}

// NewProductResolver creates a resolver. primary and c may be nil to skip that tier.
func NewProductResolver(primary ProductRepository, c cache.Cache, ttl time.Duration) *ProductResolver {
	if ttl <= 0 {
		ttl = DefaultProductCacheTTL
	}
	return &ProductResolver{primary: primary, cache: c, ttl: ttl}
}

func productCacheKey(userID string) string {
	return "products:" + userID
}

// Products returns the resolved product list and the tier it came from
func (r *ProductResolver) Products(ctx context.Context, userID string) ([]models.Product, ProductSource, error) {
	log := logger.Ctx(ctx)

	if r.primary != nil {
		products, err := r.primary.List(ctx, userID)
		switch {
		case err != nil:
			log.Warn("product store unavailable, falling back", logger.Err(err))
		case len(products) > 0:
			r.store(ctx, userID, products)
			return products, SourcePrimary, nil
		}
	}

	if r.cache != nil {
		if products, ok := r.cached(ctx, userID); ok {
			return products, SourceCache, nil
		}
	}

	products, err := DefaultProducts()
	if err != nil {
		return nil, "", err
	}
	return products, SourceDefault, nil
}

// Resolve returns the product index built from Products
func (r *ProductResolver) Resolve(ctx context.Context, userID string) (*models.ProductIndex, ProductSource, error) {
	products, source, err := r.Products(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve products: %w", err)
	}
	return nutrition.BuildProductIndex(products), source, nil
}

func (r *ProductResolver) cached(ctx context.Context, userID string) ([]models.Product, bool) {
	data, found, err := r.cache.Get(ctx, productCacheKey(userID))
	if err != nil {
		logger.Ctx(ctx).Warn("product cache read failed", logger.Err(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil || len(products) == 0 {
		return nil, false
	}
	return products, true
}

func (r *ProductResolver) store(ctx context.Context, userID string, products []models.Product) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, productCacheKey(userID), data, r.ttl); err != nil {
		logger.Ctx(ctx).Warn("product cache write failed", logger.Err(err))
	}
}
