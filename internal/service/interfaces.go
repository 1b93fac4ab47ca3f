package service

import (
	"context"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// DayService defines the interface for day history business logic
type DayService interface {
	// GetDays returns up to n calendar days ending at until, most recent first
	GetDays(ctx context.Context, userID string, n int, until time.Time) ([]models.DayRecord, error)
	PutDay(ctx context.Context, userID string, day *models.DayRecord) (*models.DayRecord, error)
	DeleteDay(ctx context.Context, userID, date string) error
}

// ProfileService defines the interface for profile business logic
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error)
}

// ProductService defines the interface for the product catalog
type ProductService interface {
	GetProducts(ctx context.Context, userID string) (*models.ProductCatalog, error)
}

// AnalysisService defines the interface for history analysis
type AnalysisService interface {
	// Analyze runs the statistics engine over n days ending at until
	Analyze(ctx context.Context, userID string, n int, until time.Time) (*models.AnalysisReport, error)
}

// AdviceService defines the interface for advice generation
type AdviceService interface {
	// GetAdvice ranks advice for the user at the given moment, keeping at most limit items
	GetAdvice(ctx context.Context, userID string, at time.Time, limit int) (*models.AdviceResponse, error)
}
