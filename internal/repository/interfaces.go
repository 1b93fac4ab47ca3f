package repository

import (
	"context"
	"errors"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// DayRepository defines the interface for day record data access
type DayRepository interface {
	// GetRange returns the user's records with from <= date <= to, most recent first.
	// Absent days are omitted.
	GetRange(ctx context.Context, userID, from, to string) ([]models.DayRecord, error)
	Get(ctx context.Context, userID, date string) (*models.DayRecord, error)
	Upsert(ctx context.Context, userID string, day *models.DayRecord) (*models.DayRecord, error)
	Delete(ctx context.Context, userID, date string) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

// ProductRepository defines the interface for product catalog access
type ProductRepository interface {
	// List returns the shared catalog plus the user's own products
	List(ctx context.Context, userID string) ([]models.Product, error)
}
