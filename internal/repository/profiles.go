package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

type profileRepository struct {
	client *supabase.Client
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(client *supabase.Client) ProfileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
	}

	body, err := r.client.Query(ctx, "profiles", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profiles []models.Profile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(profiles) == 0 {
		return nil, ErrNotFound
	}

	return &profiles[0], nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	body, err := r.client.Upsert(ctx, "profiles", profile, "user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	var profiles []models.Profile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profile returned")
	}

	return &profiles[0], nil
}
