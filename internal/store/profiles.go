package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

type profileStore struct {
	db *sql.DB
}

// Profiles returns the store's profile repository.
func (s *Store) Profiles() repository.ProfileRepository {
	return &profileStore{db: s.db}
}

func (p *profileStore) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var data string
	err := p.db.QueryRowContext(ctx, `SELECT data FROM profiles WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	profile.UserID = userID
	return &profile, nil
}

func (p *profileStore) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("upsert profile: missing user id")
	}

	saved := *profile
	saved.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, data) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')`,
		saved.UserID, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return &saved, nil
}
