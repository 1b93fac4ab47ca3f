package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// GetProfile returns the stored profile, or a blank one when the user has none yet
func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if err := req.Birthday.ValidDate(); err != nil {
		return nil, invalid("birthday: %v", err)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(profile, req)
	profile.UserID = userID

	updated, err := s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}

// applyProfileUpdate copies every field present in req onto p
func applyProfileUpdate(p *models.Profile, req *models.UpdateProfileRequest) {
	if req.Weight != nil {
		p.Weight = *req.Weight
	}
	if req.Height != nil {
		p.Height = *req.Height
	}
	if req.Age != nil {
		p.Age = *req.Age
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.ActivityFactor != nil {
		p.ActivityFactor = *req.ActivityFactor
	}
	if req.DeficitPctTarget != nil {
		p.DeficitPctTarget = *req.DeficitPctTarget
	}
	if req.StepsGoal != nil {
		p.StepsGoal = *req.StepsGoal
	}
	if req.Norms != nil {
		p.Norms = *req.Norms
	}
	req.WaterGoalMl.Apply(&p.WaterGoalMl)
	req.Birthday.Apply(&p.Birthday)
}
