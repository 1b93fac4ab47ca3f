package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

// MaxHistoryDays caps any history request
const MaxHistoryDays = 365

type dayService struct {
	dayRepo repository.DayRepository
}

// NewDayService creates a new day service
func NewDayService(dayRepo repository.DayRepository) DayService {
	return &dayService{dayRepo: dayRepo}
}

func (s *dayService) GetDays(ctx context.Context, userID string, n int, until time.Time) ([]models.DayRecord, error) {
	from, to := dateRange(n, until)
	days, err := s.dayRepo.GetRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get days: %w", err)
	}
	if days == nil {
		days = []models.DayRecord{}
	}
	return days, nil
}

func (s *dayService) PutDay(ctx context.Context, userID string, day *models.DayRecord) (*models.DayRecord, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}
	// A stored day always has a meals list; nil is reserved for "no record".
	if day.Meals == nil {
		day.Meals = []models.Meal{}
	}

	saved, err := s.dayRepo.Upsert(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to save day: %w", err)
	}

	logger.Ctx(ctx).Info("day saved",
		logger.String("date", saved.Date),
		logger.Int("meals", len(saved.Meals)),
	)
	return saved, nil
}

func (s *dayService) DeleteDay(ctx context.Context, userID, date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return invalid("date %q is not YYYY-MM-DD", date)
	}
	if err := s.dayRepo.Delete(ctx, userID, date); err != nil {
		return fmt.Errorf("failed to delete day: %w", err)
	}
	return nil
}

// dateRange returns the inclusive [from, to] dates covering n days ending at until
func dateRange(n int, until time.Time) (from, to string) {
	if n <= 0 {
		n = 1
	}
	if n > MaxHistoryDays {
		n = MaxHistoryDays
	}
	to = until.Format(models.DateLayout)
	from = until.AddDate(0, 0, -(n - 1)).Format(models.DateLayout)
	return from, to
}

func validateDay(day *models.DayRecord) error {
	if day == nil {
		return invalid("missing day")
	}
	if _, err := time.Parse(models.DateLayout, day.Date); err != nil {
		return invalid("date %q is not YYYY-MM-DD", day.Date)
	}
	scales := []struct {
		name  string
		value float64
	}{
		{"mood", day.Mood},
		{"wellbeing", day.Wellbeing},
		{"stress", day.Stress},
		{"sleep_quality", day.SleepQuality},
	}
	for _, sc := range scales {
		if sc.value < 0 || sc.value > 10 {
			return invalid("%s must be between 0 and 10", sc.name)
		}
	}
	if day.Steps < 0 || day.WaterMl < 0 {
		return invalid("steps and water must not be negative")
	}
	for i, meal := range day.Meals {
		if _, ok := models.ParseClock(meal.Time); !ok {
			return invalid("meal %d has invalid time %q", i, meal.Time)
		}
		for _, item := range meal.Items {
			if item.Grams < 0 {
				return invalid("meal %d has negative grams", i)
			}
			if item.ProductID == "" && item.Name == "" {
				return invalid("meal %d has an item without product", i)
			}
		}
	}
	for i, w := range day.WaterLog {
		if _, ok := models.ParseClock(w.Time); !ok || w.Ml < 0 {
			return invalid("water entry %d is invalid", i)
		}
	}
	return nil
}
