package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

// dayRow is the stored shape: the record lives in a jsonb column keyed by user and date
type dayRow struct {
	UserID string           `json:"user_id"`
	Date   string           `json:"date"`
	Data   models.DayRecord `json:"data"`
}

type dayRepository struct {
	client *supabase.Client
}

// NewDayRepository creates a new day repository
func NewDayRepository(client *supabase.Client) DayRepository {
	return &dayRepository{client: client}
}

func (r *dayRepository) GetRange(ctx context.Context, userID, from, to string) ([]models.DayRecord, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", from, to),
		"select":  "user_id,date,data",
		"order":   "date.desc",
	}

	body, err := r.client.Query(ctx, "days", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get days: %w", err)
	}

	var rows []dayRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	days := make([]models.DayRecord, 0, len(rows))
	for _, row := range rows {
		days = append(days, row.record())
	}
	return days, nil
}

func (r *dayRepository) Get(ctx context.Context, userID, date string) (*models.DayRecord, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("eq.%s", date),
		"select":  "user_id,date,data",
	}

	body, err := r.client.Query(ctx, "days", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get day: %w", err)
	}

	var rows []dayRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	day := rows[0].record()
	return &day, nil
}

func (r *dayRepository) Upsert(ctx context.Context, userID string, day *models.DayRecord) (*models.DayRecord, error) {
	data := dayRow{UserID: userID, Date: day.Date, Data: *day}

	body, err := r.client.Upsert(ctx, "days", data, "user_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert day: %w", err)
	}

	var rows []dayRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no day returned")
	}

	saved := rows[0].record()
	return &saved, nil
}

func (r *dayRepository) Delete(ctx context.Context, userID, date string) error {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"date":    fmt.Sprintf("eq.%s", date),
	}
	if err := r.client.DeleteWhere(ctx, "days", query); err != nil {
		return fmt.Errorf("failed to delete day: %w", err)
	}
	return nil
}

// record returns the stored day with the row's date as the source of truth
func (row dayRow) record() models.DayRecord {
	d := row.Data
	d.Date = row.Date
	return d
}
