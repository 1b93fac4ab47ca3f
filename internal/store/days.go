package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

type dayStore struct {
	db *sql.DB
}

// Days returns the store's day repository.
func (s *Store) Days() repository.DayRepository {
	return &dayStore{db: s.db}
}

func (d *dayStore) GetRange(ctx context.Context, userID, from, to string) ([]models.DayRecord, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT date, data FROM days WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date DESC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var days []models.DayRecord
	for rows.Next() {
		var date, data string
		if err := rows.Scan(&date, &data); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		day, err := decodeDay(date, data)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (d *dayStore) Get(ctx context.Context, userID, date string) (*models.DayRecord, error) {
	var data string
	err := d.db.QueryRowContext(ctx,
		`SELECT data FROM days WHERE user_id = ? AND date = ?`, userID, date,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	day, err := decodeDay(date, data)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (d *dayStore) Upsert(ctx context.Context, userID string, day *models.DayRecord) (*models.DayRecord, error) {
	data, err := json.Marshal(day)
	if err != nil {
		return nil, fmt.Errorf("encode day: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO days (user_id, date, data) VALUES (?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			data = excluded.data,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now')`,
		userID, day.Date, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert day: %w", err)
	}

	saved := *day
	return &saved, nil
}

func (d *dayStore) Delete(ctx context.Context, userID, date string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM days WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func decodeDay(date, data string) (models.DayRecord, error) {
	var day models.DayRecord
	if err := json.Unmarshal([]byte(data), &day); err != nil {
		return models.DayRecord{}, fmt.Errorf("decode day %s: %w", date, err)
	}
	day.Date = date
	return day, nil
}
