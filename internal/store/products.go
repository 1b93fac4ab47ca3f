package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

// sharedOwner marks catalog rows visible to every user.
const sharedOwner = ""

type productStore struct {
	db *sql.DB
}

// Products returns the store's product repository.
func (s *Store) Products() repository.ProductRepository {
	return &productStore{db: s.db}
}

// List returns shared products plus the user's own. A user product
// with the same id as a shared one shadows it.
func (p *productStore) List(ctx context.Context, userID string) ([]models.Product, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT data FROM products
		WHERE user_id = ?
		   OR (user_id = ? AND id NOT IN (SELECT id FROM products WHERE user_id = ?))
		ORDER BY name, id`,
		userID, sharedOwner, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		var product models.Product
		if err := json.Unmarshal([]byte(data), &product); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// SaveProduct stores a product owned by userID, or a shared product when userID is empty.
func (s *Store) SaveProduct(ctx context.Context, userID string, product models.Product) error {
	if product.ID == "" {
		return fmt.Errorf("save product: missing id")
	}
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (user_id, id, name, data) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO UPDATE SET name = excluded.name, data = excluded.data`,
		userID, product.ID, product.Name, string(data),
	)
	if err != nil {
		return fmt.Errorf("save product %s: %w", product.ID, err)
	}
	return nil
}

// SeedProducts loads shared products once: it is a no-op when any shared row exists.
func (s *Store) SeedProducts(ctx context.Context, products []models.Product) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE user_id = ?`, sharedOwner,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO products (user_id, id, name, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, product := range products {
		data, err := json.Marshal(product)
		if err != nil {
			return 0, fmt.Errorf("encode product: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, sharedOwner, product.ID, product.Name, string(data)); err != nil {
			return 0, fmt.Errorf("seed product %s: %w", product.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(products), nil
}
