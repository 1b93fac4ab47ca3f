package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

type productRepository struct {
	client *supabase.Client
}

// NewProductRepository creates a new product repository
func NewProductRepository(client *supabase.Client) ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) List(ctx context.Context, userID string) ([]models.Product, error) {
	// Shared catalog rows have no owner
	query := map[string]interface{}{
		"or":     fmt.Sprintf("(user_id.is.null,user_id.eq.%s)", userID),
		"select": "id,name,simple,complex,protein,bad_fat,good_fat,trans_fat,fiber,gi,harm",
		"order":  "name.asc",
	}

	body, err := r.client.Query(ctx, "products", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return products, nil
}
