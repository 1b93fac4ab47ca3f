package service

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

type productService struct {
	resolver *repository.ProductResolver
}

// NewProductService creates a new product service
func NewProductService(resolver *repository.ProductResolver) ProductService {
	return &productService{resolver: resolver}
}

func (s *productService) GetProducts(ctx context.Context, userID string) (*models.ProductCatalog, error) {
	products, source, err := s.resolver.Products(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	return &models.ProductCatalog{
		Products: products,
		Source:   string(source),
		Count:    len(products),
	}, nil
}
