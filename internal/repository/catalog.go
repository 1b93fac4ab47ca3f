package repository

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

//go:embed catalog/default_products.yaml
var catalogFS embed.FS

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

var (
	defaultOnce     sync.Once
	defaultProducts []models.Product
	defaultErr      error
)

// DefaultProducts returns the embedded catalog. The slice is a copy.
func DefaultProducts() ([]models.Product, error) {
	defaultOnce.Do(func() {
		data, err := catalogFS.ReadFile("catalog/default_products.yaml")
		if err != nil {
			defaultErr = fmt.Errorf("failed to read default catalog: %w", err)
			return
		}
		defaultProducts, defaultErr = ParseCatalog(data)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	out := make([]models.Product, len(defaultProducts))
	copy(out, defaultProducts)
	return out, nil
}

// ParseCatalog decodes a YAML product catalog. Entries without an id are rejected.
func ParseCatalog(data []byte) ([]models.Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i, p := range file.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %d (%q) has no id", i, p.Name)
		}
	}
	return file.Products, nil
}
