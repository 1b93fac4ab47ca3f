package nutrition

import (
	"strings"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// BuildProductIndex indexes products by lower-cased id and normalized name.
// On duplicates the first occurrence wins.
func BuildProductIndex(products []models.Product) *models.ProductIndex {
	idx := &models.ProductIndex{
		ByID:   make(map[string]models.Product, len(products)),
		ByName: make(map[string]models.Product, len(products)),
	}
	for _, p := range products {
		if id := strings.ToLower(strings.TrimSpace(p.ID)); id != "" {
			if _, exists := idx.ByID[id]; !exists {
				idx.ByID[id] = p
			}
		}
		if name := models.NormalizeName(p.Name); name != "" {
			if _, exists := idx.ByName[name]; !exists {
				idx.ByName[name] = p
			}
		}
	}
	return idx
}
