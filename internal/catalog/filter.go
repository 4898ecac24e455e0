package catalog

import (
	"strings"

	"github.com/benedict11572/kienyeji/internal/domain"
)

// Filter keeps products whose name or category contains term,
// case-insensitive. An empty term keeps everything.
func Filter(products []domain.Product, term string) []domain.Product {
	if term == "" {
		return products
	}
	term = strings.ToLower(term)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// GroupByCategory buckets products by category, preserving source order
// within each group.
func GroupByCategory(products []domain.Product) map[string][]domain.Product {
	groups := make(map[string][]domain.Product)
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = domain.CategoryUncategorized
		}
		groups[category] = append(groups[category], p)
	}
	return groups
}
