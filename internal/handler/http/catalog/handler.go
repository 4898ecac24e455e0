package catalog

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/catalog"
	"github.com/benedict11572/kienyeji/internal/domain"
)

type CatalogHandler struct {
	client catalog.Client
	logger *zap.Logger
}

func NewCatalogHandler(c catalog.Client, l *zap.Logger) *CatalogHandler {
	return &CatalogHandler{client: c, logger: l}
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

type CatalogResponse struct {
	Groups map[string][]ProductResponse `json:"groups"`
}

// GetProducts serves the catalog view: products fetched from the catalog
// service, filtered by the optional q search term over name and category, then
// grouped by category.
func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	products, err := h.client.ListProducts(r.Context(), category)
	if err != nil {
		h.logger.Error("Error fetching products from catalog", zap.Error(err))
		http.Error(w, "Failed to fetch products", http.StatusBadGateway)
		return
	}

	filtered := catalog.Filter(products, term)
	grouped := catalog.GroupByCategory(filtered)

	groups := make(map[string][]ProductResponse, len(grouped))
	for cat, items := range grouped {
		groups[cat] = mapProductsToResponse(items)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&CatalogResponse{Groups: groups})
}

func mapProductsToResponse(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price.String(),
			Stock:       p.Stock,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Description: p.Description,
		}
	}
	return responses
}
