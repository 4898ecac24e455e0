package catalog

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/catalog"
)

func RegisterRoutes(r chi.Router, c catalog.Client, l *zap.Logger) {
	handler := NewCatalogHandler(c, l.With(zap.String("component", "CatalogHTTPHandler")))

	r.Get("/products", handler.GetProducts)
}
