// Package catalog reads products from the external catalog service. The
// storefront never writes to the catalog.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/domain"
)

var ErrProductNotFound = errors.New("product not found in catalog")

type Client interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	ResolveProduct(ctx context.Context, productID string) (*domain.Product, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) Client {
	breaker := gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
		Name:    "catalog",
		Timeout: 30 * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Catalog circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

func (c *httpClient) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := c.breaker.Execute(func() ([]domain.Product, error) {
		return c.fetchProducts(ctx, category)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("Catalog request rejected by circuit breaker", zap.Error(err))
			return nil, fmt.Errorf("catalog unavailable: %w", err)
		}
		return nil, err
	}
	return products, nil
}

func (c *httpClient) ResolveProduct(ctx context.Context, productID string) (*domain.Product, error) {
	products, err := c.ListProducts(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (c *httpClient) fetchProducts(ctx context.Context, category string) ([]domain.Product, error) {
	endpoint := c.baseURL + "/products"
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Catalog request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Catalog returned unexpected status",
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	products, err := decodeProducts(resp.Body)
	if err != nil {
		return nil, err
	}

	valid := make([]domain.Product, 0, len(products))
	for _, p := range products {
		p.Normalize()
		if err := p.Validate(); err != nil {
			c.logger.Warn("Dropping invalid catalog record",
				zap.String("product_id", p.ID),
				zap.Error(err))
			continue
		}
		valid = append(valid, p)
	}
	return valid, nil
}

// decodeProducts accepts both the documented {"products": [...]} envelope and
// a bare JSON array, which the catalog has been known to return.
func decodeProducts(body io.Reader) ([]domain.Product, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	var envelope struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Products != nil {
		return envelope.Products, nil
	}

	var list []domain.Product
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("unexpected catalog response shape: %w", err)
	}
	return list, nil
}
