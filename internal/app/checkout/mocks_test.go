package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/benedict11572/kienyeji/internal/catalog"
	"github.com/benedict11572/kienyeji/internal/domain"
)

// MockCatalogClient implements catalog.Client for testing.
type MockCatalogClient struct {
	Products []domain.Product
	Err      error
}

func (m *MockCatalogClient) ListProducts(context.Context, string) ([]domain.Product, error) {
	return m.Products, m.Err
}

func (m *MockCatalogClient) ResolveProduct(_ context.Context, productID string) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Products {
		if m.Products[i].ID == productID {
			return &m.Products[i], nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

// MockGatewayClient counts initiation calls so tests can assert that invalid
// input never reaches the network.
type MockGatewayClient struct {
	Calls       int
	LastRequest domain.PaymentRequest
	Message     string
	Err         error
}

func (m *MockGatewayClient) InitiatePayment(_ context.Context, req domain.PaymentRequest) (string, error) {
	m.Calls++
	m.LastRequest = req
	if m.Err != nil {
		return "", m.Err
	}
	return m.Message, nil
}

func moringa() domain.Product {
	return domain.Product{
		ID:       "prod-1",
		Name:     "Moringa Powder",
		Price:    decimal.NewFromInt(100),
		Stock:    10,
		Category: "Diabetes",
	}
}
