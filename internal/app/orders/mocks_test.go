package orders

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/benedict11572/kienyeji/internal/catalog"
	"github.com/benedict11572/kienyeji/internal/domain"
	"github.com/benedict11572/kienyeji/internal/repository/outbox_repo"
)

// MockOrderRepository implements order_repo.OrderRepository for testing.
type MockOrderRepository struct {
	CreatedOrder  *domain.Order
	CreatedOutbox *outbox_repo.OutboxMessage
	Orders        map[string]*domain.Order
	Err           error
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.CreatedOrder = order
	return m.Err
}

func (m *MockOrderRepository) CreateOrderAndOutboxMessage(_ context.Context, order *domain.Order, msg *outbox_repo.OutboxMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.CreatedOrder = order
	m.CreatedOutbox = msg
	return nil
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	order, ok := m.Orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return order, nil
}

func (m *MockOrderRepository) GetAllOrders(context.Context) ([]*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	orders := make([]*domain.Order, 0, len(m.Orders))
	for _, order := range m.Orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *MockOrderRepository) UpdateOrder(context.Context, *domain.Order) error {
	return m.Err
}

// MockOutboxRepository implements outbox_repo.OutboxRepository for testing.
type MockOutboxRepository struct {
	Messages []*outbox_repo.OutboxMessage
	SentIDs  []string
	Err      error
}

func (m *MockOutboxRepository) CreateMessage(_ context.Context, msg *outbox_repo.OutboxMessage) error {
	m.Messages = append(m.Messages, msg)
	return m.Err
}

func (m *MockOutboxRepository) GetUnsentMessages(context.Context) ([]*outbox_repo.OutboxMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Messages, nil
}

func (m *MockOutboxRepository) MarkMessageSent(_ context.Context, id string) error {
	m.SentIDs = append(m.SentIDs, id)
	return nil
}

// MockProducer implements kafka.Producer for testing.
type MockProducer struct {
	Produced [][]byte
	Topics   []string
	Err      error
}

func (m *MockProducer) Produce(_ context.Context, topic string, message []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Topics = append(m.Topics, topic)
	m.Produced = append(m.Produced, message)
	return nil
}

func (m *MockProducer) Close() error {
	return nil
}

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

func garlic() domain.Product {
	return domain.Product{
		ID:       "prod-2",
		Name:     "Garlic Capsules",
		Price:    decimal.NewFromInt(150),
		Stock:    8,
		Category: "Immunity",
	}
}
