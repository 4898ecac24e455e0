package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/catalog"
	"github.com/benedict11572/kienyeji/internal/domain"
	"github.com/benedict11572/kienyeji/internal/infrastructure/kafka"
	"github.com/benedict11572/kienyeji/internal/phone"
	"github.com/benedict11572/kienyeji/internal/repository/order_repo"
	"github.com/benedict11572/kienyeji/internal/repository/outbox_repo"
	"github.com/benedict11572/kienyeji/internal/util"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidOrder   = errors.New("invalid order data")
	ErrUnknownProduct = errors.New("unknown product")
)

const orderPlacedTopic = "order_placed"

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*OrderResponse, error)
	GetAllOrders(ctx context.Context) ([]*OrderResponse, error)
	ProcessOutbox(ctx context.Context) error
}

type orderService struct {
	orderRepo     order_repo.OrderRepository
	outboxRepo    outbox_repo.OutboxRepository
	catalogClient catalog.Client
	kafkaProducer kafka.Producer
	logger        *zap.Logger
}

func NewOrderService(
	orderRepo order_repo.OrderRepository,
	outboxRepo outbox_repo.OutboxRepository,
	catalogClient catalog.Client,
	kafkaProducer kafka.Producer,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		outboxRepo:    outboxRepo,
		catalogClient: catalogClient,
		kafkaProducer: kafkaProducer,
		logger:        logger,
	}
}

// CreateOrder resolves the product from the catalog and derives the total
// server-side; the client-submitted total is never trusted. The order row and
// its order_placed outbox message are committed in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	if req.ProductID == "" || req.CustomerName == "" {
		return nil, ErrInvalidOrder
	}
	if !phone.IsValid(req.Phone) {
		s.logger.Warn("Rejected order with invalid phone number", zap.String("product_id", req.ProductID))
		return nil, fmt.Errorf("%w: phone must match 2547xxxxxxxx or 2541xxxxxxxx", ErrInvalidOrder)
	}

	product, err := s.catalogClient.ResolveProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, ErrUnknownProduct
		}
		s.logger.Error("Failed to resolve product for order", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, errors.New("failed to resolve product from catalog")
	}

	intent, err := domain.NewOrderIntent(product, req.Quantity)
	if err != nil {
		return nil, ErrInvalidOrder
	}

	orderID := util.GenerateUUID()
	order, err := domain.NewOrder(orderID, req.CustomerName, req.Phone, req.Email, intent)
	if err != nil {
		s.logger.Error("Failed to build order domain object", zap.Error(err))
		return nil, ErrInvalidOrder
	}

	event := OrderPlacedEvent{
		OrderID:      order.ID,
		ProductID:    order.ProductID,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Quantity:     order.Quantity,
		Total:        order.Total.String(),
	}
	payloadBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal order placed event", zap.String("order_id", order.ID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	outboxMessage := &outbox_repo.OutboxMessage{
		ID:        util.GenerateUUID(),
		Topic:     orderPlacedTopic,
		Payload:   payloadBytes,
		Status:    outbox_repo.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.orderRepo.CreateOrderAndOutboxMessage(ctx, order, outboxMessage); err != nil {
		s.logger.Error("Failed to save order and outbox message", zap.String("order_id", order.ID), zap.Error(err))
		return nil, errors.New("failed to place order")
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("product_id", order.ProductID),
		zap.String("total", order.Total.String()))

	return mapOrderToResponse(order), nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("Failed to get order from repository", zap.String("order_id", orderID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapOrderToResponse(order), nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		s.logger.Error("Failed to get all orders from repository", zap.Error(err))
		return nil, errors.New("internal server error")
	}
	responses := make([]*OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = mapOrderToResponse(order)
	}
	return responses, nil
}

// ProcessOutbox pushes pending outbox messages to Kafka. Messages that fail to
// publish stay PENDING and are retried on the next tick.
func (s *orderService) ProcessOutbox(ctx context.Context) error {
	messages, err := s.outboxRepo.GetUnsentMessages(ctx)
	if err != nil {
		s.logger.Error("Failed to get unsent outbox messages", zap.Error(err))
		return fmt.Errorf("failed to get unsent outbox messages: %w", err)
	}
	if len(messages) == 0 {
		return nil
	}

	s.logger.Info("Processing unsent outbox messages", zap.Int("count", len(messages)))
	for _, msg := range messages {
		if err := s.kafkaProducer.Produce(ctx, msg.Topic, msg.Payload); err != nil {
			s.logger.Error("Failed to produce outbox message to Kafka",
				zap.String("message_id", msg.ID),
				zap.String("topic", msg.Topic),
				zap.Error(err))
			continue
		}
		if err := s.outboxRepo.MarkMessageSent(ctx, msg.ID); err != nil {
			s.logger.Error("Failed to mark outbox message as sent",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}
	return nil
}

func mapOrderToResponse(order *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:           order.ID,
		ProductID:    order.ProductID,
		ProductName:  order.ProductName,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Email:        order.Email,
		Quantity:     order.Quantity,
		Total:        order.Total.String(),
		Status:       string(order.Status),
	}
}
