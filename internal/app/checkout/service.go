package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/catalog"
	"github.com/benedict11572/kienyeji/internal/domain"
	"github.com/benedict11572/kienyeji/internal/gateway"
	"github.com/benedict11572/kienyeji/internal/util"
)

var ErrCheckoutNotFound = errors.New("checkout session not found")

type CheckoutService interface {
	StartCheckout(ctx context.Context, req *StartCheckoutRequest) (*CheckoutResponse, error)
	SubmitPayment(ctx context.Context, checkoutID, phoneNumber string) (*CheckoutResponse, error)
	GetCheckout(ctx context.Context, checkoutID string) (*CheckoutResponse, error)
	AbandonCheckout(ctx context.Context, checkoutID string) error
	EvictStaleSessions(ctx context.Context, ttl time.Duration) int
}

type checkoutService struct {
	catalogClient catalog.Client
	gatewayClient gateway.Client
	logger        *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Workflow
}

func NewCheckoutService(catalogClient catalog.Client, gatewayClient gateway.Client, logger *zap.Logger) CheckoutService {
	return &checkoutService{
		catalogClient: catalogClient,
		gatewayClient: gatewayClient,
		logger:        logger,
		sessions:      make(map[string]*Workflow),
	}
}

// StartCheckout opens a payment session for the chosen product. When no
// product can be resolved the session still opens, but in the terminal
// NO_PRODUCT state: the payment screen renders a recovery path instead of
// crashing or defaulting to an arbitrary product.
func (s *checkoutService) StartCheckout(ctx context.Context, req *StartCheckoutRequest) (*CheckoutResponse, error) {
	checkoutID := util.GenerateUUID()

	var intent *domain.OrderIntent
	if req.ProductID == "" {
		s.logger.Warn("Checkout started without a product", zap.String("checkout_id", checkoutID))
	} else {
		product, err := s.catalogClient.ResolveProduct(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				s.logger.Warn("Checkout started for unknown product",
					zap.String("checkout_id", checkoutID),
					zap.String("product_id", req.ProductID))
			} else {
				s.logger.Error("Failed to resolve product for checkout",
					zap.String("product_id", req.ProductID),
					zap.Error(err))
				return nil, errors.New("failed to resolve product from catalog")
			}
		} else {
			intent, err = domain.NewOrderIntent(product, req.Quantity)
			if err != nil {
				return nil, err
			}
		}
	}

	workflow := NewWorkflow(checkoutID, intent, s.gatewayClient, s.logger)

	s.mu.Lock()
	s.sessions[checkoutID] = workflow
	s.mu.Unlock()

	s.logger.Info("Checkout session started",
		zap.String("checkout_id", checkoutID),
		zap.String("state", string(workflow.Snapshot().State)))
	return mapSnapshotToResponse(workflow.Snapshot()), nil
}

func (s *checkoutService) SubmitPayment(ctx context.Context, checkoutID, phoneNumber string) (*CheckoutResponse, error) {
	workflow, err := s.session(checkoutID)
	if err != nil {
		return nil, err
	}

	if err := workflow.Submit(ctx, phoneNumber); err != nil {
		return nil, err
	}
	return mapSnapshotToResponse(workflow.Snapshot()), nil
}

func (s *checkoutService) GetCheckout(ctx context.Context, checkoutID string) (*CheckoutResponse, error) {
	workflow, err := s.session(checkoutID)
	if err != nil {
		return nil, err
	}
	return mapSnapshotToResponse(workflow.Snapshot()), nil
}

// AbandonCheckout destroys the session. This backs the return-to-catalog
// action: once the customer leaves the payment screen the session and its
// order intent are gone for good.
func (s *checkoutService) AbandonCheckout(_ context.Context, checkoutID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[checkoutID]; !ok {
		return ErrCheckoutNotFound
	}
	delete(s.sessions, checkoutID)
	s.logger.Info("Checkout session abandoned", zap.String("checkout_id", checkoutID))
	return nil
}

// EvictStaleSessions removes sessions idle for longer than ttl and returns
// how many were removed. Sessions with an in-flight submission are skipped.
// Abandonment without an explicit abandon call ends here.
func (s *checkoutService) EvictStaleSessions(_ context.Context, ttl time.Duration) int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for checkoutID, workflow := range s.sessions {
		if workflow.expired(now, ttl) {
			delete(s.sessions, checkoutID)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Info("Evicted stale checkout sessions",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(s.sessions)))
	}
	return evicted
}

func (s *checkoutService) session(checkoutID string) (*Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workflow, ok := s.sessions[checkoutID]
	if !ok {
		return nil, ErrCheckoutNotFound
	}
	return workflow, nil
}
