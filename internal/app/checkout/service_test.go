package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/domain"
	"github.com/benedict11572/kienyeji/internal/gateway"
)

func newTestService(gw *MockGatewayClient) CheckoutService {
	catalogMock := &MockCatalogClient{Products: []domain.Product{moringa()}}
	return NewCheckoutService(catalogMock, gw, zap.NewNop())
}

func startSession(t *testing.T, svc CheckoutService, productID string, quantity int) string {
	t.Helper()
	resp, err := svc.StartCheckout(context.Background(), &StartCheckoutRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return resp.CheckoutID
}

func TestStartCheckout_WithProduct(t *testing.T) {
	svc := newTestService(&MockGatewayClient{})

	resp, err := svc.StartCheckout(context.Background(), &StartCheckoutRequest{ProductID: "prod-1", Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, string(StateIdle), resp.State)
	require.NotNil(t, resp.Product)
	assert.Equal(t, "Moringa Powder", resp.Product.Name)
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, "200", resp.Amount)
	assert.Contains(t, resp.Actions, ActionSubmitPayment)
}

func TestStartCheckout_NoProduct(t *testing.T) {
	svc := newTestService(&MockGatewayClient{})

	resp, err := svc.StartCheckout(context.Background(), &StartCheckoutRequest{})

	require.NoError(t, err)
	assert.Equal(t, string(StateNoProduct), resp.State)
	assert.Nil(t, resp.Product)
	assert.Equal(t, []string{ActionReturnToCatalog}, resp.Actions,
		"a session without a product must only offer the way back to the catalog")
}

func TestStartCheckout_UnknownProduct(t *testing.T) {
	svc := newTestService(&MockGatewayClient{})

	resp, err := svc.StartCheckout(context.Background(), &StartCheckoutRequest{ProductID: "nope"})

	require.NoError(t, err)
	assert.Equal(t, string(StateNoProduct), resp.State)
	assert.Equal(t, []string{ActionReturnToCatalog}, resp.Actions)
}

func TestSubmitPayment_InvalidPhoneMakesNoNetworkCall(t *testing.T) {
	gw := &MockGatewayClient{Message: "ok"}
	svc := newTestService(gw)
	checkoutID := startSession(t, svc, "prod-1", 1)

	resp, err := svc.SubmitPayment(context.Background(), checkoutID, "0712345678")

	require.NoError(t, err)
	assert.Equal(t, 0, gw.Calls, "invalid phone must never reach the gateway")
	assert.Equal(t, string(StateIdle), resp.State)
	assert.NotEmpty(t, resp.ValidationError)
	assert.Nil(t, resp.Outcome)
}

func TestSubmitPayment_Success(t *testing.T) {
	gw := &MockGatewayClient{Message: "ok"}
	svc := newTestService(gw)
	checkoutID := startSession(t, svc, "prod-1", 2)

	resp, err := svc.SubmitPayment(context.Background(), checkoutID, "254712345678")

	require.NoError(t, err)
	assert.Equal(t, 1, gw.Calls)
	assert.Equal(t, string(StateSucceeded), resp.State)
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, string(domain.OutcomeSucceeded), resp.Outcome.Status)
	assert.Equal(t, "ok", resp.Outcome.Message)
	assert.Equal(t, "200", gw.LastRequest.Amount.String(),
		"submitted amount must be price times quantity")
}

func TestSubmitPayment_GatewayRejection(t *testing.T) {
	gw := &MockGatewayClient{Err: &gateway.Error{Kind: gateway.KindGateway, Message: "insufficient balance"}}
	svc := newTestService(gw)
	checkoutID := startSession(t, svc, "prod-1", 1)

	resp, err := svc.SubmitPayment(context.Background(), checkoutID, "254712345678")

	require.NoError(t, err)
	assert.Equal(t, string(StateFailed), resp.State)
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, string(domain.OutcomeFailed), resp.Outcome.Status)
	assert.Equal(t, "insufficient balance", resp.Outcome.Message)
}

func TestSubmitPayment_TransportFailure(t *testing.T) {
	gw := &MockGatewayClient{Err: &gateway.Error{Kind: gateway.KindTransport, Message: "Network error, please try again"}}
	svc := newTestService(gw)
	checkoutID := startSession(t, svc, "prod-1", 1)

	resp, err := svc.SubmitPayment(context.Background(), checkoutID, "254712345678")

	require.NoError(t, err)
	assert.Equal(t, string(StateFailed), resp.State)
	assert.Equal(t, "Network error, please try again", resp.Outcome.Message)
}

func TestSubmitPayment_RestartableAfterFailure(t *testing.T) {
	gw := &MockGatewayClient{Err: &gateway.Error{Kind: gateway.KindTransport, Message: "Network error, please try again"}}
	svc := newTestService(gw)
	checkoutID := startSession(t, svc, "prod-1", 1)

	resp, err := svc.SubmitPayment(context.Background(), checkoutID, "254712345678")
	require.NoError(t, err)
	require.Equal(t, string(StateFailed), resp.State)
	assert.Contains(t, resp.Actions, ActionSubmitPayment, "terminal states must allow re-submission")

	// user retries after the network recovers
	gw.Err = nil
	gw.Message = "confirmed"
	resp, err = svc.SubmitPayment(context.Background(), checkoutID, "254712345678")

	require.NoError(t, err)
	assert.Equal(t, string(StateSucceeded), resp.State)
	assert.Equal(t, "confirmed", resp.Outcome.Message)
	assert.Equal(t, 2, gw.Calls)
}

func TestSubmitPayment_NoProductSession(t *testing.T) {
	gw := &MockGatewayClient{}
	svc := newTestService(gw)
	checkoutID := startSession(t, svc, "", 0)

	_, err := svc.SubmitPayment(context.Background(), checkoutID, "254712345678")

	require.ErrorIs(t, err, domain.ErrNoProduct)
	assert.Equal(t, 0, gw.Calls)
}

func TestSubmitPayment_UnknownSession(t *testing.T) {
	svc := newTestService(&MockGatewayClient{})

	_, err := svc.SubmitPayment(context.Background(), "missing", "254712345678")

	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}

func TestAbandonCheckout_DestroysSession(t *testing.T) {
	svc := newTestService(&MockGatewayClient{})
	checkoutID := startSession(t, svc, "prod-1", 1)

	require.NoError(t, svc.AbandonCheckout(context.Background(), checkoutID))

	_, err := svc.GetCheckout(context.Background(), checkoutID)
	assert.ErrorIs(t, err, ErrCheckoutNotFound, "an abandoned session must be gone for good")

	assert.ErrorIs(t, svc.AbandonCheckout(context.Background(), checkoutID), ErrCheckoutNotFound)
}

func TestEvictStaleSessions(t *testing.T) {
	svc := newTestService(&MockGatewayClient{}).(*checkoutService)
	staleID := startSession(t, svc, "prod-1", 1)
	freshID := startSession(t, svc, "prod-1", 1)

	stale, err := svc.session(staleID)
	require.NoError(t, err)
	stale.mu.Lock()
	stale.touchedAt = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	evicted := svc.EvictStaleSessions(context.Background(), 30*time.Minute)

	assert.Equal(t, 1, evicted)
	_, err = svc.GetCheckout(context.Background(), staleID)
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
	_, err = svc.GetCheckout(context.Background(), freshID)
	assert.NoError(t, err, "recently used sessions must survive the sweep")
}

func TestEvictStaleSessions_SkipsInFlightSubmission(t *testing.T) {
	gw := &blockingGateway{entered: make(chan struct{}), release: make(chan struct{})}
	catalogMock := &MockCatalogClient{Products: []domain.Product{moringa()}}
	svc := NewCheckoutService(catalogMock, gw, zap.NewNop()).(*checkoutService)
	checkoutID := startSession(t, svc, "prod-1", 1)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SubmitPayment(context.Background(), checkoutID, "254712345678")
		done <- err
	}()
	<-gw.entered

	session, err := svc.session(checkoutID)
	require.NoError(t, err)
	session.mu.Lock()
	session.touchedAt = time.Now().Add(-time.Hour)
	session.mu.Unlock()

	assert.Equal(t, 0, svc.EvictStaleSessions(context.Background(), 30*time.Minute))

	close(gw.release)
	require.NoError(t, <-done)
	resp, err := svc.GetCheckout(context.Background(), checkoutID)
	require.NoError(t, err)
	assert.Equal(t, string(StateSucceeded), resp.State)
}

func TestGetCheckout(t *testing.T) {
	svc := newTestService(&MockGatewayClient{})
	checkoutID := startSession(t, svc, "prod-1", 1)

	resp, err := svc.GetCheckout(context.Background(), checkoutID)

	require.NoError(t, err)
	assert.Equal(t, checkoutID, resp.CheckoutID)
	assert.Equal(t, string(StateIdle), resp.State)

	_, err = svc.GetCheckout(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}
