// Package gateway is the client for the external mobile-money payment
// initiation API. It covers initiation only: a 2xx acknowledgment means the
// gateway accepted the request, not that funds moved.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/domain"
)

const (
	DefaultSuccessMessage = "Payment initiated successfully"
	DefaultFailureMessage = "Payment failed"
)

// ErrorKind separates failures the user can act on differently.
type ErrorKind string

const (
	// KindTransport covers timeouts and connection failures: nothing reached
	// the gateway, or no usable response came back.
	KindTransport ErrorKind = "TRANSPORT"
	// KindGateway covers structured rejections from the gateway itself.
	KindGateway ErrorKind = "GATEWAY"
)

// Error is a typed initiation failure. Message is safe to show to the user.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway error (%s): %s", e.Kind, e.Message)
}

type Client interface {
	InitiatePayment(ctx context.Context, req domain.PaymentRequest) (string, error)
}

type httpGatewayClient struct {
	baseURL    string
	credential string
	client     *http.Client
	logger     *zap.Logger
}

// NewClient builds the gateway client. The credential is sourced once at the
// composition boundary and threaded explicitly; when empty, no Authorization
// header is sent.
func NewClient(baseURL, credential string, timeout time.Duration, logger *zap.Logger) Client {
	return &httpGatewayClient{
		baseURL:    baseURL,
		credential: credential,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// InitiatePayment sends a single form-encoded initiation request. It never
// retries: charge requests are not idempotent and a blind retry risks
// double-charging the customer. On success it returns the gateway confirmation
// message; on failure it returns a *Error.
func (c *httpGatewayClient) InitiatePayment(ctx context.Context, payReq domain.PaymentRequest) (string, error) {
	form := url.Values{}
	form.Set("phone", payReq.Phone)
	form.Set("amount", payReq.Amount.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: DefaultFailureMessage}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Payment initiation request failed",
			zap.String("amount", payReq.Amount.String()),
			zap.Error(err))
		return "", &Error{Kind: KindTransport, Message: "Network error, please try again"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read payment gateway response", zap.Error(err))
		return "", &Error{Kind: KindTransport, Message: "Network error, please try again"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := parseGatewayMessage(body, DefaultFailureMessage)
		c.logger.Warn("Payment gateway rejected initiation",
			zap.Int("status", resp.StatusCode),
			zap.String("gateway_message", message))
		return "", &Error{Kind: KindGateway, Message: message}
	}

	message := parseGatewayMessage(body, DefaultSuccessMessage)
	c.logger.Info("Payment initiation accepted by gateway",
		zap.String("amount", payReq.Amount.String()))
	return message, nil
}

// parseGatewayMessage extracts a user-facing message from a gateway body. The
// gateway is inconsistent about the field name, so known fields are tried in
// priority order before falling back to the default.
func parseGatewayMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Err != "" {
		return payload.Err
	}
	return fallback
}
