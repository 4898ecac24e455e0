package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/domain"
	"github.com/benedict11572/kienyeji/internal/gateway"
	"github.com/benedict11572/kienyeji/internal/phone"
)

type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
	StateNoProduct  State = "NO_PRODUCT"
)

var ErrSubmissionInFlight = errors.New("a payment submission is already in progress")

const invalidPhoneMessage = "Please enter a valid phone number in the format 2547xxxxxxxx or 2541xxxxxxxx"

// Workflow is the payment state machine for one checkout session. The session
// owns its OrderIntent and PaymentOutcome exclusively; all mutation goes
// through Submit under the lock.
type Workflow struct {
	mu              sync.Mutex
	id              string
	intent          *domain.OrderIntent
	gateway         gateway.Client
	logger          *zap.Logger
	state           State
	outcome         domain.PaymentOutcome
	validationError string
	touchedAt       time.Time
}

// NewWorkflow starts a session in IDLE, or in the terminal NO_PRODUCT state
// when the hand-off from the catalog arrived empty. NO_PRODUCT sessions only
// offer a way back to the catalog; they never accept a submission.
func NewWorkflow(id string, intent *domain.OrderIntent, gw gateway.Client, logger *zap.Logger) *Workflow {
	w := &Workflow{
		id:        id,
		intent:    intent,
		gateway:   gw,
		logger:    logger,
		state:     StateIdle,
		outcome:   domain.PendingOutcome(),
		touchedAt: time.Now(),
	}
	if intent == nil {
		w.state = StateNoProduct
	}
	return w
}

// Submit runs one full validate-and-initiate cycle. Invalid input returns the
// machine to IDLE with a field-level error and makes no network call. A valid
// submission performs exactly one gateway request; there is no automatic
// retry, the user stays in control of re-submission. From a terminal state a
// new Submit restarts the cycle.
func (w *Workflow) Submit(ctx context.Context, phoneNumber string) error {
	w.mu.Lock()
	switch w.state {
	case StateNoProduct:
		w.mu.Unlock()
		return domain.ErrNoProduct
	case StateValidating, StateSubmitting:
		w.mu.Unlock()
		return ErrSubmissionInFlight
	}

	w.touchedAt = time.Now()
	w.state = StateValidating
	w.outcome = domain.PendingOutcome()
	w.validationError = ""

	if !phone.IsValid(phoneNumber) {
		w.state = StateIdle
		w.validationError = invalidPhoneMessage
		w.mu.Unlock()
		w.logger.Debug("Rejected payment submission with invalid phone number",
			zap.String("checkout_id", w.id))
		return nil
	}

	payReq := w.intent.BuildPaymentRequest(phoneNumber)
	w.state = StateSubmitting
	w.mu.Unlock()

	message, err := w.gateway.InitiatePayment(ctx, payReq)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.touchedAt = time.Now()
	if err != nil {
		var gwErr *gateway.Error
		reason := gateway.DefaultFailureMessage
		if errors.As(err, &gwErr) {
			reason = gwErr.Message
		}
		w.state = StateFailed
		w.outcome = domain.FailedOutcome(reason)
		w.logger.Warn("Payment initiation failed",
			zap.String("checkout_id", w.id),
			zap.String("reason", reason),
			zap.Error(err))
		return nil
	}

	w.state = StateSucceeded
	w.outcome = domain.SucceededOutcome(message)
	w.logger.Info("Payment initiation succeeded",
		zap.String("checkout_id", w.id),
		zap.String("amount", payReq.Amount.String()))
	return nil
}

// Snapshot returns a consistent view of the session for rendering.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := Snapshot{
		ID:              w.id,
		State:           w.state,
		Outcome:         w.outcome,
		ValidationError: w.validationError,
	}
	if w.intent != nil {
		s.Product = w.intent.Product
		s.Quantity = w.intent.Quantity
		s.Amount = w.intent.Amount()
	}
	return s
}

// expired reports whether the session can be reaped: idle for longer than ttl
// and not in the middle of a submission. A session with an in-flight gateway
// call is never expired, whatever its age.
func (w *Workflow) expired(now time.Time, ttl time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateValidating || w.state == StateSubmitting {
		return false
	}
	return now.Sub(w.touchedAt) > ttl
}
