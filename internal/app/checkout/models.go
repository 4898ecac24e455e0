package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/benedict11572/kienyeji/internal/domain"
)

// Available actions exposed to the payment screen.
const (
	ActionSubmitPayment   = "submit_payment"
	ActionReturnToCatalog = "return_to_catalog"
)

type StartCheckoutRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type SubmitPaymentRequest struct {
	Phone string `json:"phone"`
}

// Snapshot is the internal view of a workflow session.
type Snapshot struct {
	ID              string
	State           State
	Product         *domain.Product
	Quantity        int
	Amount          decimal.Decimal
	Outcome         domain.PaymentOutcome
	ValidationError string
}

type ProductSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

type OutcomeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type CheckoutResponse struct {
	CheckoutID      string           `json:"checkout_id"`
	State           string           `json:"state"`
	Product         *ProductSummary  `json:"product,omitempty"`
	Quantity        int              `json:"quantity,omitempty"`
	Amount          string           `json:"amount,omitempty"`
	ValidationError string           `json:"validation_error,omitempty"`
	Outcome         *OutcomeResponse `json:"outcome,omitempty"`
	Actions         []string         `json:"actions"`
}

func mapSnapshotToResponse(s Snapshot) *CheckoutResponse {
	resp := &CheckoutResponse{
		CheckoutID:      s.ID,
		State:           string(s.State),
		ValidationError: s.ValidationError,
		Actions:         actionsForState(s.State),
	}
	if s.Product != nil {
		resp.Product = &ProductSummary{
			ID:          s.Product.ID,
			Name:        s.Product.Name,
			Price:       s.Product.Price.String(),
			ImageURL:    s.Product.ImageURL,
			Description: s.Product.Description,
		}
		resp.Quantity = s.Quantity
		resp.Amount = s.Amount.String()
	}
	if s.Outcome.Terminal() {
		resp.Outcome = &OutcomeResponse{
			Status:  string(s.Outcome.Kind),
			Message: s.Outcome.Message,
		}
	}
	return resp
}

func actionsForState(state State) []string {
	switch state {
	case StateNoProduct:
		return []string{ActionReturnToCatalog}
	case StateSubmitting, StateValidating:
		return []string{}
	case StateSucceeded, StateFailed:
		return []string{ActionSubmitPayment, ActionReturnToCatalog}
	default:
		return []string{ActionSubmitPayment, ActionReturnToCatalog}
	}
}
