package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoProduct    = errors.New("no product resolved for this checkout")
	ErrInvalidOrder = errors.New("invalid order data")
)

// OrderIntent binds a resolved catalog product to a quantity for one checkout
// attempt. It is ephemeral: created when the customer picks a product, gone
// when the payment workflow terminates. Never persisted.
type OrderIntent struct {
	Product  *Product
	Quantity int
}

// NewOrderIntent builds an intent from a resolved product. A nil product is a
// precondition failure, not something the workflow can recover from.
// Quantities below 1 default to 1.
func NewOrderIntent(product *Product, quantity int) (*OrderIntent, error) {
	if product == nil {
		return nil, ErrNoProduct
	}
	if quantity < 1 {
		quantity = 1
	}
	return &OrderIntent{Product: product, Quantity: quantity}, nil
}

// Amount is always derived from the catalog price, never entered by the user.
func (i *OrderIntent) Amount() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// BuildPaymentRequest derives the gateway request. Callers must validate the
// phone number first; this is pure construction.
func (i *OrderIntent) BuildPaymentRequest(phone string) PaymentRequest {
	return PaymentRequest{
		Phone:  phone,
		Amount: i.Amount(),
	}
}

// PaymentRequest is what goes to the mobile-money gateway.
type PaymentRequest struct {
	Phone  string
	Amount decimal.Decimal
}

type OrderStatus string

const (
	OrderStatusNew            OrderStatus = "NEW"
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusFinished       OrderStatus = "FINISHED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// Order is a placed order as persisted by the order service. Unlike
// OrderIntent it survives the checkout screen.
type Order struct {
	ID           string
	ProductID    string
	ProductName  string
	CustomerName string
	Phone        string
	Email        string
	Quantity     int
	Total        decimal.Decimal
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewOrder(id, customerName, phone, email string, intent *OrderIntent) (*Order, error) {
	if intent == nil {
		return nil, ErrNoProduct
	}
	if id == "" || customerName == "" || phone == "" {
		return nil, ErrInvalidOrder
	}
	now := time.Now()
	return &Order{
		ID:           id,
		ProductID:    intent.Product.ID,
		ProductName:  intent.Product.Name,
		CustomerName: customerName,
		Phone:        phone,
		Email:        email,
		Quantity:     intent.Quantity,
		Total:        intent.Amount(),
		Status:       OrderStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (o *Order) MarkAsPendingPayment() error {
	if o.Status != OrderStatusNew {
		return errors.New("order must be in NEW status to become PENDING_PAYMENT")
	}
	o.Status = OrderStatusPendingPayment
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) MarkAsFinished() error {
	if o.Status == OrderStatusCancelled {
		return errors.New("cannot finish a cancelled order")
	}
	o.Status = OrderStatusFinished
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) MarkAsCancelled() error {
	if o.Status == OrderStatusFinished {
		return errors.New("cannot cancel a finished order")
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}
