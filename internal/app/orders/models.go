package orders

type CreateOrderRequest struct {
	ProductID    string `json:"product_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Quantity     int    `json:"quantity"`
}

type OrderResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Quantity     int    `json:"quantity"`
	Total        string `json:"total"`
	Status       string `json:"status"`
}

// OrderPlacedEvent is published to Kafka through the outbox once an order is
// committed.
type OrderPlacedEvent struct {
	OrderID      string `json:"order_id"`
	ProductID    string `json:"product_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Quantity     int    `json:"quantity"`
	Total        string `json:"total"`
}
