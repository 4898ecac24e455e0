package checkout

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/benedict11572/kienyeji/internal/app/checkout"
)

func RegisterRoutes(r chi.Router, s checkout.CheckoutService, l *zap.Logger) {
	handler := NewCheckoutHandler(s, l.With(zap.String("component", "CheckoutHTTPHandler")))

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/", handler.StartCheckout)
		r.Get("/{checkoutID}", handler.GetCheckout)
		r.Post("/{checkoutID}/pay", handler.SubmitPayment)
		r.Delete("/{checkoutID}", handler.AbandonCheckout)
	})
}
