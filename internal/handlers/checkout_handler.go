package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/forms"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/render"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

const CheckoutErrorMessage = "Failed to submit order."

// CheckoutHandler serves the checkout form
type CheckoutHandler struct {
	orders   *service.OrderService
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orders *service.OrderService, renderer *render.Renderer, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orders:   orders,
		renderer: renderer,
		logger:   logger,
	}
}

type checkoutPage struct {
	Form  forms.Checkout
	Error string
}

// Checkout handles GET /checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, http.StatusOK, "checkout", &checkoutPage{Form: forms.NewCheckout()})
}

// PlaceOrder handles POST /checkout. On success the shopper lands on the new
// order, or on the generic confirmation when the API returned no id.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseCheckout(postForm(r))
	if err != nil {
		h.logger.Info("checkout form rejected", "error", err)
		h.renderer.Page(w, http.StatusOK, "checkout", &checkoutPage{Form: form, Error: CheckoutErrorMessage})
		return
	}

	orderID, err := h.orders.PlaceOrder(r.Context(), form.Request())
	if err != nil {
		logFailure(h.logger, "failed to place order", err)
		h.renderer.Page(w, http.StatusOK, "checkout", &checkoutPage{Form: form, Error: CheckoutErrorMessage})
		return
	}

	h.logger.Info("order placed", "order_id", orderID, "fulfillment", form.FulfillmentMethod)
	if orderID == "" {
		redirect(w, r, "/order/confirmation")
		return
	}
	redirect(w, r, "/order/"+url.PathEscape(orderID.String()))
}
