package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/render"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/view"
)

const (
	OrderNotFoundMessage    = "Order not found."
	OrderLoadErrorMessage   = "Unable to load order."
	OrderUnavailableMessage = "Order unavailable."
	OrdersErrorMessage      = "Unable to load orders."
)

// OrderHandler serves order detail and the shopper's order history
type OrderHandler struct {
	orders   *service.OrderService
	renderer *render.Renderer
	log      *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService, renderer *render.Renderer, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		renderer: renderer,
		log:      log,
	}
}

type orderPage struct {
	Order *models.Order
	Error string
}

// Order handles GET /order/{orderId}
func (h *OrderHandler) Order(w http.ResponseWriter, r *http.Request) {
	id := models.ID(chi.URLParam(r, "orderId"))
	page := &orderPage{}
	status := http.StatusOK

	order, err := h.orders.GetOrder(r.Context(), id)
	switch {
	case err != nil && apiclient.Categorize(err) == apiclient.CategoryTransport:
		logFailure(h.log, "failed to load order", err, "order_id", id)
		page.Error = OrderLoadErrorMessage
	case err != nil:
		logFailure(h.log, "order not found", err, "order_id", id)
		page.Error = OrderNotFoundMessage
		status = http.StatusNotFound
	case order == nil:
		page.Error = OrderUnavailableMessage
		status = http.StatusNotFound
	default:
		page.Order = order
	}

	h.renderer.Page(w, status, "order", page)
}

// Confirmation handles GET /order/confirmation
func (h *OrderHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, http.StatusOK, "order_confirmation", nil)
}

type accountPage struct {
	Orders       view.State[models.Order]
	Unauthorized bool
}

// Account handles GET /account. When the API answers 401 the shopper is
// asked to sign in instead of seeing an error.
func (h *OrderHandler) Account(w http.ResponseWriter, r *http.Request) {
	page := &accountPage{}

	err := page.Orders.Load(r.Context(), h.orders.ListOrders, OrdersErrorMessage)
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		h.log.Info("account requires sign in")
		page.Unauthorized = true
	case err != nil:
		logFailure(h.log, "failed to load orders", err)
	}

	h.renderer.Page(w, http.StatusOK, "account", page)
}
