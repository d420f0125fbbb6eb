package handlers

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/forms"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/render"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/view"
)

const (
	CartErrorMessage       = "Unable to load cart."
	CartUpdateErrorMessage = "Failed to update cart."
)

// CartHandler serves the cart page
type CartHandler struct {
	cart     *service.CartService
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart *service.CartService, renderer *render.Renderer, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:     cart,
		renderer: renderer,
		logger:   logger,
	}
}

type cartPage struct {
	Cart     view.State[models.CartItem]
	Subtotal decimal.Decimal
}

// Cart handles GET /cart
func (h *CartHandler) Cart(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "")
}

// UpdateCart handles POST /cart. Remove posts quantity zero.
func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	line, err := forms.ParseCartLine(postForm(r))
	if err == nil {
		err = h.cart.SetQuantity(r.Context(), line.Update().ProductID, line.Quantity)
	}
	if err != nil {
		logFailure(h.logger, "failed to update cart", err, "product_id", line.ProductID)
		h.render(w, r, CartUpdateErrorMessage)
		return
	}

	redirect(w, r, "/cart")
}

func (h *CartHandler) render(w http.ResponseWriter, r *http.Request, notice string) {
	page := &cartPage{}
	if err := page.Cart.Load(r.Context(), h.cart.GetCart, CartErrorMessage); err != nil {
		logFailure(h.logger, "failed to load cart", err)
	}
	page.Cart.Notice(notice)
	page.Subtotal = models.CartSubtotal(page.Cart.Items)

	h.renderer.Page(w, http.StatusOK, "cart", page)
}
