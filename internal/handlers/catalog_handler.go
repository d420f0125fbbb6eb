package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/forms"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/render"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/view"
)

// Messages shown by the catalog pages
const (
	FeaturedErrorMessage      = "Failed to load featured items."
	ProductNotFoundMessage    = "Product not found."
	ProductLoadErrorMessage   = "Unable to load product."
	ProductUnavailableMessage = "Product unavailable."
	AddedToCartMessage        = "Added to cart."
	AddToCartErrorMessage     = "Failed to add to cart."
)

// CatalogHandler serves the home, menu and product pages
type CatalogHandler struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	browsers *view.BrowserRegistry
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService, cart *service.CartService, browsers *view.BrowserRegistry, renderer *render.Renderer, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		cart:     cart,
		browsers: browsers,
		renderer: renderer,
		logger:   logger,
	}
}

type homePage struct {
	Featured view.State[models.Product]
}

// Home handles GET /
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := &homePage{}
	if err := page.Featured.Load(r.Context(), h.catalog.FeaturedProducts, FeaturedErrorMessage); err != nil {
		logFailure(h.logger, "failed to load featured products", err)
	}

	h.renderer.Page(w, http.StatusOK, "home", page)
}

func menuFilter(q url.Values) view.MenuFilter {
	page, _ := strconv.Atoi(q.Get("page"))
	return view.MenuFilter{
		Search:     q.Get("search"),
		CategoryID: q.Get("categoryId"),
		Page:       page,
	}
}

// Menu handles GET /menu. Each render starts a new view with its own
// request ordering.
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewID := uuid.NewString()
	browser := h.browsers.Browser(menuView(menuSession(w, r), viewID))
	filter := menuFilter(r.URL.Query())

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.logger.Debug("ignoring category load failure", "error", err)
	}

	menu, err := browser.Browse(ctx, filter)
	if errors.Is(err, view.ErrSuperseded) {
		// Only a shutdown cancels a fresh view. The page script reloads
		// a results area left in the loading state.
		menu = &view.Menu{Filter: filter.Normalize()}
		menu.Begin()
	} else if menu.Status == view.StatusError {
		logFailure(h.logger, "failed to load menu", menu.Cause())
	}
	menu.ViewID = viewID
	menu.Categories = categories

	h.renderer.Page(w, http.StatusOK, "menu", menu)
}

// MenuResults handles GET /menu/results, the product grid alone. A request
// overtaken by a newer one from the same menu view gets 204 No Content.
func (h *CatalogHandler) MenuResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	browser := h.browsers.Browser(menuView(menuSession(w, r), q.Get("view")))

	menu, err := browser.Browse(r.Context(), menuFilter(q))
	if errors.Is(err, view.ErrSuperseded) {
		h.logger.Debug("menu request superseded")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if menu.Status == view.StatusError {
		logFailure(h.logger, "failed to load menu", menu.Cause())
	}

	h.renderer.Fragment(w, http.StatusOK, "menu", "menu-results", menu)
}

type productPage struct {
	Product        *models.Product
	Error          string
	Quantity       int
	Message        string
	MessageIsError bool
}

// Product handles GET /product/{productId}
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	page := &productPage{Quantity: 1}
	if r.URL.Query().Get("cart") == "added" {
		page.Message = AddedToCartMessage
	}

	h.renderProduct(w, r, models.ID(chi.URLParam(r, "productId")), page)
}

// AddToCart handles POST /product/{productId}/cart
func (h *CatalogHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	productID := models.ID(chi.URLParam(r, "productId"))

	form, err := forms.ParseAddToCart(postForm(r))
	if err == nil {
		err = h.cart.SetQuantity(r.Context(), productID, form.Quantity)
	}
	if err != nil {
		logFailure(h.logger, "failed to add to cart", err, "product_id", productID)
		h.renderProduct(w, r, productID, &productPage{
			Quantity:       max(1, form.Quantity),
			Message:        AddToCartErrorMessage,
			MessageIsError: true,
		})
		return
	}

	redirect(w, r, "/product/"+url.PathEscape(productID.String())+"?cart=added")
}

func (h *CatalogHandler) renderProduct(w http.ResponseWriter, r *http.Request, id models.ID, page *productPage) {
	status := http.StatusOK

	product, err := h.catalog.GetProduct(r.Context(), id)
	switch {
	case err != nil && apiclient.Categorize(err) == apiclient.CategoryTransport:
		logFailure(h.logger, "failed to load product", err, "product_id", id)
		page.Error = ProductLoadErrorMessage
	case err != nil:
		logFailure(h.logger, "product not found", err, "product_id", id)
		page.Error = ProductNotFoundMessage
		status = http.StatusNotFound
	case product == nil:
		page.Error = ProductUnavailableMessage
		status = http.StatusNotFound
	default:
		page.Product = product
	}

	h.renderer.Page(w, status, "product", page)
}
