package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/forms"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/render"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/view"
)

// DashboardLimit is how many orders and products the dashboard previews
const DashboardLimit = 5

const (
	ProductsErrorMessage      = "Unable to load products."
	OrderUpdateErrorMessage   = "Failed to update order."
	ProductCreateErrorMessage = "Failed to create product."
	ProductUpdateErrorMessage = "Failed to update product."
)

// AdminHandler serves the admin dashboard, orders and products pages
type AdminHandler struct {
	admin    *service.AdminService
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *service.AdminService, renderer *render.Renderer, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		renderer: renderer,
		logger:   logger,
	}
}

type dashboardPage struct {
	Orders   view.State[models.Order]
	Products view.State[models.Product]
}

// Dashboard handles GET /admin. Both panels load concurrently and fail
// independently.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := &dashboardPage{}

	var g errgroup.Group
	g.Go(func() error {
		err := page.Orders.Load(ctx, func(ctx context.Context) ([]models.Order, error) {
			return h.admin.ListOrders(ctx, DashboardLimit)
		}, OrdersErrorMessage)
		if err != nil {
			logFailure(h.logger, "failed to load recent orders", err)
		}
		return nil
	})
	g.Go(func() error {
		err := page.Products.Load(ctx, func(ctx context.Context) ([]models.Product, error) {
			return h.admin.ListProducts(ctx, DashboardLimit)
		}, ProductsErrorMessage)
		if err != nil {
			logFailure(h.logger, "failed to load products", err)
		}
		return nil
	})
	_ = g.Wait()

	h.renderer.Page(w, http.StatusOK, "admin_dashboard", page)
}

type adminOrdersPage struct {
	Orders view.State[models.Order]
}

// Orders handles GET /admin/orders
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	h.renderOrders(w, r, "")
}

// UpdateOrderStatus handles POST /admin/orders/{orderId}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := models.ID(chi.URLParam(r, "orderId"))
	form := forms.ParseOrderStatus(postForm(r))

	if err := h.admin.UpdateOrderStatus(r.Context(), id, form.Status); err != nil {
		logFailure(h.logger, "failed to update order", err, "order_id", id)
		h.renderOrders(w, r, OrderUpdateErrorMessage)
		return
	}

	h.logger.Info("order status updated", "order_id", id, "status", form.Status)
	redirect(w, r, "/admin/orders")
}

func (h *AdminHandler) renderOrders(w http.ResponseWriter, r *http.Request, notice string) {
	page := &adminOrdersPage{}
	err := page.Orders.Load(r.Context(), func(ctx context.Context) ([]models.Order, error) {
		return h.admin.ListOrders(ctx, 0)
	}, OrdersErrorMessage)
	if err != nil {
		logFailure(h.logger, "failed to load orders", err)
	}
	page.Orders.Notice(notice)

	h.renderer.Page(w, http.StatusOK, "admin_orders", page)
}

type adminProductsPage struct {
	Products  view.State[models.Product]
	EditingID models.ID
	Create    forms.NewProduct
}

// Products handles GET /admin/products. ?edit=<id> opens that row for editing.
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	h.renderProducts(w, r, &adminProductsPage{EditingID: models.ID(r.URL.Query().Get("edit"))}, "")
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseNewProduct(postForm(r))
	if err == nil {
		err = h.admin.CreateProduct(r.Context(), form.Input())
	}
	if err != nil {
		logFailure(h.logger, "failed to create product", err)
		h.renderProducts(w, r, &adminProductsPage{Create: form}, ProductCreateErrorMessage)
		return
	}

	h.logger.Info("product created", "name", form.Name)
	redirect(w, r, "/admin/products")
}

// UpdateProduct handles POST /admin/products/{productId}. A failed save
// keeps the row open for editing.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := models.ID(chi.URLParam(r, "productId"))

	form, err := forms.ParseProductEdit(postForm(r))
	if err == nil {
		err = h.admin.UpdateProduct(r.Context(), id, form.Input())
	}
	if err != nil {
		logFailure(h.logger, "failed to update product", err, "product_id", id)
		h.renderProducts(w, r, &adminProductsPage{EditingID: id}, ProductUpdateErrorMessage)
		return
	}

	h.logger.Info("product updated", "product_id", id)
	redirect(w, r, "/admin/products")
}

func (h *AdminHandler) renderProducts(w http.ResponseWriter, r *http.Request, page *adminProductsPage, notice string) {
	err := page.Products.Load(r.Context(), func(ctx context.Context) ([]models.Product, error) {
		return h.admin.ListProducts(ctx, 0)
	}, ProductsErrorMessage)
	if err != nil {
		logFailure(h.logger, "failed to load products", err)
	}
	page.Products.Notice(notice)

	h.renderer.Page(w, http.StatusOK, "admin_products", page)
}
