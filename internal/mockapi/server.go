package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// Options tunes the stand-in API
type Options struct {
	// Token, when set, must be sent as "Authorization: Bearer <token>" to
	// list the shopper's orders. Without it GET /api/orders answers 401.
	Token string
}

// Server exposes a Store over the storefront's REST contract
type Server struct {
	store  *Store
	opts   Options
	logger *slog.Logger
}

// NewServer creates a new stand-in API server
func NewServer(store *Store, opts Options, logger *slog.Logger) *Server {
	return &Server{
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Routes returns the API router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})

		r.Get("/products", s.listProducts)
		r.Get("/products/{productId}", s.getProduct)
		r.Get("/categories", s.listCategories)

		r.Get("/cart", s.getCart)
		r.Post("/cart", s.setCartQuantity)

		r.Post("/orders", s.placeOrder)
		r.With(s.requireToken).Get("/orders", s.listOrders)
		r.Get("/orders/{orderId}", s.getOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/orders", s.adminListOrders)
			r.Patch("/orders/{orderId}", s.adminUpdateOrder)
			r.Get("/products", s.adminListProducts)
			r.Post("/products", s.adminCreateProduct)
			r.Put("/products/{productId}", s.adminUpdateProduct)
		})
	})

	return r
}

// requireToken guards shopper-specific endpoints when a token is configured
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Token == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Sign in required")
			return
		}
		if token != s.opts.Token {
			writeError(w, http.StatusForbidden, "Invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// listProducts handles GET /api/products
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ProductFilter{
		Featured:   q.Get("featured") == "true",
		Search:     q.Get("search"),
		CategoryID: models.ID(q.Get("categoryId")),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	writeJSON(w, http.StatusOK, itemsEnvelope[models.Product]{
		Items: s.store.ListProducts(filter),
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// getProduct handles GET /api/products/{productId}
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.store.GetProduct(models.ID(chi.URLParam(r, "productId")))
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// listCategories handles GET /api/categories. It answers with a bare array.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Categories())
}

// getCart handles GET /api/cart
func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, itemsEnvelope[models.CartItem]{Items: s.store.Cart()})
}

// setCartQuantity handles POST /api/cart
func (s *Server) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req models.CartUpdate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.SetCartQuantity(req.ProductID, req.Quantity); err != nil {
		s.logger.Info("cart update rejected", "product_id", req.ProductID, "error", err)
		switch {
		case errors.Is(err, ErrProductNotFound):
			writeError(w, http.StatusNotFound, "Product not found")
		default:
			writeError(w, http.StatusBadRequest, "Invalid quantity")
		}
		return
	}

	writeJSON(w, http.StatusOK, itemsEnvelope[models.CartItem]{Items: s.store.Cart()})
}

// placeOrder handles POST /api/orders
func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := s.store.PlaceOrder(req)
	if err != nil {
		s.logger.Info("order rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("order placed", "order_id", order.ID, "items_count", len(order.Items))
	writeJSON(w, http.StatusCreated, map[string]models.ID{"id": order.ID})
}

// listOrders handles GET /api/orders
func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, itemsEnvelope[models.Order]{Items: s.store.Orders(0)})
}

// getOrder handles GET /api/orders/{orderId}
func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.GetOrder(models.ID(chi.URLParam(r, "orderId")))
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// adminListOrders handles GET /api/admin/orders. It answers with a bare array.
func (s *Server) adminListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Orders(queryInt(r, "limit")))
}

// adminUpdateOrder handles PATCH /api/admin/orders/{orderId}
func (s *Server) adminUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderStatusUpdate
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := s.store.UpdateOrderStatus(models.ID(chi.URLParam(r, "orderId")), req.Status)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// adminListProducts handles GET /api/admin/products
func (s *Server) adminListProducts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")
	writeJSON(w, http.StatusOK, itemsEnvelope[models.Product]{
		Items: s.store.ListProducts(ProductFilter{Page: 1, Limit: limit}),
		Limit: limit,
	})
}

// adminCreateProduct handles POST /api/admin/products
func (s *Server) adminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductInput
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := s.store.CreateProduct(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// adminUpdateProduct handles PUT /api/admin/products/{productId}
func (s *Server) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductInput
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := s.store.UpdateProduct(models.ID(chi.URLParam(r, "productId")), req)
	switch {
	case errors.Is(err, ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusOK, product)
	}
}
