package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/render"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/view"
)

// Options configures the storefront
type Options struct {
	API            *apiclient.Client
	Renderer       *render.Renderer
	MenuPageSize   int
	SessionTTL     time.Duration
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Storefront is the page server: routes, middleware and the per-session
// menu browsers.
type Storefront struct {
	router   chi.Router
	browsers *view.BrowserRegistry
}

// NewStorefront wires services, handlers and middleware
func NewStorefront(opts Options) *Storefront {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	// Initialize services
	catalogService := service.NewCatalogService(opts.API)
	cartService := service.NewCartService(opts.API)
	orderService := service.NewOrderService(opts.API)
	adminService := service.NewAdminService(opts.API)

	browsers := view.NewBrowserRegistry(catalogService, opts.MenuPageSize, opts.SessionTTL)

	// Initialize handlers
	healthHandler := NewHealthHandler(opts.Logger)
	catalogHandler := NewCatalogHandler(catalogService, cartService, browsers, opts.Renderer, opts.Logger)
	cartHandler := NewCartHandler(cartService, opts.Renderer, opts.Logger)
	checkoutHandler := NewCheckoutHandler(orderService, opts.Renderer, opts.Logger)
	orderHandler := NewOrderHandler(orderService, opts.Renderer, opts.Logger)
	adminHandler := NewAdminHandler(adminService, opts.Renderer, opts.Logger)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.ForwardCredentials(SessionCookie))

		r.Get("/", catalogHandler.Home)
		r.Get("/menu", catalogHandler.Menu)
		r.Get("/menu/results", catalogHandler.MenuResults)
		r.Get("/product/{productId}", catalogHandler.Product)
		r.Post("/product/{productId}/cart", catalogHandler.AddToCart)

		r.Get("/cart", cartHandler.Cart)
		r.Post("/cart", cartHandler.UpdateCart)

		r.Get("/checkout", checkoutHandler.Checkout)
		r.Post("/checkout", checkoutHandler.PlaceOrder)

		r.Get("/order/confirmation", orderHandler.Confirmation)
		r.Get("/order/{orderId}", orderHandler.Order)
		r.Get("/account", orderHandler.Account)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", adminHandler.Dashboard)
			r.Get("/orders", adminHandler.Orders)
			r.Post("/orders/{orderId}/status", adminHandler.UpdateOrderStatus)
			r.Get("/products", adminHandler.Products)
			r.Post("/products", adminHandler.CreateProduct)
			r.Post("/products/{productId}", adminHandler.UpdateProduct)
		})
	})

	return &Storefront{
		router:   r,
		browsers: browsers,
	}
}

// ServeHTTP dispatches to the storefront routes
func (s *Storefront) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close cancels in-flight menu requests and forgets every session
func (s *Storefront) Close() {
	s.browsers.Close()
}
