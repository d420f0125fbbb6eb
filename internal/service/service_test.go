package service

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/mockapi"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newTestClient(t *testing.T, token string) (*apiclient.Client, *mockapi.Store) {
	t.Helper()

	store := mockapi.NewStore()
	srv := httptest.NewServer(mockapi.NewServer(store, mockapi.Options{Token: token}, logger.New("error")).Routes())
	t.Cleanup(srv.Close)

	return apiclient.NewClient(srv.URL, 5*time.Second), store
}

func TestCatalogService_ListProducts(t *testing.T) {
	client, _ := newTestClient(t, "")
	catalog := NewCatalogService(client)

	tests := []struct {
		name      string
		query     models.ProductQuery
		wantCount int
		wantFirst string
	}{
		{
			name:      "first page",
			query:     models.ProductQuery{Page: 1, Limit: 4},
			wantCount: 4,
			wantFirst: "Chicken Waffle",
		},
		{
			name:      "category filter",
			query:     models.ProductQuery{CategoryID: "pizza"},
			wantCount: 3,
		},
		{
			name:      "no match",
			query:     models.ProductQuery{Search: "sushi"},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := catalog.ListProducts(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("ListProducts() error = %v", err)
			}
			if len(products) != tt.wantCount {
				t.Fatalf("ListProducts() returned %d products, want %d", len(products), tt.wantCount)
			}
			if tt.wantFirst != "" && products[0].Name != tt.wantFirst {
				t.Errorf("first product = %q, want %q", products[0].Name, tt.wantFirst)
			}
		})
	}
}

func TestCatalogService_FeaturedAndCategories(t *testing.T) {
	client, _ := newTestClient(t, "")
	catalog := NewCatalogService(client)
	ctx := context.Background()

	featured, err := catalog.FeaturedProducts(ctx)
	if err != nil {
		t.Fatalf("FeaturedProducts() error = %v", err)
	}
	if len(featured) != 3 {
		t.Errorf("FeaturedProducts() returned %d products, want 3", len(featured))
	}

	categories, err := catalog.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) == 0 {
		t.Error("ListCategories() returned no categories")
	}
}

func TestCatalogService_GetProduct(t *testing.T) {
	client, _ := newTestClient(t, "")
	catalog := NewCatalogService(client)

	product, err := catalog.GetProduct(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if product == nil || product.Name != "Chicken Waffle" {
		t.Errorf("GetProduct() = %+v, want Chicken Waffle", product)
	}

	_, err = catalog.GetProduct(context.Background(), "999")
	if !errors.Is(err, apiclient.ErrStatus) {
		t.Errorf("GetProduct(999) error = %v, want ErrStatus", err)
	}
}

func TestCartService_SetQuantity(t *testing.T) {
	client, _ := newTestClient(t, "")
	cart := NewCartService(client)
	ctx := context.Background()

	if err := cart.SetQuantity(ctx, "1", 2); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}

	items, err := cart.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("GetCart() = %+v, want one line of quantity 2", items)
	}

	if err := cart.SetQuantity(ctx, "1", 0); err != nil {
		t.Fatalf("SetQuantity(0) error = %v", err)
	}
	items, err = cart.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("GetCart() after removal = %+v, want empty", items)
	}

	if err := cart.SetQuantity(ctx, "999", 1); !errors.Is(err, apiclient.ErrStatus) {
		t.Errorf("SetQuantity(999) error = %v, want ErrStatus", err)
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	client, store := newTestClient(t, "")
	orders := NewOrderService(client)
	ctx := context.Background()

	if err := store.SetCartQuantity("1", 2); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	id, err := orders.PlaceOrder(ctx, models.OrderRequest{
		Customer:          models.Customer{Name: "Ada", Email: "ada@example.com", Phone: "555-0100"},
		FulfillmentMethod: models.FulfillmentPickup,
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if id == "" {
		t.Fatal("PlaceOrder() returned an empty order id")
	}

	order, err := orders.GetOrder(ctx, id)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if order.Total == nil || !order.Total.Equal(decimal.RequireFromString("25.98")) {
		t.Errorf("order total = %v, want 25.98", order.Total)
	}

	// The cart was consumed by the first order.
	_, err = orders.PlaceOrder(ctx, models.OrderRequest{FulfillmentMethod: models.FulfillmentPickup})
	if !errors.Is(err, apiclient.ErrStatus) {
		t.Errorf("PlaceOrder() on empty cart error = %v, want ErrStatus", err)
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	client, store := newTestClient(t, "secret")
	orders := NewOrderService(client)

	tests := []struct {
		name      string
		auth      string
		wantErr   error
		wantCount int
	}{
		{name: "signed out", auth: "", wantErr: apiclient.ErrUnauthorized},
		{name: "wrong token", auth: "Bearer nope", wantErr: apiclient.ErrStatus},
		{name: "signed in", auth: "Bearer secret", wantCount: 1},
	}

	if err := store.SetCartQuantity("4", 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := store.PlaceOrder(models.OrderRequest{FulfillmentMethod: models.FulfillmentPickup}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.auth != "" {
				ctx = apiclient.WithCredentials(ctx, apiclient.Credentials{Authorization: tt.auth})
			}

			got, err := orders.ListOrders(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ListOrders() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListOrders() error = %v", err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("ListOrders() returned %d orders, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestAdminService(t *testing.T) {
	client, store := newTestClient(t, "")
	admin := NewAdminService(client)
	ctx := context.Background()

	products, err := admin.ListProducts(ctx, 5)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 5 {
		t.Errorf("ListProducts(5) returned %d products, want 5", len(products))
	}

	in := models.ProductInput{Name: "Lemonade", Description: "Fresh", Price: decimal.RequireFromString("3.50")}
	if err := admin.CreateProduct(ctx, in); err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	created, err := store.GetProduct("11")
	if err != nil || created.Name != "Lemonade" {
		t.Fatalf("created product = %+v, %v", created, err)
	}

	in.Name = "Pink Lemonade"
	if err := admin.UpdateProduct(ctx, "11", in); err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	updated, _ := store.GetProduct("11")
	if updated.Name != "Pink Lemonade" {
		t.Errorf("updated name = %q, want Pink Lemonade", updated.Name)
	}

	if err := store.SetCartQuantity("1", 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	order, err := store.PlaceOrder(models.OrderRequest{FulfillmentMethod: models.FulfillmentPickup})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	if err := admin.UpdateOrderStatus(ctx, order.ID, "Ready"); err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}
	orders, err := admin.ListOrders(ctx, 0)
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(orders) != 1 || orders[0].Status != "Ready" {
		t.Errorf("ListOrders() = %+v, want one Ready order", orders)
	}
}
