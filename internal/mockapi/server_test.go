package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newTestServer(opts Options) (*Store, http.Handler) {
	store := NewStore()
	return store, NewServer(store, opts, logger.New("error")).Routes()
}

func serve(h http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListProductsEnvelope(t *testing.T) {
	_, h := newTestServer(Options{})

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantFirst string
	}{
		{name: "all", target: "/api/products", wantCount: 10, wantFirst: "Chicken Waffle"},
		{name: "featured", target: "/api/products?featured=true", wantCount: 3, wantFirst: "Chicken Waffle"},
		{name: "category", target: "/api/products?categoryId=pizza", wantCount: 3, wantFirst: "Margherita Pizza"},
		{name: "search is case insensitive", target: "/api/products?search=SALAD", wantCount: 3, wantFirst: "Caesar Salad"},
		{name: "second page", target: "/api/products?page=2&limit=4", wantCount: 4, wantFirst: "Greek Salad"},
		{name: "past the end", target: "/api/products?page=9&limit=4", wantCount: 0},
		{name: "huge page", target: "/api/products?page=9223372036854775807&limit=4", wantCount: 0},
		{name: "huge limit", target: "/api/products?limit=9223372036854775807", wantCount: 10, wantFirst: "Chicken Waffle"},
		{name: "huge page and limit", target: "/api/products?page=9223372036854775807&limit=9223372036854775807", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, http.MethodGet, tt.target, "", nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Items []models.Product `json:"items"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			require.Len(t, body.Items, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantFirst, body.Items[0].Name)
			}
		})
	}
}

func TestCategoriesBareArray(t *testing.T) {
	_, h := newTestServer(Options{})

	w := serve(h, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(w.Body.String()), "["))
}

func TestGetProductNotFound(t *testing.T) {
	_, h := newTestServer(Options{})

	w := serve(h, http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartUpsertAndRemove(t *testing.T) {
	store, h := newTestServer(Options{})

	w := serve(h, http.MethodPost, "/api/cart", `{"productId":"1","quantity":2}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.Cart(), 1)
	assert.Equal(t, models.Quantity(2), store.Cart()[0].Quantity)

	w = serve(h, http.MethodPost, "/api/cart", `{"productId":1,"quantity":5}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Quantity(5), store.Cart()[0].Quantity)

	w = serve(h, http.MethodPost, "/api/cart", `{"productId":"1","quantity":0}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.Cart())

	w = serve(h, http.MethodPost, "/api/cart", `{"productId":"1","quantity":-1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h, http.MethodPost, "/api/cart", `{"productId":"nope","quantity":1}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceOrderFromCart(t *testing.T) {
	store, h := newTestServer(Options{})

	w := serve(h, http.MethodPost, "/api/orders", `{"customer":{"name":"Ann"},"fulfillmentMethod":"pickup"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	require.NoError(t, store.SetCartQuantity("4", 2))
	w = serve(h, http.MethodPost, "/api/orders", `{"customer":{"name":"Ann"},"fulfillmentMethod":"delivery"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "delivery without address")

	w = serve(h, http.MethodPost, "/api/orders", `{"customer":{"name":"Ann"},"fulfillmentMethod":"pickup"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.OrderCreated
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	require.NotEmpty(t, created.Ref())
	assert.Empty(t, store.Cart())

	order, err := store.GetOrder(created.Ref())
	require.NoError(t, err)
	assert.Equal(t, "Pending", order.Status)
	assert.Equal(t, "17.98", order.Total.StringFixed(2))
}

func TestOrdersRequireToken(t *testing.T) {
	_, h := newTestServer(Options{Token: "secret"})

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{name: "missing token", status: http.StatusUnauthorized},
		{name: "wrong token", auth: "Bearer nope", status: http.StatusForbidden},
		{name: "valid token", auth: "Bearer secret", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.auth != "" {
				header.Set("Authorization", tt.auth)
			}
			w := serve(h, http.MethodGet, "/api/orders", "", header)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAdminEndpoints(t *testing.T) {
	store, h := newTestServer(Options{})

	w := serve(h, http.MethodPost, "/api/admin/products", `{"name":"Tea","price":2.5}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, models.ID("11"), created.ID)

	w = serve(h, http.MethodPost, "/api/admin/products", `{"name":"","price":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h, http.MethodPut, "/api/admin/products/11", `{"name":"Green Tea","price":3}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	p, err := store.GetProduct("11")
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", p.Name)

	w = serve(h, http.MethodPut, "/api/admin/products/404", `{"name":"x","price":1}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, http.MethodGet, "/api/admin/products?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products struct {
		Items []models.Product `json:"items"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	assert.Len(t, products.Items, 5)

	require.NoError(t, store.SetCartQuantity("1", 1))
	order, err := store.PlaceOrder(models.OrderRequest{FulfillmentMethod: models.FulfillmentPickup})
	require.NoError(t, err)

	w = serve(h, http.MethodPatch, "/api/admin/orders/"+order.ID.String(), `{"status":"Ready"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodGet, "/api/admin/orders", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "Ready", orders[0].Status)

	w = serve(h, http.MethodPatch, "/api/admin/orders/missing", `{"status":"Ready"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrdersNewestFirst(t *testing.T) {
	store := NewStore()

	var ids []models.ID
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SetCartQuantity("2", 1))
		order, err := store.PlaceOrder(models.OrderRequest{FulfillmentMethod: models.FulfillmentPickup})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	orders := store.Orders(2)
	require.Len(t, orders, 2)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[1], orders[1].ID)
}
