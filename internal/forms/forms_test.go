package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

func TestInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 4 ", 4},
		{"2.7", 2},
		{"-1", -1},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Int(tt.in))
		})
	}
}

func TestDecimal(t *testing.T) {
	assert.Equal(t, "2.5", Decimal("2.50").String())
	assert.True(t, Decimal("").IsZero())
	assert.True(t, Decimal("free").IsZero())
}

func TestParseAddToCart(t *testing.T) {
	tests := []struct {
		name string
		qty  string
		want int
	}{
		{name: "given", qty: "3", want: 3},
		{name: "zero raised to one", qty: "0", want: 1},
		{name: "negative raised to one", qty: "-2", want: 1},
		{name: "missing raised to one", qty: "", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseAddToCart(url.Values{"quantity": {tt.qty}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Quantity)
		})
	}
}

func TestParseCartLine(t *testing.T) {
	f, err := ParseCartLine(url.Values{"productId": {"7"}, "quantity": {"-3"}})
	require.NoError(t, err)
	assert.Equal(t, 0, f.Quantity)

	f, err = ParseCartLine(url.Values{"productId": {"7"}, "quantity": {"5"}, "remove": {""}})
	require.NoError(t, err)
	assert.Equal(t, models.CartUpdate{ProductID: "7", Quantity: 0}, f.Update())

	_, err = ParseCartLine(url.Values{"quantity": {"1"}})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseCheckout(t *testing.T) {
	valid := url.Values{
		"name":  {"Ann"},
		"email": {"ann@example.com"},
		"phone": {"0400 000 000"},
	}
	with := func(pairs ...string) url.Values {
		v := url.Values{}
		for k, vals := range valid {
			v[k] = append([]string(nil), vals...)
		}
		for i := 0; i+1 < len(pairs); i += 2 {
			v.Set(pairs[i], pairs[i+1])
		}
		return v
	}

	tests := []struct {
		name    string
		values  url.Values
		wantErr bool
	}{
		{name: "pickup without address", values: valid},
		{name: "delivery with address", values: with("fulfillment", "delivery", "address", "1 Main St")},
		{name: "delivery without address", values: with("fulfillment", "delivery"), wantErr: true},
		{name: "missing name", values: with("name", ""), wantErr: true},
		{name: "bad email", values: with("email", "not-an-email"), wantErr: true},
		{name: "missing phone", values: with("phone", ""), wantErr: true},
		{name: "unknown fulfillment", values: with("fulfillment", "drone"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCheckout(tt.values)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckoutRequest(t *testing.T) {
	f, err := ParseCheckout(url.Values{
		"name":        {"Ann"},
		"email":       {"ann@example.com"},
		"phone":       {"123"},
		"address":     {"1 Main St"},
		"notes":       {"ring twice"},
		"fulfillment": {"delivery"},
	})
	require.NoError(t, err)
	assert.True(t, f.IsDelivery())
	assert.Equal(t, models.OrderRequest{
		Customer:          models.Customer{Name: "Ann", Email: "ann@example.com", Phone: "123", Address: "1 Main St"},
		Notes:             "ring twice",
		FulfillmentMethod: "delivery",
	}, f.Request())
}

func TestParseNewProduct(t *testing.T) {
	f, err := ParseNewProduct(url.Values{"name": {"Tea"}, "price": {"2.5"}})
	require.NoError(t, err)
	assert.Equal(t, "2.5", f.Input().Price.String())

	_, err = ParseNewProduct(url.Values{"name": {"Tea"}})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = ParseNewProduct(url.Values{"price": {"1"}})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = ParseNewProduct(url.Values{"name": {"Tea"}, "price": {"cheap"}})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseProductEdit(t *testing.T) {
	f, err := ParseProductEdit(url.Values{"name": {"Tea"}})
	require.NoError(t, err)
	assert.True(t, f.Input().Price.IsZero())

	_, err = ParseProductEdit(url.Values{"price": {"x"}})
	assert.ErrorIs(t, err, ErrInvalid)
}
