package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Quantity is a line quantity as reported by the API. Fractional numbers
// such as 2.0 are truncated; anything that is not a number reads as zero.
type Quantity int

// UnmarshalJSON accepts a JSON number or numeric string.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) {
		*q = 0
		return nil
	}
	*q = Quantity(max(math.MinInt32, min(math.MaxInt32, math.Trunc(f))))
	return nil
}

// CartProduct is the product summary some API versions nest in a cart line
type CartProduct struct {
	ID       ID               `json:"id"`
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	ImageURL string           `json:"imageUrl,omitempty"`
}

// CartItem is one line of the shopper's cart.
// The API may report name and price either flat or on the nested product.
type CartItem struct {
	ID        ID               `json:"id,omitempty"`
	ProductID ID               `json:"productId,omitempty"`
	Quantity  Quantity         `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Name      string           `json:"name,omitempty"`
	Product   *CartProduct     `json:"product,omitempty"`
}

// DisplayName returns the line name, falling back to the nested product and then "Item".
func (c CartItem) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Product != nil && c.Product.Name != "" {
		return c.Product.Name
	}
	return "Item"
}

// ProductKey returns the product id the line refers to, or "" when unknown.
func (c CartItem) ProductKey() ID {
	if c.ProductID != "" {
		return c.ProductID
	}
	if c.Product != nil {
		return c.Product.ID
	}
	return ""
}

// UnitPrice returns the flat price, the nested product price, or zero.
func (c CartItem) UnitPrice() decimal.Decimal {
	if c.Price != nil {
		return *c.Price
	}
	if c.Product != nil && c.Product.Price != nil {
		return *c.Product.Price
	}
	return decimal.Zero
}

// CartSubtotal sums unit price times quantity over all lines
func CartSubtotal(items []CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.UnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// CartUpdate sets the quantity of a product in the cart. Zero removes it.
type CartUpdate struct {
	ProductID ID  `json:"productId"`
	Quantity  int `json:"quantity"`
}
