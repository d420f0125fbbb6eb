package models

import "github.com/shopspring/decimal"

// Fulfillment methods offered at checkout
const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

// Order is a placed order as returned by the API
type Order struct {
	ID        ID               `json:"id"`
	Status    string           `json:"status,omitempty"`
	Total     *decimal.Decimal `json:"total,omitempty"`
	Items     []OrderItem      `json:"items,omitempty"`
	CreatedAt string           `json:"createdAt,omitempty"`
}

// StatusOrPending returns the status, or "Pending" when the API sent none
func (o Order) StatusOrPending() string {
	if o.Status == "" {
		return "Pending"
	}
	return o.Status
}

// OrderItem is a line of a placed order
type OrderItem struct {
	ID        ID               `json:"id,omitempty"`
	Name      string           `json:"name,omitempty"`
	Quantity  *Quantity        `json:"quantity,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	ProductID ID               `json:"productId,omitempty"`
}

// Key identifies the line for rendering
func (i OrderItem) Key() ID {
	if i.ID != "" {
		return i.ID
	}
	return i.ProductID
}

// DisplayName returns the item name or "Item"
func (i OrderItem) DisplayName() string {
	if i.Name == "" {
		return "Item"
	}
	return i.Name
}

// QuantityOrZero is the quantity shown next to the line
func (i OrderItem) QuantityOrZero() int {
	if i.Quantity == nil {
		return 0
	}
	return int(*i.Quantity)
}

// LineTotal is price times quantity, counting a missing quantity as one.
// It is nil when the line has no price.
func (i OrderItem) LineTotal() *decimal.Decimal {
	if i.Price == nil {
		return nil
	}
	qty := Quantity(1)
	if i.Quantity != nil {
		qty = *i.Quantity
	}
	total := i.Price.Mul(decimal.NewFromInt(int64(qty)))
	return &total
}

// Customer holds the contact details collected at checkout
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderRequest is the body of POST /api/orders
type OrderRequest struct {
	Customer          Customer `json:"customer"`
	Notes             string   `json:"notes"`
	FulfillmentMethod string   `json:"fulfillmentMethod"`
}

// OrderCreated is the body returned by POST /api/orders.
// Some API versions use orderId instead of id.
type OrderCreated struct {
	ID      ID `json:"id"`
	OrderID ID `json:"orderId"`
}

// Ref returns whichever order id the API provided
func (o OrderCreated) Ref() ID {
	if o.ID != "" {
		return o.ID
	}
	return o.OrderID
}

// OrderStatusUpdate is the body of PATCH /api/admin/orders/:id
type OrderStatusUpdate struct {
	Status string `json:"status"`
}
