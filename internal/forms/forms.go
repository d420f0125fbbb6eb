// Package forms decodes the storefront's HTML form posts. Each form type
// carries the same constraints its HTML inputs declare and nothing more.
package forms

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalid matches every validation failure returned by this package
var ErrInvalid = errors.New("invalid form")

// Validate checks v against its struct tags
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.Wrapf(ErrInvalid, "%s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return errors.Wrap(err, "validate form")
	}
	return nil
}

// Int reads a numeric field the way a number input reports it: fractions
// are truncated and anything unparsable counts as zero.
func Int(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// Decimal reads a money field; anything unparsable counts as zero.
func Decimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// AddToCart is the quantity picker on the product page
type AddToCart struct {
	Quantity int `validate:"min=1"`
}

// ParseAddToCart reads the form, raising the quantity to at least one
func ParseAddToCart(v url.Values) (AddToCart, error) {
	f := AddToCart{Quantity: max(1, Int(v.Get("quantity")))}
	return f, Validate(f)
}

// CartLine is one quantity input on the cart page. Remove posts zero.
type CartLine struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"min=0"`
}

// ParseCartLine reads the form, flooring the quantity at zero
func ParseCartLine(v url.Values) (CartLine, error) {
	f := CartLine{
		ProductID: strings.TrimSpace(v.Get("productId")),
		Quantity:  max(0, Int(v.Get("quantity"))),
	}
	if v.Has("remove") {
		f.Quantity = 0
	}
	return f, Validate(f)
}

// Update is the API write for this line
func (f CartLine) Update() models.CartUpdate {
	return models.CartUpdate{ProductID: models.ID(f.ProductID), Quantity: f.Quantity}
}

// Checkout is the order form
type Checkout struct {
	Name              string `validate:"required"`
	Email             string `validate:"required,email"`
	Phone             string `validate:"required"`
	Address           string `validate:"required_if=FulfillmentMethod delivery"`
	Notes             string
	FulfillmentMethod string `validate:"oneof=pickup delivery"`
}

// NewCheckout returns the blank form: pickup, nothing filled in
func NewCheckout() Checkout {
	return Checkout{FulfillmentMethod: models.FulfillmentPickup}
}

// ParseCheckout reads the form. A missing fulfillment choice means pickup.
func ParseCheckout(v url.Values) (Checkout, error) {
	f := Checkout{
		Name:              v.Get("name"),
		Email:             strings.TrimSpace(v.Get("email")),
		Phone:             v.Get("phone"),
		Address:           v.Get("address"),
		Notes:             v.Get("notes"),
		FulfillmentMethod: v.Get("fulfillment"),
	}
	if f.FulfillmentMethod == "" {
		f.FulfillmentMethod = models.FulfillmentPickup
	}
	return f, Validate(f)
}

// IsDelivery reports whether the address is required
func (f Checkout) IsDelivery() bool {
	return f.FulfillmentMethod == models.FulfillmentDelivery
}

// Request is the API body for this checkout
func (f Checkout) Request() models.OrderRequest {
	return models.OrderRequest{
		Customer: models.Customer{
			Name:    f.Name,
			Email:   f.Email,
			Phone:   f.Phone,
			Address: f.Address,
		},
		Notes:             f.Notes,
		FulfillmentMethod: f.FulfillmentMethod,
	}
}

// OrderStatus is the status box next to an order on the admin orders page
type OrderStatus struct {
	Status string
}

// ParseOrderStatus reads the form. The status is free text and may be empty.
func ParseOrderStatus(v url.Values) OrderStatus {
	return OrderStatus{Status: v.Get("status")}
}

// NewProduct is the admin create form
type NewProduct struct {
	Name        string `validate:"required"`
	Description string
	Price       string `validate:"required,numeric"`
}

// ParseNewProduct reads the create form
func ParseNewProduct(v url.Values) (NewProduct, error) {
	f := NewProduct{
		Name:        v.Get("name"),
		Description: v.Get("description"),
		Price:       strings.TrimSpace(v.Get("price")),
	}
	return f, Validate(f)
}

// Input is the API body for this product
func (f NewProduct) Input() models.ProductInput {
	return models.ProductInput{Name: f.Name, Description: f.Description, Price: Decimal(f.Price)}
}

// ProductEdit is the inline edit form of one admin product row
type ProductEdit struct {
	Name        string
	Description string
	Price       string `validate:"omitempty,numeric"`
}

// ParseProductEdit reads the edit form
func ParseProductEdit(v url.Values) (ProductEdit, error) {
	f := ProductEdit{
		Name:        v.Get("name"),
		Description: v.Get("description"),
		Price:       strings.TrimSpace(v.Get("price")),
	}
	return f, Validate(f)
}

// Input is the API body for this edit
func (f ProductEdit) Input() models.ProductInput {
	return models.ProductInput{Name: f.Name, Description: f.Description, Price: Decimal(f.Price)}
}
