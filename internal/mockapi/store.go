package mockapi

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrInvalidProduct  = errors.New("product name is required")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingAddress  = errors.New("delivery orders need an address")
)

// productRecord is a catalog entry. Featured is only used for filtering.
type productRecord struct {
	models.Product
	Featured bool `json:"featured,omitempty"`
}

// ProductFilter selects a page of products
type ProductFilter struct {
	Featured   bool
	Search     string
	CategoryID models.ID
	Page       int
	Limit      int
}

// Store is an in-memory stand-in for the storefront API's data: one catalog,
// one cart and the orders placed from it.
type Store struct {
	mu         sync.RWMutex
	products   map[models.ID]productRecord
	productIDs []models.ID
	nextID     int
	categories []models.Category
	cart       []models.CartItem
	orders     []models.Order
	now        func() time.Time
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// NewStore creates a store seeded with a small menu
func NewStore() *Store {
	s := &Store{
		products: make(map[models.ID]productRecord),
		categories: []models.Category{
			{ID: "waffle", Name: "Waffle"},
			{ID: "salad", Name: "Salad"},
			{ID: "pizza", Name: "Pizza"},
			{ID: "burger", Name: "Burger"},
		},
		now: time.Now,
	}

	seed := []productRecord{
		{Product: models.Product{Name: "Chicken Waffle", Price: money("12.99"), CategoryID: "waffle", Description: "Fried chicken on a buttermilk waffle"}, Featured: true},
		{Product: models.Product{Name: "Belgian Waffle", Price: money("10.99"), CategoryID: "waffle"}},
		{Product: models.Product{Name: "Chocolate Waffle", Price: money("11.99"), CategoryID: "waffle"}},
		{Product: models.Product{Name: "Caesar Salad", Price: money("8.99"), CategoryID: "salad", Description: "Romaine, parmesan and croutons"}, Featured: true},
		{Product: models.Product{Name: "Greek Salad", Price: money("9.49"), CategoryID: "salad"}},
		{Product: models.Product{Name: "Garden Salad", Price: money("7.99"), CategoryID: "salad"}},
		{Product: models.Product{Name: "Margherita Pizza", Price: money("14.99"), CategoryID: "pizza"}, Featured: true},
		{Product: models.Product{Name: "Pepperoni Pizza", Price: money("16.99"), CategoryID: "pizza"}},
		{Product: models.Product{Name: "Veggie Pizza", Price: money("15.49"), CategoryID: "pizza"}},
		{Product: models.Product{Name: "Classic Burger", Price: money("13.99"), CategoryID: "burger"}},
	}
	for _, p := range seed {
		s.addLocked(p)
	}
	return s
}

func (s *Store) addLocked(p productRecord) models.Product {
	s.nextID++
	p.ID = models.ID(strconv.Itoa(s.nextID))
	s.products[p.ID] = p
	s.productIDs = append(s.productIDs, p.ID)
	return p.Product
}

// ListProducts returns the products matching f in catalog order
func (s *Store) ListProducts(f ProductFilter) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	matched := make([]models.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		p := s.products[id]
		if f.Featured && !p.Featured {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p.Product)
	}

	return paginate(matched, f.Page, f.Limit)
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	// Compare before multiplying so a huge page cannot overflow.
	if page-1 > len(items)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit < end-start {
		end = start + limit
	}
	return items[start:end]
}

// GetProduct returns a product by its ID
func (s *Store) GetProduct(id models.ID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product := p.Product
	return &product, nil
}

// Categories returns every category
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

// CreateProduct adds a product to the end of the catalog
func (s *Store) CreateProduct(in models.ProductInput) (models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	price := in.Price
	return s.addLocked(productRecord{Product: models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       &price,
	}}), nil
}

// UpdateProduct replaces a product's name, description and price
func (s *Store) UpdateProduct(id models.ID, in models.ProductInput) (models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	price := in.Price
	p.Name = in.Name
	p.Description = in.Description
	p.Price = &price
	s.products[id] = p
	return p.Product, nil
}

// Cart returns the cart lines
func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem{}, s.cart...)
}

// SetCartQuantity upserts a cart line. Quantity zero removes it.
func (s *Store) SetCartQuantity(productID models.ID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return ErrProductNotFound
	}

	for i, line := range s.cart {
		if line.ProductID != productID {
			continue
		}
		if quantity == 0 {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
		} else {
			s.cart[i].Quantity = models.Quantity(quantity)
		}
		return nil
	}

	if quantity > 0 {
		s.cart = append(s.cart, models.CartItem{
			ID:        models.ID("line-" + string(productID)),
			ProductID: productID,
			Quantity:  models.Quantity(quantity),
			Price:     p.Price,
			Name:      p.Name,
		})
	}
	return nil
}

// PlaceOrder turns the cart into an order and empties the cart
func (s *Store) PlaceOrder(req models.OrderRequest) (models.Order, error) {
	if req.FulfillmentMethod == models.FulfillmentDelivery && strings.TrimSpace(req.Customer.Address) == "" {
		return models.Order{}, ErrMissingAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(s.cart))
	for _, line := range s.cart {
		qty := line.Quantity
		items = append(items, models.OrderItem{
			ID:        line.ID,
			Name:      line.Name,
			Quantity:  &qty,
			Price:     line.Price,
			ProductID: line.ProductID,
		})
	}
	total := models.CartSubtotal(s.cart)

	order := models.Order{
		ID:        models.ID(uuid.New().String()),
		Status:    "Pending",
		Total:     &total,
		Items:     items,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	s.orders = append(s.orders, order)
	s.cart = nil
	return order, nil
}

// Orders returns orders newest first, at most limit when limit > 0
func (s *Store) Orders(limit int) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := append([]models.Order{}, s.orders...)
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders
}

// GetOrder returns an order by its ID
func (s *Store) GetOrder(id models.ID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// UpdateOrderStatus sets an order's status
func (s *Store) UpdateOrderStatus(id models.ID, status string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return s.orders[i], nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}
