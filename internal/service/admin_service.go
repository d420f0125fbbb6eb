package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// AdminService backs the admin pages
type AdminService struct {
	client *apiclient.Client
}

// NewAdminService creates a new admin service
func NewAdminService(client *apiclient.Client) *AdminService {
	return &AdminService{
		client: client,
	}
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": {strconv.Itoa(limit)}}
}

// ListOrders returns all orders, or the most recent limit when limit > 0
func (s *AdminService) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders, err := apiclient.FetchList[models.Order](ctx, s.client, adminOrdersPath, limitQuery(limit))
	if err != nil {
		return nil, errors.Wrap(err, "fetch admin orders")
	}
	return orders, nil
}

// UpdateOrderStatus replaces an order's status
func (s *AdminService) UpdateOrderStatus(ctx context.Context, id models.ID, status string) error {
	body := models.OrderStatusUpdate{Status: status}
	if err := s.client.Mutate(ctx, http.MethodPatch, entityPath(adminOrdersPath, id), body, nil); err != nil {
		return errors.Wrapf(err, "update status of order %s", id)
	}
	return nil
}

// ListProducts returns all products, or the first limit when limit > 0
func (s *AdminService) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	products, err := apiclient.FetchList[models.Product](ctx, s.client, adminProductsPath, limitQuery(limit))
	if err != nil {
		return nil, errors.Wrap(err, "fetch admin products")
	}
	return products, nil
}

// CreateProduct adds a product to the catalog
func (s *AdminService) CreateProduct(ctx context.Context, in models.ProductInput) error {
	if err := s.client.Mutate(ctx, http.MethodPost, adminProductsPath, in, nil); err != nil {
		return errors.Wrap(err, "create product")
	}
	return nil
}

// UpdateProduct replaces a product's name, description and price
func (s *AdminService) UpdateProduct(ctx context.Context, id models.ID, in models.ProductInput) error {
	if err := s.client.Mutate(ctx, http.MethodPut, entityPath(adminProductsPath, id), in, nil); err != nil {
		return errors.Wrapf(err, "update product %s", id)
	}
	return nil
}
