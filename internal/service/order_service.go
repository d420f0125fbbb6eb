package service

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// OrderService places orders and reads the shopper's order history
type OrderService struct {
	client *apiclient.Client
}

// NewOrderService creates a new order service
func NewOrderService(client *apiclient.Client) *OrderService {
	return &OrderService{
		client: client,
	}
}

// PlaceOrder submits the checkout and returns the new order id, which is
// empty when the API did not report one.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (models.ID, error) {
	var created models.OrderCreated
	if err := s.client.Mutate(ctx, http.MethodPost, ordersPath, req, &created); err != nil {
		return "", errors.Wrap(err, "place order")
	}
	return created.Ref(), nil
}

// ListOrders returns the signed-in shopper's orders. The error matches
// apiclient.ErrUnauthorized when nobody is signed in.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := apiclient.FetchList[models.Order](ctx, s.client, ordersPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetch orders")
	}
	return orders, nil
}

// GetOrder returns an order by id. A nil order with a nil error means the
// API answered with a JSON null. An empty body is a decode failure.
func (s *OrderService) GetOrder(ctx context.Context, id models.ID) (*models.Order, error) {
	var order *models.Order
	if err := s.client.FetchOne(ctx, entityPath(ordersPath, id), &order); err != nil {
		return nil, errors.Wrapf(err, "fetch order %s", id)
	}
	return order, nil
}
