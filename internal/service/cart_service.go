package service

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// CartService reads and updates the shopper's cart
type CartService struct {
	client *apiclient.Client
}

// NewCartService creates a new cart service
func NewCartService(client *apiclient.Client) *CartService {
	return &CartService{
		client: client,
	}
}

// GetCart returns the cart lines
func (s *CartService) GetCart(ctx context.Context) ([]models.CartItem, error) {
	items, err := apiclient.FetchList[models.CartItem](ctx, s.client, cartPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetch cart")
	}
	return items, nil
}

// SetQuantity sets how many of a product are in the cart. Quantity zero
// removes the line.
func (s *CartService) SetQuantity(ctx context.Context, productID models.ID, quantity int) error {
	body := models.CartUpdate{ProductID: productID, Quantity: quantity}
	if err := s.client.Mutate(ctx, http.MethodPost, cartPath, body, nil); err != nil {
		return errors.Wrapf(err, "set cart quantity for product %s", productID)
	}
	return nil
}
