package service

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// API paths consumed by the storefront
const (
	productsPath      = "/api/products"
	categoriesPath    = "/api/categories"
	cartPath          = "/api/cart"
	ordersPath        = "/api/orders"
	adminOrdersPath   = "/api/admin/orders"
	adminProductsPath = "/api/admin/products"
)

func entityPath(base string, id models.ID) string {
	return base + "/" + url.PathEscape(id.String())
}

// CatalogService reads products and categories from the API
type CatalogService struct {
	client *apiclient.Client
}

// NewCatalogService creates a new catalog service
func NewCatalogService(client *apiclient.Client) *CatalogService {
	return &CatalogService{
		client: client,
	}
}

// FeaturedProducts returns the products flagged for the home page
func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	products, err := apiclient.FetchList[models.Product](ctx, s.client, productsPath, models.ProductQuery{Featured: true}.Values())
	if err != nil {
		return nil, errors.Wrap(err, "fetch featured products")
	}
	return products, nil
}

// ListProducts returns one page of the menu
func (s *CatalogService) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	products, err := apiclient.FetchList[models.Product](ctx, s.client, productsPath, q.Values())
	if err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	return products, nil
}

// GetProduct returns a product by id. A nil product with a nil error means
// the API answered with a JSON null. An empty body is a decode failure.
func (s *CatalogService) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	var product *models.Product
	if err := s.client.FetchOne(ctx, entityPath(productsPath, id), &product); err != nil {
		return nil, errors.Wrapf(err, "fetch product %s", id)
	}
	return product, nil
}

// ListCategories returns the menu categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := apiclient.FetchList[models.Category](ctx, s.client, categoriesPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetch categories")
	}
	return categories, nil
}
