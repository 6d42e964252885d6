package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
)

type productsRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, restaurantID, productID int64) (*models.Product, error)
	ListActive(ctx context.Context, restaurantID int64) ([]models.Product, error)
	Deactivate(ctx context.Context, restaurantID, productID int64) (bool, error)
}

// CreateProductInput is the payload for registering a menu item.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Category    *string
}

// Service manages menu items. Admission against the product ceiling is
// the request layer's job; this service only owns the rows.
type Service interface {
	CreateProduct(ctx context.Context, restaurantID int64, input CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, restaurantID, productID int64) (*models.Product, error)
	ListProducts(ctx context.Context, restaurantID int64) ([]models.Product, error)
	DeactivateProduct(ctx context.Context, restaurantID, productID int64) error
}

type service struct {
	repo productsRepository
}

// NewService builds the product service.
func NewService(repo productsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, restaurantID int64, input CreateProductInput) (*models.Product, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	product := &models.Product{
		RestaurantID: restaurantID,
		Name:         name,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		Active:       true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) GetProduct(ctx context.Context, restaurantID, productID int64) (*models.Product, error) {
	if restaurantID <= 0 || productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and product id are required")
	}

	product, err := s.repo.FindByID(ctx, restaurantID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, restaurantID int64) ([]models.Product, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	rows, err := s.repo.ListActive(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func (s *service) DeactivateProduct(ctx context.Context, restaurantID, productID int64) error {
	if restaurantID <= 0 || productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id and product id are required")
	}

	deactivated, err := s.repo.Deactivate(ctx, restaurantID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}
	if !deactivated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "active product not found")
	}
	return nil
}
