package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/forkasbib/restopos-backend/api/responses"
	"github.com/forkasbib/restopos-backend/api/validators"
	productsvc "github.com/forkasbib/restopos-backend/internal/products"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type productView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    *string         `json:"category,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newProductView(product *models.Product) productView {
	return productView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
	}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price" validate:"required"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// CreateProduct registers a menu item. The product ceiling is enforced by
// route middleware before this handler runs.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		product, err := svc.CreateProduct(r.Context(), restaurantID, productsvc.CreateProductInput{
			Name:        validators.SanitizeString(payload.Name, 200),
			Description: payload.Description,
			Price:       price,
			Category:    payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newProductView(product))
	}
}

// ListProducts returns the tenant's active menu items.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		products, err := svc.ListProducts(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]productView, 0, len(products))
		for i := range products {
			views = append(views, newProductView(&products[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// GetProduct returns a single menu item.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		productID, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), restaurantID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductView(product))
	}
}

// DeactivateProduct disables a menu item, freeing a slot against the
// plan's product ceiling.
func DeactivateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		productID, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateProduct(r.Context(), restaurantID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
