package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/forkasbib/restopos-backend/api/middleware"
	"github.com/forkasbib/restopos-backend/api/responses"
	"github.com/forkasbib/restopos-backend/api/validators"
	salesvc "github.com/forkasbib/restopos-backend/internal/sales"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/logger"
	"github.com/forkasbib/restopos-backend/pkg/pagination"
)

type saleView struct {
	ID          int64           `json:"id"`
	BranchID    *int64          `json:"branch_id,omitempty"`
	StaffUserID int64           `json:"staff_user_id"`
	Total       decimal.Decimal `json:"total"`
	PaymentType string          `json:"payment_type"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newSaleView(sale *models.Sale) saleView {
	return saleView{
		ID:          sale.ID,
		BranchID:    sale.BranchID,
		StaffUserID: sale.StaffUserID,
		Total:       sale.Total,
		PaymentType: sale.PaymentType,
		CreatedAt:   sale.CreatedAt,
	}
}

type createSaleRequest struct {
	Total       string `json:"total" validate:"required"`
	PaymentType string `json:"payment_type,omitempty" validate:"omitempty,max=30"`
	BranchID    *int64 `json:"branch_id,omitempty" validate:"omitempty,min=1"`
}

// CreateSale records a POS transaction. The monthly transaction ceiling
// is enforced by route middleware; the counter increment itself commits
// with the sale inside the service.
func CreateSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		staffUserID := middleware.UserIDFromContext(r.Context())
		if staffUserID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload createSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		total, err := decimal.NewFromString(payload.Total)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid total"))
			return
		}

		branchID := payload.BranchID
		if branchID == nil {
			branchID = middleware.BranchIDFromContext(r.Context())
		}

		sale, err := svc.CreateSale(r.Context(), restaurantID, salesvc.CreateSaleInput{
			BranchID:    branchID,
			StaffUserID: staffUserID,
			Total:       total,
			PaymentType: payload.PaymentType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newSaleView(sale))
	}
}

// ListSales returns the tenant's most recent transactions.
func ListSales(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sales, err := svc.ListSales(r.Context(), restaurantID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]saleView, 0, len(sales))
		for i := range sales {
			views = append(views, newSaleView(&sales[i]))
		}
		responses.WriteSuccess(w, views)
	}
}
