package controllers

import (
	"net/http"
	"time"

	"github.com/forkasbib/restopos-backend/api/responses"
	"github.com/forkasbib/restopos-backend/api/validators"
	branchsvc "github.com/forkasbib/restopos-backend/internal/branches"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type branchView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func newBranchView(branch *models.Branch) branchView {
	return branchView{
		ID:        branch.ID,
		Name:      branch.Name,
		Address:   branch.Address,
		City:      branch.City,
		Phone:     branch.Phone,
		Active:    branch.Active,
		CreatedAt: branch.CreatedAt,
	}
}

type createBranchRequest struct {
	Name    string  `json:"name" validate:"required,max=150"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=250"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// CreateBranch registers a location. The branch ceiling is enforced by
// route middleware before this handler runs.
func CreateBranch(svc branchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		var payload createBranchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		branch, err := svc.CreateBranch(r.Context(), restaurantID, branchsvc.CreateBranchInput{
			Name:    validators.SanitizeString(payload.Name, 150),
			Address: payload.Address,
			City:    payload.City,
			Phone:   payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newBranchView(branch))
	}
}

// ListBranches returns the tenant's active locations.
func ListBranches(svc branchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		branches, err := svc.ListBranches(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]branchView, 0, len(branches))
		for i := range branches {
			views = append(views, newBranchView(&branches[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// DeactivateBranch disables a location, freeing a slot against the plan's
// branch ceiling.
func DeactivateBranch(svc branchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		branchID, err := pathID(r, "branchID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateBranch(r.Context(), restaurantID, branchID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
