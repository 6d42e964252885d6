package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forkasbib/restopos-backend/api/middleware"
	"github.com/forkasbib/restopos-backend/api/responses"
	"github.com/forkasbib/restopos-backend/api/validators"
	staffsvc "github.com/forkasbib/restopos-backend/internal/staff"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	pkgerrors "github.com/forkasbib/restopos-backend/pkg/errors"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type staffView struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	BranchID     *int64    `json:"branch_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func newStaffView(user *models.StaffUser) staffView {
	return staffView{
		ID:           user.ID,
		RestaurantID: user.RestaurantID,
		Name:         user.Name,
		Username:     user.Username,
		Role:         string(user.Role),
		BranchID:     user.BranchID,
		Active:       user.Active,
		CreatedAt:    user.CreatedAt,
	}
}

type createStaffRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required"`
	BranchID *int64 `json:"branch_id,omitempty" validate:"omitempty,min=1"`
}

type createStaffResponse struct {
	User         staffView `json:"user"`
	TempPassword string    `json:"temp_password,omitempty"`
}

func tenantFromRequest(r *http.Request, logg *logger.Logger, w http.ResponseWriter) (int64, bool) {
	restaurantID := middleware.RestaurantIDFromContext(r.Context())
	if restaurantID <= 0 {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "restaurant context missing"))
		return 0, false
	}
	return restaurantID, true
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid path parameter").WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// CreateStaff registers a staff account for the tenant.
func CreateStaff(svc staffsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		var payload createStaffRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseStaffRole(strings.TrimSpace(payload.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		created, err := svc.CreateStaff(r.Context(), restaurantID, staffsvc.CreateStaffInput{
			Name:     validators.SanitizeString(payload.Name, 150),
			Username: validators.SanitizeString(payload.Username, 60),
			Password: payload.Password,
			Role:     role,
			BranchID: payload.BranchID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createStaffResponse{
			User:         newStaffView(created.User),
			TempPassword: created.TempPassword,
		})
	}
}

// ListStaff returns the tenant's active staff accounts.
func ListStaff(svc staffsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		users, err := svc.ListStaff(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]staffView, 0, len(users))
		for i := range users {
			views = append(views, newStaffView(&users[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// DeactivateStaff disables an account, freeing a seat against the plan's
// user ceiling.
func DeactivateStaff(svc staffsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		userID, err := pathID(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateStaff(r.Context(), restaurantID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
