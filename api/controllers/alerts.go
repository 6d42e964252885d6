package controllers

import (
	"net/http"
	"time"

	"github.com/forkasbib/restopos-backend/api/responses"
	"github.com/forkasbib/restopos-backend/api/validators"
	alertsvc "github.com/forkasbib/restopos-backend/internal/alerts"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/logger"
	"github.com/forkasbib/restopos-backend/pkg/pagination"
)

type alertView struct {
	ID           int64     `json:"id"`
	AlertType    string    `json:"alert_type"`
	Resource     string    `json:"resource"`
	CurrentUsage int64     `json:"current_usage"`
	MaxLimit     int64     `json:"max_limit"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func newAlertView(alert *models.LimitAlert) alertView {
	return alertView{
		ID:           alert.ID,
		AlertType:    string(alert.AlertType),
		Resource:     string(alert.Resource),
		CurrentUsage: alert.CurrentUsage,
		MaxLimit:     alert.MaxLimit,
		Severity:     string(alert.Severity),
		Message:      alert.Message,
		Status:       string(alert.Status),
		CreatedAt:    alert.CreatedAt,
	}
}

type alertListResponse struct {
	Alerts     []alertView `json:"alerts"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// ListAlerts returns the tenant's pending limit alerts, newest first.
func ListAlerts(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		alerts, nextCursor, err := svc.ActiveAlerts(r.Context(), restaurantID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]alertView, 0, len(alerts))
		for i := range alerts {
			views = append(views, newAlertView(&alerts[i]))
		}
		responses.WriteSuccess(w, alertListResponse{Alerts: views, NextCursor: nextCursor})
	}
}

// ResolveAlert marks a pending alert as handled.
func ResolveAlert(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		alertID, err := pathID(r, "alertID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResolveAlert(r.Context(), restaurantID, alertID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "resolved"})
	}
}
