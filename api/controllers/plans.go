package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/forkasbib/restopos-backend/api/responses"
	plansvc "github.com/forkasbib/restopos-backend/internal/plans"
	"github.com/forkasbib/restopos-backend/internal/usage"
	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/db/types"
	"github.com/forkasbib/restopos-backend/pkg/logger"
)

type planView struct {
	ID                   int64            `json:"id"`
	Name                 string           `json:"name"`
	Description          *string          `json:"description,omitempty"`
	Tier                 string           `json:"tier"`
	MonthlyPrice         decimal.Decimal  `json:"monthly_price"`
	AnnualPrice          *decimal.Decimal `json:"annual_price,omitempty"`
	MaxBranches          int64            `json:"max_branches"`
	MaxUsers             int64            `json:"max_users"`
	MaxProducts          int64            `json:"max_products"`
	MaxTransactionsMonth int64            `json:"max_transactions_month"`
	StorageGB            int64            `json:"storage_gb"`
	Features             types.FeatureMap `json:"features,omitempty"`
}

func newPlanView(plan *models.Plan) planView {
	return planView{
		ID:                   plan.ID,
		Name:                 plan.Name,
		Description:          plan.Description,
		Tier:                 string(plan.Tier()),
		MonthlyPrice:         plan.MonthlyPrice,
		AnnualPrice:          plan.AnnualPrice,
		MaxBranches:          plan.MaxBranches,
		MaxUsers:             plan.MaxUsers,
		MaxProducts:          plan.MaxProducts,
		MaxTransactionsMonth: plan.MaxTransactionsMonth,
		StorageGB:            plan.StorageGB,
		Features:             plan.Features,
	}
}

type subscriptionView struct {
	ID          int64      `json:"id"`
	PlanID      int64      `json:"plan_id"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	RenewalDate *time.Time `json:"renewal_date,omitempty"`
	AutoRenew   bool       `json:"auto_renew"`
}

func newSubscriptionView(sub *models.Subscription) subscriptionView {
	return subscriptionView{
		ID:          sub.ID,
		PlanID:      sub.PlanID,
		Status:      string(sub.Status),
		StartDate:   sub.StartDate,
		EndDate:     sub.EndDate,
		RenewalDate: sub.RenewalDate,
		AutoRenew:   sub.AutoRenew,
	}
}

type planInfoView struct {
	Plan         planView                 `json:"plan"`
	Subscription subscriptionView         `json:"subscription"`
	Usage        usage.Snapshot           `json:"usage"`
	Resources    []plansvc.ResourceStatus `json:"resources"`
}

// CurrentPlan returns the tenant's resolved plan, subscription, and usage
// against every ceiling.
func CurrentPlan(svc plansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		info, err := svc.GetPlanInfo(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, planInfoView{
			Plan:         newPlanView(&info.Plan),
			Subscription: newSubscriptionView(&info.Subscription),
			Usage:        info.Usage,
			Resources:    info.Resources,
		})
	}
}

// CurrentUsage returns the tenant's usage counters for the current
// metering period without resolving the plan.
func CurrentUsage(svc usage.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, ok := tenantFromRequest(r, logg, w)
		if !ok {
			return
		}

		snapshot, err := svc.CurrentUsage(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// PlanCatalog lists the active commercial plans, cheapest first.
func PlanCatalog(svc plansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plans, err := svc.ListPlans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]planView, 0, len(plans))
		for i := range plans {
			views = append(views, newPlanView(&plans[i]))
		}
		responses.WriteSuccess(w, views)
	}
}
