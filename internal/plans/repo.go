package plans

import (
	"context"
	"errors"
	"time"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	"gorm.io/gorm"
)

// ActivePlan pairs the resolved subscription with its plan row.
type ActivePlan struct {
	Plan         models.Plan
	Subscription models.Subscription
}

// Repository exposes plan and subscription persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a plan repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ActivePlan resolves the newest active, unexpired subscription for the
// restaurant together with its plan. Returns (nil, nil) when the
// restaurant has no such subscription.
func (r *Repository) ActivePlan(ctx context.Context, restaurantID int64) (*ActivePlan, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("id_restaurante = ?", restaurantID).
		Where("estado = ?", enums.SubscriptionStatusActive).
		Where("fecha_fin IS NULL OR fecha_fin >= ?", todayDate()).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id_plan = ?", sub.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ActivePlan{Plan: plan, Subscription: sub}, nil
}

// FindPlanByID returns a plan row, or (nil, nil) when absent.
func (r *Repository) FindPlanByID(ctx context.Context, planID int64) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.WithContext(ctx).First(&plan, "id_plan = ?", planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// ListPlans returns plans ordered by monthly price ascending.
func (r *Repository) ListPlans(ctx context.Context, onlyActive bool) ([]models.Plan, error) {
	query := r.db.WithContext(ctx).Model(&models.Plan{})
	if onlyActive {
		query = query.Where("activo = ?", true)
	}

	var rows []models.Plan
	if err := query.Order("precio_mensual ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ActiveRestaurantIDs lists every restaurant holding an active
// subscription, for batch maintenance sweeps.
func (r *Repository) ActiveRestaurantIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("estado = ?", enums.SubscriptionStatusActive).
		Distinct().
		Pluck("id_restaurante", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// todayDate truncates now to a date so DATE columns compare cleanly across
// postgres and sqlite.
func todayDate() string {
	return time.Now().UTC().Format("2006-01-02")
}
