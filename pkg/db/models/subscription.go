package models

import (
	"time"

	"github.com/forkasbib/restopos-backend/pkg/enums"
)

// Subscription binds a restaurant to a plan. A restaurant has at most one
// row with estado='activa'; the resolver additionally requires fecha_fin to
// be null or in the future.
type Subscription struct {
	ID           int64                    `gorm:"column:id_suscripcion;primaryKey;autoIncrement"`
	RestaurantID int64                    `gorm:"column:id_restaurante;not null;index"`
	PlanID       int64                    `gorm:"column:id_plan;not null"`
	Status       enums.SubscriptionStatus `gorm:"column:estado;not null;default:'pendiente'"`
	StartDate    time.Time                `gorm:"column:fecha_inicio;type:date;not null"`
	EndDate      *time.Time               `gorm:"column:fecha_fin;type:date"`
	RenewalDate  *time.Time               `gorm:"column:fecha_renovacion;type:date"`
	AutoRenew    bool                     `gorm:"column:auto_renovacion;not null;default:true"`
	CreatedAt    time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (Subscription) TableName() string {
	return "suscripciones"
}
