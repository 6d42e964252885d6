package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a menu item. Only activo=true rows count against the plan's
// product ceiling; deactivation is the delete path.
type Product struct {
	ID           int64           `gorm:"column:id_producto;primaryKey;autoIncrement"`
	RestaurantID int64           `gorm:"column:id_restaurante;not null;index"`
	Name         string          `gorm:"column:nombre;not null"`
	Description  *string         `gorm:"column:descripcion"`
	Price        decimal.Decimal `gorm:"column:precio;type:numeric(10,2);not null"`
	Category     *string         `gorm:"column:categoria"`
	Active       bool            `gorm:"column:activo;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (Product) TableName() string {
	return "productos"
}
