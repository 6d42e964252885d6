package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a completed POS transaction. Each insert bumps the monthly
// transaction counter inside the same database transaction.
type Sale struct {
	ID           int64           `gorm:"column:id_venta;primaryKey;autoIncrement"`
	RestaurantID int64           `gorm:"column:id_restaurante;not null;index"`
	BranchID     *int64          `gorm:"column:id_sucursal"`
	StaffUserID  int64           `gorm:"column:id_vendedor;not null"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	PaymentType  string          `gorm:"column:tipo_pago;not null;default:'efectivo'"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName maps onto the legacy schema.
func (Sale) TableName() string {
	return "ventas"
}
