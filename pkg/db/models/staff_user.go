package models

import (
	"time"

	"github.com/forkasbib/restopos-backend/pkg/enums"
)

// StaffUser is a restaurant staff account (vendedores in the legacy
// schema). Active accounts count against max_usuarios.
type StaffUser struct {
	ID           int64           `gorm:"column:id_vendedor;primaryKey;autoIncrement"`
	RestaurantID int64           `gorm:"column:id_restaurante;not null;index"`
	Name         string          `gorm:"column:nombre;not null"`
	Username     string          `gorm:"column:username;not null;unique"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Role         enums.StaffRole `gorm:"column:rol;not null"`
	BranchID     *int64          `gorm:"column:id_sucursal"`
	Active       bool            `gorm:"column:activo;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (StaffUser) TableName() string {
	return "vendedores"
}
