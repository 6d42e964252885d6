package models

import "time"

// Branch is a restaurant location (sucursales). Active branches count
// against max_sucursales.
type Branch struct {
	ID           int64     `gorm:"column:id_sucursal;primaryKey;autoIncrement"`
	RestaurantID int64     `gorm:"column:id_restaurante;not null;index"`
	Name         string    `gorm:"column:nombre;not null"`
	Address      *string   `gorm:"column:direccion"`
	City         *string   `gorm:"column:ciudad"`
	Phone        *string   `gorm:"column:telefono"`
	Active       bool      `gorm:"column:activo;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (Branch) TableName() string {
	return "sucursales"
}
