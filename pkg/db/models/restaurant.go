package models

import "time"

// Restaurant is the tenant root. Every metered resource and every
// entitlement decision hangs off id_restaurante.
type Restaurant struct {
	ID        int64     `gorm:"column:id_restaurante;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:nombre;not null"`
	Address   *string   `gorm:"column:direccion"`
	City      *string   `gorm:"column:ciudad"`
	Phone     *string   `gorm:"column:telefono"`
	Active    bool      `gorm:"column:activo;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (Restaurant) TableName() string {
	return "restaurantes"
}
