package models

import "time"

// ResourceUsage is one restaurant's counter row for one calendar month.
// Uniqueness on (id_restaurante, mes_medicion, año_medicion) backs the
// upsert path; id_plan is a snapshot of the subscription at first write.
type ResourceUsage struct {
	ID               int64     `gorm:"column:id_uso;primaryKey;autoIncrement"`
	RestaurantID     int64     `gorm:"column:id_restaurante;not null"`
	PlanID           *int64    `gorm:"column:id_plan"`
	MeasurementMonth int       `gorm:"column:mes_medicion;not null"`
	MeasurementYear  int       `gorm:"column:año_medicion;not null"`
	ProductsCurrent  int64     `gorm:"column:productos_actuales;not null;default:0"`
	UsersCurrent     int64     `gorm:"column:usuarios_actuales;not null;default:0"`
	BranchesCurrent  int64     `gorm:"column:sucursales_actuales;not null;default:0"`
	TransactionsMTD  int64     `gorm:"column:transacciones_mes_actual;not null;default:0"`
	StorageUsedMB    int64     `gorm:"column:almacenamiento_usado_mb;not null;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (ResourceUsage) TableName() string {
	return "uso_recursos"
}
