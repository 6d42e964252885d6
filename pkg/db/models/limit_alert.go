package models

import (
	"time"

	"github.com/forkasbib/restopos-backend/pkg/enums"
)

// LimitAlert is a persisted plan-limit notification. A partial unique
// index on (id_restaurante, tipo_alerta, recurso_afectado) scoped to
// estado='pendiente' deduplicates repeated evaluations: re-triggering
// refreshes the open row instead of inserting a new one.
type LimitAlert struct {
	ID           int64               `gorm:"column:id_alerta;primaryKey;autoIncrement"`
	RestaurantID int64               `gorm:"column:id_restaurante;not null;index"`
	AlertType    enums.AlertType     `gorm:"column:tipo_alerta;not null"`
	Resource     enums.ResourceType  `gorm:"column:recurso_afectado;not null"`
	CurrentUsage int64               `gorm:"column:uso_actual;not null"`
	MaxLimit     int64               `gorm:"column:limite_maximo;not null"`
	Severity     enums.AlertSeverity `gorm:"column:severidad;not null"`
	Message      string              `gorm:"column:mensaje;not null"`
	Status       enums.AlertStatus   `gorm:"column:estado;not null;default:'pendiente'"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (LimitAlert) TableName() string {
	return "alertas_limites"
}
