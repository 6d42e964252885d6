package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/forkasbib/restopos-backend/pkg/db/types"
	"github.com/forkasbib/restopos-backend/pkg/enums"
)

// Plan is a commercial plan row. Limit columns use <= 0 as the unlimited
// sentinel; funcionalidades is the jsonb feature map evaluated by the
// entitlement checker.
type Plan struct {
	ID                   int64            `gorm:"column:id_plan;primaryKey;autoIncrement"`
	Name                 string           `gorm:"column:nombre;not null;unique"`
	Description          *string          `gorm:"column:descripcion"`
	MonthlyPrice         decimal.Decimal  `gorm:"column:precio_mensual;type:numeric(10,2);not null"`
	AnnualPrice          *decimal.Decimal `gorm:"column:precio_anual;type:numeric(10,2)"`
	MaxBranches          int64            `gorm:"column:max_sucursales;not null;default:0"`
	MaxUsers             int64            `gorm:"column:max_usuarios;not null;default:0"`
	MaxProducts          int64            `gorm:"column:max_productos;not null;default:0"`
	MaxTransactionsMonth int64            `gorm:"column:max_transacciones_mes;not null;default:0"`
	StorageGB            int64            `gorm:"column:almacenamiento_gb;not null;default:0"`
	Features             types.FeatureMap `gorm:"column:funcionalidades;type:jsonb"`
	Active               bool             `gorm:"column:activo;not null;default:true"`
	CreatedAt            time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps onto the legacy schema.
func (Plan) TableName() string {
	return "planes"
}

// Tier derives the hierarchy position from the plan name.
func (p *Plan) Tier() enums.PlanTier {
	return enums.PlanTierOf(p.Name)
}

// LimitFor returns the ceiling for a metered resource. Storage is stored
// in GB but metered in MB.
func (p *Plan) LimitFor(resource enums.ResourceType) int64 {
	switch resource {
	case enums.ResourceTypeProducts:
		return p.MaxProducts
	case enums.ResourceTypeUsers:
		return p.MaxUsers
	case enums.ResourceTypeBranches:
		return p.MaxBranches
	case enums.ResourceTypeTransactions:
		return p.MaxTransactionsMonth
	case enums.ResourceTypeStorage:
		return p.StorageGB * 1024
	default:
		return 0
	}
}
