package sales

import (
	"context"

	"gorm.io/gorm"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
)

// Repository owns the ventas rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a sale row.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// ListRecent returns the restaurant's newest sales, capped at limit.
func (r *Repository) ListRecent(ctx context.Context, restaurantID int64, limit int) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.db.WithContext(ctx).
		Where("id_restaurante = ?", restaurantID).
		Order("created_at DESC").
		Order("id_venta DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
