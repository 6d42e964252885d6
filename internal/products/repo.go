package products

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
)

// Repository owns the productos rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID returns a product scoped to the restaurant, or (nil, nil) when
// absent.
func (r *Repository) FindByID(ctx context.Context, restaurantID, productID int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id_producto = ? AND id_restaurante = ?", productID, restaurantID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListActive returns the restaurant's active products ordered by name.
func (r *Repository) ListActive(ctx context.Context, restaurantID int64) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("id_restaurante = ? AND activo = ?", restaurantID, true).
		Order("nombre ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Deactivate soft-deletes one active product. Returns false when the
// product does not exist, belongs to another restaurant, or is already
// inactive.
func (r *Repository) Deactivate(ctx context.Context, restaurantID, productID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id_producto = ? AND id_restaurante = ? AND activo = ?", productID, restaurantID, true).
		Update("activo", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
