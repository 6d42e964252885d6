package branches

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
)

// Repository owns the sucursales rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a branch repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a branch row.
func (r *Repository) Create(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

// FindByID returns a branch scoped to the restaurant, or (nil, nil) when
// absent.
func (r *Repository) FindByID(ctx context.Context, restaurantID, branchID int64) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).
		Where("id_sucursal = ? AND id_restaurante = ?", branchID, restaurantID).
		First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

// ListActive returns the restaurant's active branches ordered by name.
func (r *Repository) ListActive(ctx context.Context, restaurantID int64) ([]models.Branch, error) {
	var rows []models.Branch
	err := r.db.WithContext(ctx).
		Where("id_restaurante = ? AND activo = ?", restaurantID, true).
		Order("nombre ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Deactivate closes one active branch. Returns false when the branch does
// not exist, belongs to another restaurant, or is already inactive.
func (r *Repository) Deactivate(ctx context.Context, restaurantID, branchID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Branch{}).
		Where("id_sucursal = ? AND id_restaurante = ? AND activo = ?", branchID, restaurantID, true).
		Update("activo", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
