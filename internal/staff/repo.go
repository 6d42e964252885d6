package staff

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
)

// Repository owns the vendedores rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a staff repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a staff account row.
func (r *Repository) Create(ctx context.Context, user *models.StaffUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID returns a staff account scoped to the restaurant, or (nil, nil)
// when absent.
func (r *Repository) FindByID(ctx context.Context, restaurantID, userID int64) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.WithContext(ctx).
		Where("id_vendedor = ? AND id_restaurante = ?", userID, restaurantID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername looks an account up by its login name across tenants, or
// (nil, nil) when absent. Used by authentication.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListActive returns the restaurant's active staff ordered by name.
func (r *Repository) ListActive(ctx context.Context, restaurantID int64) ([]models.StaffUser, error) {
	var rows []models.StaffUser
	err := r.db.WithContext(ctx).
		Where("id_restaurante = ? AND activo = ?", restaurantID, true).
		Order("nombre ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Deactivate disables one active account. Returns false when the account
// does not exist, belongs to another restaurant, or is already inactive.
func (r *Repository) Deactivate(ctx context.Context, restaurantID, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.StaffUser{}).
		Where("id_vendedor = ? AND id_restaurante = ? AND activo = ?", userID, restaurantID, true).
		Update("activo", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
