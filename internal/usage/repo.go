package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository owns the uso_recursos counter rows. All mutations are
// single-statement upserts or updates so concurrent writers serialize on
// the period's unique index instead of racing a read-modify-write.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a usage repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// activePlanSubquery snapshots id_plan from the restaurant's newest active
// subscription when the period row is first created.
const activePlanSubquery = `(SELECT id_plan FROM suscripciones WHERE id_restaurante = ? AND estado = 'activa' ORDER BY created_at DESC LIMIT 1)`

// Increment adds amount to one counter of the period row, creating the
// row when absent.
func (r *Repository) Increment(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64, period Period) error {
	column := resource.CounterColumn()
	if column == "" {
		return fmt.Errorf("resource %q has no counter column", resource)
	}

	query := fmt.Sprintf(`
INSERT INTO uso_recursos (id_restaurante, id_plan, mes_medicion, año_medicion, %[1]s, created_at, updated_at)
VALUES (?, %[2]s, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (id_restaurante, mes_medicion, año_medicion) DO UPDATE SET
    %[1]s = uso_recursos.%[1]s + EXCLUDED.%[1]s,
    updated_at = CURRENT_TIMESTAMP`, column, activePlanSubquery)

	return r.db.WithContext(ctx).
		Exec(query, restaurantID, restaurantID, period.Month, period.Year, amount).Error
}

// Decrement subtracts amount from one counter of the period row, flooring
// at zero. A first-touch decrement creates the row at zero so the period
// still gets its id_plan snapshot.
func (r *Repository) Decrement(ctx context.Context, restaurantID int64, resource enums.ResourceType, amount int64, period Period) error {
	column := resource.CounterColumn()
	if column == "" {
		return fmt.Errorf("resource %q has no counter column", resource)
	}

	query := fmt.Sprintf(`
INSERT INTO uso_recursos (id_restaurante, id_plan, mes_medicion, año_medicion, %[1]s, created_at, updated_at)
VALUES (?, %[2]s, ?, ?, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (id_restaurante, mes_medicion, año_medicion) DO UPDATE SET
    %[1]s = CASE WHEN uso_recursos.%[1]s - ? > 0 THEN uso_recursos.%[1]s - ? ELSE 0 END,
    updated_at = CURRENT_TIMESTAMP`, column, activePlanSubquery)

	return r.db.WithContext(ctx).
		Exec(query, restaurantID, restaurantID, period.Month, period.Year, amount, amount).Error
}

// Overwrite sets one counter of the period row to an absolute value,
// creating the row when absent.
func (r *Repository) Overwrite(ctx context.Context, restaurantID int64, resource enums.ResourceType, value int64, period Period) error {
	column := resource.CounterColumn()
	if column == "" {
		return fmt.Errorf("resource %q has no counter column", resource)
	}
	if value < 0 {
		value = 0
	}

	query := fmt.Sprintf(`
INSERT INTO uso_recursos (id_restaurante, id_plan, mes_medicion, año_medicion, %[1]s, created_at, updated_at)
VALUES (?, %[2]s, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (id_restaurante, mes_medicion, año_medicion) DO UPDATE SET
    %[1]s = EXCLUDED.%[1]s,
    updated_at = CURRENT_TIMESTAMP`, column, activePlanSubquery)

	return r.db.WithContext(ctx).
		Exec(query, restaurantID, restaurantID, period.Month, period.Year, value).Error
}

// Snapshot reads the period row. A missing row yields a zero snapshot,
// never an insert.
func (r *Repository) Snapshot(ctx context.Context, restaurantID int64, period Period) (Snapshot, error) {
	var row models.ResourceUsage
	err := r.db.WithContext(ctx).
		Where("id_restaurante = ? AND mes_medicion = ? AND año_medicion = ?", restaurantID, period.Month, period.Year).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}

	return Snapshot{
		Products:     row.ProductsCurrent,
		Users:        row.UsersCurrent,
		Branches:     row.BranchesCurrent,
		Transactions: row.TransactionsMTD,
		StorageMB:    row.StorageUsedMB,
	}, nil
}

// CountActive tallies activo=true rows in the source table backing a
// recountable resource.
func (r *Repository) CountActive(ctx context.Context, restaurantID int64, resource enums.ResourceType) (int64, error) {
	var model any
	switch resource {
	case enums.ResourceTypeProducts:
		model = &models.Product{}
	case enums.ResourceTypeUsers:
		model = &models.StaffUser{}
	case enums.ResourceTypeBranches:
		model = &models.Branch{}
	default:
		return 0, fmt.Errorf("resource %q cannot be recounted from a source table", resource)
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("id_restaurante = ? AND activo = ?", restaurantID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
