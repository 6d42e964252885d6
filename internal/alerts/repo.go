package alerts

import (
	"context"
	"time"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository owns the alertas_limites rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an alert repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Upsert inserts a pending alert or refreshes the existing open one. The
// conflict target is the partial unique index over
// (id_restaurante, tipo_alerta, recurso_afectado) WHERE estado='pendiente',
// so resolved alerts never block a new occurrence.
func (r *Repository) Upsert(ctx context.Context, alert *models.LimitAlert) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "id_restaurante"},
				{Name: "tipo_alerta"},
				{Name: "recurso_afectado"},
			},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Name: "estado"}, Value: "pendiente"},
			}},
			DoUpdates: clause.AssignmentColumns([]string{
				"uso_actual", "limite_maximo", "severidad", "mensaje", "updated_at",
			}),
		}).
		Create(alert).Error
}

// ListPending returns open alerts for a restaurant, newest first, using
// cursor pagination. The second return value is the next cursor, empty on
// the last page.
func (r *Repository) ListPending(ctx context.Context, restaurantID int64, params pagination.Params) ([]models.LimitAlert, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Where("id_restaurante = ?", restaurantID).
		Where("estado = ?", "pendiente")

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id_alerta < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.LimitAlert
	err = query.
		Order("created_at DESC").
		Order("id_alerta DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// Resolve marks one pending alert resolved. Returns false when the alert
// does not exist, belongs to another restaurant, or is already resolved.
func (r *Repository) Resolve(ctx context.Context, alertID, restaurantID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LimitAlert{}).
		Where("id_alerta = ? AND id_restaurante = ? AND estado = ?", alertID, restaurantID, "pendiente").
		Updates(map[string]any{
			"estado":     "resuelta",
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteResolvedBefore purges resolved alerts last touched before the
// cutoff. Used by the retention sweep.
func (r *Repository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("estado = ? AND updated_at < ?", "resuelta", cutoff).
		Delete(&models.LimitAlert{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
