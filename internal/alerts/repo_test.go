package alerts

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
	"github.com/forkasbib/restopos-backend/pkg/enums"
	"github.com/forkasbib/restopos-backend/pkg/pagination"
)

func newAlertsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE alertas_limites (
		id_alerta INTEGER PRIMARY KEY AUTOINCREMENT,
		id_restaurante INTEGER NOT NULL,
		tipo_alerta TEXT NOT NULL,
		recurso_afectado TEXT NOT NULL,
		uso_actual INTEGER NOT NULL,
		limite_maximo INTEGER NOT NULL,
		severidad TEXT NOT NULL,
		mensaje TEXT NOT NULL,
		estado TEXT NOT NULL DEFAULT 'pendiente',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`).Error)
	require.NoError(t, conn.Exec(`CREATE UNIQUE INDEX uq_alertas_pendientes
		ON alertas_limites (id_restaurante, tipo_alerta, recurso_afectado)
		WHERE estado = 'pendiente'`).Error)

	return conn
}

func pendingAlert(restaurantID int64, resource enums.ResourceType, current int64) *models.LimitAlert {
	return &models.LimitAlert{
		RestaurantID: restaurantID,
		AlertType:    enums.AlertTypeLimitWarning,
		Resource:     resource,
		CurrentUsage: current,
		MaxLimit:     100,
		Severity:     enums.AlertSeverityWarning,
		Message:      "usage approaching limit",
		Status:       enums.AlertStatusPending,
	}
}

func TestUpsertRefreshesOpenAlert(t *testing.T) {
	db := newAlertsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, pendingAlert(1, enums.ResourceTypeProducts, 80)))

	refreshed := pendingAlert(1, enums.ResourceTypeProducts, 85)
	refreshed.Message = "usage still climbing"
	require.NoError(t, repo.Upsert(ctx, refreshed))

	var rows []models.LimitAlert
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(85), rows[0].CurrentUsage)
	assert.Equal(t, "usage still climbing", rows[0].Message)
}

func TestUpsertResolvedAlertDoesNotBlockNewOne(t *testing.T) {
	db := newAlertsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, pendingAlert(1, enums.ResourceTypeProducts, 80)))

	var first models.LimitAlert
	require.NoError(t, db.First(&first).Error)
	resolved, err := repo.Resolve(ctx, first.ID, 1)
	require.NoError(t, err)
	require.True(t, resolved)

	require.NoError(t, repo.Upsert(ctx, pendingAlert(1, enums.ResourceTypeProducts, 82)))

	var rows []models.LimitAlert
	require.NoError(t, db.Order("id_alerta").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, enums.AlertStatusResolved, rows[0].Status)
	assert.Equal(t, enums.AlertStatusPending, rows[1].Status)
}

func TestUpsertSeparateResourcesCoexist(t *testing.T) {
	db := newAlertsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, pendingAlert(1, enums.ResourceTypeProducts, 80)))
	require.NoError(t, repo.Upsert(ctx, pendingAlert(1, enums.ResourceTypeUsers, 80)))
	require.NoError(t, repo.Upsert(ctx, pendingAlert(2, enums.ResourceTypeProducts, 80)))

	var count int64
	require.NoError(t, db.Model(&models.LimitAlert{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestResolveIsTenantScoped(t *testing.T) {
	db := newAlertsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, pendingAlert(1, enums.ResourceTypeProducts, 80)))
	var alert models.LimitAlert
	require.NoError(t, db.First(&alert).Error)

	resolved, err := repo.Resolve(ctx, alert.ID, 99)
	require.NoError(t, err)
	assert.False(t, resolved)

	resolved, err = repo.Resolve(ctx, alert.ID, 1)
	require.NoError(t, err)
	assert.True(t, resolved)

	// resolving twice is a no-op
	resolved, err = repo.Resolve(ctx, alert.ID, 1)
	require.NoError(t, err)
	assert.False(t, resolved)
}

func TestListPendingPaginatesNewestFirst(t *testing.T) {
	db := newAlertsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	resources := []enums.ResourceType{
		enums.ResourceTypeProducts,
		enums.ResourceTypeUsers,
		enums.ResourceTypeBranches,
	}
	for i, resource := range resources {
		require.NoError(t, db.Exec(
			`INSERT INTO alertas_limites (id_restaurante, tipo_alerta, recurso_afectado, uso_actual, limite_maximo, severidad, mensaje, estado, created_at, updated_at)
			 VALUES (1, 'limit_warning', ?, 80, 100, 'warning', 'msg', 'pendiente', ?, ?)`,
			resource, base.Add(time.Duration(i)*time.Minute), base).Error)
	}
	// resolved rows are invisible to the pending listing
	require.NoError(t, db.Exec(
		`INSERT INTO alertas_limites (id_restaurante, tipo_alerta, recurso_afectado, uso_actual, limite_maximo, severidad, mensaje, estado, created_at, updated_at)
		 VALUES (1, 'limit_exceeded', 'transacciones', 120, 100, 'critical', 'msg', 'resuelta', ?, ?)`,
		base.Add(time.Hour), base).Error)

	page, next, err := repo.ListPending(ctx, 1, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotEmpty(t, next)
	assert.Equal(t, enums.ResourceTypeBranches, page[0].Resource)
	assert.Equal(t, enums.ResourceTypeUsers, page[1].Resource)

	rest, next, err := repo.ListPending(ctx, 1, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Empty(t, next)
	assert.Equal(t, enums.ResourceTypeProducts, rest[0].Resource)
}

func TestDeleteResolvedBefore(t *testing.T) {
	db := newAlertsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	insert := func(status string, updatedAt time.Time) {
		require.NoError(t, db.Exec(
			`INSERT INTO alertas_limites (id_restaurante, tipo_alerta, recurso_afectado, uso_actual, limite_maximo, severidad, mensaje, estado, created_at, updated_at)
			 VALUES (1, 'limit_warning', ?, 80, 100, 'warning', 'msg', ?, ?, ?)`,
			fmt.Sprintf("res-%s-%d", status, updatedAt.Unix()), status, updatedAt, updatedAt).Error)
	}
	insert("resuelta", old)
	insert("resuelta", recent)
	insert("pendiente", old)

	deleted, err := repo.DeleteResolvedBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, db.Model(&models.LimitAlert{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
