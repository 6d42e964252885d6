package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/forkasbib/restopos-backend/pkg/db/models"
)

func newProductsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE productos (
		id_producto INTEGER PRIMARY KEY AUTOINCREMENT,
		id_restaurante INTEGER NOT NULL,
		nombre TEXT NOT NULL,
		descripcion TEXT,
		precio NUMERIC NOT NULL DEFAULT 0,
		categoria TEXT,
		activo BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`).Error)
	return conn
}

func TestCreateAndFindScopedByRestaurant(t *testing.T) {
	db := newProductsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := &models.Product{RestaurantID: 1, Name: "tacos", Active: true}
	require.NoError(t, repo.Create(ctx, product))
	require.NotZero(t, product.ID)

	found, err := repo.FindByID(ctx, 1, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "tacos", found.Name)

	// other tenants cannot see the row
	other, err := repo.FindByID(ctx, 2, product.ID)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestListActiveExcludesDeactivated(t *testing.T) {
	db := newProductsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"zanahoria", "arroz"} {
		require.NoError(t, repo.Create(ctx, &models.Product{RestaurantID: 1, Name: name, Active: true}))
	}
	inactive := &models.Product{RestaurantID: 1, Name: "viejo", Active: true}
	require.NoError(t, repo.Create(ctx, inactive))
	_, err := repo.Deactivate(ctx, 1, inactive.ID)
	require.NoError(t, err)

	rows, err := repo.ListActive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "arroz", rows[0].Name)
	assert.Equal(t, "zanahoria", rows[1].Name)
}

func TestDeactivateIsTenantScopedAndIdempotent(t *testing.T) {
	db := newProductsDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := &models.Product{RestaurantID: 1, Name: "tacos", Active: true}
	require.NoError(t, repo.Create(ctx, product))

	ok, err := repo.Deactivate(ctx, 2, product.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Deactivate(ctx, 1, product.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Deactivate(ctx, 1, product.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
