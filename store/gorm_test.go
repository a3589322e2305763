package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"CafeBackend/models"
)

func newTestGorm(t *testing.T) *Gorm {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	st, err := NewGorm(db)
	require.NoError(t, err)
	return st
}

func TestGormLoadNotFound(t *testing.T) {
	st := newTestGorm(t)

	_, err := st.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	st := newTestGorm(t)

	record := models.NewRecord()
	record.Products = append(record.Products, models.Product{
		ID:       101,
		Name:     "Latte",
		Category: models.CategoryCoffee,
	})
	record.Theme = models.Theme{SiteName: "Café Aroma"}
	require.NoError(t, st.Save(ctx, record))
	assert.Equal(t, int64(1), record.Version)

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, "Latte", loaded.Products[0].Name)
	assert.Equal(t, "Café Aroma", loaded.Theme.SiteName)
	assert.Equal(t, int64(1), loaded.Version)
}

func TestGormStaleVersionRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestGorm(t)
	require.NoError(t, st.Save(ctx, models.NewRecord()))

	first, err := st.Load(ctx)
	require.NoError(t, err)
	second, err := st.Load(ctx)
	require.NoError(t, err)

	first.Orders = append(first.Orders, models.Order{ID: 1})
	require.NoError(t, st.Save(ctx, first))

	second.Orders = append(second.Orders, models.Order{ID: 2})
	assert.ErrorIs(t, st.Save(ctx, second), ErrStale)
}

func TestGormFirstWriteRequiresZeroVersion(t *testing.T) {
	ctx := context.Background()
	st := newTestGorm(t)

	record := models.NewRecord()
	record.Version = 3
	assert.ErrorIs(t, st.Save(ctx, record), ErrStale)
}
