package rpproduct

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tourshop/common/entity"
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etproduct"
)

func TestProductUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entity.Product{}))
	repo := NewProductRepository(db)

	p := &etproduct.Product{
		Code:        "HOT-001",
		Description: "Hotel Mendoza 3 noches",
		Category:    etorder.CategoryHotel,
		Price:       decimal.RequireFromString("120000.50"),
		Active:      true,
	}
	require.NoError(t, repo.Upsert(ctx, p))

	// 再次写入同编码：下架并改价
	p.Active = false
	p.Price = decimal.NewFromInt(99000)
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.GetByCode(ctx, "HOT-001")
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(99000)))
	assert.Equal(t, etorder.CategoryHotel, got.Category)

	_, err = repo.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}
