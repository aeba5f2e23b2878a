package rporder

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tourshop/common/entity"
	"tourshop/internal/app/domains/entity/etorder"
	"tourshop/internal/app/domains/entity/etprimitive"
	"tourshop/internal/app/pkg/idgen"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entity.Order{}))
	return db
}

var ids = idgen.NewSnowflakeIDGenerator(7)

func newOrder(t *testing.T, owner int64, email string) *etorder.Order {
	t.Helper()
	details := etorder.NewDetails(etorder.CategoryVuelo)
	details.Flight = &etorder.FlightDetail{TravelDate: "2025-12-01", Seats: []string{"12A", "12B"}, Passengers: 2}
	order, err := etorder.NewOrder(ids.NextID(), uuid.New().String(), owner,
		etorder.Customer{Name: "Ana", Email: email},
		[]etorder.LineItem{{ProductCode: "VUE-001", Description: "Vuelo BUE-MDZ", Quantity: 2, UnitPrice: decimal.NewFromInt(85000)}},
		details,
	)
	require.NoError(t, err)
	return order
}

func TestCreateAndGetByIDOrNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	order := newOrder(t, 1, "ana@example.com")
	require.NoError(t, repo.Create(ctx, order))

	byID, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	byNumber, err := repo.GetByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)

	assert.Equal(t, byID, byNumber)
	assert.Equal(t, order.OrderNumber, byID.OrderNumber)
	assert.True(t, byID.Total.Equal(decimal.NewFromInt(170000)), "total %s", byID.Total)
	assert.Equal(t, etorder.StatusPendiente, byID.Status)
	require.NotNil(t, byID.Details)
	assert.Equal(t, []string{"12A", "12B"}, byID.Details.Flight.Seats)
	require.Len(t, byID.LineItems, 1)
	assert.Equal(t, 2, byID.LineItems[0].Quantity)
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByNumber(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateOrderNumberRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	first := newOrder(t, 1, "ana@example.com")
	require.NoError(t, repo.Create(ctx, first))

	second := newOrder(t, 1, "ana@example.com")
	second.OrderNumber = first.OrderNumber
	assert.Error(t, repo.Create(ctx, second))
}

func TestUpdateStatusPrecondition(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))
	order := newOrder(t, 1, "ana@example.com")
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, etorder.StatusPendiente, etorder.StatusVerificado))

	// 前置状态已不是 pendiente
	err := repo.UpdateStatus(ctx, order.ID, etorder.StatusPendiente, etorder.StatusAnulado)
	assert.ErrorIs(t, err, ErrStatusConflict)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, etorder.StatusVerificado, got.Status)
}

func TestUpdateStatusRaceHasSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))
	order := newOrder(t, 1, "ana@example.com")
	require.NoError(t, repo.Create(ctx, order))

	targets := []etorder.Status{etorder.StatusVerificado, etorder.StatusAnulado, etorder.StatusVerificado, etorder.StatusAnulado}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, to := range targets {
		wg.Add(1)
		go func(i int, to etorder.Status) {
			defer wg.Done()
			errs[i] = repo.UpdateStatus(ctx, order.ID, etorder.StatusPendiente, to)
		}(i, to)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, ErrStatusConflict)
	}
	assert.Equal(t, 1, winners)
}

func TestUpdateDetailsLeavesStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))
	order := newOrder(t, 1, "ana@example.com")
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, etorder.StatusPendiente, etorder.StatusVerificado))

	_, err := order.AttachReceipt(etorder.Receipt{Name: "recibo.png", URL: "http://x/receipts/a.png"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateDetails(ctx, order.ID, order.Details))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, etorder.StatusVerificado, got.Status)
	require.NotNil(t, got.Details.Receipt)
	assert.Equal(t, "recibo.png", got.Details.Receipt.Name)
	assert.Equal(t, []string{"12A", "12B"}, got.Details.Flight.Seats)

	assert.ErrorIs(t, repo.UpdateDetails(ctx, 999, order.Details), ErrNotFound)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	a1 := newOrder(t, 1, "ana@example.com")
	a2 := newOrder(t, 1, "ana@example.com")
	b1 := newOrder(t, 2, "beto@example.com")
	for _, o := range []*etorder.Order{a1, a2, b1} {
		require.NoError(t, repo.Create(ctx, o))
	}
	require.NoError(t, repo.UpdateStatus(ctx, a2.ID, etorder.StatusPendiente, etorder.StatusAnulado))

	all, total, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	pending, total, err := repo.List(ctx, ListFilter{Status: etorder.StatusPendiente})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, o := range pending {
		assert.Equal(t, etorder.StatusPendiente, o.Status)
	}

	paged, total, err := repo.List(ctx, ListFilter{Pagination: etprimitive.Pagination{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, paged, 1)

	mine, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	open, err := repo.ListByStatuses(ctx, etorder.StatusPendiente, etorder.StatusVerificado)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}
