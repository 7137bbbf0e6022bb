package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// newTestDB opens a private in-memory SQLite database for one test.
// The named shared-cache DSN keeps GORM's pooled connections on the
// same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleOrder(id string, createdAt time.Time) *models.Order {
	return &models.Order{
		ID:           id,
		CustomerName: "Ayu",
		TotalAmount:  dec("5.00"),
		Status:       models.OrderStatusPending,
		OrderType:    models.OrderTypeDineIn,
		CreatedAt:    createdAt,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Espresso", Quantity: 2, UnitPrice: dec("2.50"), TotalPrice: dec("5.00")},
		},
	}
}

func TestGORMOrderRepository_CreateAndGetByID(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))

	created := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	order := &models.Order{
		ID:           "order-1",
		CustomerName: "Ayu",
		TotalAmount:  dec("8.50"),
		Status:       models.OrderStatusPending,
		OrderType:    models.OrderTypeTakeaway,
		Notes:        "no sugar",
		CreatedAt:    created,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Espresso", Quantity: 2, UnitPrice: dec("2.50"), TotalPrice: dec("5.00")},
			{ProductID: 7, ProductName: "Croissant", Quantity: 1, UnitPrice: dec("3.50"), TotalPrice: dec("3.50")},
		},
	}
	require.NoError(t, repo.Create(order))

	got, err := repo.GetByID("order-1")
	require.NoError(t, err)
	assert.Equal(t, "Ayu", got.CustomerName)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.True(t, got.TotalAmount.Equal(dec("8.50")), "total %s", got.TotalAmount)
	require.Len(t, got.Items, 2)
	for _, item := range got.Items {
		assert.Equal(t, "order-1", item.OrderID)
		expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		assert.True(t, item.TotalPrice.Equal(expected))
	}
}

func TestGORMOrderRepository_GetByID_NotFound(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))

	got, err := repo.GetByID("missing")
	assert.Nil(t, got)
	assert.Error(t, err)
	assert.True(t, apperr.IsNotFound(err), "a lookup miss is a not-found outcome, got %v", err)
}

func TestGORMOrderRepository_Create_RollsBackOnItemFailure(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))

	// The second item violates the quantity CHECK constraint after the
	// header and first item were written inside the transaction.
	order := &models.Order{
		ID:           "doomed",
		CustomerName: "Ayu",
		TotalAmount:  dec("5.00"),
		Status:       models.OrderStatusPending,
		OrderType:    models.OrderTypeDineIn,
		CreatedAt:    time.Now().UTC(),
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Espresso", Quantity: 2, UnitPrice: dec("2.50"), TotalPrice: dec("5.00")},
			{ProductID: 2, ProductName: "Latte", Quantity: -1, UnitPrice: dec("4.50"), TotalPrice: dec("-4.50")},
		},
	}
	err := repo.Create(order)
	require.Error(t, err)

	// No partial order is visible: neither the header nor any item.
	_, err = repo.GetByID("doomed")
	assert.True(t, apperr.IsNotFound(err))

	summaries, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, summaries)

	sales, err := repo.ItemsSold(nil)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestGORMOrderRepository_GetAll(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))

	older := sampleOrder("order-old", time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC))
	older.Items = append(older.Items, models.OrderItem{
		ProductID: 2, ProductName: "Latte", Quantity: 1, UnitPrice: dec("4.50"), TotalPrice: dec("4.50"),
	})
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(sampleOrder("order-new", time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC))))

	summaries, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "order-new", summaries[0].ID, "newest first")
	assert.Equal(t, int64(1), summaries[0].ItemCount)
	assert.Equal(t, "order-old", summaries[1].ID)
	assert.Equal(t, int64(2), summaries[1].ItemCount)
	assert.True(t, summaries[0].TotalAmount.Equal(dec("5.00")))
}

func TestGORMOrderRepository_UpdateStatus(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))
	require.NoError(t, repo.Create(sampleOrder("order-1", time.Now().UTC())))

	require.NoError(t, repo.UpdateStatus("order-1", models.OrderStatusReady))

	got, err := repo.GetByID("order-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, got.Status)

	// Re-applying the same status is harmless.
	require.NoError(t, repo.UpdateStatus("order-1", models.OrderStatusReady))
	got, err = repo.GetByID("order-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, got.Status)
}

func TestGORMOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))

	err := repo.UpdateStatus("missing", models.OrderStatusReady)
	assert.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGORMOrderRepository_ListCreatedBetween(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))
	day1 := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(sampleOrder("order-1", day1)))
	require.NoError(t, repo.Create(sampleOrder("order-2", day2)))
	require.NoError(t, repo.Create(sampleOrder("order-3", day3)))

	all, err := repo.ListCreatedBetween(nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "order-1", all[0].ID, "ascending by creation time")

	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	fromStart, err := repo.ListCreatedBetween(&start, nil)
	require.NoError(t, err)
	assert.Len(t, fromStart, 2)

	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	beforeEnd, err := repo.ListCreatedBetween(nil, &end)
	require.NoError(t, err)
	require.Len(t, beforeEnd, 1)
	assert.Equal(t, "order-1", beforeEnd[0].ID, "end bound is exclusive")
}

func TestGORMOrderRepository_ListRecentAndCountByStatus(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		order := sampleOrder(fmt.Sprintf("order-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(order))
	}
	require.NoError(t, repo.UpdateStatus("order-0", models.OrderStatusCompleted))

	recent, err := repo.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "order-3", recent[0].ID)
	assert.Equal(t, "order-2", recent[1].ID)

	pending, err := repo.CountByStatus(models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending)

	completed, err := repo.CountByStatus(models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)
}

func TestGORMOrderRepository_ItemsSold(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(newTestDB(t))
	oldDay := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	newDay := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(sampleOrder("order-old", oldDay)))
	require.NoError(t, repo.Create(sampleOrder("order-new", newDay)))

	all, err := repo.ItemsSold(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	windowed, err := repo.ItemsSold(&since)
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, "order-new", windowed[0].OrderID)
	assert.Equal(t, "Espresso", windowed[0].ProductName)
	assert.Equal(t, 2, windowed[0].Quantity)
	assert.True(t, windowed[0].TotalPrice.Equal(dec("5.00")))
	assert.True(t, windowed[0].OrderedAt.Equal(newDay))
}
