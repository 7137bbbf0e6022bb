package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"
)

// The dashboard reference clock is pinned so windows are deterministic.
var dashboardNow = time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return dashboardNow }

func seedDashboardRepos(t *testing.T) (*repositories.MockOrderRepository, *repositories.MockProductRepository) {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	for _, p := range []models.Product{
		{ID: 1, Name: "Espresso", Category: "Coffee", Price: dec("2.50"), Available: true},
		{ID: 2, Name: "Latte", Category: "Coffee", Price: dec("4.50"), Available: true},
		{ID: 3, Name: "Scone", Category: "Pastry", Price: dec("3.00"), Available: true},
		{ID: 4, Name: "Retired Blend", Category: "Coffee", Price: dec("3.00"), Available: false},
	} {
		require.NoError(t, productRepo.Create(&p))
	}

	orderRepo := repositories.NewMockOrderRepository()
	orders := []models.Order{
		{
			ID: "order-today", CustomerName: "Ayu", Status: models.OrderStatusPending,
			OrderType: models.OrderTypeDineIn, TotalAmount: dec("5.00"),
			CreatedAt: dashboardNow.Add(-2 * time.Hour),
			Items: []models.OrderItem{
				{ProductID: 1, ProductName: "Espresso", Quantity: 2, UnitPrice: dec("2.50"), TotalPrice: dec("5.00")},
			},
		},
		{
			ID: "order-yesterday", CustomerName: "Budi", Status: models.OrderStatusCompleted,
			OrderType: models.OrderTypeTakeaway, TotalAmount: dec("7.00"),
			CreatedAt: dashboardNow.AddDate(0, 0, -1),
			Items: []models.OrderItem{
				{ProductID: 1, ProductName: "Espresso", Quantity: 1, UnitPrice: dec("2.50"), TotalPrice: dec("2.50")},
				{ProductID: 2, ProductName: "Latte", Quantity: 1, UnitPrice: dec("4.50"), TotalPrice: dec("4.50")},
			},
		},
		{
			// Outside the 7-day series but inside the 30-day window.
			ID: "order-last-week", CustomerName: "Citra", Status: models.OrderStatusCompleted,
			OrderType: models.OrderTypeDineIn, TotalAmount: dec("2.50"),
			CreatedAt: dashboardNow.AddDate(0, 0, -10),
			Items: []models.OrderItem{
				{ProductID: 1, ProductName: "Espresso", Quantity: 1, UnitPrice: dec("2.50"), TotalPrice: dec("2.50")},
			},
		},
		{
			// Outside every window; only lifetime counts see it.
			ID: "order-old", CustomerName: "Dewi", Status: models.OrderStatusCompleted,
			OrderType: models.OrderTypeDineIn, TotalAmount: dec("7.50"),
			CreatedAt: dashboardNow.AddDate(0, 0, -40),
			Items: []models.OrderItem{
				{ProductID: 1, ProductName: "Espresso", Quantity: 3, UnitPrice: dec("2.50"), TotalPrice: dec("7.50")},
			},
		},
	}
	for i := range orders {
		require.NoError(t, orderRepo.Create(&orders[i]))
	}
	return orderRepo, productRepo
}

func TestDashboardService_GetSummary(t *testing.T) {
	orderRepo, productRepo := seedDashboardRepos(t)
	service := services.NewDashboardService(orderRepo, productRepo, fixedClock)

	summary, err := service.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TodayOrders)
	assert.True(t, summary.TodayRevenue.Equal(dec("5.00")),
		"today revenue %s", summary.TodayRevenue)
	assert.Equal(t, int64(1), summary.PendingOrders)
	assert.Equal(t, int64(3), summary.TotalProducts, "only available products count")

	require.Len(t, summary.RecentOrders, 4)
	assert.Equal(t, "order-today", summary.RecentOrders[0].ID, "newest first")

	// Exactly 7 calendar days, zero-filled, oldest first.
	require.Len(t, summary.WeeklyRevenue, 7)
	assert.Equal(t, "2026-08-25", summary.WeeklyRevenue[0].Date)
	assert.Equal(t, "2026-08-31", summary.WeeklyRevenue[6].Date)
	assert.Equal(t, 1, summary.WeeklyRevenue[6].OrderCount)
	assert.True(t, summary.WeeklyRevenue[6].Revenue.Equal(dec("5.00")))
	assert.Equal(t, 1, summary.WeeklyRevenue[5].OrderCount)
	assert.True(t, summary.WeeklyRevenue[5].Revenue.Equal(dec("7.00")))
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, summary.WeeklyRevenue[i].OrderCount)
		assert.True(t, summary.WeeklyRevenue[i].Revenue.IsZero())
	}

	// 30-day window: espresso 4 across 3 orders, latte 1; the 40-day-old
	// order is excluded.
	require.Len(t, summary.PopularProducts, 2)
	assert.Equal(t, "Espresso", summary.PopularProducts[0].ProductName)
	assert.Equal(t, 4, summary.PopularProducts[0].TotalSold)
	assert.Equal(t, 3, summary.PopularProducts[0].OrderCount)
	assert.Equal(t, "Latte", summary.PopularProducts[1].ProductName)
	assert.Equal(t, 1, summary.PopularProducts[1].TotalSold)
}

func TestDashboardService_GetSummary_EmptyStore(t *testing.T) {
	service := services.NewDashboardService(
		repositories.NewMockOrderRepository(),
		repositories.NewMockProductRepository(),
		fixedClock,
	)

	summary, err := service.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TodayOrders)
	assert.True(t, summary.TodayRevenue.IsZero())
	require.Len(t, summary.WeeklyRevenue, 7, "series is zero-filled even with no orders")
	for _, day := range summary.WeeklyRevenue {
		assert.Equal(t, 0, day.OrderCount)
		assert.True(t, day.Revenue.IsZero())
	}
	assert.Empty(t, summary.PopularProducts)
}

func TestDashboardService_GetOrderStats(t *testing.T) {
	orderRepo, productRepo := seedDashboardRepos(t)
	service := services.NewDashboardService(orderRepo, productRepo, fixedClock)

	t.Run("no bounds covers all orders", func(t *testing.T) {
		stats, err := service.GetOrderStats("", "")
		require.NoError(t, err)
		require.Len(t, stats, 4)
		// Grouped by calendar date, ascending.
		assert.Equal(t, "2026-07-22", stats[0].Date)
		assert.Equal(t, "2026-08-21", stats[1].Date)
		assert.Equal(t, "2026-08-30", stats[2].Date)
		assert.Equal(t, "2026-08-31", stats[3].Date)
		assert.Equal(t, 1, stats[3].OrderCount)
		assert.True(t, stats[3].Revenue.Equal(dec("5.00")))
		assert.True(t, stats[3].AvgOrderValue.Equal(dec("5.00")))
	})

	t.Run("closed range", func(t *testing.T) {
		stats, err := service.GetOrderStats("2026-08-30", "2026-08-31")
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, "2026-08-30", stats[0].Date)
		assert.Equal(t, "2026-08-31", stats[1].Date)
	})

	t.Run("start bound only", func(t *testing.T) {
		stats, err := service.GetOrderStats("2026-08-31", "")
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, "2026-08-31", stats[0].Date)
	})

	t.Run("end bound only", func(t *testing.T) {
		stats, err := service.GetOrderStats("", "2026-08-21")
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, "2026-07-22", stats[0].Date)
		assert.Equal(t, "2026-08-21", stats[1].Date)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := service.GetOrderStats("yesterday", "")
		assert.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestDashboardService_GetOrderStats_AverageOrderValue(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	day := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	for i, amount := range []string{"3.00", "4.00"} {
		order := models.Order{
			ID:           string(rune('a'+i)) + "-order",
			CustomerName: "Ayu",
			Status:       models.OrderStatusCompleted,
			OrderType:    models.OrderTypeDineIn,
			TotalAmount:  dec(amount),
			CreatedAt:    day.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, orderRepo.Create(&order))
	}
	service := services.NewDashboardService(orderRepo, repositories.NewMockProductRepository(), fixedClock)

	stats, err := service.GetOrderStats("", "")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].OrderCount)
	assert.True(t, stats[0].Revenue.Equal(dec("7.00")))
	assert.True(t, stats[0].AvgOrderValue.Equal(dec("3.50")))
}

func TestDashboardService_GetProductPerformance(t *testing.T) {
	orderRepo, productRepo := seedDashboardRepos(t)
	service := services.NewDashboardService(orderRepo, productRepo, fixedClock)

	perf, err := service.GetProductPerformance(10)
	require.NoError(t, err)

	// All three available products appear; the unavailable one does not.
	require.Len(t, perf, 3)

	assert.Equal(t, "Espresso", perf[0].Name)
	assert.Equal(t, 4, perf[0].TotalSold, "windowed to trailing 30 days")
	assert.True(t, perf[0].TotalRevenue.Equal(dec("10.00")),
		"revenue %s", perf[0].TotalRevenue)
	assert.Equal(t, 4, perf[0].OrderCount, "lifetime distinct orders")

	assert.Equal(t, "Latte", perf[1].Name)
	assert.Equal(t, 1, perf[1].TotalSold)
	assert.True(t, perf[1].TotalRevenue.Equal(dec("4.50")))
	assert.Equal(t, 1, perf[1].OrderCount)

	// Zero sales still appear with zeros (left-join semantics).
	assert.Equal(t, "Scone", perf[2].Name)
	assert.Equal(t, 0, perf[2].TotalSold)
	assert.True(t, perf[2].TotalRevenue.IsZero())
	assert.Equal(t, 0, perf[2].OrderCount)
}

func TestDashboardService_GetProductPerformance_Limit(t *testing.T) {
	orderRepo, productRepo := seedDashboardRepos(t)
	service := services.NewDashboardService(orderRepo, productRepo, fixedClock)

	perf, err := service.GetProductPerformance(2)
	require.NoError(t, err)
	require.Len(t, perf, 2)
	assert.Equal(t, "Espresso", perf[0].Name)
	assert.Equal(t, "Latte", perf[1].Name)
}
