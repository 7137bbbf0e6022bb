package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

const dateLayout = "2006-01-02"

// DailyStat is one calendar day of revenue and order volume.
type DailyStat struct {
	Date       string          `json:"date"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// OrderStat extends DailyStat with the average order value for the day.
type OrderStat struct {
	Date          string          `json:"date"`
	OrderCount    int             `json:"order_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// PopularProduct is a product ranked by quantity sold in a window.
type PopularProduct struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalSold   int    `json:"total_sold"`
	OrderCount  int    `json:"order_count"`
}

// ProductPerformance is the per-product sales rollup: windowed quantity
// and revenue plus lifetime distinct-order count.
type ProductPerformance struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	OrderCount   int             `json:"order_count"`
}

// DashboardSummary is the point-in-time dashboard snapshot.
type DashboardSummary struct {
	TodayOrders     int              `json:"todayOrders"`
	TodayRevenue    decimal.Decimal  `json:"todayRevenue"`
	PendingOrders   int64            `json:"pendingOrders"`
	TotalProducts   int64            `json:"totalProducts"`
	RecentOrders    []models.Order   `json:"recentOrders"`
	WeeklyRevenue   []DailyStat      `json:"weeklyRevenue"`
	PopularProducts []PopularProduct `json:"popularProducts"`
}

// DashboardService computes read-side statistics over the order and
// product stores. The clock is injected so "today" and trailing windows
// are deterministic; all calendar dates are UTC dates. Monetary sums
// accumulate in decimal, never float.
type DashboardService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService. now may be nil, in
// which case the system clock is used.
func NewDashboardService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		now:         now,
	}
}

// GetSummary computes today's totals, the pending-order and available-
// product counts, the five most recent orders, a zero-filled seven-day
// revenue series, and the top five products of the trailing 30 days.
func (s *DashboardService) GetSummary() (*DashboardSummary, error) {
	now := s.now().UTC()
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)
	monthStart := now.AddDate(0, 0, -30)

	todayOrders, err := s.orderRepo.ListCreatedBetween(&today, &tomorrow)
	if err != nil {
		return nil, err
	}
	todayRevenue := decimal.Zero
	for _, o := range todayOrders {
		todayRevenue = todayRevenue.Add(o.TotalAmount)
	}

	pending, err := s.orderRepo.CountByStatus(models.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.productRepo.CountAvailable()
	if err != nil {
		return nil, err
	}

	recent, err := s.orderRepo.ListRecent(5)
	if err != nil {
		return nil, err
	}

	weekOrders, err := s.orderRepo.ListCreatedBetween(&weekStart, &tomorrow)
	if err != nil {
		return nil, err
	}
	weekly := buildDailySeries(weekOrders, weekStart, 7)

	sales, err := s.orderRepo.ItemsSold(&monthStart)
	if err != nil {
		return nil, err
	}
	popular := rankPopularProducts(sales, 5)

	return &DashboardSummary{
		TodayOrders:     len(todayOrders),
		TodayRevenue:    todayRevenue,
		PendingOrders:   pending,
		TotalProducts:   totalProducts,
		RecentOrders:    recent,
		WeeklyRevenue:   weekly,
		PopularProducts: popular,
	}, nil
}

// GetOrderStats groups orders by calendar date, ascending, optionally
// bounded by a closed date range. A single bound filters half-open.
// Dates are YYYY-MM-DD strings.
func (s *DashboardService) GetOrderStats(startDate, endDate string) ([]OrderStat, error) {
	var start, end *time.Time
	if startDate != "" {
		t, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, apperr.Validation("invalid start date %q, expected YYYY-MM-DD", startDate)
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return nil, apperr.Validation("invalid end date %q, expected YYYY-MM-DD", endDate)
		}
		// Inclusive end date, so filter strictly before the next day.
		e := t.AddDate(0, 0, 1)
		end = &e
	}

	orders, err := s.orderRepo.ListCreatedBetween(start, end)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	revenue := map[string]decimal.Decimal{}
	for _, o := range orders {
		date := o.CreatedAt.UTC().Format(dateLayout)
		counts[date]++
		revenue[date] = revenue[date].Add(o.TotalAmount)
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	stats := make([]OrderStat, 0, len(dates))
	for _, date := range dates {
		rev := revenue[date]
		avg := rev.Div(decimal.NewFromInt(int64(counts[date]))).Round(2)
		stats = append(stats, OrderStat{
			Date:          date,
			OrderCount:    counts[date],
			Revenue:       rev,
			AvgOrderValue: avg,
		})
	}
	return stats, nil
}

// GetProductPerformance reports, for every available product, quantity
// and revenue sold in the trailing 30 days plus the lifetime distinct-
// order count. Products with no sales in the window still appear with
// zeros; rows are ordered by windowed quantity descending and truncated
// to limit.
func (s *DashboardService) GetProductPerformance(limit int) ([]ProductPerformance, error) {
	if limit <= 0 {
		limit = 10
	}

	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}

	sales, err := s.orderRepo.ItemsSold(nil)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().UTC().AddDate(0, 0, -30)
	sold := map[uint]int{}
	revenue := map[uint]decimal.Decimal{}
	orders := map[uint]map[string]struct{}{}
	for _, sale := range sales {
		if orders[sale.ProductID] == nil {
			orders[sale.ProductID] = map[string]struct{}{}
		}
		orders[sale.ProductID][sale.OrderID] = struct{}{}
		if sale.OrderedAt.Before(cutoff) {
			continue
		}
		sold[sale.ProductID] += sale.Quantity
		revenue[sale.ProductID] = revenue[sale.ProductID].Add(sale.TotalPrice)
	}

	perf := make([]ProductPerformance, 0, len(products))
	for _, p := range products {
		rev := revenue[p.ID]
		if rev.IsZero() {
			rev = decimal.Zero
		}
		perf = append(perf, ProductPerformance{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			Price:        p.Price,
			TotalSold:    sold[p.ID],
			TotalRevenue: rev,
			OrderCount:   len(orders[p.ID]),
		})
	}
	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].TotalSold > perf[j].TotalSold
	})
	if len(perf) > limit {
		perf = perf[:limit]
	}
	return perf, nil
}

// buildDailySeries groups orders into a fixed-length run of calendar
// days beginning at start, filling days with no orders with zeros.
func buildDailySeries(orders []models.Order, start time.Time, days int) []DailyStat {
	counts := map[string]int{}
	revenue := map[string]decimal.Decimal{}
	for _, o := range orders {
		date := o.CreatedAt.UTC().Format(dateLayout)
		counts[date]++
		revenue[date] = revenue[date].Add(o.TotalAmount)
	}

	series := make([]DailyStat, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		rev := revenue[date]
		if rev.IsZero() {
			rev = decimal.Zero
		}
		series = append(series, DailyStat{
			Date:       date,
			OrderCount: counts[date],
			Revenue:    rev,
		})
	}
	return series
}

// rankPopularProducts groups sales by product id and name, ranks by
// total quantity descending, and truncates to limit.
func rankPopularProducts(sales []repositories.ItemSale, limit int) []PopularProduct {
	type key struct {
		id   uint
		name string
	}
	sold := map[key]int{}
	orders := map[key]map[string]struct{}{}
	for _, sale := range sales {
		k := key{id: sale.ProductID, name: sale.ProductName}
		sold[k] += sale.Quantity
		if orders[k] == nil {
			orders[k] = map[string]struct{}{}
		}
		orders[k][sale.OrderID] = struct{}{}
	}

	popular := make([]PopularProduct, 0, len(sold))
	for k, qty := range sold {
		popular = append(popular, PopularProduct{
			ProductID:   k.id,
			ProductName: k.name,
			TotalSold:   qty,
			OrderCount:  len(orders[k]),
		})
	}
	sort.SliceStable(popular, func(i, j int) bool {
		if popular[i].TotalSold != popular[j].TotalSold {
			return popular[i].TotalSold > popular[j].TotalSold
		}
		return popular[i].ProductName < popular[j].ProductName
	})
	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
