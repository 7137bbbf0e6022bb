package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kedai/internal/apperr"
	"kedai/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders with item counts, newest first.
func (r *MockOrderRepository) GetAll() ([]OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]OrderSummary, 0, len(r.orders))
	for _, order := range r.orders {
		summaries = append(summaries, OrderSummary{
			ID:           order.ID,
			CustomerName: order.CustomerName,
			TotalAmount:  order.TotalAmount,
			Status:       order.Status,
			OrderType:    order.OrderType,
			Notes:        order.Notes,
			CreatedAt:    order.CreatedAt,
			ItemCount:    int64(len(order.Items)),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order")
	}
	return &order, nil
}

// Create adds a new order with its items.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("order")
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

// ListCreatedBetween returns order headers created in [start, end).
func (r *MockOrderRepository) ListCreatedBetween(start, end *time.Time) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []models.Order{}
	for _, order := range r.orders {
		if start != nil && order.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && !order.CreatedAt.Before(*end) {
			continue
		}
		header := order
		header.Items = nil
		orders = append(orders, header)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// ListRecent returns the most recently created orders, newest first.
func (r *MockOrderRepository) ListRecent(limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		header := order
		header.Items = nil
		orders = append(orders, header)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// CountByStatus counts orders currently in the given status.
func (r *MockOrderRepository) CountByStatus(status string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

// ItemsSold returns line items joined with order creation times.
func (r *MockOrderRepository) ItemsSold(since *time.Time) ([]ItemSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := []ItemSale{}
	for _, order := range r.orders {
		if since != nil && order.CreatedAt.Before(*since) {
			continue
		}
		for _, item := range order.Items {
			sales = append(sales, ItemSale{
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				TotalPrice:  item.TotalPrice,
				OrderedAt:   order.CreatedAt,
			})
		}
	}
	return sales, nil
}
