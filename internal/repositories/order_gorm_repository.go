package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kedai/internal/apperr"
	"kedai/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository over
// the orders and order_items tables.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves every order with its item count, newest first.
func (r *GORMOrderRepository) GetAll() ([]OrderSummary, error) {
	summaries := []OrderSummary{}
	err := r.db.Model(&models.Order{}).
		Select("orders.id, orders.customer_name, orders.total_amount, orders.status, orders.order_type, orders.notes, orders.created_at, count(order_items.id) as item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Group("orders.id").
		Order("orders.created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return summaries, nil
}

// GetByID retrieves one order with its line items preloaded.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, apperr.Storage(err)
	}
	return &order, nil
}

// Create writes the order header and all of its line items in a single
// transaction. Association autosave is disabled so the write set stays
// explicit; any failure rolls the whole order back.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// UpdateStatus persists a status-only change. The existence check runs
// first so re-applying the current status still succeeds even on drivers
// that report zero changed rows for a no-op update.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	var order models.Order
	if err := r.db.Select("id").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order")
		}
		return apperr.Storage(err)
	}
	if err := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// ListCreatedBetween retrieves order headers with created_at in [start, end).
func (r *GORMOrderRepository) ListCreatedBetween(start, end *time.Time) ([]models.Order, error) {
	orders := []models.Order{}
	q := r.db.Model(&models.Order{})
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at < ?", *end)
	}
	if err := q.Order("created_at").Find(&orders).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return orders, nil
}

// ListRecent retrieves the most recently created orders, newest first.
func (r *GORMOrderRepository) ListRecent(limit int) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return orders, nil
}

// CountByStatus counts orders currently in the given status.
func (r *GORMOrderRepository) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, apperr.Storage(err)
	}
	return count, nil
}

// ItemsSold retrieves line items joined with their order's creation time,
// optionally restricted to orders created at or after since.
func (r *GORMOrderRepository) ItemsSold(since *time.Time) ([]ItemSale, error) {
	sales := []ItemSale{}
	q := r.db.Model(&models.OrderItem{}).
		Select("order_items.order_id, order_items.product_id, order_items.product_name, order_items.quantity, order_items.total_price, orders.created_at as ordered_at").
		Joins("JOIN orders ON orders.id = order_items.order_id")
	if since != nil {
		q = q.Where("orders.created_at >= ?", *since)
	}
	if err := q.Scan(&sales).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return sales, nil
}
