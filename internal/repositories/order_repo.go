package repositories

import (
	"time"

	"github.com/shopspring/decimal"

	"kedai/internal/models"
)

// OrderSummary is an order header annotated with its line-item count,
// as produced by the list query's left join.
type OrderSummary struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	OrderType    string          `json:"order_type"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	ItemCount    int64           `json:"item_count"`
}

// ItemSale is one line item joined with its order's creation time, the
// row shape the aggregation queries consume.
type ItemSale struct {
	OrderID     string          `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	OrderedAt   time.Time       `json:"ordered_at"`
}

// OrderRepository defines data access for order headers and their line
// items. Lookup misses surface as apperr.NotFoundError, a valid outcome
// distinct from infrastructure failures.
type OrderRepository interface {
	// GetAll returns every order annotated with its item count,
	// newest first.
	GetAll() ([]OrderSummary, error)
	// GetByID returns the order with its line items attached.
	GetByID(id string) (*models.Order, error)
	// Create writes the header and all line items atomically; on any
	// failure no rows for the order id remain visible.
	Create(order *models.Order) error
	// UpdateStatus persists a status-only change for an existing order.
	UpdateStatus(id string, status string) error
	// ListCreatedBetween returns order headers with created_at in
	// [start, end). A nil bound leaves that side open.
	ListCreatedBetween(start, end *time.Time) ([]models.Order, error)
	// ListRecent returns the most recently created orders, newest first.
	ListRecent(limit int) ([]models.Order, error)
	// CountByStatus counts orders currently in the given status.
	CountByStatus(status string) (int64, error)
	// ItemsSold returns line items joined with their order's creation
	// time, optionally restricted to orders created at or after since.
	ItemsSold(since *time.Time) ([]ItemSale, error)
}
