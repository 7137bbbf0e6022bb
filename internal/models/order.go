package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. All five are externally settable; transitions are
// unrestricted, so a completed or cancelled order may be reopened.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

// Order is an order header. The ID is an opaque UUID token generated
// before the write, never a database sequence. CustomerName is a snapshot,
// not a foreign key; TotalAmount is derived from the items and is never
// settable by callers.
type Order struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName string          `json:"customer_name" gorm:"type:varchar(255);not null"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status       string          `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	OrderType    string          `json:"order_type" gorm:"type:varchar(20);not null;default:'dine-in'"`
	Notes        string          `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null"`
	Items        []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// OrderItem is a line item owned by exactly one order. ProductName and
// UnitPrice are snapshots taken at order time, so later catalog edits do
// not corrupt history. TotalPrice is stored redundantly for aggregation
// and always equals round(quantity * unit_price, 2).
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     string          `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID   uint            `json:"product_id" gorm:"not null"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
}

// ValidOrderStatuses lists the fixed status set, in lifecycle order.
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// IsValidOrderStatus reports whether status belongs to the fixed set.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidOrderType reports whether orderType is one of the known types.
func IsValidOrderType(orderType string) bool {
	switch orderType {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}
