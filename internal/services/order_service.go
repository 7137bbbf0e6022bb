package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// EventPublisher publishes order lifecycle events. A nil publisher
// disables publication; publish failures never fail the operation.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

const ordersExchange = "orders"

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderInput is the caller-supplied part of a new order. The total
// is always computed server-side.
type CreateOrderInput struct {
	CustomerName string           `json:"customer_name"`
	Items        []OrderItemInput `json:"items"`
	OrderType    string           `json:"order_type"`
	Notes        string           `json:"notes"`
}

// OrderService handles the order lifecycle: creation with computed
// totals, lookups, and the status state machine.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	log       *logrus.Logger
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher, log *logrus.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		log:       log,
	}
}

// GetAllOrders retrieves all orders with item counts, newest first.
func (s *OrderService) GetAllOrders() ([]repositories.OrderSummary, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order with its line items.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder validates the input, computes the total from line-level
// rounded subtotals, and writes the header plus items atomically. The
// order id is generated before the write and returned with the order.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.CustomerName == "" || len(input.Items) == 0 {
		return nil, apperr.Validation("customer name and items are required")
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.ProductName == "" || item.Quantity == 0 || item.UnitPrice.IsZero() {
			return nil, apperr.Validation("each item must have product_id, product_name, quantity, and unit_price")
		}
		if item.Quantity < 0 || item.UnitPrice.IsNegative() {
			return nil, apperr.Validation("quantity and unit price must be positive numbers")
		}
	}

	orderType := input.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	if !models.IsValidOrderType(orderType) {
		return nil, apperr.Validation("invalid order type %q, valid types are: %s",
			orderType, strings.Join([]string{models.OrderTypeDineIn, models.OrderTypeTakeaway, models.OrderTypeDelivery}, ", "))
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		// Round each line total to 2dp before summation so the order
		// total never drifts from the stored line totals.
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  lineTotal,
		})
	}

	order := &models.Order{
		ID:           uuid.New().String(),
		CustomerName: input.CustomerName,
		TotalAmount:  total,
		Status:       models.OrderStatusPending,
		OrderType:    orderType,
		Notes:        input.Notes,
		CreatedAt:    time.Now(),
		Items:        items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id":      order.ID,
		"customer_name": order.CustomerName,
		"total_amount":  order.TotalAmount,
		"order_type":    order.OrderType,
		"status":        order.Status,
	})

	return order, nil
}

// UpdateOrderStatus moves an order to newStatus. Any of the five states
// may move to any other; values outside the set are rejected before the
// store is touched, so a failed update never mutates stored status.
func (s *OrderService) UpdateOrderStatus(id string, newStatus string) error {
	if !models.IsValidOrderStatus(newStatus) {
		return apperr.Validation("invalid status %q, valid statuses are: %s",
			newStatus, strings.Join(models.ValidOrderStatuses(), ", "))
	}

	if err := s.orderRepo.UpdateStatus(id, newStatus); err != nil {
		return err
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"order_id": id,
		"status":   newStatus,
	})

	return nil
}

func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.WithError(err).Warnf("failed to marshal %s event", routingKey)
		return
	}
	if err := s.publisher.Publish(ordersExchange, routingKey, body); err != nil {
		s.log.WithError(err).Warnf("failed to publish %s event", routingKey)
	}
}
