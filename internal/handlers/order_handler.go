package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"kedai/internal/apperr"
	"kedai/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
	log     *logrus.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders lists all orders with item counts, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		h.log.WithError(err).Error("failed to list orders")
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns one order with its line items.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		if !apperr.IsNotFound(err) {
			h.log.WithError(err).Error("failed to get order")
		}
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCreateOrder creates a new order from the request body.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	order, err := h.service.CreateOrder(input)
	if err != nil {
		if !apperr.IsValidation(err) {
			h.log.WithError(err).Error("failed to create order")
		}
		return respondError(c, err)
	}

	h.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.TotalAmount,
	}).Info("order created")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           order.ID,
		"message":      "Order created successfully",
		"total_amount": order.TotalAmount,
	})
}

// HandleUpdateOrderStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	if err := h.service.UpdateOrderStatus(id, body.Status); err != nil {
		if !apperr.IsValidation(err) && !apperr.IsNotFound(err) {
			h.log.WithError(err).Error("failed to update order status")
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Order status updated successfully",
		"orderId":   id,
		"newStatus": body.Status,
	})
}
