package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"kedai/internal/apperr"
	"kedai/internal/services"
)

// CustomerHandler handles HTTP requests for customer records.
type CustomerHandler struct {
	service *services.CustomerService
	log     *logrus.Logger
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService, log *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, log: log}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Get("/:id", h.HandleGetCustomerByID)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Put("/:id", h.HandleUpdateCustomer)
	customerRoutes.Delete("/:id", h.HandleDeleteCustomer)
}

// HandleGetCustomers lists all customers.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		h.log.WithError(err).Error("failed to list customers")
		return respondError(c, err)
	}
	return c.JSON(customers)
}

// HandleGetCustomerByID returns one customer.
func (h *CustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	customer, err := h.service.GetCustomerByID(id)
	if err != nil {
		if !apperr.IsNotFound(err) {
			h.log.WithError(err).Error("failed to get customer")
		}
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// HandleCreateCustomer creates a new customer. Duplicate emails respond
// with 409.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var input services.CreateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	customer, err := h.service.CreateCustomer(input)
	if err != nil {
		if !apperr.IsValidation(err) && !apperr.IsConflict(err) {
			h.log.WithError(err).Error("failed to create customer")
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      customer.ID,
		"message": "Customer created successfully",
	})
}

// HandleUpdateCustomer applies a partial update to a customer.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	customer, err := h.service.UpdateCustomer(id, input)
	if err != nil {
		if !apperr.IsValidation(err) && !apperr.IsNotFound(err) && !apperr.IsConflict(err) {
			h.log.WithError(err).Error("failed to update customer")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Customer updated successfully",
		"customer": customer,
	})
}

// HandleDeleteCustomer removes a customer.
func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteCustomer(id); err != nil {
		if !apperr.IsNotFound(err) {
			h.log.WithError(err).Error("failed to delete customer")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}
