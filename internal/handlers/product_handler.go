package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
	log     *logrus.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists available products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		h.log.WithError(err).Error("failed to list products")
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID returns one product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		if !apperr.IsNotFound(err) {
			h.log.WithError(err).Error("failed to get product")
		}
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product. Available defaults to true
// when the field is absent from the body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var body struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		Category    string          `json:"category"`
		ImageURL    string          `json:"image_url"`
		Available   *bool           `json:"available"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	product := models.Product{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		ImageURL:    body.ImageURL,
		Available:   body.Available == nil || *body.Available,
	}

	if err := h.service.CreateProduct(&product); err != nil {
		if !apperr.IsValidation(err) {
			h.log.WithError(err).Error("failed to create product")
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      product.ID,
		"message": "Product created successfully",
	})
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, apperr.Validation("invalid request body"))
	}

	product, err := h.service.UpdateProduct(id, input)
	if err != nil {
		if !apperr.IsValidation(err) && !apperr.IsNotFound(err) {
			h.log.WithError(err).Error("failed to update product")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		if !apperr.IsNotFound(err) {
			h.log.WithError(err).Error("failed to delete product")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// parseID parses a numeric path id.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid id %q", raw)
	}
	return uint(id), nil
}
