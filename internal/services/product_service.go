package services

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// UpdateProductInput carries per-field optional updates. A nil field
// means "not provided" and leaves the stored value untouched; a provided
// empty value is applied as-is.
type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
	Available   *bool            `json:"available"`
}

// ProductService handles business logic for the product catalog.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves available products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and inserts a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return apperr.Validation("name, description, price, and category are required")
	}
	if !product.Price.IsPositive() {
		return apperr.Validation("price must be a positive number")
	}
	return s.repo.Create(product)
}

// UpdateProduct applies the provided fields to an existing product.
func (s *ProductService) UpdateProduct(id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil && !input.Price.IsPositive() {
		return nil, apperr.Validation("price must be a positive number")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Available != nil {
		product.Available = *input.Available
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.repo.Delete(id)
}
