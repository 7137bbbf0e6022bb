package repositories

import (
	"kedai/internal/models"
)

// ProductRepository defines data access for the product catalog.
type ProductRepository interface {
	// GetAll returns available products ordered by category, then name.
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	// CountAvailable counts products currently flagged available.
	CountAvailable() (int64, error)
}
