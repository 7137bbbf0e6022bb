package repositories

import (
	"kedai/internal/models"
)

// CustomerRepository defines data access for customer records.
type CustomerRepository interface {
	// GetAll returns all customers ordered by name.
	GetAll() ([]models.Customer, error)
	GetByID(id uint) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	Delete(id uint) error
}
