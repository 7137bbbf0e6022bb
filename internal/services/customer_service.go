package services

import (
	"strings"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// CreateCustomerInput is the caller-supplied customer record. Phone and
// Email are optional.
type CreateCustomerInput struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// UpdateCustomerInput carries per-field optional updates; nil means
// "not provided".
type UpdateCustomerInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// CustomerService handles business logic for customer records.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id uint) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// CreateCustomer validates and inserts a new customer. A duplicate email
// surfaces as a conflict from the repository.
func (s *CustomerService) CreateCustomer(input CreateCustomerInput) (*models.Customer, error) {
	if input.Name == "" {
		return nil, apperr.Validation("customer name is required")
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer applies the provided fields to an existing customer.
func (s *CustomerService) UpdateCustomer(id uint, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := validateEmail(input.Email); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperr.Validation("customer name is required")
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}

	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer by its ID.
func (s *CustomerService) DeleteCustomer(id uint) error {
	return s.repo.Delete(id)
}

func validateEmail(email *string) error {
	if email != nil && *email != "" && !strings.Contains(*email, "@") {
		return apperr.Validation("invalid email format")
	}
	return nil
}
