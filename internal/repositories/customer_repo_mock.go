package repositories

import (
	"sort"
	"sync"
	"time"

	"kedai/internal/apperr"
	"kedai/internal/models"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[uint]models.Customer
	nextID    uint
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[uint]models.Customer),
		nextID:    1,
	}
}

// GetAll returns all customers ordered by name.
func (r *MockCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

// GetByID returns a customer by its ID.
func (r *MockCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, apperr.NotFound("customer")
	}
	return &customer, nil
}

// Create adds a new customer, enforcing email uniqueness.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(customer.Email, 0) {
		return apperr.Conflict("customer with this email already exists")
	}
	if customer.ID == 0 {
		customer.ID = r.nextID
		r.nextID++
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	r.customers[customer.ID] = *customer
	return nil
}

// Update replaces an existing customer, enforcing email uniqueness.
func (r *MockCustomerRepository) Update(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; !ok {
		return apperr.NotFound("customer")
	}
	if r.emailTaken(customer.Email, customer.ID) {
		return apperr.Conflict("customer with this email already exists")
	}
	r.customers[customer.ID] = *customer
	return nil
}

// Delete removes a customer by its ID.
func (r *MockCustomerRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return apperr.NotFound("customer")
	}
	delete(r.customers, id)
	return nil
}

func (r *MockCustomerRepository) emailTaken(email *string, exceptID uint) bool {
	if email == nil {
		return false
	}
	for _, c := range r.customers {
		if c.ID != exceptID && c.Email != nil && *c.Email == *email {
			return true
		}
	}
	return false
}
