package services

import (
	"errors"
	"regexp"

	"fruitstore/internal/models"
	"fruitstore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerInput is the checkout contact form. Email is optional; phone is the
// fallback identity when no email is given.
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerService interface {
	Upsert(input CustomerInput) (*models.Customer, error)
	GetByID(id uuid.UUID) (*models.Customer, error)
	GetAll() ([]models.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateCustomerInput(input CustomerInput) error {
	fields := make(map[string]string)

	if len(input.Name) < 3 {
		fields["name"] = "name must be at least 3 characters"
	}
	if input.Email != "" && !emailRe.MatchString(input.Email) {
		fields["email"] = "invalid email format"
	}
	if len(input.Phone) < 10 {
		fields["phone"] = "phone number must be at least 10 digits"
	}
	if len(input.Address) < 5 {
		fields["address"] = "address must be at least 5 characters"
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}

// Upsert finds a customer by email first, falling back to the first phone
// match, and overwrites all fields with the submitted data. Fields omitted in
// the new submission are lost rather than merged. Unmatched input creates a
// new customer.
func (s *customerService) Upsert(input CustomerInput) (*models.Customer, error) {
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	var customer *models.Customer
	if input.Email != "" {
		found, err := s.customerRepo.GetByEmail(input.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		customer = found
	}

	if customer == nil && input.Phone != "" {
		found, err := s.customerRepo.GetFirstByPhone(input.Phone)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		customer = found
	}

	var email *string
	if input.Email != "" {
		email = &input.Email
	}

	if customer != nil {
		customer.Name = input.Name
		customer.Email = email
		customer.Phone = input.Phone
		customer.Address = input.Address
		if err := s.customerRepo.Update(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	customer = &models.Customer{
		Name:    input.Name,
		Email:   email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByID(id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetAll() ([]models.Customer, error) {
	return s.customerRepo.GetAll()
}
