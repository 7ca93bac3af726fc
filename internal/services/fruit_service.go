package services

import (
	"errors"

	"fruitstore/internal/models"
	"fruitstore/internal/repository"
	"fruitstore/pkg/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FruitInput is the admin catalog form. Price is the display string shown on
// the storefront and must parse to a positive amount.
type FruitInput struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
	Image string `json:"image"`
}

type FruitService interface {
	GetAll() ([]models.Fruit, error)
	GetByID(id uuid.UUID) (*models.Fruit, error)
	Create(input FruitInput) (*models.Fruit, error)
	Update(id uuid.UUID, input FruitInput) (*models.Fruit, error)
}

type fruitService struct {
	fruitRepo repository.FruitRepository
}

func NewFruitService(fruitRepo repository.FruitRepository) FruitService {
	return &fruitService{fruitRepo: fruitRepo}
}

func validateFruitInput(input FruitInput) error {
	fields := make(map[string]string)

	if len(input.Name) < 2 {
		fields["name"] = "name must be at least 2 characters"
	}
	if pricing.ExtractPrice(input.Price) <= 0 {
		fields["price"] = "price must be a positive amount like \"Rp 35.000\""
	}
	if input.Stock <= 0 {
		fields["stock"] = "stock must be greater than zero"
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}

func (s *fruitService) GetAll() ([]models.Fruit, error) {
	return s.fruitRepo.GetAll()
}

func (s *fruitService) GetByID(id uuid.UUID) (*models.Fruit, error) {
	fruit, err := s.fruitRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFruitNotFound
		}
		return nil, err
	}
	return fruit, nil
}

func (s *fruitService) Create(input FruitInput) (*models.Fruit, error) {
	if err := validateFruitInput(input); err != nil {
		return nil, err
	}

	fruit := &models.Fruit{
		Name:  input.Name,
		Price: input.Price,
		Stock: input.Stock,
		Image: input.Image,
	}
	if err := s.fruitRepo.Create(fruit); err != nil {
		return nil, err
	}
	return fruit, nil
}

// Update replaces the catalog fields. Stock adjustments should go through the
// stock ledger instead so the audit log stays complete; this only sets the
// initial value on a fresh row.
func (s *fruitService) Update(id uuid.UUID, input FruitInput) (*models.Fruit, error) {
	if err := validateFruitInput(input); err != nil {
		return nil, err
	}

	fruit, err := s.fruitRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFruitNotFound
		}
		return nil, err
	}

	fruit.Name = input.Name
	fruit.Price = input.Price
	fruit.Image = input.Image
	if err := s.fruitRepo.Update(fruit); err != nil {
		return nil, err
	}
	return fruit, nil
}
