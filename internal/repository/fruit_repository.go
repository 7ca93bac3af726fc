package repository

import (
	"fruitstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FruitRepository interface {
	Create(fruit *models.Fruit) error
	GetByID(id uuid.UUID) (*models.Fruit, error)
	GetAll() ([]models.Fruit, error)
	Update(fruit *models.Fruit) error
	UpdateStock(id uuid.UUID, stock int) error
	Delete(id uuid.UUID) error
}

type fruitRepository struct {
	db *gorm.DB
}

func NewFruitRepository(db *gorm.DB) FruitRepository {
	return &fruitRepository{db: db}
}

func (r *fruitRepository) Create(fruit *models.Fruit) error {
	return r.db.Create(fruit).Error
}

func (r *fruitRepository) GetByID(id uuid.UUID) (*models.Fruit, error) {
	var fruit models.Fruit
	err := r.db.First(&fruit, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &fruit, nil
}

func (r *fruitRepository) GetAll() ([]models.Fruit, error) {
	var fruits []models.Fruit
	err := r.db.Order("name ASC").Find(&fruits).Error
	return fruits, err
}

func (r *fruitRepository) Update(fruit *models.Fruit) error {
	return r.db.Save(fruit).Error
}

func (r *fruitRepository) UpdateStock(id uuid.UUID, stock int) error {
	return r.db.Model(&models.Fruit{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *fruitRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Fruit{}, "id = ?", id).Error
}
