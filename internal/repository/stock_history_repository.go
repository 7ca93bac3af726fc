package repository

import (
	"fruitstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockHistoryRepository is append-only: entries are created and listed,
// never updated or deleted.
type StockHistoryRepository interface {
	Create(entry *models.StockHistory) error
	GetByFruitID(fruitID uuid.UUID) ([]models.StockHistory, error)
}

type stockHistoryRepository struct {
	db *gorm.DB
}

func NewStockHistoryRepository(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepository{db: db}
}

func (r *stockHistoryRepository) Create(entry *models.StockHistory) error {
	return r.db.Create(entry).Error
}

func (r *stockHistoryRepository) GetByFruitID(fruitID uuid.UUID) ([]models.StockHistory, error) {
	var history []models.StockHistory
	err := r.db.Preload("Fruit").Where("fruit_id = ?", fruitID).
		Order("created_at DESC").Find(&history).Error
	return history, err
}
