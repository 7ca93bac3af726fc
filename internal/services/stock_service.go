package services

import (
	"errors"
	"log"

	"fruitstore/internal/models"
	"fruitstore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockItem is one line of a batch stock adjustment.
type StockItem struct {
	FruitID  uuid.UUID
	Quantity int
}

// StockApplyResult reports which lines of a batch decrement were applied and
// which were skipped, so callers can assert on degraded-but-successful
// outcomes instead of a bare boolean.
type StockApplyResult struct {
	Applied []uuid.UUID
	Skipped []uuid.UUID
}

// Partial reports whether any line was skipped.
func (r StockApplyResult) Partial() bool {
	return len(r.Skipped) > 0
}

type StockService interface {
	DecrementForOrder(items []StockItem) StockApplyResult
	AddStock(fruitID uuid.UUID, quantity int, description string) error
	HistoryFor(fruitID uuid.UUID) ([]models.StockHistory, error)
}

type stockService struct {
	fruitRepo   repository.FruitRepository
	historyRepo repository.StockHistoryRepository
}

func NewStockService(fruitRepo repository.FruitRepository, historyRepo repository.StockHistoryRepository) StockService {
	return &stockService{fruitRepo: fruitRepo, historyRepo: historyRepo}
}

// DecrementForOrder applies the quantity of each order line to its fruit's
// stock, clamping at zero, and appends an "out" audit entry per applied line.
// Lines referencing a missing fruit are logged and skipped; the rest of the
// batch still proceeds. Lines are processed sequentially with no rollback.
func (s *stockService) DecrementForOrder(items []StockItem) StockApplyResult {
	var result StockApplyResult

	for _, item := range items {
		fruit, err := s.fruitRepo.GetByID(item.FruitID)
		if err != nil {
			log.Printf("Stock decrement: fruit %s not found, skipping: %v", item.FruitID, err)
			result.Skipped = append(result.Skipped, item.FruitID)
			continue
		}

		newStock := fruit.Stock - item.Quantity
		if newStock < 0 {
			newStock = 0
		}

		if err := s.fruitRepo.UpdateStock(fruit.ID, newStock); err != nil {
			log.Printf("Stock decrement: failed to update fruit %s: %v", fruit.ID, err)
			result.Skipped = append(result.Skipped, item.FruitID)
			continue
		}

		entry := &models.StockHistory{
			FruitID:     fruit.ID,
			Quantity:    item.Quantity,
			Type:        string(models.StockOut),
			Description: "Stock deducted for order",
		}
		if err := s.historyRepo.Create(entry); err != nil {
			log.Printf("Stock decrement: failed to record history for fruit %s: %v", fruit.ID, err)
		}

		result.Applied = append(result.Applied, item.FruitID)
	}

	return result
}

// AddStock is the explicit admin path, so a missing fruit is an error rather
// than a silent skip.
func (s *stockService) AddStock(fruitID uuid.UUID, quantity int, description string) error {
	fruit, err := s.fruitRepo.GetByID(fruitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFruitNotFound
		}
		return err
	}

	if err := s.fruitRepo.UpdateStock(fruit.ID, fruit.Stock+quantity); err != nil {
		return err
	}

	if description == "" {
		description = "Manual stock addition"
	}
	entry := &models.StockHistory{
		FruitID:     fruit.ID,
		Quantity:    quantity,
		Type:        string(models.StockIn),
		Description: description,
	}
	return s.historyRepo.Create(entry)
}

func (s *stockService) HistoryFor(fruitID uuid.UUID) ([]models.StockHistory, error) {
	return s.historyRepo.GetByFruitID(fruitID)
}
