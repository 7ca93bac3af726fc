package services

import (
	"errors"
	"time"

	"fruitstore/internal/models"
	"fruitstore/internal/repository"

	"gorm.io/gorm"
)

type AnalyticsService interface {
	Record(orderTotal float64) error
	GetByDateRange(startDate, endDate time.Time) ([]models.Analytics, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: analyticsRepo}
}

// Record folds an order total into today's aggregate row, creating the row on
// first order of the day. CustomerCount is set to 1 on creation and never
// recomputed on later orders, a known simplification. Callers treat failures
// as best-effort: they log the error and carry on.
func (s *analyticsService) Record(orderTotal float64) error {
	today := truncateToMidnight(time.Now())

	analytics, err := s.analyticsRepo.GetByDate(today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.analyticsRepo.Create(&models.Analytics{
				Date:          today,
				TotalSales:    orderTotal,
				OrderCount:    1,
				CustomerCount: 1,
			})
		}
		return err
	}

	analytics.TotalSales += orderTotal
	analytics.OrderCount++
	return s.analyticsRepo.Update(analytics)
}

func (s *analyticsService) GetByDateRange(startDate, endDate time.Time) ([]models.Analytics, error) {
	return s.analyticsRepo.GetByDateRange(truncateToMidnight(startDate), truncateToMidnight(endDate))
}

func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
