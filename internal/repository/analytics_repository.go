package repository

import (
	"time"

	"fruitstore/internal/models"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	Create(analytics *models.Analytics) error
	GetByDate(date time.Time) (*models.Analytics, error)
	Update(analytics *models.Analytics) error
	GetByDateRange(startDate, endDate time.Time) ([]models.Analytics, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Create(analytics *models.Analytics) error {
	return r.db.Create(analytics).Error
}

func (r *analyticsRepository) GetByDate(date time.Time) (*models.Analytics, error) {
	var analytics models.Analytics
	err := r.db.Where("date = ?", date).First(&analytics).Error
	if err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (r *analyticsRepository) Update(analytics *models.Analytics) error {
	return r.db.Save(analytics).Error
}

func (r *analyticsRepository) GetByDateRange(startDate, endDate time.Time) ([]models.Analytics, error) {
	var rows []models.Analytics
	err := r.db.Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date ASC").Find(&rows).Error
	return rows, err
}
