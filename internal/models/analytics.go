package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Analytics holds one aggregate row per calendar day. Date is truncated to
// midnight and carries a unique index, so there is exactly one row per day.
type Analytics struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Date          time.Time `json:"date" gorm:"uniqueIndex;not null"`
	TotalSales    float64   `json:"total_sales" gorm:"default:0"`
	OrderCount    int       `json:"order_count" gorm:"default:0"`
	CustomerCount int       `json:"customer_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (a *Analytics) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
