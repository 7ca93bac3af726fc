package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockHistory is the append-only audit log of stock movements. One row per
// mutation, never updated or deleted.
type StockHistory struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FruitID     uuid.UUID `json:"fruit_id" gorm:"type:uuid;not null;index"`
	Fruit       *Fruit    `json:"fruit,omitempty" gorm:"foreignKey:FruitID"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Type        string    `json:"type" gorm:"not null"` // StockMovement
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *StockHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

type StockMovement string

const (
	StockIn  StockMovement = "in"
	StockOut StockMovement = "out"
)
