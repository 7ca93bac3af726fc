package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fruit is a catalog product. Price keeps the display format used by the
// storefront (e.g. "Rp 35.000/kg"); the numeric amount is parsed at order time.
type Fruit struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Price     string         `json:"price" gorm:"not null"`
	Stock     int            `json:"stock" gorm:"not null;default:0"`
	Image     string         `json:"image"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

func (f *Fruit) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
