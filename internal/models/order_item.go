package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem snapshots the unit price at order time. Rows are never updated
// after creation.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	FruitID   uuid.UUID `json:"fruit_id" gorm:"type:uuid;not null;index"`
	Fruit     *Fruit    `json:"fruit,omitempty" gorm:"foreignKey:FruitID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Subtotal  float64   `json:"subtotal" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
