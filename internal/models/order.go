package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber string         `json:"order_number" gorm:"unique;not null"`
	CustomerID  uuid.UUID      `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer    *Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Total       float64        `json:"total" gorm:"not null"`
	Payment     string         `json:"payment" gorm:"not null"`            // PaymentType
	Status      string         `json:"status" gorm:"default:'PROCESSING'"` // OrderStatus
	Notes       string         `json:"notes" gorm:"type:text"`
	Items       []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderStatus string

const (
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type PaymentType string

const (
	PaymentCash          PaymentType = "CASH"
	PaymentTransfer      PaymentType = "TRANSFER"
	PaymentDigitalWallet PaymentType = "DIGITAL_WALLET"
	PaymentCreditCard    PaymentType = "CREDIT_CARD"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// ValidPaymentType reports whether p is one of the known payment methods.
func ValidPaymentType(p string) bool {
	switch PaymentType(p) {
	case PaymentCash, PaymentTransfer, PaymentDigitalWallet, PaymentCreditCard:
		return true
	}
	return false
}
