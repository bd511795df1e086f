package models

import "time"

// Payment represents a payment attempt for an order
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"paymentId"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	Amount        float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentStatus string    `gorm:"default:PENDING;not null;index" json:"paymentStatus"`
	PaymentMethod string    `gorm:"not null" json:"paymentMethod"`
	TransactionID string    `gorm:"uniqueIndex" json:"transactionId"`
	PaymentDate   time.Time `gorm:"index" json:"paymentDate"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Payment status constants. Only COMPLETED payments count toward revenue.
const (
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusPending   = "PENDING"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusRefunded  = "REFUNDED"
)

// Payment method constants
const (
	PaymentMethodCard   = "CARD"
	PaymentMethodUPI    = "UPI"
	PaymentMethodCOD    = "COD"
	PaymentMethodWallet = "WALLET"
)

// IsCompleted returns true if the payment settled successfully
func (p *Payment) IsCompleted() bool {
	return p.PaymentStatus == PaymentStatusCompleted
}
