package model

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // proof uploaded, awaiting admin check
	PaymentStatusConfirmed PaymentStatus = "confirmed" // transfer verified
	PaymentStatusRejected  PaymentStatus = "rejected"  // proof rejected
)

// Payment is the manual bank-transfer record for an order. OrderID is unique:
// re-uploading a proof replaces the existing record instead of inserting a
// second one.
type Payment struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"not null;uniqueIndex" json:"order_id"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Method      PaymentMethod  `gorm:"type:varchar(20);not null" json:"method"`
	Status      PaymentStatus  `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ProofFile   string         `gorm:"not null" json:"proof_file"`
	PaymentDate time.Time      `json:"payment_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
