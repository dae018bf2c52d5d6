package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type ShippingMethod string
type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"    // created at checkout, awaiting payment
	OrderStatusProcessing OrderStatus = "processing" // payment proof received
	OrderStatusCompleted  OrderStatus = "completed"  // fulfilled, terminal
	OrderStatusCancelled  OrderStatus = "cancelled"  // terminal

	ShippingRegular ShippingMethod = "regular"
	ShippingExpress ShippingMethod = "express"

	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodEwallet      PaymentMethod = "ewallet"
	PaymentMethodCOD          PaymentMethod = "cod"
)

// orderTransitions is the closed transition table for order statuses.
// Anything not listed here is an invalid transition.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether a status string is part of the closed set.
func ValidOrderStatus(status string) bool {
	_, ok := orderTransitions[OrderStatus(status)]
	return ok
}

// ShippingCost returns the flat shipping rate for a method, or false for an
// unknown method.
func (m ShippingMethod) ShippingCost() (float64, bool) {
	switch m {
	case ShippingRegular:
		return 10000, true
	case ShippingExpress:
		return 20000, true
	}
	return 0, false
}

// ValidPaymentMethod reports whether a payment method string is supported.
func ValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentMethodBankTransfer, PaymentMethodEwallet, PaymentMethodCOD:
		return true
	}
	return false
}

type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNumber    string         `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Status         OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Subtotal       float64        `gorm:"not null" json:"subtotal"`
	ShippingCost   float64        `gorm:"not null" json:"shipping_cost"`
	TotalAmount    float64        `gorm:"not null" json:"total_amount"`
	ShippingMethod ShippingMethod `gorm:"type:varchar(20)" json:"shipping_method"`
	PaymentMethod  PaymentMethod  `gorm:"type:varchar(20)" json:"payment_method"`
	RecipientName  string         `gorm:"not null" json:"recipient_name"`
	Address        string         `gorm:"type:text;not null" json:"address"`
	City           string         `json:"city"`
	PostalCode     string         `json:"postal_code"`
	Phone          string         `json:"phone"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	Payment    *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	// ProductName and Price are snapshots taken at checkout. Later catalog
	// edits never change what the customer agreed to pay.
	ProductName string         `gorm:"not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	Price       float64        `gorm:"not null" json:"price"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
