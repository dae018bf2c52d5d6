package model

import (
	"time"
)

// CartItem rows are hard-deleted: a cart line is gone once removed or checked
// out, and the unique (user, product) pair must stay reusable.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
