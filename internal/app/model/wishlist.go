package model

import (
	"time"
)

// WishlistItem rows are hard-deleted so the (user, product) membership pair
// can be toggled on and off freely.
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	// Associations (loaded with Preload)
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
