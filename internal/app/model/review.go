package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ProductReview is tied to a single purchased order item: one review per
// completed order line, written by the buyer.
type ProductReview struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ProductID   uint           `gorm:"not null;index" json:"product_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	OrderItemID uint           `gorm:"not null;uniqueIndex" json:"order_item_id"`
	Rating      int            `gorm:"not null" json:"rating"` // 1-5
	Comment     string         `gorm:"type:text;not null" json:"comment"`
	ImageURLs   pq.StringArray `gorm:"type:text[]" json:"image_urls,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItem OrderItem `gorm:"foreignKey:OrderItemID" json:"-"`
}

func (ProductReview) TableName() string {
	return "product_reviews"
}
