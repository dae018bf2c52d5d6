package model

import (
	"time"

	"gorm.io/gorm"
)

type Discount struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProductID  uint           `gorm:"not null;index" json:"product_id"`
	Name       string         `gorm:"not null" json:"name"`
	Percentage float64        `gorm:"not null" json:"percentage"`
	StartDate  time.Time      `gorm:"not null" json:"start_date"`
	EndDate    time.Time      `gorm:"not null;index" json:"end_date"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Discount) TableName() string {
	return "discounts"
}

// ActiveAt reports whether the discount applies at the given instant.
// A discount is active while its end date is strictly in the future.
func (d *Discount) ActiveAt(now time.Time) bool {
	return d.EndDate.After(now)
}
