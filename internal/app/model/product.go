package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	ImageURL      string         `json:"image_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Discounts  []Discount  `gorm:"foreignKey:ProductID" json:"discounts,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// BestActiveDiscount returns the active discount (end date strictly in the
// future at `now`) with the highest percentage. Ties are broken by the
// latest-expiring discount. Returns nil when no discount is active.
func (p *Product) BestActiveDiscount(now time.Time) *Discount {
	var best *Discount
	for i := range p.Discounts {
		d := &p.Discounts[i]
		if !d.ActiveAt(now) {
			continue
		}
		if best == nil ||
			d.Percentage > best.Percentage ||
			(d.Percentage == best.Percentage && d.EndDate.After(best.EndDate)) {
			best = d
		}
	}
	return best
}

// EffectivePrice is the list price after applying the best active discount,
// or the list price itself when no discount is active.
func (p *Product) EffectivePrice(now time.Time) float64 {
	if d := p.BestActiveDiscount(now); d != nil {
		return p.Price * (1 - d.Percentage/100)
	}
	return p.Price
}
