package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// ValidRole reports whether a role string is one of the closed role set.
// Roles are a closed enum; authorization never dispatches on raw strings.
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders        []Order        `gorm:"foreignKey:UserID" json:"-"`
	CartItems     []CartItem     `gorm:"foreignKey:UserID" json:"-"`
	WishlistItems []WishlistItem `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
