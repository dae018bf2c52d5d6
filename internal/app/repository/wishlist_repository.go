package repository

import (
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	FindByUser(userID uint) ([]model.WishlistItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error)
	Create(item *model.WishlistItem) error
	Delete(id uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) FindByUser(userID uint) ([]model.WishlistItem, error) {
	logger.Debug("Finding wishlist items for user in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.WishlistItem
	err := r.db.
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Discounts").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) Delete(id uint) error {
	logger.Debug("Deleting wishlist item in database", map[string]interface{}{
		"wishlist_item_id": id,
	})

	if err := r.db.Delete(&model.WishlistItem{}, id).Error; err != nil {
		logger.Error("Failed to delete wishlist item in database", err, map[string]interface{}{
			"wishlist_item_id": id,
		})
		return err
	}
	return nil
}
