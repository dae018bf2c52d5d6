package repository

import (
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUser(userID uint) ([]model.CartItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.CartItem, error)
	Create(item *model.CartItem) error
	Update(item *model.CartItem) error
	Delete(id uint) error
	DeleteByUser(userID uint) error
	DeleteByUserTx(tx *gorm.DB, userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUser(userID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items for user in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.CartItem
	err := r.db.
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Discounts").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (r *cartRepository) FindByUserAndProduct(userID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Update(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart item in database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByUser(userID uint) error {
	return r.DeleteByUserTx(r.db, userID)
}

func (r *cartRepository) DeleteByUserTx(tx *gorm.DB, userID uint) error {
	logger.Debug("Clearing cart for user in database", map[string]interface{}{
		"user_id": userID,
	})

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
