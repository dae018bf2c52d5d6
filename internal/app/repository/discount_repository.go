package repository

import (
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(discount *model.Discount) error
	FindByID(id uint) (*model.Discount, error)
	FindByProductID(productID uint) ([]model.Discount, error)
	Delete(id uint) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(discount *model.Discount) error {
	logger.Debug("Creating discount in database", map[string]interface{}{
		"product_id": discount.ProductID,
		"name":       discount.Name,
	})

	if err := r.db.Create(discount).Error; err != nil {
		logger.Error("Failed to create discount in database", err, map[string]interface{}{
			"product_id": discount.ProductID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) FindByID(id uint) (*model.Discount, error) {
	var discount model.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) FindByProductID(productID uint) ([]model.Discount, error) {
	var discounts []model.Discount
	if err := r.db.Where("product_id = ?", productID).Order("end_date DESC").Find(&discounts).Error; err != nil {
		logger.Error("Failed to find discounts by product in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return discounts, nil
}

func (r *discountRepository) Delete(id uint) error {
	logger.Debug("Deleting discount in database", map[string]interface{}{
		"discount_id": id,
	})

	if err := r.db.Delete(&model.Discount{}, id).Error; err != nil {
		logger.Error("Failed to delete discount in database", err, map[string]interface{}{
			"discount_id": id,
		})
		return err
	}
	return nil
}
