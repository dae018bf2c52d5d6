package repository

import (
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.ProductReview) error
	FindByID(id uint) (*model.ProductReview, error)
	FindByProductID(productID uint) ([]model.ProductReview, error)
	FindByUserID(userID uint) ([]model.ProductReview, error)
	FindByOrderItemID(orderItemID uint) (*model.ProductReview, error)
	AverageRating(productID uint) (float64, int64, error)
	Update(review *model.ProductReview) error
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.ProductReview) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"product_id":    review.ProductID,
		"user_id":       review.UserID,
		"order_item_id": review.OrderItemID,
		"rating":        review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"product_id":    review.ProductID,
			"order_item_id": review.OrderItemID,
		})
		return err
	}

	logger.Debug("Review created in database", map[string]interface{}{
		"review_id": review.ID,
	})
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.ProductReview, error) {
	var review model.ProductReview
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByProductID(productID uint) ([]model.ProductReview, error) {
	logger.Debug("Finding reviews by product in database", map[string]interface{}{
		"product_id": productID,
	})

	var reviews []model.ProductReview
	err := r.db.
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by product in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUserID(userID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := r.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByOrderItemID(orderItemID uint) (*model.ProductReview, error) {
	var review model.ProductReview
	err := r.db.Where("order_item_id = ?", orderItemID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) AverageRating(productID uint) (float64, int64, error) {
	var count int64
	err := r.db.Model(&model.ProductReview{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg *float64
	err = r.db.Model(&model.ProductReview{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		logger.Error("Failed to compute average rating in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, 0, err
	}

	rating := 0.0
	if avg != nil {
		rating = *avg
	}
	return rating, count, nil
}

func (r *reviewRepository) Update(review *model.ProductReview) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review in database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.ProductReview{}, id).Error; err != nil {
		logger.Error("Failed to delete review in database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}
