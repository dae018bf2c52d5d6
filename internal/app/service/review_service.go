package service

import (
	"errors"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this order item")
	ErrReviewNotAllowed    = errors.New("review not allowed for this order item")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

type ReviewInput struct {
	OrderItemID uint
	Rating      int
	Comment     string
	ImageURLs   []string
}

// ReviewUpdate carries the fields an owner may change after posting.
type ReviewUpdate struct {
	Rating  int
	Comment string
}

// ProductReviews bundles a product's reviews with their aggregates.
type ProductReviews struct {
	Reviews       []model.ProductReview `json:"reviews"`
	AverageRating float64               `json:"average_rating"`
	ReviewCount   int64                 `json:"review_count"`
}

type ReviewService interface {
	CreateReview(userID uint, input ReviewInput) (*model.ProductReview, error)
	GetProductReviews(productID uint) (*ProductReviews, error)
	GetUserReviews(userID uint) ([]model.ProductReview, error)
	UpdateReview(userID, reviewID uint, input ReviewUpdate) (*model.ProductReview, error)
	DeleteReview(userID, reviewID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		db:          db,
	}
}

// CreateReview accepts one review per purchased order item, from the buyer,
// after the order completed.
func (s *reviewService) CreateReview(userID uint, input ReviewInput) (*model.ProductReview, error) {
	logger.Info("Creating review", map[string]interface{}{
		"user_id":       userID,
		"order_item_id": input.OrderItemID,
		"rating":        input.Rating,
	})

	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var orderItem model.OrderItem
	if err := s.db.First(&orderItem, input.OrderItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order item not found for review", map[string]interface{}{
				"order_item_id": input.OrderItemID,
			})
			return nil, ErrReviewNotAllowed
		}
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderItem.OrderID)
	if err != nil {
		logger.Error("Failed to fetch order for review", err, map[string]interface{}{
			"order_id": orderItem.OrderID,
		})
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Review denied: order belongs to another user", map[string]interface{}{
			"user_id":       userID,
			"order_item_id": input.OrderItemID,
		})
		return nil, ErrReviewNotAllowed
	}
	if order.Status != model.OrderStatusCompleted {
		logger.Warn("Review denied: order not completed", map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
			"status":   order.Status,
		})
		return nil, ErrReviewNotAllowed
	}

	if _, err := s.reviewRepo.FindByOrderItemID(input.OrderItemID); err == nil {
		logger.Warn("Review denied: already reviewed", map[string]interface{}{
			"user_id":       userID,
			"order_item_id": input.OrderItemID,
		})
		return nil, ErrReviewAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &model.ProductReview{
		ProductID:   orderItem.ProductID,
		UserID:      userID,
		OrderItemID: input.OrderItemID,
		Rating:      input.Rating,
		Comment:     input.Comment,
		ImageURLs:   pq.StringArray(input.ImageURLs),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"user_id":       userID,
			"order_item_id": input.OrderItemID,
		})
		return nil, err
	}

	logger.Info("Review created successfully", map[string]interface{}{
		"review_id": review.ID,
	})
	return review, nil
}

func (s *reviewService) GetProductReviews(productID uint) (*ProductReviews, error) {
	logger.Debug("Fetching product reviews", map[string]interface{}{
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProductID(productID)
	if err != nil {
		return nil, err
	}

	rating, count, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, err
	}

	return &ProductReviews{
		Reviews:       reviews,
		AverageRating: rating,
		ReviewCount:   count,
	}, nil
}

func (s *reviewService) GetUserReviews(userID uint) ([]model.ProductReview, error) {
	return s.reviewRepo.FindByUserID(userID)
}

// UpdateReview changes the rating or comment of a review owned by the given
// user. The order item binding never changes.
func (s *reviewService) UpdateReview(userID, reviewID uint, input ReviewUpdate) (*model.ProductReview, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if review.UserID != userID {
		return nil, ErrReviewNotAllowed
	}

	if input.Rating != 0 {
		if input.Rating < 1 || input.Rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = input.Rating
	}
	if input.Comment != "" {
		review.Comment = input.Comment
	}

	if err := s.reviewRepo.Update(review); err != nil {
		logger.Error("Failed to update review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}

	logger.Info("Review updated", map[string]interface{}{
		"review_id": reviewID,
		"user_id":   userID,
	})
	return review, nil
}

// DeleteReview removes a review owned by the given user. Other users' reviews
// are reported as not allowed rather than not found.
func (s *reviewService) DeleteReview(userID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != userID {
		logger.Warn("Review delete rejected for non-owner", map[string]interface{}{
			"review_id": reviewID,
			"user_id":   userID,
		})
		return ErrReviewNotAllowed
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id": reviewID,
		"user_id":   userID,
	})
	return nil
}
