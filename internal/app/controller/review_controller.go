package controller

import (
	"errors"
	"net/http"

	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	apperrors "github.com/belanjaku/belanjaku-backend/internal/errors"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	OrderItemID uint     `json:"order_item_id" binding:"required"`
	Rating      int      `json:"rating" binding:"required,min=1,max=5"`
	Comment     string   `json:"comment" binding:"required"`
	ImageURLs   []string `json:"image_urls"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview posts a review for a purchased order item
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, service.ReviewInput{
		OrderItemID: req.OrderItemID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrReviewNotAllowed):
			apperrors.Forbidden(c, "Only completed purchases can be reviewed")
		case errors.Is(err, service.ErrReviewAlreadyExists):
			apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "This purchase has already been reviewed")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"user_id":       userID,
				"order_item_id": req.OrderItemID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create review")
		}
		return
	}

	log.Info("Review created", map[string]interface{}{
		"user_id":   userID,
		"review_id": review.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"review": review,
	})
}

// GetProductReviews lists reviews for a product with aggregates
// GET /api/v1/products/:id/reviews
func (ctrl *ReviewController) GetProductReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	result, err := ctrl.reviewService.GetProductReviews(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyReviews lists the authenticated user's reviews
// GET /api/v1/reviews/me
func (ctrl *ReviewController) GetMyReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	reviews, err := ctrl.reviewService.GetUserReviews(userID)
	if err != nil {
		log.Error("Failed to fetch user reviews", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// UpdateReview edits one of the authenticated user's reviews
// PUT /api/v1/reviews/:id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.UpdateReview(userID, reviewID, service.ReviewUpdate{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrReviewNotAllowed):
			apperrors.Forbidden(c, "You can only edit your own reviews")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		default:
			log.Error("Failed to update review", err, map[string]interface{}{
				"review_id": reviewID,
				"user_id":   userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update review")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review": review,
	})
}

// DeleteReview removes one of the authenticated user's reviews
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	if err := ctrl.reviewService.DeleteReview(userID, reviewID); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrReviewNotAllowed):
			apperrors.Forbidden(c, "You can only delete your own reviews")
		default:
			log.Error("Failed to delete review", err, map[string]interface{}{
				"review_id": reviewID,
				"user_id":   userID,
			})
			apperrors.InternalError(c, "Failed to delete review")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
	})
}
