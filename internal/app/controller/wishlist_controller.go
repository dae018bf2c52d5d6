package controller

import (
	"errors"
	"net/http"

	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	apperrors "github.com/belanjaku/belanjaku-backend/internal/errors"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type WishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist lists the user's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	items, err := ctrl.wishlistService.GetWishlist(userID)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// AddToWishlist saves a product to the wishlist
// POST /api/v1/wishlist
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid wishlist data")
		return
	}

	item, err := ctrl.wishlistService.AddToWishlist(userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrAlreadyInWishlist):
			apperrors.Conflict(c, apperrors.WishlistItemExists, "Product already in wishlist")
		default:
			log.Error("Failed to add to wishlist", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to wishlist")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item": item,
	})
}

// RemoveFromWishlist drops a product from the wishlist
// DELETE /api/v1/wishlist/:productId
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.wishlistService.RemoveFromWishlist(userID, productID); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			apperrors.NotFound(c, apperrors.WishlistItemNotFound, "Product not in wishlist")
			return
		}
		log.Error("Failed to remove from wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to remove from wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from wishlist",
	})
}

// ToggleWishlist flips wishlist membership for a product
// POST /api/v1/wishlist/toggle
func (ctrl *WishlistController) ToggleWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid wishlist data")
		return
	}

	added, err := ctrl.wishlistService.ToggleWishlist(userID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to toggle wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to toggle wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"added": added,
	})
}
