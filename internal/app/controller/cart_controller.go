package controller

import (
	"errors"
	"net/http"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	apperrors "github.com/belanjaku/belanjaku-backend/internal/errors"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the user's cart with computed pricing
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// AddToCart adds a product to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add-to-cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid cart data")
		return
	}

	item, err := ctrl.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.ProductOutOfStock, "Not enough stock available")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be positive")
		default:
			log.Error("Failed to add to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to cart")
		}
		return
	}

	log.Info("Product added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"item": item,
	})
}

// UpdateCartItem changes a cart line's quantity
// PUT /api/v1/cart/items/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid cart data")
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(userID, itemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.ProductOutOfStock, "Not enough stock available")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be positive")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": itemID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// RemoveCartItem deletes a cart line
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, itemID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		apperrors.InternalError(c, "Failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed",
	})
}

// ClearCart removes every line in the user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// CheckoutPreview returns the priced cart together with the shipping and
// payment options, the data a checkout form renders from
// GET /api/v1/cart/checkout
func (ctrl *CartController) CheckoutPreview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	if len(cart.Items) == 0 {
		apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
		return
	}

	regularCost, _ := model.ShippingRegular.ShippingCost()
	expressCost, _ := model.ShippingExpress.ShippingCost()

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
		"shipping_methods": []gin.H{
			{"method": model.ShippingRegular, "cost": regularCost},
			{"method": model.ShippingExpress, "cost": expressCost},
		},
		"payment_methods": []model.PaymentMethod{
			model.PaymentMethodBankTransfer,
			model.PaymentMethodEwallet,
			model.PaymentMethodCOD,
		},
	})
}
