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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	ShippingMethod string `json:"shipping_method" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	RecipientName  string `json:"recipient_name" binding:"required"`
	Address        string `json:"address" binding:"required"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Phone          string `json:"phone"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// Checkout turns the cart into a pending order
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid checkout data")
		return
	}

	order, err := ctrl.orderService.CreateOrderFromCart(userID, service.CheckoutInput{
		ShippingMethod: model.ShippingMethod(req.ShippingMethod),
		PaymentMethod:  model.PaymentMethod(req.PaymentMethod),
		RecipientName:  req.RecipientName,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Phone:          req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
		case errors.Is(err, service.ErrInvalidShippingMethod):
			apperrors.BadRequest(c, apperrors.OrderInvalidShipping, "Unknown shipping method")
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			apperrors.BadRequest(c, apperrors.OrderInvalidPayment, "Unknown payment method")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "A product in the cart no longer exists")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.ProductOutOfStock, "Not enough stock available")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create order")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// GetOrders lists the user's own orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// CancelOrder cancels one of the user's own pending orders
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.CancelOrder(userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			apperrors.Conflict(c, apperrors.OrderInvalidTransition, "Order can no longer be cancelled")
		default:
			log.Error("Failed to cancel order", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			apperrors.InternalError(c, "Failed to cancel order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// ListOrders lists all orders, optionally by status (admin)
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := c.Query("status")
	orders, err := ctrl.orderService.ListOrders(status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			apperrors.BadRequest(c, apperrors.OrderInvalidTransition, "Unknown order status")
			return
		}
		log.Error("Failed to list orders", err, map[string]interface{}{
			"status": status,
		})
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus moves an order along the status table (admin)
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid status data")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			apperrors.Conflict(c, apperrors.OrderInvalidTransition, "Status transition not allowed")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": orderID,
				"status":   req.Status,
			})
			apperrors.InternalError(c, "Failed to update order status")
		}
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}
