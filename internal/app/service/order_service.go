package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"github.com/belanjaku/belanjaku-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidShippingMethod   = errors.New("invalid shipping method")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// CheckoutInput carries the shipping and payment selections made at
// checkout.
type CheckoutInput struct {
	ShippingMethod model.ShippingMethod
	PaymentMethod  model.PaymentMethod
	RecipientName  string
	Address        string
	City           string
	PostalCode     string
	Phone          string
}

type OrderService interface {
	CreateOrderFromCart(userID uint, input CheckoutInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderForUser(userID, orderID uint) (*model.Order, error)
	CancelOrder(userID, orderID uint) (*model.Order, error)
	ListOrders(status string) ([]model.Order, error)
	GetOrder(orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	CancelStalePendingOrders(olderThan time.Duration) (int, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		db:        db,
	}
}

// CreateOrderFromCart turns the user's cart into a pending order in a single
// transaction: stock is locked and decremented, prices are snapshotted at
// their current effective value, and the cart is cleared. Any failure leaves
// cart, stock and orders untouched.
func (s *orderService) CreateOrderFromCart(userID uint, input CheckoutInput) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":         userID,
		"shipping_method": input.ShippingMethod,
		"payment_method":  input.PaymentMethod,
	})

	shippingCost, ok := input.ShippingMethod.ShippingCost()
	if !ok {
		logger.Warn("Checkout rejected: unknown shipping method", map[string]interface{}{
			"user_id":         userID,
			"shipping_method": input.ShippingMethod,
		})
		return nil, ErrInvalidShippingMethod
	}
	if !model.ValidPaymentMethod(string(input.PaymentMethod)) {
		logger.Warn("Checkout rejected: unknown payment method", map[string]interface{}{
			"user_id":        userID,
			"payment_method": input.PaymentMethod,
		})
		return nil, ErrInvalidPaymentMethod
	}

	cartItems, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	now := time.Now()

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		subtotal   float64
		orderItems []model.OrderItem
	)

	for _, cartItem := range cartItems {
		var product model.Product
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Discounts", "end_date > ?", now).
			First(&product, cartItem.ProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dead cart line, dropped the same way the cart view
				// resolves it.
				logger.Warn("Product disappeared during checkout, dropping line", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
				continue
			}
			tx.Rollback()
			logger.Error("Failed to fetch product during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}

		if product.StockQuantity < cartItem.Quantity {
			tx.Rollback()
			logger.Warn("Checkout rejected: insufficient stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
				"requested":  cartItem.Quantity,
				"available":  product.StockQuantity,
			})
			return nil, ErrInsufficientStock
		}

		// Snapshot: the customer pays the effective price at checkout time
		unitPrice := product.EffectivePrice(now)
		orderItems = append(orderItems, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    cartItem.Quantity,
			Price:       unitPrice,
		})
		subtotal += unitPrice * float64(cartItem.Quantity)

		err = tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", cartItem.Quantity)).Error
		if err != nil {
			tx.Rollback()
			logger.Error("Failed to decrement stock during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
			})
			return nil, err
		}
	}

	if len(orderItems) == 0 {
		tx.Rollback()
		logger.Warn("Checkout rejected: no cart line resolved to a product", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	order := &model.Order{
		OrderNumber:    util.GenerateOrderNumber(now),
		UserID:         userID,
		Status:         model.OrderStatusPending,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		TotalAmount:    subtotal + shippingCost,
		ShippingMethod: input.ShippingMethod,
		PaymentMethod:  input.PaymentMethod,
		RecipientName:  input.RecipientName,
		Address:        input.Address,
		City:           input.City,
		PostalCode:     input.PostalCode,
		Phone:          input.Phone,
		OrderItems:     orderItems,
	}

	if err := s.orderRepo.CreateTx(tx, order); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.cartRepo.DeleteByUserTx(tx, userID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"item_count":   len(orderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

// GetOrderForUser answers not-found for orders belonging to other users so
// order IDs cannot be probed.
func (s *orderService) GetOrderForUser(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order access denied", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) CancelOrder(userID, orderID uint) (*model.Order, error) {
	logger.Info("Cancelling order", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	order, err := s.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}

	return s.transition(order, model.OrderStatusCancelled)
}

func (s *orderService) ListOrders(status string) ([]model.Order, error) {
	if status != "" && !model.ValidOrderStatus(status) {
		return nil, ErrInvalidStatusTransition
	}
	return s.orderRepo.FindAll(status)
}

func (s *orderService) GetOrder(orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !model.ValidOrderStatus(string(status)) {
		return nil, ErrInvalidStatusTransition
	}

	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	return s.transition(order, status)
}

// transition applies a status change after checking it against the closed
// transition table.
func (s *orderService) transition(order *model.Order, to model.OrderStatus) (*model.Order, error) {
	if !model.CanTransition(order.Status, to) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": order.ID,
			"from":     order.Status,
			"to":       to,
		})
		return nil, ErrInvalidStatusTransition
	}

	if err := s.orderRepo.UpdateStatus(order.ID, to); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": order.ID,
			"status":   to,
		})
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": order.ID,
		"from":     order.Status,
		"to":       to,
	})

	return s.orderRepo.FindByID(order.ID)
}

// CancelStalePendingOrders cancels pending orders whose payment window has
// lapsed. Orders that moved out of pending since the scan are skipped.
func (s *orderService) CancelStalePendingOrders(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	logger.Info("Cancelling stale pending orders", map[string]interface{}{
		"cutoff": cutoff,
	})

	orders, err := s.orderRepo.FindStalePending(cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, order := range orders {
		if !model.CanTransition(order.Status, model.OrderStatusCancelled) {
			continue
		}
		if err := s.orderRepo.UpdateStatus(order.ID, model.OrderStatusCancelled); err != nil {
			logger.Error("Failed to cancel stale order", err, map[string]interface{}{
				"order_id": order.ID,
			})
			continue
		}
		cancelled++
	}

	logger.Info("Stale pending orders cancelled", map[string]interface{}{
		"count": cancelled,
	})
	return cancelled, nil
}
