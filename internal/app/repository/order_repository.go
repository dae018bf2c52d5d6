package repository

import (
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

// AdminOrderStats feeds the admin dashboard.
type AdminOrderStats struct {
	TotalOrders    int64
	PendingOrders  int64
	TotalRevenue   float64
	TotalProducts  int64
	TotalCustomers int64
}

// CustomerOrderStats feeds a customer's own dashboard.
type CustomerOrderStats struct {
	TotalOrders      int64
	PendingOrders    int64
	ProcessingOrders int64
	CompletedOrders  int64
}

type OrderRepository interface {
	CreateTx(tx *gorm.DB, order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Order, error)
	FindByOrderNumber(orderNumber string) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindAll(status string) ([]model.Order, error)
	FindRecent(limit int) ([]model.Order, error)
	FindRecentByUser(userID uint, limit int) ([]model.Order, error)
	FindStalePending(before time.Time) ([]model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) error
	UpdateStatusTx(tx *gorm.DB, id uint, status model.OrderStatus) error
	GetAdminStats() (*AdminOrderStats, error)
	GetCustomerStats(userID uint) (*CustomerOrderStats, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("Payment")
}

func (r *orderRepository) CreateTx(tx *gorm.DB, order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"item_count":   len(order.OrderItems),
	})

	if err := tx.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"order_number": order.OrderNumber,
			"user_id":      order.UserID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDTx(tx *gorm.DB, id uint) (*model.Order, error) {
	var order model.Order
	if err := tx.Preload("OrderItems").Preload("Payment").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByOrderNumber(orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.preloadOrder().Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		logger.Error("Failed to find order by number in database", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	err := r.preloadOrder().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindAll(status string) ([]model.Order, error) {
	logger.Debug("Finding all orders in database", map[string]interface{}{
		"status": status,
	})

	query := r.preloadOrder().Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		logger.Error("Failed to find all orders in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindRecent(limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find recent orders in database", err, nil)
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindRecentByUser(userID uint, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find recent orders by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindStalePending(before time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Where("status = ? AND created_at < ?", model.OrderStatusPending, before).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find stale pending orders in database", err, map[string]interface{}{
			"before": before,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	return r.UpdateStatusTx(r.db, id, status)
}

func (r *orderRepository) UpdateStatusTx(tx *gorm.DB, id uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	result := tx.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update order status in database", result.Error, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) GetAdminStats() (*AdminOrderStats, error) {
	logger.Debug("Computing admin order stats in database", nil)

	stats := &AdminOrderStats{}

	if err := r.db.Model(&model.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}

	// Revenue counts completed orders only.
	var revenue *float64
	err := r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("SUM(total_amount)").
		Scan(&revenue).Error
	if err != nil {
		logger.Error("Failed to compute revenue in database", err, nil)
		return nil, err
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.User{}).
		Where("role = ?", model.RoleCustomer).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *orderRepository) GetCustomerStats(userID uint) (*CustomerOrderStats, error) {
	logger.Debug("Computing customer order stats in database", map[string]interface{}{
		"user_id": userID,
	})

	stats := &CustomerOrderStats{}
	counts := []struct {
		status model.OrderStatus
		dest   *int64
	}{
		{model.OrderStatusPending, &stats.PendingOrders},
		{model.OrderStatusProcessing, &stats.ProcessingOrders},
		{model.OrderStatusCompleted, &stats.CompletedOrders},
	}

	err := r.db.Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalOrders).Error
	if err != nil {
		return nil, err
	}

	for _, c := range counts {
		err := r.db.Model(&model.Order{}).
			Where("user_id = ? AND status = ?", userID, c.status).
			Count(c.dest).Error
		if err != nil {
			return nil, err
		}
	}

	return stats, nil
}
