package service

import (
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
)

const recentOrderCount = 5

// AdminDashboard is the storewide summary shown to administrators.
type AdminDashboard struct {
	TotalOrders    int64         `json:"total_orders"`
	PendingOrders  int64         `json:"pending_orders"`
	TotalRevenue   float64       `json:"total_revenue"`
	TotalProducts  int64         `json:"total_products"`
	TotalCustomers int64         `json:"total_customers"`
	RecentOrders   []model.Order `json:"recent_orders"`
}

// CustomerDashboard summarizes a single customer's own orders.
type CustomerDashboard struct {
	TotalOrders      int64         `json:"total_orders"`
	PendingOrders    int64         `json:"pending_orders"`
	ProcessingOrders int64         `json:"processing_orders"`
	CompletedOrders  int64         `json:"completed_orders"`
	RecentOrders     []model.Order `json:"recent_orders"`
}

type DashboardService interface {
	GetAdminDashboard() (*AdminDashboard, error)
	GetCustomerDashboard(userID uint) (*CustomerDashboard, error)
}

type dashboardService struct {
	orderRepo repository.OrderRepository
}

func NewDashboardService(orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{orderRepo: orderRepo}
}

func (s *dashboardService) GetAdminDashboard() (*AdminDashboard, error) {
	logger.Debug("Building admin dashboard", nil)

	stats, err := s.orderRepo.GetAdminStats()
	if err != nil {
		logger.Error("Failed to compute admin stats", err, nil)
		return nil, err
	}

	recent, err := s.orderRepo.FindRecent(recentOrderCount)
	if err != nil {
		logger.Error("Failed to fetch recent orders", err, nil)
		return nil, err
	}

	return &AdminDashboard{
		TotalOrders:    stats.TotalOrders,
		PendingOrders:  stats.PendingOrders,
		TotalRevenue:   stats.TotalRevenue,
		TotalProducts:  stats.TotalProducts,
		TotalCustomers: stats.TotalCustomers,
		RecentOrders:   recent,
	}, nil
}

func (s *dashboardService) GetCustomerDashboard(userID uint) (*CustomerDashboard, error) {
	logger.Debug("Building customer dashboard", map[string]interface{}{
		"user_id": userID,
	})

	stats, err := s.orderRepo.GetCustomerStats(userID)
	if err != nil {
		logger.Error("Failed to compute customer stats", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	recent, err := s.orderRepo.FindRecentByUser(userID, recentOrderCount)
	if err != nil {
		return nil, err
	}

	return &CustomerDashboard{
		TotalOrders:      stats.TotalOrders,
		PendingOrders:    stats.PendingOrders,
		ProcessingOrders: stats.ProcessingOrders,
		CompletedOrders:  stats.CompletedOrders,
		RecentOrders:     recent,
	}, nil
}
