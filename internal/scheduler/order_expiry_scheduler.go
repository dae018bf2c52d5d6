package scheduler

import (
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// OrderExpiryScheduler cancels pending orders whose payment window has passed.
type OrderExpiryScheduler struct {
	cron          *cron.Cron
	orderService  service.OrderService
	paymentWindow time.Duration
}

func NewOrderExpiryScheduler(orderService service.OrderService, paymentWindow time.Duration) *OrderExpiryScheduler {
	return &OrderExpiryScheduler{
		cron:          cron.New(),
		orderService:  orderService,
		paymentWindow: paymentWindow,
	}
}

// Start registers the hourly expiry sweep and starts the cron runner.
func (s *OrderExpiryScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting stale order sweep", map[string]interface{}{
			"payment_window": s.paymentWindow.String(),
		})

		cancelled, err := s.orderService.CancelStalePendingOrders(s.paymentWindow)
		if err != nil {
			logger.Error("Stale order sweep failed", err)
			return
		}

		logger.Info("Stale order sweep finished", map[string]interface{}{
			"cancelled": cancelled,
		})
	})

	if err != nil {
		logger.Error("Failed to register order expiry job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Order expiry scheduler started (hourly)", nil)

	return nil
}

func (s *OrderExpiryScheduler) Stop() {
	logger.Info("Stopping order expiry scheduler...", nil)
	s.cron.Stop()
	logger.Info("Order expiry scheduler stopped", nil)
}
