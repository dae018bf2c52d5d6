package repository

import (
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	FindByOrderID(orderID uint) (*model.Payment, error)
	FindByID(id uint) (*model.Payment, error)
	UpsertTx(tx *gorm.DB, payment *model.Payment) error
	Update(payment *model.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByOrderID(orderID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		logger.Error("Failed to find payment by ID in database", err, map[string]interface{}{
			"payment_id": id,
		})
		return nil, err
	}
	return &payment, nil
}

// UpsertTx inserts the payment or, when one already exists for the order,
// replaces its proof and resets it to pending review. One payment row per
// order, always.
func (r *paymentRepository) UpsertTx(tx *gorm.DB, payment *model.Payment) error {
	logger.Debug("Upserting payment in database", map[string]interface{}{
		"order_id": payment.OrderID,
		"method":   payment.Method,
		"amount":   payment.Amount,
	})

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"amount", "method", "status", "proof_file", "payment_date", "updated_at",
		}),
	}).Create(payment).Error
	if err != nil {
		logger.Error("Failed to upsert payment in database", err, map[string]interface{}{
			"order_id": payment.OrderID,
		})
		return err
	}

	logger.Debug("Payment upserted in database", map[string]interface{}{
		"order_id": payment.OrderID,
	})
	return nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	logger.Debug("Updating payment in database", map[string]interface{}{
		"payment_id": payment.ID,
		"status":     payment.Status,
	})

	if err := r.db.Save(payment).Error; err != nil {
		logger.Error("Failed to update payment in database", err, map[string]interface{}{
			"payment_id": payment.ID,
		})
		return err
	}
	return nil
}
