package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/storage"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidProofType = errors.New("proof must be a jpeg or png image")
	ErrProofTooLarge    = errors.New("proof file is too large")
	ErrOrderNotPayable  = errors.New("order does not accept payment proof")
)

var allowedProofTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// ProofUpload is a payment proof file as received from the client.
type ProofUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type PaymentService interface {
	UploadProof(ctx context.Context, userID, orderID uint, upload ProofUpload) (*model.Order, error)
	ReviewProof(orderID uint, approve bool) (*model.Order, error)
	GetPayment(userID, orderID uint) (*model.Payment, error)
}

type paymentService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	uploader    storage.Uploader
	proofFolder string
	maxSize     int64
	db          *gorm.DB
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	uploader storage.Uploader,
	proofFolder string,
	maxSize int64,
	db *gorm.DB,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		uploader:    uploader,
		proofFolder: proofFolder,
		maxSize:     maxSize,
		db:          db,
	}
}

// UploadProof validates and stores a transfer proof, then records the payment
// and moves a pending order to processing in one transaction. Re-uploading on
// a processing order replaces the previous proof.
func (s *paymentService) UploadProof(ctx context.Context, userID, orderID uint, upload ProofUpload) (*model.Order, error) {
	logger.Info("Uploading payment proof", map[string]interface{}{
		"user_id":      userID,
		"order_id":     orderID,
		"content_type": upload.ContentType,
		"size":         upload.Size,
	})

	// Validate the file before touching any state
	if _, ok := allowedProofTypes[upload.ContentType]; !ok {
		logger.Warn("Proof upload rejected: invalid content type", map[string]interface{}{
			"user_id":      userID,
			"order_id":     orderID,
			"content_type": upload.ContentType,
		})
		return nil, ErrInvalidProofType
	}
	if upload.Size > s.maxSize {
		logger.Warn("Proof upload rejected: file too large", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"size":     upload.Size,
			"max_size": s.maxSize,
		})
		return nil, ErrProofTooLarge
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for proof upload", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Proof upload denied: order belongs to another user", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusProcessing {
		logger.Warn("Proof upload rejected: order not payable", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"status":   order.Status,
		})
		return nil, ErrOrderNotPayable
	}

	result, err := s.uploader.Upload(ctx, s.proofFolder, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		logger.Error("Failed to store proof file", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, err
	}

	// Proof uploads belong to the manual transfer flow regardless of the
	// method chosen at checkout.
	payment := &model.Payment{
		OrderID:     order.ID,
		Amount:      order.TotalAmount,
		Method:      model.PaymentMethodBankTransfer,
		Status:      model.PaymentStatusPending,
		ProofFile:   result.Key,
		PaymentDate: time.Now(),
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during proof upload, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"order_id": orderID,
			})
		}
	}()

	if err := s.paymentRepo.UpsertTx(tx, payment); err != nil {
		tx.Rollback()
		return nil, err
	}

	if order.Status == model.OrderStatusPending {
		if err := s.orderRepo.UpdateStatusTx(tx, order.ID, model.OrderStatusProcessing); err != nil {
			tx.Rollback()
			logger.Error("Failed to advance order after proof upload", err, map[string]interface{}{
				"order_id": orderID,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit proof upload transaction", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Payment proof recorded", map[string]interface{}{
		"user_id":    userID,
		"order_id":   orderID,
		"proof_file": result.Key,
	})

	return s.orderRepo.FindByID(order.ID)
}

// ReviewProof is the admin decision on an uploaded proof. Approval confirms
// the payment and completes the order. Rejection marks the payment rejected
// and leaves the order in processing so the customer can upload a new proof.
func (s *paymentService) ReviewProof(orderID uint, approve bool) (*model.Order, error) {
	logger.Info("Reviewing payment proof", map[string]interface{}{
		"order_id": orderID,
		"approve":  approve,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if !approve {
		payment.Status = model.PaymentStatusRejected
		if err := s.paymentRepo.Update(payment); err != nil {
			return nil, err
		}
		logger.Info("Payment proof rejected", map[string]interface{}{
			"order_id": orderID,
		})
		return s.orderRepo.FindByID(orderID)
	}

	if !model.CanTransition(order.Status, model.OrderStatusCompleted) {
		logger.Warn("Cannot complete order on proof approval", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return nil, ErrInvalidStatusTransition
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during proof review, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"order_id": orderID,
			})
		}
	}()

	payment.Status = model.PaymentStatusConfirmed
	if err := tx.Save(payment).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to confirm payment", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if err := s.orderRepo.UpdateStatusTx(tx, order.ID, model.OrderStatusCompleted); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit proof review transaction", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Payment confirmed and order completed", map[string]interface{}{
		"order_id": orderID,
	})

	return s.orderRepo.FindByID(orderID)
}

// GetPayment returns the payment recorded for one of the user's orders.
// Orders owned by other users are reported as not found.
func (s *paymentService) GetPayment(userID, orderID uint) (*model.Payment, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}
