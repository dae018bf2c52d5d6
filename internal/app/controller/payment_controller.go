package controller

import (
	"errors"
	"net/http"

	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	apperrors "github.com/belanjaku/belanjaku-backend/internal/errors"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

type ReviewProofRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// UploadProof receives a transfer proof image for an order
// POST /api/v1/orders/:id/payment-proof
func (ctrl *PaymentController) UploadProof(c *gin.Context) {
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

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		log.Warn("Missing proof file", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Proof file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open proof file", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.InternalError(c, "Failed to read proof file")
		return
	}
	defer file.Close()

	order, err := ctrl.paymentService.UploadProof(c.Request.Context(), userID, orderID, service.ProofUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidProofType):
			apperrors.UnprocessableEntity(c, apperrors.UploadInvalidFileType, "Proof must be a jpeg or png image")
		case errors.Is(err, service.ErrProofTooLarge):
			apperrors.UnprocessableEntity(c, apperrors.UploadFileTooLarge, "Proof file is too large")
		case errors.Is(err, service.ErrOrderNotPayable):
			apperrors.Conflict(c, apperrors.PaymentNotUploadable, "Order does not accept payment proof")
		default:
			log.Error("Failed to upload payment proof", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "upload payment proof")
		}
		return
	}

	log.Info("Payment proof uploaded", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// GetPayment returns the payment state of one of the user's orders
// GET /api/v1/orders/:id/payment
func (ctrl *PaymentController) GetPayment(c *gin.Context) {
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

	payment, err := ctrl.paymentService.GetPayment(userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrPaymentNotFound):
			apperrors.NotFound(c, apperrors.PaymentNotFound, "No payment recorded for this order")
		default:
			log.Error("Failed to fetch payment", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "Failed to fetch payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
	})
}

// ReviewProof approves or rejects an uploaded proof (admin)
// POST /api/v1/orders/:id/payment-review
func (ctrl *PaymentController) ReviewProof(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req ReviewProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	order, err := ctrl.paymentService.ReviewProof(orderID, *req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrPaymentNotFound):
			apperrors.NotFound(c, apperrors.PaymentNotFound, "No payment recorded for this order")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			apperrors.Conflict(c, apperrors.OrderInvalidTransition, "Order cannot be completed from its current status")
		default:
			log.Error("Failed to review payment proof", err, map[string]interface{}{
				"order_id": orderID,
			})
			apperrors.InternalError(c, "Failed to review payment proof")
		}
		return
	}

	log.Info("Payment proof reviewed", map[string]interface{}{
		"order_id": orderID,
		"approve":  *req.Approve,
	})

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}
