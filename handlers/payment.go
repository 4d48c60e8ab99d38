package handlers

import (
	"net/http"

	registrationRepo "opdcare/database/repository/registration"
	"opdcare/models"
	"opdcare/services/payment"
	"opdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves fee collection endpoints. A nil Payments service
// means the gateway is not configured; the endpoints respond 503.
type PaymentHandler struct {
	Payments payment.PaymentService
}

// CreatePaymentOrderHandler handles POST /api/patients/:id/payment/order.
func (h *PaymentHandler) CreatePaymentOrderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	if h.Payments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway is not configured"})
		return
	}

	order, err := h.Payments.CreateOrder(c.Param("id"))
	if err != nil {
		logger.Error("Failed to create payment order",
			zap.String("patientID", c.Param("id")), zap.Error(err))
		status := http.StatusBadRequest
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// VerifyPaymentHandler handles POST /api/patients/:id/payment/verify.
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	if h.Payments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway is not configured"})
		return
	}

	var v models.PaymentVerification
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Payments.Verify(c.Param("id"), v); err != nil {
		logger.Warn("Payment verification failed",
			zap.String("patientID", c.Param("id")), zap.Error(err))
		status := http.StatusBadRequest
		if err == registrationRepo.ErrNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "status": models.FeePaid})
}
