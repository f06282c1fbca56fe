package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/api/middleware"
	"github.com/harshava123/powderlegacy/internal/order"
)

// ConfirmPaymentRequest is posted by the embedded checkout success handler.
// OrderID may be absent; finalization generates a fallback id.
type ConfirmPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

// HandleConfirmPayment handles POST /v1/checkout/payment/confirm
func HandleConfirmPayment(finalizer *order.Finalizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		confirmation, err := finalizer.Finalize(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), req.OrderID, req.PaymentID)
		if err != nil {
			writeDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, confirmation)
	}
}

// HandlePaymentCallback handles GET /payment/callback, the hosted payment
// link redirect. Razorpay appends razorpay_* query params; some gateways use
// the shorter payment_id form, so both are accepted.
func HandlePaymentCallback(finalizer *order.Finalizer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentID := c.Query("razorpay_payment_id")
		if paymentID == "" {
			paymentID = c.Query("payment_id")
		}
		orderID := c.Query("razorpay_order_id")
		if orderID == "" {
			orderID = c.Query("order_id")
		}

		if status := c.Query("razorpay_payment_link_status"); status != "" && status != "paid" {
			logger.Info("Payment callback without completed payment",
				zap.String("status", status),
				zap.String("payment_id", paymentID))
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment was not completed"})
			return
		}

		confirmation, err := finalizer.Finalize(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), orderID, paymentID)
		if err != nil {
			writeDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, confirmation)
	}
}
