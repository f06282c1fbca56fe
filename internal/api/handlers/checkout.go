package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/api/middleware"
	"github.com/harshava123/powderlegacy/internal/checkout"
	"github.com/harshava123/powderlegacy/internal/domain"
)

// AddressRequest is the shipping address payload for the first checkout step.
// Presence validation happens in the pipeline so the error shape matches the
// other steps.
type AddressRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Country   string `json:"country"`
}

// DeliveryRequest selects a delivery tier at the second step.
type DeliveryRequest struct {
	Tier         string `json:"tier" binding:"required"`
	Instructions string `json:"instructions"`
}

// HandleGetCheckout handles GET /v1/checkout: the current draft, derived
// state, available delivery options and the running grand total.
func HandleGetCheckout(pipeline *checkout.Pipeline, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sessionID := middleware.SessionID(c)

		draft, err := pipeline.Draft(ctx, sessionID)
		if err != nil {
			logger.Error("Failed to load checkout draft", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		state, err := pipeline.State(ctx, sessionID)
		if err != nil {
			logger.Error("Failed to derive checkout state", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		grandTotal, err := pipeline.GrandTotal(ctx, sessionID, middleware.UserID(c))
		if err != nil {
			logger.Error("Failed to compute grand total", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"state":            state,
			"draft":            draft,
			"delivery_options": domain.DeliveryOptions,
			"grand_total":      grandTotal,
		})
	}
}

// HandleSubmitAddress handles POST /v1/checkout/address
func HandleSubmitAddress(pipeline *checkout.Pipeline, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		addr := domain.ShippingAddress{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
			City:      req.City,
			State:     req.State,
			Pincode:   req.Pincode,
			Country:   req.Country,
		}
		if err := pipeline.SubmitAddress(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), addr); err != nil {
			writeDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": domain.CheckoutStateAddressComplete})
	}
}

// HandleSelectDelivery handles POST /v1/checkout/delivery
func HandleSelectDelivery(pipeline *checkout.Pipeline, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		selection, err := pipeline.SelectDelivery(c.Request.Context(), middleware.SessionID(c), domain.DeliveryTier(req.Tier), req.Instructions)
		if err != nil {
			writeDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"state":    domain.CheckoutStateDeliveryComplete,
			"delivery": selection,
		})
	}
}

// HandleInitiatePayment handles POST /v1/checkout/payment. The response
// carries either embedded widget options or a hosted payment link, never both.
func HandleInitiatePayment(pipeline *checkout.Pipeline, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		initiation, err := pipeline.InitiatePayment(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c))
		if err != nil {
			writeDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, initiation)
	}
}

// HandleAbandonPayment handles POST /v1/checkout/payment/abandon. The draft
// stays intact so the user lands back on the delivery step.
func HandleAbandonPayment(pipeline *checkout.Pipeline, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pipeline.AbandonPayment(c.Request.Context(), middleware.SessionID(c)); err != nil {
			logger.Error("Failed to abandon payment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": domain.CheckoutStateDeliveryComplete})
	}
}
