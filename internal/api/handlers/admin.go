package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/internal/repository"
)

// HandleListOrders handles GET /v1/admin/orders with optional user_id,
// limit and offset query parameters.
func HandleListOrders(repos repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		var orders []*domain.Order
		if userID := c.Query("user_id"); userID != "" {
			orders, err = repos.Order.ListByUserID(c.Request.Context(), userID, limit, offset)
		} else {
			orders, err = repos.Order.List(c.Request.Context(), limit, offset)
		}
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"count":  len(orders),
			"limit":  limit,
			"offset": offset,
		})
	}
}
