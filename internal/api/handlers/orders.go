package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/invoice"
	"github.com/harshava123/powderlegacy/internal/repository"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ord, err := repos.Order.GetByOrderID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.String("order_id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, ord)
	}
}

// HandleGetOrderInvoice handles GET /v1/orders/:id/invoice. The invoice is
// re-rendered from the stored order record, so it stays available long after
// checkout.
func HandleGetOrderInvoice(repos repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ord, err := repos.Order.GetByOrderID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order for invoice", zap.String("order_id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		html, err := invoice.Render(ord)
		if err != nil {
			logger.Error("Failed to render invoice", zap.String("order_id", ord.OrderID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+invoice.Filename(ord.OrderID)+`"`)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}
