package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/pkg/errors"
)

// writeDomainError maps typed domain errors onto HTTP responses. Validation
// problems come back 422 with field details, stock conflicts 409 naming the
// offending lines, provider failures 402 with a user-readable message.
func writeDomainError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  e.Error(),
			"fields": e.Fields,
		})
	case *errors.ErrStockConflict:
		c.JSON(http.StatusConflict, gin.H{
			"error": "insufficient stock",
			"items": e.Items,
		})
	case *errors.ErrPayment:
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": e.UserMessage(),
			"code":  e.Code,
		})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusConflict, gin.H{
			"error": e.Error(),
		})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
