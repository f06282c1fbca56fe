package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshava123/powderlegacy/internal/api/middleware"
	"github.com/harshava123/powderlegacy/internal/cart"
	"github.com/harshava123/powderlegacy/internal/catalog"
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

// CartItemRequest identifies a cart line and, for writes, the quantity.
type CartItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartResponse is the cart payload returned by every cart endpoint, so the
// client always renders from the post-mutation snapshot.
type CartResponse struct {
	Items     []domain.CartLineItem `json:"items"`
	Total     int64                 `json:"total"`
	Savings   int64                 `json:"savings"`
	ItemCount int                   `json:"item_count"`
}

func newCartResponse(c *domain.Cart) CartResponse {
	return CartResponse{
		Items:     c.Items,
		Total:     c.Total(),
		Savings:   c.Savings(),
		ItemCount: c.ItemCount(),
	}
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := store.Get(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c))
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, newCartResponse(snapshot))
	}
}

// HandleAddCartItem handles POST /v1/cart/items. The line is composed from
// the current catalog entry; an existing (product, size) line grows instead of
// duplicating.
func HandleAddCartItem(store *cart.Store, source catalog.Source, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		product, err := source.GetProduct(c.Request.Context(), req.ProductID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to load product for cart add", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		item, err := cart.Compose(product, req.Size, req.Quantity)
		if err != nil {
			writeDomainError(c, logger, err)
			return
		}

		snapshot, err := store.AddItem(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), item)
		if err != nil {
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, newCartResponse(snapshot))
	}
}

// HandleUpdateCartItem handles PUT /v1/cart/items. Quantity zero or below
// removes the line.
func HandleUpdateCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		snapshot, err := store.UpdateQuantity(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), req.ProductID, req.Size, req.Quantity)
		if err != nil {
			logger.Error("Failed to update cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, newCartResponse(snapshot))
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items. Removing an absent line
// succeeds with the unchanged cart.
func HandleRemoveCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		snapshot, err := store.RemoveItem(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c), req.ProductID, req.Size)
		if err != nil {
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, newCartResponse(snapshot))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(c.Request.Context(), middleware.SessionID(c), middleware.UserID(c)); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, newCartResponse(&domain.Cart{Items: []domain.CartLineItem{}}))
	}
}

// HandleCartNotification handles GET /v1/cart/notification. Returns the
// session's live "item added" toast, or an empty object after it expired.
func HandleCartNotification(notifier *cart.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := notifier.Current(middleware.SessionID(c))
		if n == nil {
			c.JSON(http.StatusOK, gin.H{"notification": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notification": n})
	}
}

// HandleDismissCartNotification handles DELETE /v1/cart/notification
func HandleDismissCartNotification(notifier *cart.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		notifier.Dismiss(middleware.SessionID(c))
		c.Status(http.StatusNoContent)
	}
}
