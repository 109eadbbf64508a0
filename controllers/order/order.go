package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/middleware"
	"github.com/alok9064/CarveLane/models"
)

// GET /orders
// The buyer's order history, newest first.
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", userID).
			Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GET /orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Preload("Items").Preload("Address").
			First(&order, "id = ? AND user_id = ?", c.Param("id"), userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// GET /order-success/:id
// The confirmation page right after checkout. Same scoping as the
// detail endpoint, trimmed to what the page shows.
func OrderSuccess(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var order models.Order
		err := db.Preload("Items").First(&order, "id = ? AND user_id = ?", c.Param("id"), userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id":     order.ID,
			"total_amount": order.TotalAmount,
			"item_count":   len(order.Items),
			"status":       order.Status,
			"placed_at":    order.CreatedAt,
		})
	}
}
