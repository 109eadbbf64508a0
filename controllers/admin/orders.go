package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/models"
)

// GET /admin/orders
// Optional ?status= filter. Newest first.
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Preload("User").Preload("Address").Order("created_at DESC")

		if raw := c.Query("status"); raw != "" {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
				return
			}
			query = query.Where("status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GET /admin/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		err := db.Preload("Items").Preload("User").Preload("Address").
			First(&order, "id = ?", c.Param("id")).Error
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

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /admin/orders/:id/status
// The state machine is enforced here, not in the dashboard: statuses
// only move forward, cancellation only from non-terminal states.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		next, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, "id = ?", c.Param("id")).Error; err != nil {
				return err
			}
			if err := models.CanTransition(order.Status, next); err != nil {
				return err
			}
			return tx.Model(&order).Update("status", next).Error
		})
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "status": next})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, models.ErrBackwardTransition),
			errors.Is(err, models.ErrTerminalOrderStatus),
			errors.Is(err, models.ErrInvalidOrderStatus):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
	}
}
