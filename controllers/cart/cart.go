package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/middleware"
	"github.com/alok9064/CarveLane/models"
)

type cartLine struct {
	ID                uint            `json:"id"`
	ProductID         uint            `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ImageURL          string          `json:"image_url"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	CustomizationText string          `json:"customization_text,omitempty"`
	ImagePath         string          `json:"image_path,omitempty"`
	Whatsapp          string          `json:"whatsapp,omitempty"`
	UseDefault        bool            `json:"use_default"`
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		lines := make([]cartLine, 0, len(items))
		total := decimal.Zero
		for _, item := range items {
			subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			lines = append(lines, cartLine{
				ID:                item.ID,
				ProductID:         item.ProductID,
				ProductName:       item.Product.Name,
				ImageURL:          item.Product.ImageURL,
				Quantity:          item.Quantity,
				UnitPrice:         item.Product.Price,
				Subtotal:          subtotal,
				CustomizationText: item.CustomizationText,
				ImagePath:         item.ImagePath,
				Whatsapp:          item.Whatsapp,
				UseDefault:        item.UseDefault,
			})
			total = total.Add(subtotal)
		}

		c.JSON(http.StatusOK, gin.H{"items": lines, "total_price": total})
	}
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// POST /cart/add
// Plain add without customization. A matching default line grows
// instead of duplicating; customized lines always stay separate.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}

		var product models.Product
		if err := db.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product"})
			}
			return
		}

		var existing models.CartItem
		err := db.Where("user_id = ? AND product_id = ? AND use_default = ?", userID, req.ProductID, true).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += req.Quantity
			if err := db.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
				return
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.CartItem{
				UserID:     userID,
				ProductID:  req.ProductID,
				Quantity:   req.Quantity,
				UseDefault: true,
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
				return
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
	}
}

type updateCartRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// POST /cart/update
func UpdateQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}

		result := db.Model(&models.CartItem{}).
			Where("id = ? AND user_id = ?", req.ItemID, userID).
			Update("quantity", req.Quantity)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
	}
}

type removeCartRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
}

// POST /cart/remove
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req removeCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result := db.Where("id = ? AND user_id = ?", req.ItemID, userID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
	}
}
