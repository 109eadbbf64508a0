package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/models"
)

// GET /products
// Optional filters: ?category=Wood+Art and ?search=nameplate. Search
// matches name and description, case-insensitive.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Order("created_at DESC")

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			query = query.Where("category = ?", category)
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// GET /products/:id
// Detail plus up to three other products from the same category for the
// "you may also like" strip.
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.Preload("Reviews").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			}
			return
		}

		var related []models.Product
		if err := db.Where("category = ? AND id <> ?", product.Category, product.ID).
			Order("created_at DESC").Limit(3).Find(&related).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load related products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product": product,
			"related": related,
		})
	}
}

// GET /categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
