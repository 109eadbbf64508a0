package adminController

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/middleware"
	"github.com/alok9064/CarveLane/models"
)

// POST /admin/products
// Multipart form: name, price, description, category, optional image.
// An unseen category name is created on the fly.
func AddProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		category := strings.TrimSpace(c.PostForm("category"))
		if name == "" || category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and category are required"})
			return
		}
		price, err := decimal.NewFromString(c.PostForm("price"))
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		imageURL, err := middleware.SaveImage(c, "image", "products", "product", middleware.MaxImageSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:        name,
			Price:       price,
			Description: c.PostForm("description"),
			ImageURL:    imageURL,
			Category:    category,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where(models.Category{Name: category}).
				FirstOrCreate(&models.Category{Name: category}).Error; err != nil {
				return err
			}
			return tx.Create(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

// PUT /admin/products/:id
// Only submitted fields change; a new image replaces the stored URL.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			}
			return
		}

		if name := strings.TrimSpace(c.PostForm("name")); name != "" {
			product.Name = name
		}
		if rawPrice := c.PostForm("price"); rawPrice != "" {
			price, err := decimal.NewFromString(rawPrice)
			if err != nil || price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if description := c.PostForm("description"); description != "" {
			product.Description = description
		}

		category := strings.TrimSpace(c.PostForm("category"))
		if category != "" && category != product.Category {
			if err := db.Where(models.Category{Name: category}).
				FirstOrCreate(&models.Category{Name: category}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
				return
			}
			product.Category = category
		}

		imageURL, err := middleware.SaveImage(c, "image", "products", "product", middleware.MaxImageSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if imageURL != "" {
			product.ImageURL = imageURL
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// DELETE /admin/products/:id
// Soft delete: the row stays behind order history but leaves the
// storefront and the pricer.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// GET /admin/products
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
