package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/middleware"
	"github.com/alok9064/CarveLane/models"
)

type reviewView struct {
	ID        uint   `json:"id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	CreatedAt string `json:"created_at"`
}

// POST /products/:id/reviews
// Multipart form: rating, comment, optional review_image (2 MB cap).
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		rating, err := strconv.Atoi(c.PostForm("rating"))
		if err != nil || rating < 1 || rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product"})
			}
			return
		}

		imagePath, err := middleware.SaveImage(c, "review_image", "reviews", "review", middleware.MaxReviewImageSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		review := models.Review{
			ProductID: uint(productID),
			UserID:    userID,
			Rating:    rating,
			Comment:   c.PostForm("comment"),
			ImagePath: imagePath,
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}

// GET /products/:id/reviews
func ListReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var reviews []models.Review
		if err := db.Preload("User").Where("product_id = ?", productID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
			return
		}

		views := make([]reviewView, 0, len(reviews))
		for _, review := range reviews {
			views = append(views, reviewView{
				ID:        review.ID,
				UserName:  review.User.Name,
				Rating:    review.Rating,
				Comment:   review.Comment,
				ImagePath: review.ImagePath,
				CreatedAt: review.CreatedAt.Format("2006-01-02"),
			})
		}

		c.JSON(http.StatusOK, gin.H{"reviews": views})
	}
}
