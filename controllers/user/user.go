package userControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/middleware"
	"github.com/alok9064/CarveLane/models"
)

// GET /profile
// The account page: user details, address book and order history.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		err := db.Preload("Addresses").
			Preload("Orders", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at DESC") }).
			Preload("Orders.Items").
			First(&user, "id = ?", userID).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

type addressRequest struct {
	AddressType  string `json:"address_type"`
	FullName     string `json:"full_name" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

// GET /addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var addresses []models.UserAddress
		if err := db.Where("user_id = ?", userID).Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load addresses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

// POST /addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		address := models.UserAddress{
			UserID:       userID,
			AddressType:  req.AddressType,
			FullName:     req.FullName,
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			City:         req.City,
			State:        req.State,
			PostalCode:   req.PostalCode,
			Country:      req.Country,
			IsDefault:    req.IsDefault,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault {
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"address": address})
	}
}

// PUT /addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var address models.UserAddress
		if err := db.First(&address, "id = ? AND user_id = ?", addressID, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		address.AddressType = req.AddressType
		address.FullName = req.FullName
		address.AddressLine1 = req.AddressLine1
		address.AddressLine2 = req.AddressLine2
		address.City = req.City
		address.State = req.State
		address.PostalCode = req.PostalCode
		address.Country = req.Country

		err = db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault && !address.IsDefault {
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
				address.IsDefault = true
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}

// POST /addresses/:id/default
// Promotes one address and demotes whichever held the flag before.
func SetDefaultAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address id"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.UserAddress{}).
				Where("id = ? AND user_id = ?", addressID, userID).
				Update("is_default", true)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return tx.Model(&models.UserAddress{}).
				Where("user_id = ? AND id <> ?", userID, addressID).
				Update("is_default", false).Error
		})
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
	}
}

// DELETE /addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.UserAddress{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
