package contactControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContactMailer forwards storefront messages to the shop inbox.
// mailer.Mailer satisfies it.
type ContactMailer interface {
	SendContact(name, email, message string) error
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// POST /contact
func SubmitContact(m ContactMailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and message are required"})
			return
		}

		if err := m.SendContact(req.Name, req.Email, req.Message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Message sent. We will get back to you soon."})
	}
}
