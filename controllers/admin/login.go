package adminController

import (
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminTokenTTL = 24 * time.Hour

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /admin/login
// Back-office credentials come from the environment, not the users
// table. A successful login issues the bearer token the admin routes
// require.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		wantUser := os.Getenv("ADMIN_USER")
		wantPass := os.Getenv("ADMIN_PASS")
		if wantUser == "" || wantPass == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin login is not configured"})
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(wantUser)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(wantPass)) == 1
		if !userOK || !passOK {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "admin",
			"sub":  wantUser,
			"exp":  time.Now().Add(adminTokenTTL).Unix(),
			"iat":  time.Now().Unix(),
		})
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed})
	}
}
