package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/alok9064/CarveLane/controllers/auth"
	checkoutControllers "github.com/alok9064/CarveLane/controllers/checkout"
	"github.com/alok9064/CarveLane/mailer"
)

// Deps carries the shared handler dependencies into route registration.
type Deps struct {
	DB       *gorm.DB
	Auth     *authControllers.Controller
	Checkout *checkoutControllers.Controller
	Mailer   *mailer.Mailer
}

// SetupRoutes is the single entry-point that wires up the public,
// user and admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// Public storefront routes (no middleware)
	SetupPublicRoutes(r, d)

	// User routes (cookie-session protected)
	SetupUserRoutes(r, d)

	// Admin routes (JWT protected)
	SetupAdminRoutes(r, d)
}
