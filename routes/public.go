package routes

import (
	"github.com/gin-gonic/gin"

	contactControllers "github.com/alok9064/CarveLane/controllers/contact"
	productControllers "github.com/alok9064/CarveLane/controllers/product"
	reviewControllers "github.com/alok9064/CarveLane/controllers/review"
)

// SetupPublicRoutes registers everything a visitor can reach without
// logging in: the catalog, reviews, signup/login and the contact form.
func SetupPublicRoutes(r *gin.Engine, d Deps) {
	// ──────────────── Catalog ────────────────
	r.GET("/products", productControllers.GetProducts(d.DB))            // list + search + category filter
	r.GET("/products/:id", productControllers.GetProductByID(d.DB))     // detail + related
	r.GET("/categories", productControllers.GetCategories(d.DB))        // category list
	r.GET("/products/:id/reviews", reviewControllers.ListReviews(d.DB)) // product reviews

	// ──────────────── Account ────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/send-otp", d.Auth.SendOTP())
		authGroup.POST("/verify-otp", d.Auth.VerifyOTP())
		authGroup.POST("/signup", d.Auth.Signup())
		authGroup.POST("/login", d.Auth.Login())
		authGroup.POST("/logout", d.Auth.Logout())
	}

	// ──────────────── Contact ────────────────
	r.POST("/contact", contactControllers.SubmitContact(d.Mailer))
}
