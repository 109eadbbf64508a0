package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/alok9064/CarveLane/controllers/admin"
	orderControllers "github.com/alok9064/CarveLane/controllers/order"
	"github.com/alok9064/CarveLane/middleware"
)

// SetupAdminRoutes registers the back-office. Login is open; everything
// else requires the bearer token it issues.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	r.POST("/admin/login", adminController.Login())

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		// ──────────────── Products ────────────────
		admin.GET("/products", adminController.ListProducts(d.DB))
		admin.POST("/products", adminController.AddProduct(d.DB))
		admin.PUT("/products/:id", adminController.UpdateProduct(d.DB))
		admin.DELETE("/products/:id", adminController.DeleteProduct(d.DB))
		admin.GET("/products/export", adminController.ExportProductsToExcel(d.DB))

		// ──────────────── Orders ────────────────
		admin.GET("/orders", adminController.ListOrders(d.DB))
		admin.GET("/orders/:id", adminController.GetOrder(d.DB))
		admin.PUT("/orders/:id/status", adminController.UpdateOrderStatus(d.DB))
		admin.GET("/orders/feed", orderControllers.OrderFeedHandler)

		// ──────────────── Users ────────────────
		admin.GET("/users", adminController.ListUsers(d.DB))
	}
}
