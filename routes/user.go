package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/alok9064/CarveLane/controllers/cart"
	orderControllers "github.com/alok9064/CarveLane/controllers/order"
	reviewControllers "github.com/alok9064/CarveLane/controllers/review"
	userControllers "github.com/alok9064/CarveLane/controllers/user"
	"github.com/alok9064/CarveLane/middleware"
)

// SetupUserRoutes registers the buyer endpoints. Everything here sits
// behind the cookie session.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	user := r.Group("/")
	user.Use(middleware.RequireLogin())
	{
		// ──────────────── Profile ────────────────
		user.GET("/profile", userControllers.GetProfile(d.DB))

		// ──────────────── Address Book ────────────────
		user.GET("/addresses", userControllers.ListAddresses(d.DB))
		user.POST("/addresses", userControllers.CreateAddress(d.DB))
		user.PUT("/addresses/:id", userControllers.UpdateAddress(d.DB))
		user.POST("/addresses/:id/default", userControllers.SetDefaultAddress(d.DB))
		user.DELETE("/addresses/:id", userControllers.DeleteAddress(d.DB))

		// ──────────────── Cart ────────────────
		user.GET("/cart", cartControllers.GetCart(d.DB))
		user.POST("/cart/add", cartControllers.AddToCart(d.DB))
		user.POST("/cart/update", cartControllers.UpdateQuantity(d.DB))
		user.POST("/cart/remove", cartControllers.RemoveItem(d.DB))

		// ──────────────── Checkout ────────────────
		user.POST("/buy-now/customize", d.Checkout.BuyNowCustomize())
		user.GET("/checkout", d.Checkout.Summary())
		user.POST("/create-order", d.Checkout.CreatePaymentSession())
		user.POST("/place-order", d.Checkout.PlaceOrder())

		// ──────────────── Orders ────────────────
		user.GET("/orders", orderControllers.GetMyOrders(d.DB))
		user.GET("/orders/:id", orderControllers.GetOrderByID(d.DB))
		user.GET("/orders/:id/invoice", orderControllers.DownloadInvoice(d.DB))
		user.GET("/order-success/:id", orderControllers.OrderSuccess(d.DB))

		// ──────────────── Reviews ────────────────
		user.POST("/products/:id/reviews", reviewControllers.CreateReview(d.DB))
	}
}
