package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/alok9064/CarveLane/config"
	authControllers "github.com/alok9064/CarveLane/controllers/auth"
	checkoutControllers "github.com/alok9064/CarveLane/controllers/checkout"
	orderControllers "github.com/alok9064/CarveLane/controllers/order"
	"github.com/alok9064/CarveLane/mailer"
	"github.com/alok9064/CarveLane/payment"
	"github.com/alok9064/CarveLane/routes"
)

func main() {
	log.Println("✅ Starting CarveLane...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB (runs migrations)
	db, err := config.SetupDatabase()
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	// Init Redis
	rdb, err := config.SetupRedis()
	if err != nil {
		log.Fatalf("❌ Redis setup failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}

	// Shared services
	mail := mailer.New(cfg)
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	store := checkoutControllers.NewStore(rdb)

	checkout := checkoutControllers.New(db, store, gateway, cfg.StrictPricing)
	checkout.OnOrderPlaced = orderControllers.BroadcastNewOrder

	// Gin setup
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Cookie sessions for storefront users
	r.Use(sessions.Sessions("carvelane_session", cookie.NewStore([]byte(cfg.SessionSecret))))

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadsDir)

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Auth:     authControllers.New(db, rdb, mail),
		Checkout: checkout,
		Mailer:   mail,
	})

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
