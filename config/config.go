package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/models"
)

// Config carries everything read from the environment at boot.
type Config struct {
	Port          string
	SessionSecret string

	AdminUser string
	AdminPass string
	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	ContactEmail string

	UploadsDir string

	// StrictPricing decides what happens when a cart references a product
	// that no longer exists: fail the checkout (true) or drop the line (false).
	StrictPricing bool
}

func Load() Config {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	return Config{
		Port:              getEnv("PORT", "5000"),
		SessionSecret:     getEnv("SESSION_SECRET", "change-me"),
		AdminUser:         os.Getenv("ADMIN_USER"),
		AdminPass:         os.Getenv("ADMIN_PASS"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me-too"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          smtpPort,
		SMTPUser:          os.Getenv("EMAIL_USER"),
		SMTPPass:          os.Getenv("EMAIL_PASS"),
		ContactEmail:      getEnv("CONTACT_EMAIL", os.Getenv("EMAIL_USER")),
		UploadsDir:        getEnv("UPLOADS_DIR", "./uploads"),
		StrictPricing:     getEnv("CHECKOUT_STRICT_PRICING", "true") == "true",
	}
}

// SetupDatabase connects to Postgres and migrates the schema. DATABASE_URL
// wins over the discrete DB_* variables when both are set.
func SetupDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			getEnv("DB_PORT", "5432"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserAddress{},
		&models.Product{},
		&models.Category{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// SetupRedis connects the client used for OTPs, buy-now selections and the
// per-user checkout lock.
func SetupRedis() (*redis.Client, error) {
	dbNum, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	}), nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
