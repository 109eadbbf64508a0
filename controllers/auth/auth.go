package authControllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/models"
)

const (
	otpTTL      = 90 * time.Second
	verifiedTTL = 15 * time.Minute
)

// OTPMailer delivers signup codes. mailer.Mailer satisfies it.
type OTPMailer interface {
	SendOTP(to, otp string) error
}

type Controller struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Mailer OTPMailer
}

func New(db *gorm.DB, rdb *redis.Client, m OTPMailer) *Controller {
	return &Controller{DB: db, Redis: rdb, Mailer: m}
}

func otpKey(email string) string      { return "otp:signup:" + email }
func verifiedKey(email string) string { return "otp:verified:" + email }

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/send-otp
func (ct *Controller) SendOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}
		email := normalizeEmail(req.Email)

		var existing models.User
		err := ct.DB.Where("email = ?", email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}

		otp, err := generateOTP()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
			return
		}
		if err := ct.Redis.Set(c.Request.Context(), otpKey(email), otp, otpTTL).Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store OTP"})
			return
		}
		if err := ct.Mailer.SendOTP(email, otp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
	}
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// POST /auth/verify-otp
// A correct code within its 90 second window marks the email verified
// for long enough to finish the signup form.
func (ct *Controller) VerifyOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
			return
		}
		email := normalizeEmail(req.Email)
		ctx := c.Request.Context()

		stored, err := ct.Redis.Get(ctx, otpKey(email)).Result()
		if errors.Is(err, redis.Nil) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired or never sent"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read OTP"})
			return
		}
		if stored != strings.TrimSpace(req.OTP) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect OTP"})
			return
		}

		ct.Redis.Del(ctx, otpKey(email))
		if err := ct.Redis.Set(ctx, verifiedKey(email), "1", verifiedTTL).Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record verification"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
	}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/signup
func (ct *Controller) Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		email := normalizeEmail(req.Email)
		ctx := c.Request.Context()

		if _, err := ct.Redis.Get(ctx, verifiedKey(email)).Result(); err != nil {
			if errors.Is(err, redis.Nil) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Email has not been verified"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check verification"})
			}
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{Name: req.Name, Email: email, Password: string(hash)}
		if err := ct.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}
		ct.Redis.Del(ctx, verifiedKey(email))

		sess := sessions.Default(c)
		sess.Set("user_id", user.ID)
		if err := sess.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Account created", "user_id": user.ID})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ct *Controller) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var user models.User
		if err := ct.DB.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		sess := sessions.Default(c)
		sess.Set("user_id", user.ID)
		if err := sess.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged in", "user_id": user.ID, "name": user.Name})
	}
}

// POST /auth/logout
func (ct *Controller) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Clear()
		if err := sess.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
