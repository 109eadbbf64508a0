package checkoutControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/middleware"
	"github.com/alok9064/CarveLane/models"
	"github.com/alok9064/CarveLane/payment"
)

// ErrDuplicatePayment means an order already exists for the gateway
// payment reference, e.g. a double-submitted place-order request.
var ErrDuplicatePayment = errors.New("payment reference already recorded")

type Controller struct {
	DB      *gorm.DB
	Store   *Store
	Gateway *payment.Client
	// Strict pricing fails the whole checkout when a cart line references
	// a product that has been deleted; lenient drops the line.
	Strict bool
	// OnOrderPlaced, when set, is called after a successful commit. The
	// admin order feed hooks in here.
	OnOrderPlaced func(models.Order)
}

func New(db *gorm.DB, store *Store, gateway *payment.Client, strict bool) *Controller {
	return &Controller{DB: db, Store: store, Gateway: gateway, Strict: strict}
}

// POST /buy-now/customize
// Stores a single-item selection for the session-scoped buy-now path, or
// pushes the same item into the persistent cart when the buyer chose
// "add to cart" on the customization form.
func (ct *Controller) BuyNowCustomize() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID, err := strconv.ParseUint(c.PostForm("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
		if err != nil || quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}

		var product models.Product
		if err := ct.DB.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		useDefault := c.PostForm("use_default") == "on"
		customText := c.PostForm("customization_text")
		whatsapp := c.PostForm("whatsapp")

		imagePath := ""
		if !useDefault {
			imagePath, err = middleware.SaveImage(c, "custom_image", "custom", "custom", middleware.MaxImageSize)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		} else {
			// Default customization ignores any bespoke fields.
			customText, whatsapp = "", ""
		}

		if c.PostForm("action_type") == "buy-now" {
			sel := &models.BuyNowSelection{
				ProductID:         uint(productID),
				Quantity:          quantity,
				CustomizationText: customText,
				ImagePath:         imagePath,
				Whatsapp:          whatsapp,
				UseDefault:        useDefault,
			}
			if err := ct.Store.SaveSelection(c.Request.Context(), userID, sel); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save buy-now selection"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"redirect": "/checkout"})
			return
		}

		item := models.CartItem{
			UserID:            userID,
			ProductID:         uint(productID),
			Quantity:          quantity,
			CustomizationText: customText,
			ImagePath:         imagePath,
			Whatsapp:          whatsapp,
			UseDefault:        useDefault,
		}
		if err := ct.DB.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"redirect": "/cart"})
	}
}

// GET /checkout
// Returns the priced summary for whichever source is active: the buy-now
// selection if one exists, otherwise the persistent cart.
func (ct *Controller) Summary() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		sel, err := ct.Store.GetSelection(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout state"})
			return
		}

		pricing, err := ct.resolvePricing(sel, userID)
		if err != nil {
			respondPricingError(c, err)
			return
		}

		var addresses []models.UserAddress
		if err := ct.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load addresses"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"is_buy_now":  sel != nil,
			"items":       pricing.Items,
			"total_price": pricing.Total,
			"addresses":   addresses,
		})
	}
}

// POST /create-order
// Prices the active checkout source and registers a payment intent with
// the gateway. Nothing is written locally; the client key and gateway
// order id go back to the browser to launch the payment widget.
func (ct *Controller) CreatePaymentSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		sel, err := ct.Store.GetSelection(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout state"})
			return
		}

		pricing, err := ct.resolvePricing(sel, userID)
		if err != nil {
			respondPricingError(c, err)
			return
		}

		receipt := "rcpt_" + uuid.NewString()
		gatewayOrder, err := ct.Gateway.CreateOrder(c.Request.Context(), pricing.AmountPaise(), "INR", receipt)
		if err != nil {
			log.Printf("❌ Failed to create gateway order: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id": gatewayOrder.ID,
			"amount":   gatewayOrder.Amount,
			"currency": gatewayOrder.Currency,
			"key_id":   ct.Gateway.KeyID,
		})
	}
}

type placeOrderRequest struct {
	AddressID         uint   `json:"address_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /place-order
// The post-payment callback: verify the gateway signature, persist the
// order and its items atomically, then consume whichever source the
// checkout came from.
func (ct *Controller) PlaceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Hard security gate: nothing is persisted on a bad signature.
		if !payment.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, ct.Gateway.KeySecret) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
			return
		}

		ctx := c.Request.Context()
		locked, err := ct.Store.AcquireLock(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
			return
		}
		if !locked {
			c.JSON(http.StatusConflict, gin.H{"error": "A checkout is already in progress"})
			return
		}
		defer ct.Store.ReleaseLock(ctx, userID)

		var address models.UserAddress
		if err := ct.DB.First(&address, "id = ? AND user_id = ?", req.AddressID, userID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery address"})
			return
		}

		sel, err := ct.Store.GetSelection(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout state"})
			return
		}

		pricing, err := ct.resolvePricing(sel, userID)
		if err != nil {
			respondPricingError(c, err)
			return
		}

		orderItems := make([]models.OrderItem, 0, len(pricing.Items))
		for _, line := range pricing.Items {
			orderItems = append(orderItems, models.OrderItem{
				ProductID:         line.ProductID,
				ProductName:       line.ProductName,
				Quantity:          line.Quantity,
				UnitPrice:         line.UnitPrice,
				Subtotal:          line.Subtotal,
				CustomizationText: line.CustomizationText,
				ImagePath:         line.ImagePath,
				Whatsapp:          line.Whatsapp,
				UseDefault:        line.UseDefault,
			})
		}

		order := models.Order{
			UserID:        userID,
			AddressID:     address.ID,
			Items:         orderItems,
			TotalAmount:   pricing.Total,
			PaymentID:     req.RazorpayPaymentID,
			PaymentStatus: models.PaymentStatusPaid,
			Status:        models.OrderStatusPending,
		}

		// Order row and item rows commit or roll back together; the unique
		// index on payment_id is the backstop behind the explicit check.
		err = ct.DB.Transaction(func(tx *gorm.DB) error {
			var existing models.Order
			lookupErr := tx.Where("payment_id = ?", req.RazorpayPaymentID).First(&existing).Error
			if lookupErr == nil {
				return ErrDuplicatePayment
			}
			if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return lookupErr
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			if errors.Is(err, ErrDuplicatePayment) {
				c.JSON(http.StatusConflict, gin.H{"error": "This payment has already been used for an order"})
				return
			}
			log.Printf("❌ Failed to persist order for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		// Consume exactly one source. A failure here is cosmetic: the order
		// is already durable, the cart just looks stale.
		if sel != nil {
			err = ct.Store.ClearSelection(ctx, userID)
		} else {
			err = ct.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
		}
		if err != nil {
			log.Printf("⚠️ Order %d placed but clearing checkout source failed: %v", order.ID, err)
			c.JSON(http.StatusCreated, gin.H{
				"message":  "Order placed, but clearing the cart failed",
				"order_id": order.ID,
				"redirect": fmt.Sprintf("/order-success/%d", order.ID),
			})
			return
		}

		if ct.OnOrderPlaced != nil {
			ct.OnOrderPlaced(order)
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Order placed successfully",
			"order_id": order.ID,
			"redirect": fmt.Sprintf("/order-success/%d", order.ID),
		})
	}
}

func (ct *Controller) resolvePricing(sel *models.BuyNowSelection, userID uint) (*Pricing, error) {
	if sel != nil {
		return priceBuyNow(ct.DB, sel)
	}
	return priceCart(ct.DB, userID, ct.Strict)
}

func respondPricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to check out"})
	case errors.Is(err, ErrProductGone):
		c.JSON(http.StatusConflict, gin.H{"error": "A product in your order is no longer available"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price order"})
	}
}
