package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alok9064/CarveLane/models"
)

func setupOrderTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserAddress{}, &models.Order{}, &models.OrderItem{}))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Next()
	})
	r.GET("/orders", GetMyOrders(db))
	r.GET("/orders/:id", GetOrderByID(db))
	r.GET("/orders/:id/invoice", DownloadInvoice(db))
	r.GET("/order-success/:id", OrderSuccess(db))
	return r, db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, paymentID string) models.Order {
	t.Helper()
	addr := models.UserAddress{UserID: userID, FullName: "Asha Verma", AddressLine1: "14 MG Road", City: "Pune", State: "MH", PostalCode: "411001", Country: "India"}
	require.NoError(t, db.Create(&addr).Error)
	order := models.Order{
		UserID:        userID,
		AddressID:     addr.ID,
		TotalAmount:   decimal.RequireFromString("250.00"),
		PaymentID:     paymentID,
		PaymentStatus: models.PaymentStatusPaid,
		Status:        models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Carved Nameplate", Quantity: 2, UnitPrice: decimal.RequireFromString("100.00"), Subtotal: decimal.RequireFromString("200.00")},
			{ProductID: 2, ProductName: "Key Holder", Quantity: 1, UnitPrice: decimal.RequireFromString("50.00"), Subtotal: decimal.RequireFromString("50.00")},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestGetMyOrdersScopedToUser(t *testing.T) {
	r, db := setupOrderTest(t)
	seedOrder(t, db, 1, "pay_mine")
	seedOrder(t, db, 2, "pay_theirs")

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "pay_mine", resp.Orders[0].PaymentID)
	assert.Len(t, resp.Orders[0].Items, 2)
}

func TestGetOrderByIDForeignOrder(t *testing.T) {
	r, db := setupOrderTest(t)
	foreign := seedOrder(t, db, 2, "pay_theirs")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d", foreign.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderSuccessSummary(t *testing.T) {
	r, db := setupOrderTest(t)
	order := seedOrder(t, db, 1, "pay_mine")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/order-success/%d", order.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderID   uint `json:"order_id"`
		ItemCount int  `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, order.ID, resp.OrderID)
	assert.Equal(t, 2, resp.ItemCount)
}

func TestDownloadInvoice(t *testing.T) {
	r, db := setupOrderTest(t)
	order := seedOrder(t, db, 1, "pay_mine")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/invoice", order.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, len(w.Body.Bytes()) > 500, "invoice PDF should not be empty")
	assert.Equal(t, "%PDF", string(w.Body.Bytes()[:4]))
}
