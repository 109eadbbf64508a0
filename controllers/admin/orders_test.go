package adminController

import (
	"bytes"
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

func setupAdminOrderTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserAddress{}, &models.Order{}, &models.OrderItem{}))

	r := gin.New()
	r.GET("/admin/orders", ListOrders(db))
	r.GET("/admin/orders/:id", GetOrder(db))
	r.PUT("/admin/orders/:id/status", UpdateOrderStatus(db))
	return r, db
}

func seedAdminOrder(t *testing.T, db *gorm.DB, paymentID string, status models.OrderStatus) models.Order {
	t.Helper()
	addr := models.UserAddress{UserID: 1, FullName: "Asha", AddressLine1: "A", City: "Pune", State: "MH", PostalCode: "411001", Country: "India"}
	require.NoError(t, db.Create(&addr).Error)
	order := models.Order{
		UserID: 1, AddressID: addr.ID,
		TotalAmount:   decimal.RequireFromString("100.00"),
		PaymentID:     paymentID,
		PaymentStatus: models.PaymentStatusPaid,
		Status:        status,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func putStatus(r *gin.Engine, orderID uint, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"status": status})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", orderID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateOrderStatusForward(t *testing.T) {
	r, db := setupAdminOrderTest(t)
	order := seedAdminOrder(t, db, "pay_1", models.OrderStatusPending)

	w := putStatus(r, order.ID, "accepted")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusAccepted, reloaded.Status)
}

func TestUpdateOrderStatusBackwardRejected(t *testing.T) {
	r, db := setupAdminOrderTest(t)
	order := seedAdminOrder(t, db, "pay_1", models.OrderStatusShipped)

	w := putStatus(r, order.ID, "pending")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, reloaded.Status, "rejected transition must not change the row")
}

func TestUpdateOrderStatusTerminalLocked(t *testing.T) {
	r, db := setupAdminOrderTest(t)
	delivered := seedAdminOrder(t, db, "pay_1", models.OrderStatusDelivered)
	cancelled := seedAdminOrder(t, db, "pay_2", models.OrderStatusCancelled)

	w := putStatus(r, delivered.ID, "cancelled")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = putStatus(r, cancelled.ID, "shipped")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateOrderStatusCancelFromActive(t *testing.T) {
	r, db := setupAdminOrderTest(t)
	order := seedAdminOrder(t, db, "pay_1", models.OrderStatusOutForDelivery)

	w := putStatus(r, order.ID, "cancelled")
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, reloaded.Status)
}

func TestUpdateOrderStatusUnknownValue(t *testing.T) {
	r, db := setupAdminOrderTest(t)
	order := seedAdminOrder(t, db, "pay_1", models.OrderStatusPending)

	w := putStatus(r, order.ID, "returned")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrdersStatusFilter(t *testing.T) {
	r, db := setupAdminOrderTest(t)
	seedAdminOrder(t, db, "pay_1", models.OrderStatusPending)
	seedAdminOrder(t, db, "pay_2", models.OrderStatusShipped)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=shipped", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "pay_2", resp.Orders[0].PaymentID)
}
