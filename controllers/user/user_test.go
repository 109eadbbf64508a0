package userControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alok9064/CarveLane/models"
)

func setupUserTest(t *testing.T) (*gin.Engine, *gorm.DB) {
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
	r.GET("/profile", GetProfile(db))
	r.GET("/addresses", ListAddresses(db))
	r.POST("/addresses", CreateAddress(db))
	r.PUT("/addresses/:id", UpdateAddress(db))
	r.POST("/addresses/:id/default", SetDefaultAddress(db))
	r.DELETE("/addresses/:id", DeleteAddress(db))
	return r, db
}

func addressPayload(isDefault bool) gin.H {
	return gin.H{
		"full_name": "Asha Verma", "address_line1": "14 MG Road",
		"city": "Pune", "state": "MH", "postal_code": "411001",
		"country": "India", "is_default": isDefault,
	}
}

func doJSON(r *gin.Engine, method, path string, payload gin.H) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDefaultAddressDemotesPrevious(t *testing.T) {
	r, db := setupUserTest(t)

	w := doJSON(r, http.MethodPost, "/addresses", addressPayload(true))
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/addresses", addressPayload(true))
	require.Equal(t, http.StatusCreated, w.Code)

	var defaults []models.UserAddress
	require.NoError(t, db.Where("user_id = ? AND is_default = ?", 1, true).Find(&defaults).Error)
	require.Len(t, defaults, 1, "only one default address may exist")

	var all []models.UserAddress
	require.NoError(t, db.Where("user_id = ?", 1).Find(&all).Error)
	assert.Len(t, all, 2)
}

func TestSetDefaultAddress(t *testing.T) {
	r, db := setupUserTest(t)
	first := models.UserAddress{UserID: 1, FullName: "Asha", AddressLine1: "A", City: "Pune", State: "MH", PostalCode: "411001", Country: "India", IsDefault: true}
	second := models.UserAddress{UserID: 1, FullName: "Asha", AddressLine1: "B", City: "Pune", State: "MH", PostalCode: "411002", Country: "India"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/addresses/%d/default", second.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloadedFirst, reloadedSecond models.UserAddress
	require.NoError(t, db.First(&reloadedFirst, first.ID).Error)
	require.NoError(t, db.First(&reloadedSecond, second.ID).Error)
	assert.False(t, reloadedFirst.IsDefault)
	assert.True(t, reloadedSecond.IsDefault)
}

func TestSetDefaultForeignAddress(t *testing.T) {
	r, db := setupUserTest(t)
	foreign := models.UserAddress{UserID: 2, FullName: "Other", AddressLine1: "X", City: "Delhi", State: "DL", PostalCode: "110001", Country: "India"}
	require.NoError(t, db.Create(&foreign).Error)

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/addresses/%d/default", foreign.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAddressScopedToOwner(t *testing.T) {
	r, db := setupUserTest(t)
	foreign := models.UserAddress{UserID: 2, FullName: "Other", AddressLine1: "X", City: "Delhi", State: "DL", PostalCode: "110001", Country: "India"}
	require.NoError(t, db.Create(&foreign).Error)

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/addresses/%d", foreign.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.UserAddress{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetProfileIncludesOrders(t *testing.T) {
	r, db := setupUserTest(t)
	require.NoError(t, db.Create(&models.User{Name: "Asha", Email: "asha@example.com", Password: "x"}).Error)
	addr := models.UserAddress{UserID: 1, FullName: "Asha", AddressLine1: "A", City: "Pune", State: "MH", PostalCode: "411001", Country: "India"}
	require.NoError(t, db.Create(&addr).Error)
	order := models.Order{UserID: 1, AddressID: addr.ID, PaymentID: "pay_1", PaymentStatus: models.PaymentStatusPaid, Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	w := doJSON(r, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User struct {
			Name   string            `json:"name"`
			Orders []json.RawMessage `json:"orders"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Asha", resp.User.Name)
	assert.Len(t, resp.User.Orders, 1)
}
