package productcontroller

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

func setupProductTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}, &models.Review{}))

	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:id", GetProductByID(db))
	r.GET("/categories", GetCategories(db))
	return r, db
}

func addProduct(t *testing.T, db *gorm.DB, name, category string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString("100.00"), Category: category, Description: name + " handmade"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProductsFilterByCategory(t *testing.T) {
	r, db := setupProductTest(t)
	addProduct(t, db, "Carved Nameplate", "Wood Art")
	addProduct(t, db, "Resin Coaster", "Resin Art")

	w := get(r, "/products?category=Wood+Art")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Carved Nameplate", resp.Products[0].Name)
}

func TestGetProductsSearchIsCaseInsensitive(t *testing.T) {
	r, db := setupProductTest(t)
	addProduct(t, db, "Carved Nameplate", "Wood Art")
	addProduct(t, db, "Resin Coaster", "Resin Art")

	w := get(r, "/products?search=NAMEPLATE")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Carved Nameplate", resp.Products[0].Name)
}

func TestGetProductByIDWithRelated(t *testing.T) {
	r, db := setupProductTest(t)
	main := addProduct(t, db, "Carved Nameplate", "Wood Art")
	for i := 0; i < 4; i++ {
		addProduct(t, db, fmt.Sprintf("Wood Piece %d", i), "Wood Art")
	}
	addProduct(t, db, "Resin Coaster", "Resin Art")

	w := get(r, fmt.Sprintf("/products/%d", main.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Product models.Product   `json:"product"`
		Related []models.Product `json:"related"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, main.ID, resp.Product.ID)
	require.Len(t, resp.Related, 3)
	for _, rel := range resp.Related {
		assert.Equal(t, "Wood Art", rel.Category)
		assert.NotEqual(t, main.ID, rel.ID)
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	r, _ := setupProductTest(t)

	w := get(r, "/products/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategories(t *testing.T) {
	r, db := setupProductTest(t)
	require.NoError(t, db.Create(&models.Category{Name: "Wood Art"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Resin Art"}).Error)

	w := get(r, "/categories")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, 2)
}
