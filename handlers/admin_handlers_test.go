package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CafeBackend/models"
	"CafeBackend/theme"
)

func adminUser() models.User {
	return models.User{ID: 1, Username: "admin", Email: "admin@cafe.com", Role: models.RoleAdmin}
}

func TestGetUserListHandlerHidesPasswords(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/admin/users", nil)
	loginAs(c, adminUser())
	GetUserListHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	body := responseBody(t, w)
	userList, ok := body["userList"].([]interface{})
	require.True(t, ok)
	require.Len(t, userList, 3)
	for _, entry := range userList {
		user, ok := entry.(map[string]interface{})
		require.True(t, ok)
		assert.NotContains(t, user, "password")
	}
}

func TestChangeUserRoleHandler(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPatch, "/api/v1/admin/users/2/role", gin.H{"role": "admin"})
	c.Params = gin.Params{{Key: "userID", Value: "2"}}
	loginAs(c, adminUser())
	ChangeUserRoleHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	record := loadTestRecord(t, st)
	assert.Equal(t, models.RoleAdmin, record.FindUserByID(2).Role)
}

func TestChangeUserRoleHandlerSelf(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPatch, "/api/v1/admin/users/1/role", gin.H{"role": "customer"})
	c.Params = gin.Params{{Key: "userID", Value: "1"}}
	loginAs(c, adminUser())
	ChangeUserRoleHandler(c, st)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	record := loadTestRecord(t, st)
	assert.Equal(t, models.RoleAdmin, record.FindUserByID(1).Role)
}

func TestChangeUserRoleHandlerLastAdmin(t *testing.T) {
	st := newSeededStore(t)

	//操作者不是目標時也不可將最後一位管理員降級
	c, w := newTestContext(t, http.MethodPatch, "/api/v1/admin/users/1/role", gin.H{"role": "customer"})
	c.Params = gin.Params{{Key: "userID", Value: "1"}}
	loginAs(c, models.User{ID: 99, Username: "other-admin", Role: models.RoleAdmin})
	ChangeUserRoleHandler(c, st)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	record := loadTestRecord(t, st)
	assert.Equal(t, models.RoleAdmin, record.FindUserByID(1).Role)
}

func TestChangeUserBlockedHandler(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPatch, "/api/v1/admin/users/2/blocked", gin.H{"blocked": true})
	c.Params = gin.Params{{Key: "userID", Value: "2"}}
	loginAs(c, adminUser())
	ChangeUserBlockedHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	record := loadTestRecord(t, st)
	assert.True(t, record.FindUserByID(2).Blocked)
}

func TestChangeUserBlockedHandlerSelf(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPatch, "/api/v1/admin/users/1/blocked", gin.H{"blocked": true})
	c.Params = gin.Params{{Key: "userID", Value: "1"}}
	loginAs(c, adminUser())
	ChangeUserBlockedHandler(c, st)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/admin/users/2", nil)
	c.Params = gin.Params{{Key: "userID", Value: "2"}}
	loginAs(c, adminUser())
	DeleteUserHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	record := loadTestRecord(t, st)
	assert.Nil(t, record.FindUserByID(2))
	assert.Len(t, record.Users, 2)
}

func TestDeleteUserHandlerLastAdmin(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/admin/users/1", nil)
	c.Params = gin.Params{{Key: "userID", Value: "1"}}
	loginAs(c, models.User{ID: 99, Username: "other-admin", Role: models.RoleAdmin})
	DeleteUserHandler(c, st)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	record := loadTestRecord(t, st)
	require.NotNil(t, record.FindUserByID(1))
	assert.Len(t, record.Users, 3)
}

func TestCreateProductHandler(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/admin/products", gin.H{
		"name":           "Mocha",
		"category":       "Coffee",
		"description":    "Espresso with chocolate",
		"hasTemperature": true,
		"priceHot":       130,
		"priceCold":      140,
	})
	loginAs(c, adminUser())
	CreateProductHandler(c, st)

	require.Equal(t, http.StatusCreated, w.Code)
	record := loadTestRecord(t, st)
	require.Len(t, record.Products, 4)

	created := record.Products[3]
	assert.Equal(t, "Mocha", created.Name)
	assert.True(t, created.Available)
	//冷熱飲商品不可殘留單一價格欄位
	assert.Nil(t, created.Price)
	require.NotNil(t, created.PriceHot)
	assert.Equal(t, 130.0, *created.PriceHot)
}

func TestCreateProductHandlerMissingPricing(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/admin/products", gin.H{
		"name":           "Mocha",
		"category":       "Coffee",
		"description":    "Espresso with chocolate",
		"hasTemperature": true,
		"priceHot":       130,
	})
	loginAs(c, adminUser())
	CreateProductHandler(c, st)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	record := loadTestRecord(t, st)
	assert.Len(t, record.Products, 3)
}

func TestCreateProductHandlerInvalidCategory(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/admin/products", gin.H{
		"name":        "Mystery",
		"category":    "Dessert",
		"description": "Unknown category",
		"price":       100,
	})
	loginAs(c, adminUser())
	CreateProductHandler(c, st)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductHandlerSwitchPricingMode(t *testing.T) {
	st := newSeededStore(t)

	//冷熱飲改為單一價格，必須清除Hot/Cold價格欄位
	c, w := newTestContext(t, http.MethodPut, "/api/v1/admin/products/101", gin.H{
		"hasTemperature": false,
		"price":          110,
	})
	c.Params = gin.Params{{Key: "productID", Value: "101"}}
	loginAs(c, adminUser())
	UpdateProductHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	record := loadTestRecord(t, st)
	product := record.FindProductByID(101)
	assert.False(t, product.HasTemperature)
	require.NotNil(t, product.Price)
	assert.Equal(t, 110.0, *product.Price)
	assert.Nil(t, product.PriceHot)
	assert.Nil(t, product.PriceCold)
}

func TestUpdateProductHandlerNotFound(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPut, "/api/v1/admin/products/999", gin.H{"name": "Ghost"})
	c.Params = gin.Params{{Key: "productID", Value: "999"}}
	loginAs(c, adminUser())
	UpdateProductHandler(c, st)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleAvailabilityHandler(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPatch, "/api/v1/admin/products/101/available", gin.H{"available": false})
	c.Params = gin.Params{{Key: "productID", Value: "101"}}
	loginAs(c, adminUser())
	ToggleAvailabilityHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	record := loadTestRecord(t, st)
	assert.False(t, record.FindProductByID(101).Available)
}

func TestDeleteProductHandler(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/admin/products/201", nil)
	c.Params = gin.Params{{Key: "productID", Value: "201"}}
	loginAs(c, adminUser())
	DeleteProductHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	record := loadTestRecord(t, st)
	assert.Nil(t, record.FindProductByID(201))
	assert.Len(t, record.Products, 2)
}

func TestUpdateThemeHandler(t *testing.T) {
	st := newSeededStore(t)
	themes := theme.NewMemory()

	c, w := newTestContext(t, http.MethodPut, "/api/v1/admin/theme", gin.H{
		"siteName":       "深夜咖啡",
		"primaryColor":   "#000000",
		"secondaryColor": "#ffffff",
	})
	loginAs(c, adminUser())
	UpdateThemeHandler(c, st, themes)

	require.Equal(t, http.StatusOK, w.Code)

	record := loadTestRecord(t, st)
	assert.Equal(t, "深夜咖啡", record.Theme.SiteName)

	//主題同時寫入快取供其他分頁讀取
	cached, err := themes.Get(c)
	require.NoError(t, err)
	assert.Equal(t, record.Theme, cached)
}

func TestResetThemeHandler(t *testing.T) {
	st := newSeededStore(t)
	themes := theme.NewMemory()

	source := filepath.Join(t.TempDir(), "db.json")
	document := `{"theme":{"siteName":"Café Aroma","primaryColor":"#6f4e37","secondaryColor":"#d2b48c"},"users":[],"products":[],"orders":[]}`
	require.NoError(t, os.WriteFile(source, []byte(document), 0644))

	require.NoError(t, themes.Set(context.Background(), models.Theme{SiteName: "深夜咖啡"}))

	c, w := newTestContext(t, http.MethodPost, "/api/v1/admin/theme/reset", nil)
	loginAs(c, adminUser())
	ResetThemeHandler(c, st, themes, source)

	require.Equal(t, http.StatusOK, w.Code)

	record := loadTestRecord(t, st)
	assert.Equal(t, "Café Aroma", record.Theme.SiteName)

	cached, err := themes.Get(c)
	require.NoError(t, err)
	assert.Equal(t, "Café Aroma", cached.SiteName)
}

func TestGetAllOrdersHandler(t *testing.T) {
	st := newSeededStore(t)

	record := loadTestRecord(t, st)
	record.Orders = []models.Order{
		{ID: 1, UserID: 2, Total: 120, Status: models.OrderStatusPending},
		{ID: 2, UserID: 999, Total: 65, Status: models.OrderStatusPending},
	}
	require.NoError(t, st.Save(context.Background(), record))

	c, w := newTestContext(t, http.MethodGet, "/api/v1/admin/orders", nil)
	loginAs(c, adminUser())
	GetAllOrdersHandler(c, st)

	require.Equal(t, http.StatusOK, w.Code)
	body := responseBody(t, w)
	orderList, ok := body["orderList"].([]interface{})
	require.True(t, ok)
	require.Len(t, orderList, 2)

	//由新到舊排序，查無使用者時顯示預留名稱
	first, ok := orderList[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), first["orderID"])
	assert.Equal(t, "Unknown User", first["username"])

	second, ok := orderList[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", second["username"])
}
