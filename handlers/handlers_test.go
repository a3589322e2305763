package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"CafeBackend/models"
	"CafeBackend/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func floatPtr(f float64) *float64 {
	return &f
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

// 建立測試用的記憶體儲存，包含管理員、會員、封鎖帳號與商品
func newSeededStore(t *testing.T) *store.Memory {
	t.Helper()

	record := models.NewRecord()
	record.Users = []models.User{
		{ID: 1, Username: "admin", Email: "admin@cafe.com", Password: hashPassword(t, "Admin@1234"), Role: models.RoleAdmin},
		{ID: 2, Username: "alice", Email: "alice@cafe.com", Password: hashPassword(t, "Alice@1234"), Role: models.RoleCustomer},
		{ID: 3, Username: "mallory", Email: "mallory@cafe.com", Password: hashPassword(t, "Mallory@1234"), Role: models.RoleCustomer, Blocked: true},
	}
	record.Products = []models.Product{
		{ID: 101, Name: "Latte", Category: models.CategoryCoffee, Description: "Espresso with steamed milk",
			Available: true, HasTemperature: true, PriceHot: floatPtr(120), PriceCold: floatPtr(130)},
		{ID: 201, Name: "Croissant", Category: models.CategoryPastry, Description: "Flaky butter croissant",
			Available: true, Price: floatPtr(65)},
		{ID: 301, Name: "Seasonal Special", Category: models.CategorySideDish, Description: "Not on the menu yet",
			Available: false, Price: floatPtr(150)},
	}
	record.Theme = models.Theme{SiteName: "Café Aroma", PrimaryColor: "#6f4e37", SecondaryColor: "#d2b48c"}

	st := store.NewMemory()
	require.NoError(t, st.Save(context.Background(), record))
	return st
}

func newTestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

// 模擬已通過登入驗證的請求
func loginAs(c *gin.Context, user models.User) {
	c.Set("Token", "test-token")
	c.Set("UserID", user.ID)
	c.Set("Role", user.Role)
	c.Set("User", user)
}

func loadTestRecord(t *testing.T, st store.Store) *models.Record {
	t.Helper()
	record, err := st.Load(context.Background())
	require.NoError(t, err)
	return record
}

func responseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
