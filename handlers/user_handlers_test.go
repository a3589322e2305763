package handlers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CafeBackend/jwt"
	"CafeBackend/models"
	"CafeBackend/session"
)

// 產生測試用RSA金鑰供登入流程簽發Token
func configureTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private_key.pem")
	publicPath := filepath.Join(dir, "public_key.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0600))

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicBytes,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0644))

	jwt.Configure(privatePath, publicPath)
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Valid@123"))
	assert.False(t, ValidatePassword("short"))
	assert.False(t, ValidatePassword("nouppercase@123"))
	assert.False(t, ValidatePassword("NOLOWERCASE@123"))
	assert.False(t, ValidatePassword("NoDigits@here"))
	assert.False(t, ValidatePassword("NoSpecial1234"))
	assert.False(t, ValidatePassword("Has Space@123"))
}

func TestRegisterHandler(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/register", gin.H{
		"username": "bob",
		"email":    "bob@cafe.com",
		"password": "Bob@12345",
	})
	RegisterHandler(c, st)

	require.Equal(t, http.StatusCreated, w.Code)

	record := loadTestRecord(t, st)
	user := record.FindUserByEmail("bob@cafe.com")
	require.NotNil(t, user)
	//角色固定為customer，密碼不可為明文
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, strings.HasPrefix(user.Password, "$2"))
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/register", gin.H{
		"username": "alice2",
		"email":    "alice@cafe.com",
		"password": "Alice@1234",
	})
	RegisterHandler(c, st)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	record := loadTestRecord(t, st)
	assert.Len(t, record.Users, 3)
}

func TestRegisterHandlerInvalidInput(t *testing.T) {
	st := newSeededStore(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"bad username", gin.H{"username": "a", "email": "new@cafe.com", "password": "Valid@123"}},
		{"bad email", gin.H{"username": "newuser", "email": "not-an-email", "password": "Valid@123"}},
		{"bad password", gin.H{"username": "newuser", "email": "new@cafe.com", "password": "weak"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodPost, "/api/v1/register", tt.body)
			RegisterHandler(c, st)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	configureTestKeys(t)
	st := newSeededStore(t)
	sessions := session.NewMemory()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/login", gin.H{
		"email":    "alice@cafe.com",
		"password": "Alice@1234",
	})
	LoginHandler(c, st, sessions, 24*time.Hour)

	require.Equal(t, http.StatusOK, w.Code)

	authHeader := w.Header().Get("Authorization")
	require.True(t, strings.HasPrefix(authHeader, "Bearer "))
	token := strings.TrimPrefix(authHeader, "Bearer ")

	//Session保存登入當下的使用者快照
	user, err := sessions.Get(c, token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)

	//回應不可包含密碼
	body := responseBody(t, w)
	userData, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, userData, "password")
	assert.Contains(t, body, "theme")
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	configureTestKeys(t)
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/login", gin.H{
		"email":    "alice@cafe.com",
		"password": "Wrong@1234",
	})
	LoginHandler(c, st, session.NewMemory(), 24*time.Hour)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandlerUnknownEmail(t *testing.T) {
	configureTestKeys(t)
	st := newSeededStore(t)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/login", gin.H{
		"email":    "nobody@cafe.com",
		"password": "Nobody@1234",
	})
	LoginHandler(c, st, session.NewMemory(), 24*time.Hour)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandlerBlockedUser(t *testing.T) {
	configureTestKeys(t)
	st := newSeededStore(t)
	sessions := session.NewMemory()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/login", gin.H{
		"email":    "mallory@cafe.com",
		"password": "Mallory@1234",
	})
	LoginHandler(c, st, sessions, 24*time.Hour)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Authorization"))
}

func TestLogOutHandler(t *testing.T) {
	sessions := session.NewMemory()
	user := models.User{ID: 2, Username: "alice", Role: models.RoleCustomer}
	require.NoError(t, sessions.Set(context.Background(), "test-token", user))

	c, w := newTestContext(t, http.MethodPost, "/api/v1/user/logout", nil)
	loginAs(c, user)
	LogOutHandler(c, sessions)

	require.Equal(t, http.StatusOK, w.Code)
	_, err := sessions.Get(c, "test-token")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestGetUserProfileHandler(t *testing.T) {
	c, w := newTestContext(t, http.MethodGet, "/api/v1/user/profile", nil)
	loginAs(c, models.User{ID: 2, Username: "alice", Email: "alice@cafe.com", Role: models.RoleCustomer})
	GetUserProfileHandler(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := responseBody(t, w)
	userData, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", userData["username"])
	assert.NotContains(t, userData, "password")
}
