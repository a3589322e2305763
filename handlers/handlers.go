package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"CafeBackend/models"
	"CafeBackend/store"
)

// 讀取整份資料庫紀錄，尚未初始化時以空白紀錄降級運作。
// 讀取失敗時回應錯誤並回傳false。
func loadRecord(c *gin.Context, st store.Store) (*models.Record, bool) {
	record, err := st.Load(c)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.NewRecord(), true
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "讀取資料庫失敗",
			"error":   err.Error(),
		})
		return nil, false
	}
	return record, true
}

// 寫回整份資料庫紀錄，版本過期回應409
func saveRecord(c *gin.Context, st store.Store, record *models.Record) bool {
	err := st.Save(c, record)
	if err != nil {
		if errors.Is(err, store.ErrStale) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "資料已被其他操作修改，請重試",
			})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "寫入資料庫失敗",
			"error":   err.Error(),
		})
		return false
	}
	return true
}

// 從Context取得登入快照
func currentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("User")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// 使用者資料回應內容，不包含密碼
func userView(user models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"blocked":  user.Blocked,
	}
}
