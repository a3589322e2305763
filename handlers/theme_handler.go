package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"CafeBackend/store"
	"CafeBackend/theme"
)

// 查詢站台主題，優先讀取快取，快取不存在時讀取資料庫紀錄
func GetThemeHandler(c *gin.Context, st store.Store, themes theme.Cache) {
	cached, err := themes.Get(c)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "成功查詢主題",
			"theme":   cached,
		})
		return
	}
	if !errors.Is(err, theme.ErrNotFound) {
		log.Printf("讀取快取主題失敗: %v\n", err)
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢主題",
		"theme":   record.Theme,
	})
}
