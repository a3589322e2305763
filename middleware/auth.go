package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"CafeBackend/jwt"
	"CafeBackend/session"
)

// 嘗試從Authorization取出Token並還原登入快照，
// 失敗時不中止請求，僅以未登入狀態繼續
func AuthMiddleware(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" {
			c.Header("Authorization", "")
			c.Next()
			return
		}

		//如Token不合法或錯誤則回傳空Authorization
		userID, role, err := jwt.VerifyToken(token)
		if err != nil {
			log.Printf("無法驗證Token: %v\n", err)
			c.Header("Authorization", "")
			c.Next()
			return
		}

		//從Session儲存取出登入當下的使用者快照，已登出則視為未登入
		user, err := sessions.Get(c, token)
		if err != nil {
			if err != session.ErrNotFound {
				log.Printf("讀取Session失敗: %v\n", err)
			}
			c.Header("Authorization", "")
			c.Next()
			return
		}

		c.Header("Authorization", authHeader)
		c.Set("Token", token)
		c.Set("UserID", userID)
		c.Set("Role", role)
		c.Set("User", user)
		c.Next()
	}
}
