package handlers

import (
	"net/http"
	"regexp"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"CafeBackend/jwt"
	"CafeBackend/models"
	"CafeBackend/session"
	"CafeBackend/store"
)

// 檢查使用者名稱是否合法
func ValidateUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	pattern := "^[a-zA-Z0-9_-]+$"
	matched, _ := regexp.MatchString(pattern, username)
	return matched
}

// 檢查信箱是否合法
func ValidateEmail(email string) bool {
	pattern := "^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$"
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// 檢查密碼是否合法
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 50 {
		return false
	}

	var (
		isUpper   = false
		isLower   = false
		isNumber  = false
		isSpecial = false
		isSpace   = false
	)

	for _, s := range password {
		switch {
		case unicode.IsSpace(s):
			isSpace = true
		case unicode.IsUpper(s):
			isUpper = true
		case unicode.IsLower(s):
			isLower = true
		case unicode.IsDigit(s):
			isNumber = true
		case unicode.IsPunct(s) || unicode.IsSymbol(s):
			isSpecial = true
		default:
		}
	}

	return isUpper && isLower && isNumber && isSpecial && !isSpace
}

// 註冊使用者帳戶，角色固定為customer
func RegisterHandler(c *gin.Context, st store.Store) {
	var signupReq struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&signupReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//檢查使用者名稱是否合法
	if !ValidateUsername(signupReq.Username) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "註冊失敗:不合法的使用者名稱",
		})
		return
	}

	//檢查信箱是否合法
	if !ValidateEmail(signupReq.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "註冊失敗:不合法的信箱",
		})
		return
	}

	//檢查密碼是否合法
	if !ValidatePassword(signupReq.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "註冊失敗:不合法的密碼",
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	//檢查信箱是否重複
	if record.FindUserByEmail(signupReq.Email) != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "註冊失敗:信箱已被使用",
		})
		return
	}

	//將密碼Hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signupReq.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法生成Hashed密碼",
			"error":   err.Error(),
		})
		return
	}

	newUser := models.User{
		ID:       record.NextUserID(),
		Username: signupReq.Username,
		Email:    signupReq.Email,
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}
	record.Users = append(record.Users, newUser)

	if !saveRecord(c, st, record) {
		return
	}

	//成功註冊
	c.JSON(http.StatusCreated, gin.H{
		"message":  "使用者已成功註冊",
		"username": newUser.Username,
	})
}

func LoginHandler(c *gin.Context, st store.Store, sessions session.Store, sessionTTL time.Duration) {
	//檢查是否已經登入
	if _, ok := c.Get("UserID"); ok {
		c.JSON(http.StatusOK, gin.H{
			"message": "已經登入",
		})
		return
	}

	//從請求擷取信箱和密碼
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	//檢查是否有此帳號
	user := record.FindUserByEmail(loginReq.Email)
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "找不到此帳號",
		})
		return
	}

	//檢查密碼是否正確
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginReq.Password))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "密碼錯誤",
		})
		return
	}

	//已被封鎖的帳號不可登入
	if user.Blocked {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "此帳號已被封鎖",
		})
		return
	}

	//生成JWT Token
	tokenExpiredTime := time.Now().Add(sessionTTL)
	token, err := jwt.GenerateToken(user.ID, user.Role, tokenExpiredTime.Unix())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "生成JWT Token錯誤",
			"error":   err.Error(),
		})
		return
	}

	//儲存登入當下的使用者快照作為Session
	if err := sessions.Set(c, token, *user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存Session失敗",
			"error":   err.Error(),
		})
		return
	}

	//成功登入 回傳Token和使用者資料
	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{
		"message": "成功登入",
		"user":    userView(*user),
		"theme":   record.Theme,
	})
}

func LogOutHandler(c *gin.Context, sessions session.Store) {
	token, exists := c.Get("Token")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "無法取得Token",
		})
		return
	}

	//刪除Session快照
	err := sessions.Delete(c, token.(string))
	if err != nil {
		if err == session.ErrNotFound {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "找不到此Session或已登出",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除Session失敗",
			"error":   err.Error(),
		})
		return
	}

	c.Header("Authorization", "")
	c.JSON(http.StatusOK, gin.H{
		"message": "成功登出",
	})
}

// 查詢使用者資料，直接回傳登入快照，不重新查詢資料庫
func GetUserProfileHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者資料",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢使用者資料",
		"user":    userView(user),
	})
}
