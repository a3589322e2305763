package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"CafeBackend/models"
	"CafeBackend/seed"
	"CafeBackend/store"
	"CafeBackend/theme"
)

func isValidImageExtensions(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

func makeUniqueFileName(file *multipart.FileHeader) string {
	fileExt := filepath.Ext(file.Filename)
	fileBase := strings.TrimSuffix(file.Filename, fileExt)
	return fmt.Sprintf("%s_%d%s", fileBase, time.Now().UnixNano(), fileExt)
}

// 查詢使用者列表，不包含密碼
func GetUserListHandler(c *gin.Context, st store.Store) {
	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	userList := make([]gin.H, 0, len(record.Users))
	for _, user := range record.Users {
		userList = append(userList, userView(user))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "成功獲取使用者列表",
		"userList": userList,
	})
}

// 變更使用者角色，不可變更自己，也不可將最後一位管理員降級
func ChangeUserRoleHandler(c *gin.Context, st store.Store) {
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}

	var roleReq struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&roleReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}
	if roleReq.Role != models.RoleAdmin && roleReq.Role != models.RoleCustomer {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "不合法的角色",
		})
		return
	}

	me, _ := currentUser(c)
	if targetID == me.ID {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "不可變更自己的角色",
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	target := record.FindUserByID(targetID)
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此使用者",
		})
		return
	}

	//保護最後一位管理員
	if target.IsAdmin() && roleReq.Role == models.RoleCustomer && record.AdminCount() <= 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "不可移除最後一位管理員",
		})
		return
	}

	target.Role = roleReq.Role

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功變更使用者角色",
		"user":    userView(*target),
	})
}

// 封鎖或解除封鎖使用者，不可封鎖自己
func ChangeUserBlockedHandler(c *gin.Context, st store.Store) {
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}

	var blockedReq struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&blockedReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	me, _ := currentUser(c)
	if targetID == me.ID {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "不可封鎖自己",
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	target := record.FindUserByID(targetID)
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此使用者",
		})
		return
	}

	target.Blocked = *blockedReq.Blocked

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功變更使用者狀態",
		"user":    userView(*target),
	})
}

// 刪除使用者，不可刪除自己或最後一位管理員
func DeleteUserHandler(c *gin.Context, st store.Store) {
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}

	me, _ := currentUser(c)
	if targetID == me.ID {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "不可刪除自己",
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	target := record.FindUserByID(targetID)
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此使用者",
		})
		return
	}

	//保護最後一位管理員
	if target.IsAdmin() && record.AdminCount() <= 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "不可刪除最後一位管理員",
		})
		return
	}

	remaining := record.Users[:0]
	for _, user := range record.Users {
		if user.ID != targetID {
			remaining = append(remaining, user)
		}
	}
	record.Users = remaining

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除使用者",
	})
}

func UploadImageHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定圖片失敗",
			"error":   err.Error(),
		})
		return
	}

	if !isValidImageExtensions(file) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "圖片檔案格式錯誤",
		})
		return
	}

	uploadsDir := "./uploads"
	//檢查uploads資料夾是否存在，如不存在則創建
	_, err = os.Stat(uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.Mkdir(uploadsDir, 0755); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "建立uploads資料夾失敗",
					"error":   err.Error(),
				})
				return
			}
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "檢查uploads資料夾失敗",
				"error":   err.Error(),
			})
			return
		}
	}

	imageName := makeUniqueFileName(file)
	filePath := filepath.Join(uploadsDir, imageName)
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存圖片失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "成功上傳圖片",
		"imagePath": "/" + filepath.ToSlash(filePath),
	})
}

type productRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Available      *bool    `json:"available"`
	HasTemperature *bool    `json:"hasTemperature"`
	Price          *float64 `json:"price"`
	PriceHot       *float64 `json:"priceHot"`
	PriceCold      *float64 `json:"priceCold"`
}

// 檢查商品定價是否完整：冷熱飲需有兩種價格，單一價格商品需有price
func validatePricing(p models.Product) string {
	if p.HasTemperature {
		if p.PriceHot == nil || p.PriceCold == nil || *p.PriceHot <= 0 || *p.PriceCold <= 0 {
			return "冷熱飲商品需填寫Hot與Cold兩種價格"
		}
		return ""
	}
	if p.Price == nil || *p.Price <= 0 {
		return "請填寫商品價格"
	}
	return ""
}

// 新增商品
func CreateProductHandler(c *gin.Context, st store.Store) {
	var productReq productRequest
	if err := c.ShouldBindJSON(&productReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if productReq.Name == "" || productReq.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "請填寫商品名稱與描述",
		})
		return
	}
	if !models.ValidCategory(productReq.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "不合法的商品分類",
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	newProduct := models.Product{
		ID:          record.NextProductID(),
		Name:        productReq.Name,
		Category:    productReq.Category,
		Description: productReq.Description,
		Image:       productReq.Image,
		Available:   true,
		Price:       productReq.Price,
		PriceHot:    productReq.PriceHot,
		PriceCold:   productReq.PriceCold,
	}
	if productReq.Available != nil {
		newProduct.Available = *productReq.Available
	}
	if productReq.HasTemperature != nil {
		newProduct.HasTemperature = *productReq.HasTemperature
	}

	if msg := validatePricing(newProduct); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": msg,
		})
		return
	}

	//確保只有一種定價模式
	newProduct.NormalizePricing()
	record.Products = append(record.Products, newProduct)

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "成功新增商品",
		"product": newProduct,
	})
}

// 修改商品，切換定價模式時清除未使用的價格欄位
func UpdateProductHandler(c *gin.Context, st store.Store) {
	productID, ok := parseID(c, "productID")
	if !ok {
		return
	}

	var productReq productRequest
	if err := c.ShouldBindJSON(&productReq); err != nil {
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

	product := record.FindProductByID(productID)
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此商品",
		})
		return
	}

	if productReq.Name != "" {
		product.Name = productReq.Name
	}
	if productReq.Category != "" {
		if !models.ValidCategory(productReq.Category) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "不合法的商品分類",
			})
			return
		}
		product.Category = productReq.Category
	}
	if productReq.Description != "" {
		product.Description = productReq.Description
	}
	if productReq.Image != "" {
		product.Image = productReq.Image
	}
	if productReq.Available != nil {
		product.Available = *productReq.Available
	}
	if productReq.HasTemperature != nil {
		product.HasTemperature = *productReq.HasTemperature
	}
	if productReq.Price != nil {
		product.Price = productReq.Price
	}
	if productReq.PriceHot != nil {
		product.PriceHot = productReq.PriceHot
	}
	if productReq.PriceCold != nil {
		product.PriceCold = productReq.PriceCold
	}

	if msg := validatePricing(*product); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": msg,
		})
		return
	}

	//確保只有一種定價模式
	product.NormalizePricing()

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功修改商品資料",
		"product": product,
	})
}

// 刪除商品
func DeleteProductHandler(c *gin.Context, st store.Store) {
	productID, ok := parseID(c, "productID")
	if !ok {
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	if record.FindProductByID(productID) == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此商品",
		})
		return
	}

	remaining := record.Products[:0]
	for _, product := range record.Products {
		if product.ID != productID {
			remaining = append(remaining, product)
		}
	}
	record.Products = remaining

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除商品",
	})
}

// 切換商品上下架
func ToggleAvailabilityHandler(c *gin.Context, st store.Store) {
	productID, ok := parseID(c, "productID")
	if !ok {
		return
	}

	var availableReq struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&availableReq); err != nil {
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

	product := record.FindProductByID(productID)
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此商品",
		})
		return
	}

	product.Available = *availableReq.Available

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功變更商品上下架狀態",
		"product": product,
	})
}

// 查詢商品完整列表，包含已下架商品
func GetAdminProductListHandler(c *gin.Context, st store.Store) {
	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "成功讀取商品列表",
		"products":   record.Products,
		"totalCount": len(record.Products),
	})
}

// 查詢商品完整資料
func GetProductAllDataHandler(c *gin.Context, st store.Store) {
	productID, ok := parseID(c, "productID")
	if !ok {
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	product := record.FindProductByID(productID)
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此商品",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢商品資料",
		"product": product,
	})
}

// 更新站台主題，同時寫入資料庫紀錄與快取並發布變更通知
func UpdateThemeHandler(c *gin.Context, st store.Store, themes theme.Cache) {
	var themeReq struct {
		SiteName       string `json:"siteName" binding:"required"`
		PrimaryColor   string `json:"primaryColor" binding:"required"`
		SecondaryColor string `json:"secondaryColor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&themeReq); err != nil {
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

	record.Theme = models.Theme{
		SiteName:       themeReq.SiteName,
		PrimaryColor:   themeReq.PrimaryColor,
		SecondaryColor: themeReq.SecondaryColor,
	}

	if !saveRecord(c, st, record) {
		return
	}

	if err := themes.Set(c, record.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "主題已儲存，但更新快取失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功更新主題",
		"theme":   record.Theme,
	})
}

// 重設主題為預設資料文件中的值
func ResetThemeHandler(c *gin.Context, st store.Store, themes theme.Cache, seedSource string) {
	doc, err := seed.Load(seedSource)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "讀取預設資料文件失敗",
			"error":   err.Error(),
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	record.Theme = doc.Theme

	if !saveRecord(c, st, record) {
		return
	}

	if err := themes.Set(c, record.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "主題已重設，但更新快取失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功重設主題",
		"theme":   record.Theme,
	})
}

// 查詢全站訂單，由新到舊排序，唯讀
func GetAllOrdersHandler(c *gin.Context, st store.Store) {
	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	orders := make([]models.Order, len(record.Orders))
	copy(orders, record.Orders)
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID > orders[j].ID
	})

	orderList := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		username := "Unknown User"
		email := "N/A"
		if user := record.FindUserByID(order.UserID); user != nil {
			username = user.Username
			email = user.Email
		}
		orderList = append(orderList, gin.H{
			"orderID":  order.ID,
			"username": username,
			"email":    email,
			"date":     order.Date,
			"total":    order.Total,
			"status":   order.Status,
			"items":    order.Items,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功查詢訂單列表",
		"orderList": orderList,
	})
}
