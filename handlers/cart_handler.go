package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CafeBackend/cart"
	"CafeBackend/models"
	"CafeBackend/store"
)

func generateAnonymousCartID() string {
	id := uuid.New()
	return id.String()
}

// 從Cookie讀取匿名購物車ID
func getAnonymousCartID(c *gin.Context) string {
	anonymousCartID, err := c.Request.Cookie("anonymous_cart_id")
	if err != nil {
		return ""
	}
	return anonymousCartID.Value
}

// 儲存匿名購物車ID至Cookie
func setAnonymousCartID(c *gin.Context, cartID string) {
	cookie := http.Cookie{
		Name:     "anonymous_cart_id",
		Value:    cartID,
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(c.Writer, &cookie)
}

// 取得目前請求對應的購物車ID：已登入使用會員購物車，
// 否則使用Cookie中的匿名購物車，create為true時自動建立
func resolveCartID(c *gin.Context, create bool) (string, bool) {
	if userID, login := c.Get("UserID"); login {
		return fmt.Sprintf("user:%d", userID), true
	}

	anonymousCartID := getAnonymousCartID(c)
	if anonymousCartID == "" {
		if !create {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "尚未建立匿名購物車",
			})
			return "", false
		}
		anonymousCartID = generateAnonymousCartID()
		setAnonymousCartID(c, anonymousCartID)
	}
	return "anonymous:" + anonymousCartID, true
}

func AddToCartHandler(c *gin.Context, st store.Store, carts cart.Store) {
	var cartItemReq struct {
		ProductID   int64  `json:"productID" binding:"required"`
		Temperature string `json:"temperature"`
		Quantity    int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}
	if cartItemReq.Quantity <= 0 {
		cartItemReq.Quantity = 1
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	//檢查商品是否存在且上架中
	product := record.FindProductByID(cartItemReq.ProductID)
	if product == nil || !product.Available {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "查無此商品或已下架",
		})
		return
	}

	//冷熱飲商品必須指定溫度，單一價格商品不可指定
	if product.HasTemperature {
		if !models.ValidTemperature(cartItemReq.Temperature) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "此商品需指定Hot或Cold",
			})
			return
		}
	} else if cartItemReq.Temperature != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "此商品沒有溫度選項",
		})
		return
	}

	cartID, ok := resolveCartID(c, true)
	if !ok {
		return
	}

	items, err := carts.Get(c, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	//相同商品加溫度選項合併數量，否則新增一筆
	items = cart.Add(items, *product, cartItemReq.Temperature, cartItemReq.Quantity)

	if err := carts.Save(c, cartID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功新增物品至購物車",
		"productID": cartItemReq.ProductID,
		"count":     cart.Count(items),
	})
}

// 更新購物車商品數量，數量小於等於0時移除該筆商品
func UpdateCartItemQuantityHandler(c *gin.Context, carts cart.Store) {
	var cartItemReq struct {
		ItemID   string `json:"itemID" binding:"required"`
		Quantity *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	cartID, ok := resolveCartID(c, false)
	if !ok {
		return
	}

	items, err := carts.Get(c, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	items, found := cart.UpdateQuantity(items, cartItemReq.ItemID, *cartItemReq.Quantity)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "購物車沒有此商品",
		})
		return
	}

	if err := carts.Save(c, cartID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功更新購物車物品數量",
		"itemID":  cartItemReq.ItemID,
		"count":   cart.Count(items),
	})
}

// 刪除購物車商品
func DeleteCartItemHandler(c *gin.Context, carts cart.Store) {
	itemID := c.Param("itemID")

	cartID, ok := resolveCartID(c, false)
	if !ok {
		return
	}

	items, err := carts.Get(c, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	items, found := cart.Remove(items, itemID)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "購物車沒有此商品",
		})
		return
	}

	if err := carts.Save(c, cartID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除購物車物品",
		"itemID":  itemID,
	})
}

// 合併匿名購物車至會員購物車(登入或註冊後呼叫)
func MergeCartHandler(c *gin.Context, carts cart.Store) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	//判斷是否已有匿名購物車
	anonymousCartID := getAnonymousCartID(c)
	if anonymousCartID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "尚未建立匿名購物車，無須合併",
		})
		return
	}

	anonymousItems, err := carts.Get(c, "anonymous:"+anonymousCartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢匿名購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	userCartID := fmt.Sprintf("user:%d", userID)
	userItems, err := carts.Get(c, userCartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	merged := cart.Merge(userItems, anonymousItems)
	if err := carts.Save(c, userCartID, merged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "合併購物車商品失敗",
			"error":   err.Error(),
		})
		return
	}

	if err := carts.Clear(c, "anonymous:"+anonymousCartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "成功合併購物車商品，清空匿名購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功合併商品至購物車",
		"count":   cart.Count(merged),
	})
}

func GetCartHandler(c *gin.Context, carts cart.Store) {
	cartID, ok := resolveCartID(c, false)
	if !ok {
		return
	}

	items, err := carts.Get(c, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢購物車",
		"items":   items,
		"total":   cart.Total(items),
		"count":   cart.Count(items),
	})
}

func ClearCartHandler(c *gin.Context, carts cart.Store) {
	cartID, ok := resolveCartID(c, false)
	if !ok {
		return
	}

	if err := carts.Clear(c, cartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "清空購物車失敗",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功清空購物車",
	})
}
