package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"CafeBackend/cart"
	"CafeBackend/models"
	"CafeBackend/store"
)

// 結帳：將購物車快照轉為訂單並清空購物車。
// 購物車為空時不建立訂單也不清除任何資料。
func SendOrderHandler(c *gin.Context, st store.Store, carts cart.Store) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	cartID := fmt.Sprintf("user:%d", userID)
	items, err := carts.Get(c, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	//購物車為空直接結束
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "購物車是空的",
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	newOrder := models.Order{
		ID:     record.NextOrderID(),
		UserID: userID.(int64),
		Items:  items,
		Total:  cart.Total(items),
		Date:   time.Now(),
		Status: models.OrderStatusPending,
	}
	record.Orders = append(record.Orders, newOrder)

	if !saveRecord(c, st, record) {
		return
	}

	//訂單已建立，清空購物車
	if err := carts.Clear(c, cartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "訂單已送出，但清空購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	//成功結帳 回傳收據
	c.JSON(http.StatusCreated, gin.H{
		"message": "訂單已送出",
		"order":   newOrder,
	})
}

// 查詢訂單列表，由新到舊排序
func GetOrderListHandler(c *gin.Context, st store.Store) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	record, ok2 := loadRecord(c, st)
	if !ok2 {
		return
	}

	var orders []models.Order
	for _, order := range record.Orders {
		if order.UserID == userID.(int64) {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID > orders[j].ID
	})

	orderList := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		orderList = append(orderList, gin.H{
			"orderID": order.ID,
			"date":    order.Date,
			"total":   order.Total,
			"status":  order.Status,
			"items":   order.Items,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功查詢訂單列表",
		"orderList": orderList,
	})
}

func GetOrderDataHandler(c *gin.Context, st store.Store) {
	orderID, ok := parseID(c, "orderID")
	if !ok {
		return
	}
	userID, exists := c.Get("UserID")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	for _, order := range record.Orders {
		if order.ID == orderID && order.UserID == userID.(int64) {
			c.JSON(http.StatusOK, gin.H{
				"message": "成功查詢訂單",
				"order":   order,
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"message": "查無此訂單",
	})
}

// 清除使用者自己的訂單紀錄
func ClearOrderHistoryHandler(c *gin.Context, st store.Store) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	record, ok2 := loadRecord(c, st)
	if !ok2 {
		return
	}

	remaining := record.Orders[:0]
	for _, order := range record.Orders {
		if order.UserID != userID.(int64) {
			remaining = append(remaining, order)
		}
	}
	record.Orders = remaining

	if !saveRecord(c, st, record) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功清除訂單紀錄",
	})
}
