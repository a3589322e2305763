package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"CafeBackend/store"
)

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "ID格式錯誤",
			"error":   err.Error(),
		})
		return 0, false
	}
	return id, true
}

// 查詢商品列表，只回傳上架中的商品
func GetProductListHandler(c *gin.Context, st store.Store) {
	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	products := make([]gin.H, 0, len(record.Products))
	for _, product := range record.Products {
		if !product.Available {
			continue
		}
		products = append(products, gin.H{
			"id":             product.ID,
			"name":           product.Name,
			"category":       product.Category,
			"description":    product.Description,
			"image":          product.Image,
			"hasTemperature": product.HasTemperature,
			"price":          product.Price,
			"priceHot":       product.PriceHot,
			"priceCold":      product.PriceCold,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "成功讀取商品列表",
		"products":   products,
		"totalCount": len(products),
	})
}

// 查詢商品詳細資料
func GetProductDataHandler(c *gin.Context, st store.Store) {
	productID, ok := parseID(c, "productID")
	if !ok {
		return
	}

	record, ok := loadRecord(c, st)
	if !ok {
		return
	}

	product := record.FindProductByID(productID)
	if product == nil || !product.Available {
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
