package cart

import (
	"context"

	"CafeBackend/models"
)

// 購物車為暫時性資料，不存進整份資料庫紀錄
type Store interface {
	// Get回傳購物車內容，購物車不存在時回傳空切片
	Get(ctx context.Context, cartID string) ([]models.CartItem, error)
	Save(ctx context.Context, cartID string, items []models.CartItem) error
	Clear(ctx context.Context, cartID string) error
}

// 新增商品至購物車，相同商品加溫度選項合併數量，否則新增一筆
func Add(items []models.CartItem, product models.Product, temperature string, quantity int) []models.CartItem {
	itemID := models.CartItemID(product.ID, temperature)

	for i := range items {
		if items[i].ItemID == itemID {
			items[i].Quantity += quantity
			return items
		}
	}

	name := product.Name
	if temperature != "" {
		name = name + " (" + temperature + ")"
	}

	return append(items, models.CartItem{
		ItemID:      itemID,
		ProductID:   product.ID,
		Name:        name,
		Price:       product.UnitPrice(temperature),
		Quantity:    quantity,
		Temperature: temperature,
	})
}

// 更新購物車商品數量，數量小於等於0時移除該筆商品
func UpdateQuantity(items []models.CartItem, itemID string, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ItemID == itemID {
			if quantity <= 0 {
				return append(items[:i], items[i+1:]...), true
			}
			items[i].Quantity = quantity
			return items, true
		}
	}
	return items, false
}

// 移除購物車商品
func Remove(items []models.CartItem, itemID string) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ItemID == itemID {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// 合併兩個購物車，相同商品合併數量
func Merge(dst, src []models.CartItem) []models.CartItem {
	for _, item := range src {
		merged := false
		for i := range dst {
			if dst[i].ItemID == item.ItemID {
				dst[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			dst = append(dst, item)
		}
	}
	return dst
}

// 計算購物車總金額
func Total(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// 計算購物車商品總數量
func Count(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
