package models

import "fmt"

// 購物車內的一筆商品，以商品ID加溫度選項作為唯一鍵
type CartItem struct {
	ItemID      string  `json:"itemId"`
	ProductID   int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Temperature string  `json:"temperature,omitempty"`
}

// 組合購物車商品唯一鍵
func CartItemID(productID int64, temperature string) string {
	if temperature == "" {
		return fmt.Sprintf("%d", productID)
	}
	return fmt.Sprintf("%d-%s", productID, temperature)
}
