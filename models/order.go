package models

import "time"

const OrderStatusPending = "pending"

// 訂單建立後除狀態之外不可變更
type Order struct {
	ID     int64      `json:"id"`
	UserID int64      `json:"userId"`
	Items  []CartItem `json:"items"`
	Total  float64    `json:"total"`
	Date   time.Time  `json:"date"`
	Status string     `json:"status"`
}
