package models

import "time"

// 整份資料庫內容，以單一JSON序列化後儲存
type Record struct {
	Users    []User    `json:"users"`
	Products []Product `json:"products"`
	Orders   []Order   `json:"orders"`
	Theme    Theme     `json:"theme"`
	// 樂觀鎖版本號，儲存層在寫入時檢查
	Version int64 `json:"version"`
}

func NewRecord() *Record {
	return &Record{
		Users:    []User{},
		Products: []Product{},
		Orders:   []Order{},
	}
}

// 以毫秒時間戳產生新ID，如與現有ID衝突則遞增避開
func nextID(ids []int64) int64 {
	id := time.Now().UnixMilli()
	for _, existing := range ids {
		if existing >= id {
			id = existing + 1
		}
	}
	return id
}

func (r *Record) NextUserID() int64 {
	ids := make([]int64, len(r.Users))
	for i, u := range r.Users {
		ids[i] = u.ID
	}
	return nextID(ids)
}

func (r *Record) NextProductID() int64 {
	ids := make([]int64, len(r.Products))
	for i, p := range r.Products {
		ids[i] = p.ID
	}
	return nextID(ids)
}

func (r *Record) NextOrderID() int64 {
	ids := make([]int64, len(r.Orders))
	for i, o := range r.Orders {
		ids[i] = o.ID
	}
	return nextID(ids)
}

func (r *Record) FindUserByEmail(email string) *User {
	for i := range r.Users {
		if r.Users[i].Email == email {
			return &r.Users[i]
		}
	}
	return nil
}

func (r *Record) FindUserByID(id int64) *User {
	for i := range r.Users {
		if r.Users[i].ID == id {
			return &r.Users[i]
		}
	}
	return nil
}

func (r *Record) FindProductByID(id int64) *Product {
	for i := range r.Products {
		if r.Products[i].ID == id {
			return &r.Products[i]
		}
	}
	return nil
}

// 計算管理員帳號數量，用於保護最後一位管理員
func (r *Record) AdminCount() int {
	count := 0
	for _, u := range r.Users {
		if u.IsAdmin() {
			count++
		}
	}
	return count
}
