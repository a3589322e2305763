package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"CafeBackend/models"
	"CafeBackend/store"
	"CafeBackend/theme"
)

// 預設資料文件，與整份資料庫紀錄相同的四個頂層欄位
type Document struct {
	Theme    models.Theme     `json:"theme"`
	Users    []models.User    `json:"users"`
	Products []models.Product `json:"products"`
	Orders   []models.Order   `json:"orders"`
}

// 讀取預設資料文件，來源可為本機路徑或http(s)網址
func Load(source string) (*Document, error) {
	var data []byte

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("讀取預設資料文件失敗: %s", resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, err
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	for i := range doc.Products {
		doc.Products[i].NormalizePricing()
	}

	//文件中的明文密碼改以bcrypt儲存，已是bcrypt格式則不變
	for i := range doc.Users {
		password := doc.Users[i].Password
		if password == "" || strings.HasPrefix(password, "$2") {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		doc.Users[i].Password = string(hashed)
	}

	return &doc, nil
}

// 將預設資料文件合併進現有紀錄：
//   - 首次執行時以文件內容建立整份紀錄
//   - 商品依ID更新或新增，保留本機修改過的available欄位
//   - 文件中的管理員覆蓋現有管理員，如不存在則插入到最前面
//   - 如有快取主題則以快取主題為準
func Reconcile(current *models.Record, doc *Document, cachedTheme *models.Theme) *models.Record {
	if current == nil {
		record := models.NewRecord()
		record.Users = append(record.Users, doc.Users...)
		record.Products = append(record.Products, doc.Products...)
		record.Orders = append(record.Orders, doc.Orders...)
		record.Theme = doc.Theme
		if cachedTheme != nil {
			record.Theme = *cachedTheme
		}
		return record
	}

	for _, seedProduct := range doc.Products {
		existing := current.FindProductByID(seedProduct.ID)
		if existing == nil {
			current.Products = append(current.Products, seedProduct)
			continue
		}
		//保留本機修改過的available欄位
		available := existing.Available
		*existing = seedProduct
		existing.Available = available
	}

	var seedAdmin *models.User
	for i := range doc.Users {
		if doc.Users[i].IsAdmin() {
			seedAdmin = &doc.Users[i]
			break
		}
	}
	if seedAdmin != nil {
		replaced := false
		for i := range current.Users {
			if current.Users[i].IsAdmin() {
				current.Users[i] = *seedAdmin
				replaced = true
				break
			}
		}
		if !replaced {
			current.Users = append([]models.User{*seedAdmin}, current.Users...)
		}
	}

	if cachedTheme != nil {
		current.Theme = *cachedTheme
	}

	return current
}

// 初始化資料庫：讀取預設資料文件並合併進儲存層。
// 文件讀取失敗時僅記錄錯誤，頁面以現有或空白資料降級運作。
func Initialize(ctx context.Context, st store.Store, themes theme.Cache, source string) error {
	doc, err := Load(source)
	if err != nil {
		return fmt.Errorf("讀取預設資料文件失敗: %w", err)
	}

	current, err := st.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		current = nil
	}

	var cachedTheme *models.Theme
	if themes != nil {
		cached, err := themes.Get(ctx)
		if err == nil && !cached.IsZero() {
			cachedTheme = &cached
		} else if err != nil && !errors.Is(err, theme.ErrNotFound) {
			log.Printf("讀取快取主題失敗: %v\n", err)
		}
	}

	record := Reconcile(current, doc, cachedTheme)
	return st.Save(ctx, record)
}
