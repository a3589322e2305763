package models

const (
	CategoryCoffee   = "Coffee"
	CategoryPastry   = "Pastry"
	CategorySideDish = "Side Dish"
)

const (
	TemperatureHot  = "Hot"
	TemperatureCold = "Cold"
)

// 從單一價格建立冷熱飲時，冷飲預設加價10元
const defaultColdSurcharge = 10

type Product struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Available      bool     `json:"available"`
	HasTemperature bool     `json:"hasTemperature"`
	Price          *float64 `json:"price,omitempty"`
	PriceHot       *float64 `json:"priceHot,omitempty"`
	PriceCold      *float64 `json:"priceCold,omitempty"`
}

// 檢查商品分類是否合法
func ValidCategory(category string) bool {
	switch category {
	case CategoryCoffee, CategoryPastry, CategorySideDish:
		return true
	}
	return false
}

// 檢查溫度選項是否合法
func ValidTemperature(temperature string) bool {
	return temperature == TemperatureHot || temperature == TemperatureCold
}

// 確保商品只有一種定價模式：冷熱飲商品使用PriceHot/PriceCold並清除Price，
// 單一價格商品使用Price並清除PriceHot/PriceCold
func (p *Product) NormalizePricing() {
	if p.HasTemperature {
		if p.PriceHot == nil && p.Price != nil {
			hot := *p.Price
			p.PriceHot = &hot
		}
		if p.PriceCold == nil && p.Price != nil {
			cold := *p.Price + defaultColdSurcharge
			p.PriceCold = &cold
		}
		p.Price = nil
		return
	}
	if p.Price == nil {
		if p.PriceHot != nil {
			price := *p.PriceHot
			p.Price = &price
		} else if p.PriceCold != nil {
			price := *p.PriceCold
			p.Price = &price
		}
	}
	p.PriceHot = nil
	p.PriceCold = nil
}

// 依溫度選項取得商品單價，如定價欄位缺少則依序使用現有欄位
func (p Product) UnitPrice(temperature string) float64 {
	if p.HasTemperature {
		if temperature == TemperatureHot && p.PriceHot != nil {
			return *p.PriceHot
		}
		if temperature == TemperatureCold && p.PriceCold != nil {
			return *p.PriceCold
		}
	}
	if p.Price != nil {
		return *p.Price
	}
	if p.PriceHot != nil {
		return *p.PriceHot
	}
	if p.PriceCold != nil {
		return *p.PriceCold
	}
	return 0
}
