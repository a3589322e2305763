package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestNormalizePricingTemperature(t *testing.T) {
	product := Product{
		Name:           "Latte",
		Category:       CategoryCoffee,
		HasTemperature: true,
		PriceHot:       floatPtr(120),
		PriceCold:      floatPtr(130),
		Price:          floatPtr(999),
	}
	product.NormalizePricing()

	require.NotNil(t, product.PriceHot)
	require.NotNil(t, product.PriceCold)
	assert.Nil(t, product.Price)
	assert.Equal(t, 120.0, *product.PriceHot)
	assert.Equal(t, 130.0, *product.PriceCold)
}

func TestNormalizePricingDeriveFromSinglePrice(t *testing.T) {
	//只有單一價格的冷熱飲商品，冷飲預設加價
	product := Product{
		Name:           "Americano",
		Category:       CategoryCoffee,
		HasTemperature: true,
		Price:          floatPtr(90),
	}
	product.NormalizePricing()

	require.NotNil(t, product.PriceHot)
	require.NotNil(t, product.PriceCold)
	assert.Nil(t, product.Price)
	assert.Equal(t, 90.0, *product.PriceHot)
	assert.Equal(t, 100.0, *product.PriceCold)
}

func TestNormalizePricingSinglePrice(t *testing.T) {
	product := Product{
		Name:      "Croissant",
		Category:  CategoryPastry,
		PriceHot:  floatPtr(65),
		PriceCold: floatPtr(75),
	}
	product.NormalizePricing()

	require.NotNil(t, product.Price)
	assert.Nil(t, product.PriceHot)
	assert.Nil(t, product.PriceCold)
	assert.Equal(t, 65.0, *product.Price)
}

func TestUnitPrice(t *testing.T) {
	drink := Product{
		HasTemperature: true,
		PriceHot:       floatPtr(120),
		PriceCold:      floatPtr(130),
	}
	assert.Equal(t, 120.0, drink.UnitPrice(TemperatureHot))
	assert.Equal(t, 130.0, drink.UnitPrice(TemperatureCold))

	food := Product{Price: floatPtr(65)}
	assert.Equal(t, 65.0, food.UnitPrice(""))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryCoffee))
	assert.True(t, ValidCategory(CategoryPastry))
	assert.True(t, ValidCategory(CategorySideDish))
	assert.False(t, ValidCategory("Dessert"))
	assert.False(t, ValidCategory(""))
}

func TestValidTemperature(t *testing.T) {
	assert.True(t, ValidTemperature(TemperatureHot))
	assert.True(t, ValidTemperature(TemperatureCold))
	assert.False(t, ValidTemperature("Warm"))
}
