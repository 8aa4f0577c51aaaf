package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPriceMajor(t *testing.T) {
	t.Run("minor units convert to major", func(t *testing.T) {
		li := &LineItem{Id: "item_1", UnitPrice: 1250, UnitPriceUnit: PriceUnitMinor}
		price, err := li.UnitPriceMajor()
		require.NoError(t, err)
		assert.Equal(t, 12.5, price)
	})

	t.Run("major units pass through", func(t *testing.T) {
		li := &LineItem{Id: "item_1", UnitPrice: 12.5, UnitPriceUnit: PriceUnitMajor}
		price, err := li.UnitPriceMajor()
		require.NoError(t, err)
		assert.Equal(t, 12.5, price)
	})

	t.Run("missing unit is an error regardless of magnitude", func(t *testing.T) {
		small := &LineItem{Id: "item_1", UnitPrice: 12.5}
		_, err := small.UnitPriceMajor()
		assert.Error(t, err)

		large := &LineItem{Id: "item_1", UnitPrice: 25000}
		_, err = large.UnitPriceMajor()
		assert.Error(t, err)
	})

	t.Run("unknown unit is an error", func(t *testing.T) {
		li := &LineItem{Id: "item_1", UnitPrice: 10, UnitPriceUnit: PriceUnit("cents")}
		_, err := li.UnitPriceMajor()
		assert.Error(t, err)
	})
}

func TestNewDisplayItem(t *testing.T) {
	t.Run("builds a slugged display record", func(t *testing.T) {
		li := LineItem{
			Id:            "item_1",
			Title:         "Enamel Mug, Blue",
			Thumbnail:     "https://cdn.example.com/mug.jpg",
			Quantity:      2,
			UnitPrice:     1250,
			UnitPriceUnit: PriceUnitMinor,
			VariantId:     "var_1",
			ProductId:     "prod_1",
		}

		item, err := NewDisplayItem(li)
		require.NoError(t, err)
		assert.Equal(t, "item_1", item.Id)
		assert.Equal(t, "enamel-mug-blue", item.Handle)
		assert.Equal(t, 12.5, item.UnitPrice)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("propagates price unit errors", func(t *testing.T) {
		_, err := NewDisplayItem(LineItem{Id: "item_1", UnitPrice: 10})
		assert.Error(t, err)
	})
}

func TestDisplayItemsFromCart(t *testing.T) {
	t.Run("preserves line order", func(t *testing.T) {
		cart := &Cart{Items: []LineItem{
			{Id: "item_2", Title: "Poster", Quantity: 1, UnitPrice: 8, UnitPriceUnit: PriceUnitMajor},
			{Id: "item_1", Title: "Mug", Quantity: 2, UnitPrice: 1250, UnitPriceUnit: PriceUnitMinor},
		}}

		items, err := DisplayItemsFromCart(cart)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "item_2", items[0].Id)
		assert.Equal(t, "item_1", items[1].Id)
	})

	t.Run("nil cart yields nil", func(t *testing.T) {
		items, err := DisplayItemsFromCart(nil)
		require.NoError(t, err)
		assert.Nil(t, items)
	})

	t.Run("one bad line fails the whole seed", func(t *testing.T) {
		cart := &Cart{Items: []LineItem{
			{Id: "item_1", UnitPrice: 10, UnitPriceUnit: PriceUnitMajor},
			{Id: "item_2", UnitPrice: 10},
		}}
		_, err := DisplayItemsFromCart(cart)
		assert.Error(t, err)
	})
}
