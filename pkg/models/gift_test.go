package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGiftDetails(t *testing.T) {
	t.Run("empty metadata parses to zero values", func(t *testing.T) {
		details, err := ParseGiftDetails(nil, 4)
		require.NoError(t, err)
		assert.False(t, details.IsGift)
		assert.False(t, details.CanBeGifted)
		assert.Equal(t, 0, details.GiftQuantity)
	})

	t.Run("gift without quantity defaults to the full line", func(t *testing.T) {
		details, err := ParseGiftDetails(map[string]any{MetaIsGift: true}, 4)
		require.NoError(t, err)
		assert.True(t, details.IsGift)
		assert.Equal(t, 4, details.GiftQuantity)
	})

	t.Run("explicit gift quantity wins over the default", func(t *testing.T) {
		details, err := ParseGiftDetails(map[string]any{
			MetaIsGift:       true,
			MetaGiftQuantity: float64(2), // decoded JSON numbers arrive as float64
		}, 4)
		require.NoError(t, err)
		assert.Equal(t, 2, details.GiftQuantity)
	})

	t.Run("string-encoded is_gift is a deserialization error", func(t *testing.T) {
		_, err := ParseGiftDetails(map[string]any{MetaIsGift: "true"}, 4)
		assert.Error(t, err)
	})

	t.Run("string-encoded can_be_gifted is a deserialization error", func(t *testing.T) {
		_, err := ParseGiftDetails(map[string]any{MetaCanBeGifted: "yes"}, 4)
		assert.Error(t, err)
	})

	t.Run("non-numeric gift quantity is an error", func(t *testing.T) {
		_, err := ParseGiftDetails(map[string]any{MetaGiftQuantity: "2"}, 4)
		assert.Error(t, err)
	})

	t.Run("nil-valued keys count as absent", func(t *testing.T) {
		details, err := ParseGiftDetails(map[string]any{MetaIsGift: nil}, 4)
		require.NoError(t, err)
		assert.False(t, details.IsGift)
	})
}

func TestGiftEligible(t *testing.T) {
	t.Run("own metadata grants eligibility", func(t *testing.T) {
		li := &LineItem{Metadata: map[string]any{MetaCanBeGifted: true}}
		eligible, err := li.GiftEligible()
		require.NoError(t, err)
		assert.True(t, eligible)
	})

	t.Run("any category grants eligibility", func(t *testing.T) {
		li := &LineItem{
			Product: &Product{Categories: []ProductCategory{
				{Id: "cat_1"},
				{Id: "cat_2", Metadata: map[string]any{MetaCanBeGifted: true}},
			}},
		}
		eligible, err := li.GiftEligible()
		require.NoError(t, err)
		assert.True(t, eligible)
	})

	t.Run("no flag anywhere means ineligible", func(t *testing.T) {
		li := &LineItem{Product: &Product{Categories: []ProductCategory{{Id: "cat_1"}}}}
		eligible, err := li.GiftEligible()
		require.NoError(t, err)
		assert.False(t, eligible)
	})

	t.Run("malformed category flag is an error", func(t *testing.T) {
		li := &LineItem{
			Product: &Product{Categories: []ProductCategory{
				{Id: "cat_1", Metadata: map[string]any{MetaCanBeGifted: 1}},
			}},
		}
		_, err := li.GiftEligible()
		assert.Error(t, err)
	})
}

func TestNewGiftSplit(t *testing.T) {
	t.Run("kept and gift always sum to the line quantity", func(t *testing.T) {
		li := &LineItem{
			Id:       "item_1",
			Quantity: 5,
			Metadata: map[string]any{
				MetaIsGift:       true,
				MetaGiftQuantity: 2,
				MetaCanBeGifted:  true,
			},
		}
		split, err := NewGiftSplit(li)
		require.NoError(t, err)
		assert.Equal(t, 2, split.GiftQuantity)
		assert.Equal(t, 3, split.KeptQuantity)
		assert.Equal(t, split.Quantity, split.GiftQuantity+split.KeptQuantity)
	})

	t.Run("stale over-large gift quantity is clamped", func(t *testing.T) {
		li := &LineItem{
			Id:       "item_1",
			Quantity: 2,
			Metadata: map[string]any{
				MetaIsGift:       true,
				MetaGiftQuantity: 9,
			},
		}
		split, err := NewGiftSplit(li)
		require.NoError(t, err)
		assert.Equal(t, 2, split.GiftQuantity)
		assert.Equal(t, 0, split.KeptQuantity)
	})

	t.Run("negative stored quantity clamps to zero", func(t *testing.T) {
		li := &LineItem{
			Id:       "item_1",
			Quantity: 2,
			Metadata: map[string]any{MetaGiftQuantity: -1},
		}
		split, err := NewGiftSplit(li)
		require.NoError(t, err)
		assert.Equal(t, 0, split.GiftQuantity)
		assert.Equal(t, 2, split.KeptQuantity)
	})
}
