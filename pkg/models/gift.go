package models

import (
	"fmt"
)

// Metadata keys the storefront reads and writes on line items and product
// categories. The backend stores metadata as an open map; this package is
// the single place that open map is turned into typed values.
const (
	MetaIsGift       = "is_gift"
	MetaGiftQuantity = "gift_quantity"
	MetaCanBeGifted  = "can_be_gifted"
)

// GiftDetails is the typed view of a line item's gift metadata.
type GiftDetails struct {
	IsGift       bool `json:"is_gift"`
	GiftQuantity int  `json:"gift_quantity"`
	CanBeGifted  bool `json:"can_be_gifted"`
}

// ParseGiftDetails validates and extracts gift metadata for a line item.
// is_gift and can_be_gifted must be real JSON booleans; string encodings
// like "true" are rejected as deserialization errors instead of coerced.
// A missing gift_quantity defaults to the full line quantity when is_gift
// is set, otherwise to zero.
func ParseGiftDetails(metadata map[string]any, lineQuantity int) (GiftDetails, error) {
	var details GiftDetails

	isGift, err := metadataBool(metadata, MetaIsGift)
	if err != nil {
		return details, err
	}
	details.IsGift = isGift

	canBeGifted, err := metadataBool(metadata, MetaCanBeGifted)
	if err != nil {
		return details, err
	}
	details.CanBeGifted = canBeGifted

	if raw, ok := metadata[MetaGiftQuantity]; ok {
		qty, err := metadataInt(MetaGiftQuantity, raw)
		if err != nil {
			return details, err
		}
		details.GiftQuantity = qty
	} else if isGift {
		details.GiftQuantity = lineQuantity
	}

	return details, nil
}

// GiftEligible reports whether the line item may be marked as a gift:
// either its own metadata or any of its product's category metadata carries
// can_be_gifted = true.
func (li *LineItem) GiftEligible() (bool, error) {
	own, err := metadataBool(li.Metadata, MetaCanBeGifted)
	if err != nil {
		return false, err
	}
	if own {
		return true, nil
	}

	if li.Product == nil {
		return false, nil
	}
	for _, category := range li.Product.Categories {
		fromCategory, err := metadataBool(category.Metadata, MetaCanBeGifted)
		if err != nil {
			return false, err
		}
		if fromCategory {
			return true, nil
		}
	}
	return false, nil
}

// GiftSplit is the display derivation of a line item's gift state. Kept and
// gift quantities always sum to the line's total quantity.
type GiftSplit struct {
	LineItemId   string `json:"line_item_id"`
	Quantity     int    `json:"quantity"`
	GiftQuantity int    `json:"gift_quantity"`
	KeptQuantity int    `json:"kept_quantity"`
	IsGift       bool   `json:"is_gift"`
	Eligible     bool   `json:"eligible"`
}

// NewGiftSplit derives the kept/gift split for a line item. The stored
// gift_quantity is clamped into [0, quantity] so the split always sums to
// the line total even if the backend holds a stale bound.
func NewGiftSplit(li *LineItem) (GiftSplit, error) {
	details, err := ParseGiftDetails(li.Metadata, li.Quantity)
	if err != nil {
		return GiftSplit{}, err
	}
	eligible, err := li.GiftEligible()
	if err != nil {
		return GiftSplit{}, err
	}

	giftQty := details.GiftQuantity
	if giftQty < 0 {
		giftQty = 0
	}
	if giftQty > li.Quantity {
		giftQty = li.Quantity
	}

	return GiftSplit{
		LineItemId:   li.Id,
		Quantity:     li.Quantity,
		GiftQuantity: giftQty,
		KeptQuantity: li.Quantity - giftQty,
		IsGift:       details.IsGift,
		Eligible:     eligible,
	}, nil
}

func metadataBool(metadata map[string]any, key string) (bool, error) {
	raw, ok := metadata[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("metadata %s: expected bool, got %T", key, raw)
	}
	return b, nil
}

func metadataInt(key string, raw any) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("metadata %s: expected number, got %T", key, raw)
	}
}
