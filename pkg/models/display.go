package models

import (
	"github.com/gosimple/slug"
)

// DisplayItem is the non-authoritative record shown by presentational
// surfaces (navigation badge, mini-cart). It is a display cache seeded from
// the authoritative cart; the backend's cart remains the source of truth.
type DisplayItem struct {
	Id        string         `json:"id"`
	Title     string         `json:"title"`
	Handle    string         `json:"handle,omitempty"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Quantity  int            `json:"quantity"`
	UnitPrice float64        `json:"unit_price"`
	VariantId string         `json:"variant_id,omitempty"`
	ProductId string         `json:"product_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewDisplayItem builds a display record from an authoritative line item,
// normalizing the unit price to major currency units.
func NewDisplayItem(li LineItem) (DisplayItem, error) {
	price, err := li.UnitPriceMajor()
	if err != nil {
		return DisplayItem{}, err
	}

	return DisplayItem{
		Id:        li.Id,
		Title:     li.Title,
		Handle:    slug.Make(li.Title),
		Thumbnail: li.Thumbnail,
		Quantity:  li.Quantity,
		UnitPrice: price,
		VariantId: li.VariantId,
		ProductId: li.ProductId,
		Metadata:  li.Metadata,
	}, nil
}

// DisplayItemsFromCart seeds a display list from a server cart, preserving
// line order.
func DisplayItemsFromCart(cart *Cart) ([]DisplayItem, error) {
	if cart == nil {
		return nil, nil
	}
	items := make([]DisplayItem, 0, len(cart.Items))
	for _, li := range cart.Items {
		item, err := NewDisplayItem(li)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
