package models

import (
	"fmt"
	"time"
)

// Cart mirrors the authoritative cart owned by the commerce backend. This
// service reads its shape but never persists it; mutations go back through
// the backend's endpoints.
type Cart struct {
	Id                string             `json:"id"`
	Email             string             `json:"email,omitempty"`
	CurrencyCode      string             `json:"currency_code,omitempty"`
	Items             []LineItem         `json:"items"`
	ShippingAddress   *Address           `json:"shipping_address,omitempty"`
	BillingAddress    *Address           `json:"billing_address,omitempty"`
	ShippingMethods   []ShippingMethod   `json:"shipping_methods"`
	PaymentCollection *PaymentCollection `json:"payment_collection,omitempty"`
	Subtotal          float64            `json:"subtotal,omitempty"`
	Total             float64            `json:"total,omitempty"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
	Metadata          map[string]any     `json:"metadata,omitempty"`
}

// FindLineItem returns the line item with the given id, or nil.
func (c *Cart) FindLineItem(lineItemId string) *LineItem {
	for i := range c.Items {
		if c.Items[i].Id == lineItemId {
			return &c.Items[i]
		}
	}
	return nil
}

type LineItem struct {
	Id            string         `json:"id"`
	Title         string         `json:"title"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
	Quantity      int            `json:"quantity"`
	UnitPrice     float64        `json:"unit_price"`
	UnitPriceUnit PriceUnit      `json:"unit_price_unit"`
	VariantId     string         `json:"variant_id,omitempty"`
	ProductId     string         `json:"product_id,omitempty"`
	Product       *Product       `json:"product,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// UnitPriceMajor converts the line's unit price to major currency units.
// The backend must declare the unit explicitly; an unknown unit is an error
// rather than something to guess from the amount's magnitude.
func (li *LineItem) UnitPriceMajor() (float64, error) {
	switch li.UnitPriceUnit {
	case PriceUnitMinor:
		return li.UnitPrice / 100, nil
	case PriceUnitMajor:
		return li.UnitPrice, nil
	default:
		return 0, fmt.Errorf("line item %s: missing or invalid unit_price_unit %q", li.Id, li.UnitPriceUnit)
	}
}

type Address struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Province    string `json:"province,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type ShippingMethod struct {
	Id               string  `json:"id"`
	ShippingOptionId string  `json:"shipping_option_id"`
	Name             string  `json:"name,omitempty"`
	Amount           float64 `json:"amount,omitempty"`
}

type PaymentCollection struct {
	Id              string           `json:"id"`
	PaymentSessions []PaymentSession `json:"payment_sessions"`
}

type PaymentSession struct {
	Id         string         `json:"id"`
	ProviderId string         `json:"provider_id"`
	Status     string         `json:"status,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

type Product struct {
	Id         string            `json:"id"`
	Title      string            `json:"title,omitempty"`
	Handle     string            `json:"handle,omitempty"`
	Categories []ProductCategory `json:"categories,omitempty"`
}

type ProductCategory struct {
	Id       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Order is the backend's record produced by completing a cart.
type Order struct {
	Id        string     `json:"id"`
	DisplayId int        `json:"display_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	Total     float64    `json:"total,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Request bodies accepted by the storefront API.

type AddLineItemRequest struct {
	VariantId string         `json:"variant_id" validate:"required"`
	Quantity  int            `json:"quantity" validate:"gte=1"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type UpdateLineItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type SetEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SetAddressesRequest struct {
	ShippingAddress Address  `json:"shipping_address" validate:"required"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
}

type AddShippingMethodRequest struct {
	OptionId string `json:"option_id" validate:"required"`
}

type SelectPaymentSessionRequest struct {
	ProviderId string `json:"provider_id" validate:"required"`
}

type SetGiftQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}
