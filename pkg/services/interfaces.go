package services

import (
	"context"

	"verve-storefront-io/api/internal/commerce"
	"verve-storefront-io/api/pkg/models"
)

// CartService orchestrates the authoritative cart held by the commerce
// backend: every mutation goes through the backend, then refreshes the
// local display cache and fires cache invalidation.
type CartService interface {
	GetOrCreateCart(ctx context.Context, cartId string) (cart *models.Cart, created bool, err error)
	GetCart(ctx context.Context, cartId string) (*models.Cart, error)

	AddLineItem(ctx context.Context, cartId string, req models.AddLineItemRequest) (*models.Cart, error)
	UpdateLineItemQuantity(ctx context.Context, cartId, lineItemId string, quantity int) (*models.Cart, error)
	UpdateLineItemMetadata(ctx context.Context, cartId, lineItemId string, quantity int, metadata map[string]any) (*models.Cart, error)
	RemoveLineItem(ctx context.Context, cartId, lineItemId string) (*models.Cart, error)

	SetEmail(ctx context.Context, cartId, email string) (*models.Cart, error)
	SetAddresses(ctx context.Context, cartId string, req models.SetAddressesRequest) (*models.Cart, error)
	SetShippingMethod(ctx context.Context, cartId, optionId string) (*models.Cart, error)

	InitPaymentSessions(ctx context.Context, cartId string) (*models.Cart, error)
	SelectPaymentSession(ctx context.Context, cartId, providerId string) (*models.Cart, error)
	CompleteCart(ctx context.Context, cartId string) (*commerce.CompleteResult, error)
}

// DisplayCartService holds the ordered, non-authoritative item lists used
// by presentational surfaces. Purely in-memory; a fresh authoritative cart
// resets whatever local state accumulated in between.
type DisplayCartService interface {
	Reset(cartId string, items []models.DisplayItem)
	Apply(cartId string, item *models.DisplayItem) []models.DisplayItem
	Items(cartId string) []models.DisplayItem
	Count(cartId string) int
}

// GiftService manages the per-line-item gift bifurcation stored in line
// item metadata on the backend.
type GiftService interface {
	ToggleGift(ctx context.Context, cartId, lineItemId string) (*models.Cart, error)
	SetGiftQuantity(ctx context.Context, cartId, lineItemId string, quantity int) (cart *models.Cart, queued bool, err error)
	GiftSplit(ctx context.Context, cartId, lineItemId string) (*models.GiftSplit, error)
}

// NotificationService defines async cache duties around cart mutations.
type NotificationService interface {
	InvalidateCartCache(ctx context.Context, cartId string) error
	CacheDisplayCart(ctx context.Context, cartId string, items []models.DisplayItem) error
	CachedDisplayCart(ctx context.Context, cartId string) ([]models.DisplayItem, bool)
}
