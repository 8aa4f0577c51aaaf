package services

import (
	"context"

	"verve-storefront-io/api/internal/commerce"
	"verve-storefront-io/api/pkg/models"
	"verve-storefront-io/api/pkg/util"
)

// CartServiceImpl implements the CartService interface on top of the
// commerce backend client. The backend stays authoritative; this layer
// forwards mutations, reseeds the display cache from each response, and
// fires cache invalidation.
type CartServiceImpl struct {
	commerce      *commerce.Client
	display       DisplayCartService
	notifications NotificationService
}

// NewCartService creates a new instance of CartService
func NewCartService(client *commerce.Client, display DisplayCartService, notifications NotificationService) CartService {
	return &CartServiceImpl{
		commerce:      client,
		display:       display,
		notifications: notifications,
	}
}

// GetOrCreateCart resolves the cart bound to the caller's cookie, creating
// a fresh one when the id is empty, unknown upstream, or already completed.
func (cs *CartServiceImpl) GetOrCreateCart(ctx context.Context, cartId string) (*models.Cart, bool, error) {
	if cartId != "" {
		cart, err := cs.commerce.RetrieveCart(ctx, cartId)
		if err == nil && cart != nil && cart.CompletedAt == nil {
			cs.seedDisplay(cart)
			return cart, false, nil
		}
		if err != nil && !commerce.IsNotFound(err) {
			return nil, false, err
		}
	}

	cart, err := cs.commerce.CreateCart(ctx, commerce.CreateCartRequest{})
	if err != nil {
		return nil, false, err
	}
	cs.seedDisplay(cart)
	return cart, true, nil
}

// GetCart fetches the authoritative cart state.
func (cs *CartServiceImpl) GetCart(ctx context.Context, cartId string) (*models.Cart, error) {
	cart, err := cs.commerce.RetrieveCart(ctx, cartId)
	if err != nil {
		return nil, err
	}
	cs.seedDisplay(cart)
	return cart, nil
}

// AddLineItem adds a variant to the cart.
func (cs *CartServiceImpl) AddLineItem(ctx context.Context, cartId string, req models.AddLineItemRequest) (*models.Cart, error) {
	cart, err := cs.commerce.AddLineItem(ctx, cartId, commerce.LineItemInput{
		VariantId: req.VariantId,
		Quantity:  req.Quantity,
		Metadata:  req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// UpdateLineItemQuantity sets a line item's quantity. Zero is a removal
// request, matching the display merge semantics.
func (cs *CartServiceImpl) UpdateLineItemQuantity(ctx context.Context, cartId, lineItemId string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return cs.RemoveLineItem(ctx, cartId, lineItemId)
	}

	cart, err := cs.commerce.UpdateLineItem(ctx, cartId, lineItemId, commerce.UpdateLineItemRequest{
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// UpdateLineItemMetadata updates a line item's metadata while keeping its
// quantity, the shape gift toggles use.
func (cs *CartServiceImpl) UpdateLineItemMetadata(ctx context.Context, cartId, lineItemId string, quantity int, metadata map[string]any) (*models.Cart, error) {
	cart, err := cs.commerce.UpdateLineItem(ctx, cartId, lineItemId, commerce.UpdateLineItemRequest{
		Quantity: quantity,
		Metadata: metadata,
	})
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// RemoveLineItem deletes a line item from the cart.
func (cs *CartServiceImpl) RemoveLineItem(ctx context.Context, cartId, lineItemId string) (*models.Cart, error) {
	cart, err := cs.commerce.DeleteLineItem(ctx, cartId, lineItemId)
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// SetEmail updates the cart's contact email.
func (cs *CartServiceImpl) SetEmail(ctx context.Context, cartId, email string) (*models.Cart, error) {
	cart, err := cs.commerce.UpdateCart(ctx, cartId, commerce.UpdateCartRequest{Email: &email})
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// SetAddresses updates the cart's shipping (and optionally billing) address.
func (cs *CartServiceImpl) SetAddresses(ctx context.Context, cartId string, req models.SetAddressesRequest) (*models.Cart, error) {
	shipping := req.ShippingAddress
	billing := req.BillingAddress
	if billing == nil {
		billing = &shipping
	}

	cart, err := cs.commerce.UpdateCart(ctx, cartId, commerce.UpdateCartRequest{
		ShippingAddress: &shipping,
		BillingAddress:  billing,
	})
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// SetShippingMethod selects a shipping option for the cart.
func (cs *CartServiceImpl) SetShippingMethod(ctx context.Context, cartId, optionId string) (*models.Cart, error) {
	cart, err := cs.commerce.AddShippingMethod(ctx, cartId, optionId)
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// InitPaymentSessions initializes payment sessions on the cart.
func (cs *CartServiceImpl) InitPaymentSessions(ctx context.Context, cartId string) (*models.Cart, error) {
	cart, err := cs.commerce.CreatePaymentSessions(ctx, cartId)
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// SelectPaymentSession selects a payment provider's session on the cart.
func (cs *CartServiceImpl) SelectPaymentSession(ctx context.Context, cartId, providerId string) (*models.Cart, error) {
	cart, err := cs.commerce.SetPaymentSession(ctx, cartId, providerId)
	if err != nil {
		return nil, err
	}
	cs.afterMutation(cart)
	return cart, nil
}

// CompleteCart submits the cart for completion. On success the display
// cache for the cart is cleared since the cart no longer exists.
func (cs *CartServiceImpl) CompleteCart(ctx context.Context, cartId string) (*commerce.CompleteResult, error) {
	result, err := cs.commerce.CompleteCart(ctx, cartId)
	if err != nil {
		return nil, err
	}

	if result.Order != nil {
		cs.display.Reset(cartId, nil)
		go func() {
			if err := cs.notifications.InvalidateCartCache(context.Background(), cartId); err != nil {
				util.LogError("Failed to invalidate cart cache", err)
			}
		}()
	} else if result.Cart != nil {
		cs.afterMutation(result.Cart)
	}

	return result, nil
}

// seedDisplay reseeds the display list from an authoritative cart.
func (cs *CartServiceImpl) seedDisplay(cart *models.Cart) []models.DisplayItem {
	if cart == nil {
		return nil
	}
	items, err := models.DisplayItemsFromCart(cart)
	if err != nil {
		util.LogError("Failed to build display cart", err)
		return nil
	}
	cs.display.Reset(cart.Id, items)
	return items
}

func (cs *CartServiceImpl) afterMutation(cart *models.Cart) {
	if cart == nil {
		return
	}
	items := cs.seedDisplay(cart)

	go func() {
		ctx := context.Background()
		if err := cs.notifications.InvalidateCartCache(ctx, cart.Id); err != nil {
			util.LogError("Failed to invalidate cart cache", err)
		}
		if items != nil {
			if err := cs.notifications.CacheDisplayCart(ctx, cart.Id, items); err != nil {
				util.LogError("Failed to cache display cart", err)
			}
		}
	}()
}
