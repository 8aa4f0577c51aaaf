package services

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"verve-storefront-io/api/pkg/models"
	"verve-storefront-io/api/pkg/util"
)

var (
	ErrLineItemNotFound   = errors.New("line item not found in cart")
	ErrNotGiftEligible    = errors.New("line item is not eligible for gifting")
	ErrAlreadyGift        = errors.New("line item is already marked as a gift")
	ErrGiftUpdateInFlight = errors.New("a gift update for this line item is already in flight")
	ErrGiftQuantityBounds = errors.New("gift quantity must be between 0 and the line item quantity")
)

// giftSlot serializes gift updates for one line item. While a request is in
// flight, newer quantity requests park their value in pending; only the
// latest parked value survives and it is issued once the in-flight request
// finishes.
type giftSlot struct {
	inFlight bool
	pending  *int
}

// GiftServiceImpl implements GiftService on top of the cart service. Gift
// state lives in line item metadata on the backend; this layer adds
// eligibility checks, bounds, and per-line-item request coalescing.
type GiftServiceImpl struct {
	carts CartService

	mu    sync.Mutex
	slots map[string]*giftSlot
}

// NewGiftService creates a new instance of GiftService
func NewGiftService(carts CartService) GiftService {
	return &GiftServiceImpl{
		carts: carts,
		slots: make(map[string]*giftSlot),
	}
}

// ToggleGift marks an eligible line item as a gift. The whole line quantity
// becomes the gift quantity. Toggling an item that already is a gift or that
// has an update in flight is an error, not a queue.
func (gs *GiftServiceImpl) ToggleGift(ctx context.Context, cartId, lineItemId string) (*models.Cart, error) {
	cart, err := gs.carts.GetCart(ctx, cartId)
	if err != nil {
		return nil, err
	}
	item := cart.FindLineItem(lineItemId)
	if item == nil {
		return nil, ErrLineItemNotFound
	}

	details, err := models.ParseGiftDetails(item.Metadata, item.Quantity)
	if err != nil {
		return nil, err
	}
	if details.IsGift {
		return nil, ErrAlreadyGift
	}
	eligible, err := item.GiftEligible()
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotGiftEligible
	}

	if !gs.acquire(lineItemId) {
		return nil, ErrGiftUpdateInFlight
	}

	updated, err := gs.carts.UpdateLineItemMetadata(ctx, cartId, lineItemId, item.Quantity,
		giftMetadata(item.Metadata, true, item.Quantity))
	if drained := gs.drain(cartId, lineItemId); drained != nil {
		updated = drained
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetGiftQuantity sets how many units of a line item are gifts. Zero clears
// the gift mark. When an update for the same line item is already in flight
// the new quantity is parked instead of issued, replacing any previously
// parked value, and queued=true is returned with no cart.
func (gs *GiftServiceImpl) SetGiftQuantity(ctx context.Context, cartId, lineItemId string, quantity int) (*models.Cart, bool, error) {
	cart, err := gs.carts.GetCart(ctx, cartId)
	if err != nil {
		return nil, false, err
	}
	item := cart.FindLineItem(lineItemId)
	if item == nil {
		return nil, false, ErrLineItemNotFound
	}
	if quantity < 0 || quantity > item.Quantity {
		return nil, false, ErrGiftQuantityBounds
	}
	if quantity > 0 {
		eligible, err := item.GiftEligible()
		if err != nil {
			return nil, false, err
		}
		if !eligible {
			return nil, false, ErrNotGiftEligible
		}
	}

	gs.mu.Lock()
	slot := gs.slotLocked(lineItemId)
	if slot.inFlight {
		parked := quantity
		slot.pending = &parked
		gs.mu.Unlock()
		return nil, true, nil
	}
	slot.inFlight = true
	gs.mu.Unlock()

	updated, err := gs.carts.UpdateLineItemMetadata(ctx, cartId, lineItemId, item.Quantity,
		giftMetadata(item.Metadata, quantity > 0, quantity))
	if drained := gs.drain(cartId, lineItemId); drained != nil {
		updated = drained
	}
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

// GiftSplit derives the current kept/gift split for a line item.
func (gs *GiftServiceImpl) GiftSplit(ctx context.Context, cartId, lineItemId string) (*models.GiftSplit, error) {
	cart, err := gs.carts.GetCart(ctx, cartId)
	if err != nil {
		return nil, err
	}
	item := cart.FindLineItem(lineItemId)
	if item == nil {
		return nil, ErrLineItemNotFound
	}

	split, err := models.NewGiftSplit(item)
	if err != nil {
		return nil, err
	}
	return &split, nil
}

func (gs *GiftServiceImpl) slotLocked(lineItemId string) *giftSlot {
	slot := gs.slots[lineItemId]
	if slot == nil {
		slot = &giftSlot{}
		gs.slots[lineItemId] = slot
	}
	return slot
}

func (gs *GiftServiceImpl) acquire(lineItemId string) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	slot := gs.slotLocked(lineItemId)
	if slot.inFlight {
		return false
	}
	slot.inFlight = true
	return true
}

// drain issues any parked quantity update, then frees the slot. The request
// that parked the value has already returned to its caller, so parked
// updates run against a background context. Returns the last cart produced
// by a parked update, if any.
func (gs *GiftServiceImpl) drain(cartId, lineItemId string) *models.Cart {
	var last *models.Cart
	for {
		gs.mu.Lock()
		slot := gs.slotLocked(lineItemId)
		if slot.pending == nil {
			slot.inFlight = false
			gs.mu.Unlock()
			return last
		}
		quantity := *slot.pending
		slot.pending = nil
		gs.mu.Unlock()

		ctx := context.Background()
		cart, err := gs.carts.GetCart(ctx, cartId)
		if err != nil {
			util.LogError("Failed to load cart for parked gift update", err)
			continue
		}
		item := cart.FindLineItem(lineItemId)
		if item == nil {
			continue
		}
		if quantity > item.Quantity {
			quantity = item.Quantity
		}

		updated, err := gs.carts.UpdateLineItemMetadata(ctx, cartId, lineItemId, item.Quantity,
			giftMetadata(item.Metadata, quantity > 0, quantity))
		if err != nil {
			util.LogError("Failed to apply parked gift update", err)
			continue
		}
		last = updated
	}
}

// giftMetadata copies the line item's metadata with its gift keys rewritten.
func giftMetadata(existing map[string]any, isGift bool, quantity int) map[string]any {
	metadata := make(map[string]any, len(existing)+2)
	for k, v := range existing {
		metadata[k] = v
	}
	metadata[models.MetaIsGift] = isGift
	metadata[models.MetaGiftQuantity] = quantity
	return metadata
}
