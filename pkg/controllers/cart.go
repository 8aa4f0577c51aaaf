package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"verve-storefront-io/api/internal/common"
	"verve-storefront-io/api/pkg/models"
	"verve-storefront-io/api/pkg/services"
	"verve-storefront-io/api/pkg/util"
)

type CartController struct {
	carts         services.CartService
	display       services.DisplayCartService
	notifications services.NotificationService
}

// InitCartController creates a new instance of CartController
func InitCartController(carts services.CartService, display services.DisplayCartService, notifications services.NotificationService) *CartController {
	return &CartController{
		carts:         carts,
		display:       display,
		notifications: notifications,
	}
}

// GetOrCreateCart: resolve the cookie-bound cart, creating one when the
// cookie is missing, stale, or points at a completed cart.
func (cc *CartController) GetOrCreateCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cart, created, err := cc.carts.GetOrCreateCart(ctx, cartIdFromRequest(c))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		setCartCookie(c, cart.Id)

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		util.HandleSuccessMeta(c, status, "success", cart, gin.H{"created": created})
	}
}

// GetCart: fetch the authoritative cart.
func (cc *CartController) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		cart, err := cc.carts.GetCart(ctx, cartId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "success", cart)
	}
}

// GetDisplayCart: the presentational item list. The in-memory list is
// served whenever it holds anything, since it carries optimistic applies
// the Redis snapshot may predate. Only a cold list falls back to the Redis
// copy, and only a cold cache goes to the backend.
func (cc *CartController) GetDisplayCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		items := cc.display.Items(cartId)
		if len(items) == 0 {
			if cached, hit := cc.notifications.CachedDisplayCart(ctx, cartId); hit {
				cc.display.Reset(cartId, cached)
				items = cached
			} else {
				if _, err := cc.carts.GetCart(ctx, cartId); err != nil {
					handleServiceError(c, err)
					return
				}
				items = cc.display.Items(cartId)

				cached := items
				go func() {
					if err := cc.notifications.CacheDisplayCart(context.Background(), cartId, cached); err != nil {
						util.LogError("Failed to cache display cart", err)
					}
				}()
			}
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", items, gin.H{"count": cc.display.Count(cartId)})
	}
}

// ApplyDisplayItem: merge an optimistic item update into the display list
// without touching the backend. The Redis snapshot is refreshed with the
// merged list so other instances do not serve the pre-apply state. The next
// authoritative fetch overwrites whatever accumulates here.
func (cc *CartController) ApplyDisplayItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		var item models.DisplayItem
		if err := c.ShouldBindJSON(&item); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		items := cc.display.Apply(cartId, &item)

		go func() {
			if err := cc.notifications.CacheDisplayCart(context.Background(), cartId, items); err != nil {
				util.LogError("Failed to cache display cart", err)
			}
		}()

		util.HandleSuccessMeta(c, http.StatusOK, "success", items, gin.H{"count": cc.display.Count(cartId)})
	}
}

// GetCheckoutStep: derive which checkout phase the cart is in.
func (cc *CartController) GetCheckoutStep() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		cart, err := cc.carts.GetCart(ctx, cartId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "success", gin.H{
			"checkout_step": services.DeriveCheckoutStep(cart),
		})
	}
}

// AddLineItem: add a variant to the cart.
func (cc *CartController) AddLineItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		var req models.AddLineItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cart, err := cc.carts.AddLineItem(ctx, cartId, req)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Item added to cart", cart)
	}
}

// UpdateLineItem: set a line item's quantity. Zero removes the line.
func (cc *CartController) UpdateLineItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}
		lineItemId := c.Param("lineid")

		var req models.UpdateLineItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cart, err := cc.carts.UpdateLineItemQuantity(ctx, cartId, lineItemId, req.Quantity)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Cart item updated", cart)
	}
}

// RemoveLineItem: delete a line item from the cart.
func (cc *CartController) RemoveLineItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		cart, err := cc.carts.RemoveLineItem(ctx, cartId, c.Param("lineid"))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Cart item removed", cart)
	}
}

// SetEmail: set the cart's contact email.
func (cc *CartController) SetEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		var req models.SetEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cart, err := cc.carts.SetEmail(ctx, cartId, req.Email)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Cart email updated", cart)
	}
}

// SetAddresses: set the cart's shipping (and optionally billing) address.
func (cc *CartController) SetAddresses() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		var req models.SetAddressesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cart, err := cc.carts.SetAddresses(ctx, cartId, req)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Cart addresses updated", cart)
	}
}

// AddShippingMethod: select a shipping option for the cart.
func (cc *CartController) AddShippingMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		var req models.AddShippingMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cart, err := cc.carts.SetShippingMethod(ctx, cartId, req.OptionId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Shipping method added", cart)
	}
}

// InitPaymentSessions: initialize payment sessions on the cart.
func (cc *CartController) InitPaymentSessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		cart, err := cc.carts.InitPaymentSessions(ctx, cartId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Payment sessions initialized", cart)
	}
}

// SelectPaymentSession: select a payment provider's session on the cart.
func (cc *CartController) SelectPaymentSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		var req models.SelectPaymentSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cart, err := cc.carts.SelectPaymentSession(ctx, cartId, req.ProviderId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Payment session selected", cart)
	}
}

// CompleteCart: submit the cart for completion. When the backend answers
// with an order the cart cookie is cleared; a cart answer means completion
// was refused and checkout continues.
func (cc *CartController) CompleteCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		result, err := cc.carts.CompleteCart(ctx, cartId)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		if result.Order != nil {
			clearCartCookie(c)
			util.HandleSuccessMeta(c, http.StatusOK, "Order placed", result.Order, gin.H{"type": result.Type})
			return
		}
		util.HandleSuccessMeta(c, http.StatusOK, "Cart requires further action", result.Cart, gin.H{"type": result.Type})
	}
}
