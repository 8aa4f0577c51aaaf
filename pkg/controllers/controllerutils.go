package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"verve-storefront-io/api/internal/commerce"
	"verve-storefront-io/api/internal/common"
	"verve-storefront-io/api/pkg/services"
	"verve-storefront-io/api/pkg/util"
)

// cartIdFromRequest resolves the caller's cart id, cookie first with an
// X-Cart-Id header fallback for cookie-less clients.
func cartIdFromRequest(c *gin.Context) string {
	if id, err := c.Cookie(common.CART_COOKIE_NAME); err == nil && !common.IsEmptyString(id) {
		return id
	}
	return c.GetHeader("X-Cart-Id")
}

func requireCartId(c *gin.Context) (string, bool) {
	id := cartIdFromRequest(c)
	if common.IsEmptyString(id) {
		util.HandleError(c, http.StatusNotFound, errors.New("no active cart"))
		return "", false
	}
	return id, true
}

func setCartCookie(c *gin.Context, cartId string) {
	c.SetCookie(common.CART_COOKIE_NAME, cartId, common.CART_COOKIE_MAX_AGE, "/", "", false, true)
}

func clearCartCookie(c *gin.Context) {
	c.SetCookie(common.CART_COOKIE_NAME, "", -1, "/", "", false, true)
}

// handleServiceError maps service-layer failures to client statuses. Known
// sentinels get their own codes; upstream failures answer with the backend's
// client status; everything else is a 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLineItemNotFound):
		util.HandleError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrGiftUpdateInFlight):
		util.HandleError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrAlreadyGift),
		errors.Is(err, services.ErrNotGiftEligible),
		errors.Is(err, services.ErrGiftQuantityBounds):
		util.HandleError(c, http.StatusUnprocessableEntity, err)
	default:
		var apiErr *commerce.APIError
		if errors.As(err, &apiErr) {
			util.HandleError(c, apiErr.ClientStatus(), err)
			return
		}
		util.HandleError(c, http.StatusInternalServerError, err)
	}
}
