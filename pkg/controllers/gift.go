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

type GiftController struct {
	gifts services.GiftService
}

// InitGiftController creates a new instance of GiftController
func InitGiftController(gifts services.GiftService) *GiftController {
	return &GiftController{gifts: gifts}
}

// ToggleGift: mark an eligible line item as a gift.
func (gc *GiftController) ToggleGift() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		cart, err := gc.gifts.ToggleGift(ctx, cartId, c.Param("lineid"))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Item marked as gift", cart)
	}
}

// SetGiftQuantity: set how many units of a line item are gifts. When another
// update for the same line is still in flight the request is accepted and
// parked instead of applied immediately.
func (gc *GiftController) SetGiftQuantity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		var req models.SetGiftQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		if err := common.Validate.Struct(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		cart, queued, err := gc.gifts.SetGiftQuantity(ctx, cartId, c.Param("lineid"), *req.Quantity)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if queued {
			util.HandleSuccess(c, http.StatusAccepted, "Gift quantity update queued", nil)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Gift quantity updated", cart)
	}
}

// GetGiftSplit: the kept/gift breakdown for a line item.
func (gc *GiftController) GetGiftSplit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		cartId, ok := requireCartId(c)
		if !ok {
			return
		}

		split, err := gc.gifts.GiftSplit(ctx, cartId, c.Param("lineid"))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "success", split)
	}
}
