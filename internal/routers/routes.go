package routers

import (
	"verve-storefront-io/api/internal/container"
	"verve-storefront-io/api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// InitRoute creates a new Gin router with service layer architecture
func InitRoute() *gin.Engine {
	serviceContainer := container.NewServiceContainer()
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.StorefrontRateLimiter())
	{
		cartRoutes(api, serviceContainer)
	}

	return router
}

// cartRoutes configures cart and checkout endpoints
func cartRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	cart := sc.GetCartController()
	gift := sc.GetGiftController()

	carts := api.Group("/carts")

	carts.POST("", cart.GetOrCreateCart())
	carts.GET("", cart.GetCart())
	carts.GET("/display", cart.GetDisplayCart())
	carts.POST("/display", cart.ApplyDisplayItem())
	carts.GET("/checkout-step", cart.GetCheckoutStep())

	carts.POST("/line-items", cart.AddLineItem())
	carts.POST("/line-items/:lineid", cart.UpdateLineItem())
	carts.DELETE("/line-items/:lineid", cart.RemoveLineItem())

	carts.POST("/email", cart.SetEmail())
	carts.POST("/addresses", cart.SetAddresses())
	carts.POST("/shipping-methods", cart.AddShippingMethod())
	carts.POST("/payment-sessions", cart.InitPaymentSessions())
	carts.POST("/payment-session", cart.SelectPaymentSession())
	carts.POST("/complete", cart.CompleteCart())

	carts.POST("/line-items/:lineid/gift", gift.ToggleGift())
	carts.PUT("/line-items/:lineid/gift-quantity", gift.SetGiftQuantity())
	carts.GET("/line-items/:lineid/gift", gift.GetGiftSplit())
}
