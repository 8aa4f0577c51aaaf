package container

import (
	"log"

	"verve-storefront-io/api/internal/commerce"
	"verve-storefront-io/api/pkg/controllers"
	"verve-storefront-io/api/pkg/services"
	"verve-storefront-io/api/pkg/util"
)

type ServiceContainer struct {
	CartService         services.CartService
	DisplayCartService  services.DisplayCartService
	GiftService         services.GiftService
	NotificationService services.NotificationService

	CartController *controllers.CartController
	GiftController *controllers.GiftController
}

func NewServiceContainer() *ServiceContainer {
	client, err := commerce.New(commerce.Config{
		BaseURL:        util.LoadEnvFor("COMMERCE_BACKEND_URL"),
		PublishableKey: util.LoadEnvFor("COMMERCE_PUBLISHABLE_KEY"),
	})
	if err != nil {
		log.Fatal(err)
	}

	displayCartService := services.NewDisplayCartService()
	notificationService := services.NewNotificationService(util.Redis())
	cartService := services.NewCartService(client, displayCartService, notificationService)
	giftService := services.NewGiftService(cartService)

	cartController := controllers.InitCartController(cartService, displayCartService, notificationService)
	giftController := controllers.InitGiftController(giftService)

	return &ServiceContainer{
		CartService:         cartService,
		DisplayCartService:  displayCartService,
		GiftService:         giftService,
		NotificationService: notificationService,

		CartController: cartController,
		GiftController: giftController,
	}
}

// GetCartController returns the cart controller instance
func (sc *ServiceContainer) GetCartController() *controllers.CartController {
	return sc.CartController
}

// GetGiftController returns the gift controller instance
func (sc *ServiceContainer) GetGiftController() *controllers.GiftController {
	return sc.GiftController
}
