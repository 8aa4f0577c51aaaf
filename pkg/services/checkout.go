package services

import (
	"verve-storefront-io/api/pkg/models"
)

// DeriveCheckoutStep maps cart shape to the checkout phase. The chain is a
// strict priority: a missing address line or email always wins, then an
// empty shipping method selection, then payment. The function is stateless
// and re-evaluated on every call, so clearing address data moves the flow
// back to the address step with no hidden state to go stale.
func DeriveCheckoutStep(cart *models.Cart) models.CheckoutStep {
	if cart == nil {
		return models.StepAddress
	}
	if cart.ShippingAddress == nil || cart.ShippingAddress.Address1 == "" || cart.Email == "" {
		return models.StepAddress
	}
	if len(cart.ShippingMethods) == 0 {
		return models.StepDelivery
	}
	return models.StepPayment
}
