package models

import "fmt"

// CheckoutStep is the coarse phase the checkout flow is in. It is derived
// from cart completeness on every read and never stored.
type CheckoutStep string

const (
	StepAddress  CheckoutStep = "address"
	StepDelivery CheckoutStep = "delivery"
	StepPayment  CheckoutStep = "payment"
)

func ParseCheckoutStep(step string) (CheckoutStep, error) {
	switch step {
	case "address":
		return StepAddress, nil
	case "delivery":
		return StepDelivery, nil
	case "payment":
		return StepPayment, nil
	default:
		return "", fmt.Errorf("unknown checkout step: %q", step)
	}
}

// PriceUnit says whether a monetary amount is expressed in minor currency
// units (cents) or major units. The backend must state it explicitly; there
// is no magnitude-based guessing.
type PriceUnit string

const (
	PriceUnitMinor PriceUnit = "minor"
	PriceUnitMajor PriceUnit = "major"
)

func (u PriceUnit) Valid() bool {
	return u == PriceUnitMinor || u == PriceUnitMajor
}
