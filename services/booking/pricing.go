package booking

import (
	"math"

	"inkbook/models"
)

// roundCents rounds a dollar amount to the nearest cent.
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// DepositFor computes the deposit securing a booking. Priced (flash) designs
// pay a percentage of the total; custom designs with a quote still pending
// pay the flat minimum.
func DepositFor(policy models.BookingPolicy, totalPrice float64) float64 {
	if totalPrice <= 0 {
		return policy.CustomMinDeposit
	}
	return roundCents(totalPrice * float64(policy.DepositPercent) / 100)
}

// PlatformFee computes the platform's cut of a collected amount.
func PlatformFee(policy models.BookingPolicy, amount float64) float64 {
	return roundCents(amount * policy.PlatformFeePercent / 100)
}
