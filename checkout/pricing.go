package checkout

import (
	"math"

	"github.com/HasnaHasan194/readhaven-checkout/models"
)

// TaxRate is charged on the undiscounted subtotal. The backend computes tax
// the same way, so the order total must never be rebuilt from the discounted
// figure.
const TaxRate = 0.12

// ComputeTotals derives subtotal, discount, tax and total from the cart
// lines and an optional applied coupon.
//
// Blocked products are skipped even if still present in the cart, so a
// product the backend has since disabled is never charged for. A coupon
// whose minimum purchase is not met contributes zero discount; eligibility
// errors are surfaced by the coupon selector, not here. Rounding happens
// once, on the final total - rounding the intermediate terms independently
// would drift from the backend's expectation.
func ComputeTotals(lines []models.CartLineItem, coupon *models.Coupon) models.PricingResult {
	var subtotal float64
	for _, line := range lines {
		if line.Product.IsBlocked {
			continue
		}
		subtotal += line.Product.Price * float64(line.Quantity)
	}

	var discount float64
	if coupon != nil && subtotal >= coupon.MinimumPurchase {
		switch coupon.DiscountType {
		case models.DiscountTypePercentage:
			discount = subtotal * coupon.DiscountValue / 100
		case models.DiscountTypeAmount:
			discount = coupon.DiscountValue
		}
		// Clamp so the total can never go negative.
		discount = math.Min(discount, subtotal)
	}

	tax := subtotal * TaxRate

	return models.PricingResult{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Tax:            tax,
		Total:          math.Round(subtotal - discount + tax),
	}
}
