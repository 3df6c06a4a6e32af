package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Readhaven Checkout API ❤️.

The following are the endpoints for this service:

CHECKOUT
- GET "/checkout" - Start a checkout session (cart, addresses, coupons, totals)
- POST "/checkout/coupon" - Apply a coupon code
- DELETE "/checkout/coupon" - Remove the applied coupon
- POST "/checkout/address" - Select the delivery address
- POST "/checkout/payment-method" - Select the payment method
- POST "/checkout/place-order" - Submit the order
- POST "/checkout/payment/callback" - Resolve an online payment
- GET "/checkout/result" - Fetch the terminal order result`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
