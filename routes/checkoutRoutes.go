package routes

import (
	"github.com/HasnaHasan194/readhaven-checkout/controllers"
	"github.com/HasnaHasan194/readhaven-checkout/middlewares"
	"github.com/gin-gonic/gin"
)

func CheckoutRoutes(server *gin.Engine) {
	checkout := server.Group("/checkout", middlewares.RequireAuth())
	{
		checkout.GET("", controllers.GetCheckout)
		checkout.POST("/coupon", controllers.ApplyCoupon)
		checkout.DELETE("/coupon", controllers.RemoveCoupon)
		checkout.POST("/address", controllers.SelectAddress)
		checkout.POST("/payment-method", controllers.SelectPaymentMethod)
		checkout.POST("/place-order", controllers.PlaceOrder)
		checkout.POST("/payment/callback", controllers.PaymentCallback)
		checkout.GET("/result", controllers.GetCheckoutResult)
	}
}
