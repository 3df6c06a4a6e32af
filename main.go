package main

import (
	"time"

	"github.com/HasnaHasan194/readhaven-checkout/clients"
	"github.com/HasnaHasan194/readhaven-checkout/controllers"
	"github.com/HasnaHasan194/readhaven-checkout/gateway"
	"github.com/HasnaHasan194/readhaven-checkout/initializers"
	"github.com/HasnaHasan194/readhaven-checkout/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
}

func main() {
	config := initializers.LoadConfig()

	backend := clients.NewBackendClient(config.BackendBaseURL)
	razorpay := gateway.NewRazorpay(config.RazorpayKeyID, config.RazorpayKeySecret)
	controllers.Setup(backend, razorpay)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.DefaultRoutes(server)
	routes.CheckoutRoutes(server)
	server.Run(config.ListenAddr)
}
