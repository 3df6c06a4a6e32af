package routes

import (
	"github.com/HasnaHasan194/readhaven-checkout/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
