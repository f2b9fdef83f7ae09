package routes

import (
	addressControllers "github.com/alka-bakery/bakery-api/controllers/address"
	userControllers "github.com/alka-bakery/bakery-api/controllers/user"
	"github.com/alka-bakery/bakery-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAccountRoutes(api *gin.RouterGroup, deps Deps) {
	profileGroup := api.Group("/profile")
	profileGroup.Use(middleware.RequireAuth(deps.Cfg.JWT.AccessSecret))
	{
		profileGroup.GET("", userControllers.GetProfile(deps.DB))
		profileGroup.PATCH("", userControllers.UpdateProfile(deps.DB))
	}

	addressGroup := api.Group("/addresses")
	addressGroup.Use(middleware.RequireAuth(deps.Cfg.JWT.AccessSecret))
	{
		addressGroup.GET("", addressControllers.GetAddresses(deps.DB))
		addressGroup.POST("", addressControllers.CreateAddress(deps.DB))
		addressGroup.PUT("/:id", addressControllers.UpdateAddress(deps.DB))
		addressGroup.DELETE("/:id", addressControllers.DeleteAddress(deps.DB))
	}
}
