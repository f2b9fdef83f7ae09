package routes

import (
	"github.com/alka-bakery/bakery-api/auth"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(api *gin.RouterGroup, deps Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(deps.DB, deps.Cfg.JWT))
		authGroup.POST("/login", auth.Login(deps.DB, deps.Cfg.JWT))
		authGroup.POST("/refresh-token", auth.Refresh(deps.DB, deps.Cfg.JWT))
		authGroup.POST("/logout", auth.Logout(deps.DB, deps.Cfg.JWT))
	}
}
