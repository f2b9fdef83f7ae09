package routes

import (
	orderControllers "github.com/alka-bakery/bakery-api/controllers/order"
	paymentControllers "github.com/alka-bakery/bakery-api/controllers/payment"
	"github.com/alka-bakery/bakery-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(api *gin.RouterGroup, deps Deps) {
	// public tracking by receipt short-id
	api.GET("/track/:code", orderControllers.TrackOrder(deps.DB))

	orderGroup := api.Group("/orders")
	orderGroup.Use(middleware.RequireAuth(deps.Cfg.JWT.AccessSecret))
	{
		orderGroup.POST("", orderControllers.PlaceOrder(deps.DB, deps.Cfg, deps.Hub))
		orderGroup.GET("", orderControllers.GetUserOrders(deps.DB))
		orderGroup.GET("/:id", orderControllers.GetOrder(deps.DB))
		orderGroup.POST("/:id/cancel", orderControllers.CancelOrder(deps.DB, deps.Hub))
	}

	paymentGroup := api.Group("/payments")
	paymentGroup.Use(middleware.RequireAuth(deps.Cfg.JWT.AccessSecret))
	{
		paymentGroup.POST("/:order_id/initiate", paymentControllers.InitiatePayment(deps.DB, deps.Gateway))
		paymentGroup.GET("/:order_id/verify", paymentControllers.VerifyPayment(deps.DB, deps.Gateway))
	}
}
