package routes

import (
	cartControllers "github.com/alka-bakery/bakery-api/controllers/cart"
	"github.com/alka-bakery/bakery-api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes serves guests and logged-in users through one code
// path: IdentifyUser attaches user_id when a token is present, and the
// handlers resolve the right cart from that plus the x-cart-id token.
func SetupCartRoutes(api *gin.RouterGroup, deps Deps) {
	cartGroup := api.Group("/cart")
	cartGroup.Use(middleware.IdentifyUser(deps.Cfg.JWT.AccessSecret))
	{
		cartGroup.GET("", cartControllers.GetCart(deps.DB))
		cartGroup.POST("/items", cartControllers.AddItem(deps.DB))
		cartGroup.PATCH("/items/:item_id", cartControllers.UpdateItem(deps.DB))
		cartGroup.DELETE("/items/:item_id", cartControllers.RemoveItem(deps.DB))

		cartGroup.POST("/apply-coupon", cartControllers.ApplyCoupon(deps.DB))
		cartGroup.DELETE("/coupon", cartControllers.RemoveCoupon(deps.DB))
		cartGroup.GET("/coupons", cartControllers.GetAvailableCoupons(deps.DB, deps.Redis))

		cartGroup.POST("/merge-order", cartControllers.MergeOrderToCart(deps.DB))
	}
}
