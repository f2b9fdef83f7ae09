package routes

import (
	contactControllers "github.com/alka-bakery/bakery-api/controllers/contact"
	couponControllers "github.com/alka-bakery/bakery-api/controllers/coupon"
	orderControllers "github.com/alka-bakery/bakery-api/controllers/order"
	productcontroller "github.com/alka-bakery/bakery-api/controllers/product"
	reviewControllers "github.com/alka-bakery/bakery-api/controllers/review"
	"github.com/alka-bakery/bakery-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(api *gin.RouterGroup, deps Deps) {
	admin := api.Group("/admin")
	admin.Use(
		middleware.RequireAuth(deps.Cfg.JWT.AccessSecret),
		middleware.RequireAdmin(deps.DB),
	)
	{
		admin.GET("/products/export", productcontroller.ExportProductsToExcel(deps.DB))
		admin.POST("/products", productcontroller.CreateProduct(deps.DB))
		admin.PUT("/products/:id", productcontroller.UpdateProduct(deps.DB))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(deps.DB))

		admin.POST("/categories", productcontroller.CreateCategory(deps.DB))
		admin.PUT("/categories/:id", productcontroller.UpdateCategory(deps.DB))
		admin.DELETE("/categories/:id", productcontroller.DeleteCategory(deps.DB))

		admin.GET("/coupons", couponControllers.GetAllCoupons(deps.DB))
		admin.POST("/coupons", couponControllers.CreateCoupon(deps.DB, deps.Redis))
		admin.PUT("/coupons/:id", couponControllers.UpdateCoupon(deps.DB, deps.Redis))
		admin.DELETE("/coupons/:id", couponControllers.DeleteCoupon(deps.DB, deps.Redis))

		admin.GET("/orders", orderControllers.GetAllOrders(deps.DB))
		admin.GET("/orders/ws", deps.Hub.Handler())
		admin.PATCH("/orders/:id/status", orderControllers.UpdateOrderStatus(deps.DB, deps.Hub))
		admin.PATCH("/orders/:id/payment", orderControllers.UpdatePaymentStatus(deps.DB, deps.Hub))

		admin.GET("/reviews", reviewControllers.GetAllReviews(deps.DB))
		admin.PATCH("/reviews/:id/approve", reviewControllers.ApproveReview(deps.DB))
		admin.PATCH("/reviews/:id/reject", reviewControllers.RejectReview(deps.DB))
		admin.DELETE("/reviews/:id", reviewControllers.DeleteReview(deps.DB))

		admin.GET("/contact-messages", contactControllers.GetContactMessages(deps.DB))
	}
}
