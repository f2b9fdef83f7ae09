package routes

import (
	contactControllers "github.com/alka-bakery/bakery-api/controllers/contact"
	productcontroller "github.com/alka-bakery/bakery-api/controllers/product"
	reviewControllers "github.com/alka-bakery/bakery-api/controllers/review"
	"github.com/alka-bakery/bakery-api/logger"
	"github.com/alka-bakery/bakery-api/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(api *gin.RouterGroup, deps Deps) {
	api.GET("/products", productcontroller.GetAllProducts(deps.DB))
	api.GET("/products/:id", productcontroller.GetProduct(deps.DB))
	api.GET("/products/:id/reviews", reviewControllers.GetProductReviews(deps.DB))
	api.GET("/categories", productcontroller.GetAllCategories(deps.DB))

	// review authors may be guests; a valid token adds the verified badge
	api.POST("/reviews",
		middleware.IdentifyUser(deps.Cfg.JWT.AccessSecret),
		reviewControllers.CreateReview(deps.DB))

	api.POST("/contact", contactControllers.SubmitContactForm(deps.DB, deps.Cfg.SMTP, logger.L()))
}
