package routes

import (
	"github.com/alka-bakery/bakery-api/cache"
	"github.com/alka-bakery/bakery-api/config"
	orderControllers "github.com/alka-bakery/bakery-api/controllers/order"
	paymentControllers "github.com/alka-bakery/bakery-api/controllers/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the shared collaborators the route groups need.
type Deps struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Redis   *cache.RedisClient // nil disables caching
	Hub     *orderControllers.Hub
	Gateway paymentControllers.Gateway
}

// SetupRoutes wires every route group onto the engine.
func SetupRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")

	SetupAuthRoutes(api, deps)
	SetupCatalogRoutes(api, deps)
	SetupCartRoutes(api, deps)
	SetupOrderRoutes(api, deps)
	SetupAccountRoutes(api, deps)
	SetupAdminRoutes(api, deps)
}
