package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alka-bakery/bakery-api/cache"
	"github.com/alka-bakery/bakery-api/config"
	orderControllers "github.com/alka-bakery/bakery-api/controllers/order"
	paymentControllers "github.com/alka-bakery/bakery-api/controllers/payment"
	"github.com/alka-bakery/bakery-api/logger"
	"github.com/alka-bakery/bakery-api/models"
	"github.com/alka-bakery/bakery-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("GIN_MODE") != "release"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load(log)

	db := initDatabase(cfg, log)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductUnitOption{},
		&models.ProductImage{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.ReviewImage{},
		&models.Address{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatal("auto-migrate failed", zap.Error(err))
	}

	var rdb *cache.RedisClient
	if cfg.Redis.Enabled {
		var err error
		rdb, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			// the cache is an optimization, never a hard dependency
			log.Warn("redis unavailable, continuing without cache", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-cart-id"},
		ExposeHeaders:    []string{"Content-Length", "x-cart-id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "🍰 Welcome to Alka Bakery API!"})
	})

	routes.SetupRoutes(r, routes.Deps{
		DB:      db,
		Cfg:     cfg,
		Redis:   rdb,
		Hub:     orderControllers.NewHub(log),
		Gateway: paymentControllers.NewPhonePeGateway(cfg.PhonePe, log),
	})

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	return db
}
