package productcontroller

import (
	"errors"
	"net/http"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UnitOptionInput struct {
	Label    string   `json:"label" binding:"required"`
	Grams    *float64 `json:"grams"`
	Price    float64  `json:"price" binding:"required"`
	Position int      `json:"position"`
}

type ImageInput struct {
	URL      string `json:"url" binding:"required"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

type ProductInput struct {
	ID           string            `json:"id" binding:"required"`
	Name         string            `json:"name" binding:"required"`
	Category     string            `json:"category"`
	Unit         string            `json:"unit" binding:"required,oneof=pc gm"`
	PricePer100g *float64          `json:"price_per_100g"`
	PricePerPc   *float64          `json:"price_per_pc"`
	Description  string            `json:"description"`
	UnitOptions  []UnitOptionInput `json:"unit_options"`
	Images       []ImageInput      `json:"images"`
}

// GET /api/products
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("UnitOptions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		}).Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		})

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var products []models.Product
		if err := query.Order("name asc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.Preload("UnitOptions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		}).Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		}).First(&product, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.PricePer100g == nil && input.PricePerPc == nil && len(input.UnitOptions) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product needs a price or at least one unit option"})
			return
		}

		product := buildProduct(input)
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /api/admin/products/:id
//
// Unit options and images are replaced wholesale; clients always send
// the full set.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		id := c.Param("id")

		var existing models.Product
		if err := db.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductUnitOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			product := buildProduct(input)
			product.ID = id
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		var product models.Product
		if err := db.Preload("UnitOptions").Preload("Images").First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

func buildProduct(input ProductInput) models.Product {
	product := models.Product{
		ID:           input.ID,
		Name:         input.Name,
		Category:     input.Category,
		Unit:         input.Unit,
		PricePer100g: input.PricePer100g,
		PricePerPc:   input.PricePerPc,
		Description:  input.Description,
	}
	for i, opt := range input.UnitOptions {
		position := opt.Position
		if position == 0 {
			position = i
		}
		product.UnitOptions = append(product.UnitOptions, models.ProductUnitOption{
			ProductID: input.ID,
			Label:     opt.Label,
			Grams:     opt.Grams,
			Price:     opt.Price,
			Position:  position,
		})
	}
	for i, img := range input.Images {
		position := img.Position
		if position == 0 {
			position = i
		}
		product.Images = append(product.Images, models.ProductImage{
			ProductID: input.ID,
			URL:       img.URL,
			Alt:       img.Alt,
			Position:  position,
		})
	}
	return product
}
