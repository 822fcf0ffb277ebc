package productControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /products?category=&subCategory=&collection=&activeOnly=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Sizes").Preload("Colors").
			Preload("Category").Preload("SubCategory").Preload("Collection").
			Order("created_at DESC")

		if c.Query("activeOnly") != "false" {
			query = query.Where("is_active = ?", true)
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category_id = ?", category)
		}
		if subCategory := c.Query("subCategory"); subCategory != "" {
			query = query.Where("sub_category_id = ?", subCategory)
		}
		if collection := c.Query("collection"); collection != "" {
			query = query.Where("collection_id = ?", collection)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			log.Printf("products fetch failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Sizes").Preload("Colors").
			Preload("Category").Preload("SubCategory").Preload("Collection").
			First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				log.Printf("product fetch failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
