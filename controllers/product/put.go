package productControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PUT /admin/products/:id
// Replaces the catalog fields and the size/color children. Prices captured in
// existing cart lines and order snapshots are untouched.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				log.Printf("product lookup failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			}
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"name":            input.Name,
				"description":     input.Description,
				"price":           input.Price,
				"images":          pq.StringArray(input.Images),
				"category_id":     input.CategoryID,
				"sub_category_id": input.SubCategoryID,
				"collection_id":   input.CollectionID,
			}
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}

			// Replace size and color children wholesale.
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSize{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductColor{}).Error; err != nil {
				return err
			}
			for _, s := range input.Sizes {
				size := models.ProductSize{ProductID: product.ID, Size: s.Size, Stock: s.Stock}
				if err := tx.Create(&size).Error; err != nil {
					return err
				}
			}
			for _, col := range input.Colors {
				color := models.ProductColor{
					ProductID: product.ID,
					Name:      col.Name,
					Hex:       col.Hex,
					Images:    pq.StringArray(col.Images),
				}
				if err := tx.Create(&color).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("product update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		if err := db.Preload("Sizes").Preload("Colors").
			Preload("Category").Preload("SubCategory").Preload("Collection").
			First(&product, product.ID).Error; err != nil {
			log.Printf("product reload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
