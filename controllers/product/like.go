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

type ToggleLikeInput struct {
	Liked *bool `json:"liked" binding:"required"`
}

// POST /products/:id/like
// Idempotent: asking for the state the membership is already in changes
// nothing. Membership row and the denormalized counter move together.
func ToggleLike(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input ToggleLikeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Liked state is required"})
			return
		}
		desired := *input.Liked

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("product lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var like models.Like
			err := tx.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&like).Error
			exists := err == nil
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			switch {
			case desired && !exists:
				like = models.Like{UserID: userID, ProductID: product.ID}
				if err := tx.Create(&like).Error; err != nil {
					return err
				}
				return tx.Model(&models.Product{}).Where("id = ?", product.ID).
					Update("likes", gorm.Expr("likes + 1")).Error
			case !desired && exists:
				if err := tx.Delete(&like).Error; err != nil {
					return err
				}
				return tx.Model(&models.Product{}).Where("id = ? AND likes > 0", product.ID).
					Update("likes", gorm.Expr("likes - 1")).Error
			default:
				return nil // already in the desired state
			}
		})
		if err != nil {
			log.Printf("like toggle failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like"})
			return
		}

		if err := db.First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": desired, "likes": product.Likes})
	}
}

// GET /users/likes
// Memberships whose product has since disappeared or been deactivated are
// skipped, not surfaced as errors.
func GetLikedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var likes []models.Like
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&likes).Error; err != nil {
			log.Printf("likes fetch failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch liked products"})
			return
		}

		products := []models.Product{}
		for _, like := range likes {
			var product models.Product
			err := db.Preload("Sizes").Preload("Colors").
				First(&product, "id = ? AND is_active = ?", like.ProductID, true).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				log.Printf("liked product fetch failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch liked products"})
				return
			}
			products = append(products, product)
		}

		c.JSON(http.StatusOK, products)
	}
}
