package reviewControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewInput struct {
	ProductID uint   `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// deliveredProductIDs returns the distinct products the user has received in
// delivered orders. Buying the same product in two delivered orders still
// yields one entry.
func deliveredProductIDs(db *gorm.DB, userID string) ([]uint, error) {
	var productIDs []uint
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ?", userID, models.OrderStatusDelivered).
		Distinct().
		Pluck("order_items.product_id", &productIDs).Error
	return productIDs, err
}

// GET /reviews/eligible-products
// Products from the user's delivered orders that the user has not yet
// reviewed. Deleting a review makes its product eligible again.
func GetEligibleProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		productIDs, err := deliveredProductIDs(db, userID)
		if err != nil {
			log.Printf("eligibility query failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch eligible products"})
			return
		}

		products := []models.Product{}
		if len(productIDs) > 0 {
			var reviewedIDs []uint
			if err := db.Model(&models.Review{}).Where("user_id = ?", userID).
				Pluck("product_id", &reviewedIDs).Error; err != nil {
				log.Printf("review lookup failed for %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch eligible products"})
				return
			}

			query := db.Where("id IN ?", productIDs)
			if len(reviewedIDs) > 0 {
				query = query.Where("id NOT IN ?", reviewedIDs)
			}
			if err := query.Find(&products).Error; err != nil {
				log.Printf("eligible products fetch failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch eligible products"})
				return
			}
		}

		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Preload("User").
			Where("product_id = ?", c.Param("id")).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// POST /reviews
// Gated on a delivered order containing the product; one live review per
// (user, product).
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		productIDs, err := deliveredProductIDs(db, userID)
		if err != nil {
			log.Printf("eligibility query failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
		eligible := false
		for _, id := range productIDs {
			if id == input.ProductID {
				eligible = true
				break
			}
		}
		if !eligible {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only review products from delivered orders"})
			return
		}

		review := models.Review{
			UserID:    userID,
			ProductID: input.ProductID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			// unique (user, product) index
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "You have already reviewed this product"})
				return
			}
			log.Printf("review create failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// DELETE /reviews/:id
// Owner or admin.
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		role := models.Role(c.GetString("role"))

		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			}
			return
		}

		if review.UserID != userID && !role.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own reviews"})
			return
		}

		if err := db.Delete(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
