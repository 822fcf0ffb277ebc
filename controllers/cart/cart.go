package cartControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductID uint          `json:"productId" binding:"required"`
	Size      string        `json:"size" binding:"required"`
	Color     *models.Color `json:"color"`
	Quantity  int           `json:"quantity"`
}

type UpdateItemInput struct {
	ItemID   uint `json:"itemId" binding:"required"`
	Quantity *int `json:"quantity" binding:"required"`
}

// lockCart loads the user's cart under a row lock, creating an empty one when
// absent. Concurrent mutators for the same user serialize on this lock.
func lockCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := models.LockForUpdate(tx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// persistTotals rereads the item list and writes the derived pair in the same
// transaction as the item mutation, so no reader sees a stale pair.
func persistTotals(tx *gorm.DB, cart *models.Cart) error {
	if err := tx.Where("cart_id = ?", cart.ID).Find(&cart.Items).Error; err != nil {
		return err
	}
	cart.Recompute()
	return tx.Model(cart).Updates(map[string]interface{}{
		"total":      cart.Total,
		"item_count": cart.ItemCount,
	}).Error
}

// respondWithCart returns the cart with referenced products expanded.
func respondWithCart(c *gin.Context, db *gorm.DB, cartID uint, status int) {
	var cart models.Cart
	if err := db.Preload("Items.Product").First(&cart, cartID).Error; err != nil {
		log.Printf("cart reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(status, cart)
}

// GET /cart
// Absence self-heals: a user without a cart gets a fresh empty one.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var cart models.Cart
		err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
			if err := db.Create(&cart).Error; err != nil {
				log.Printf("cart create failed for %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
				return
			}
		} else if err != nil {
			log.Printf("cart fetch failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart
// A line is addressed by (product, size, color name, color hex); a match
// increments its quantity, anything else appends a new line at the product's
// current price. Quantity is not clamped to stock here.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and size are required"})
			return
		}
		if input.Quantity <= 0 {
			input.Quantity = 1
		}
		color := models.Color{}
		if input.Color != nil {
			color = *input.Color
		}

		var product models.Product
		if err := db.First(&product, "id = ? AND is_active = ?", input.ProductID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("product lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var cartID uint
		err := db.Transaction(func(tx *gorm.DB) error {
			cart, err := lockCart(tx, userID)
			if err != nil {
				return err
			}
			cartID = cart.ID

			var items []models.CartItem
			if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
				return err
			}

			matched := false
			for _, item := range items {
				if item.Matches(input.ProductID, input.Size, color) {
					matched = true
					if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
						Update("quantity", gorm.Expr("quantity + ?", input.Quantity)).Error; err != nil {
						return err
					}
					break
				}
			}
			if !matched {
				newItem := models.CartItem{
					CartID:    cart.ID,
					ProductID: product.ID,
					Size:      input.Size,
					Color:     color,
					Quantity:  input.Quantity,
					Price:     product.Price,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			}

			return persistTotals(tx, cart)
		})
		if err != nil {
			log.Printf("cart add failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		respondWithCart(c, db, cartID, http.StatusOK)
	}
}

// PUT /cart
// Quantity <= 0 removes the line; > 0 replaces it verbatim.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID and quantity are required"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		var notFound bool
		err := db.Transaction(func(tx *gorm.DB) error {
			locked, err := lockCart(tx, userID)
			if err != nil {
				return err
			}

			var item models.CartItem
			if err := tx.Where("id = ? AND cart_id = ?", input.ItemID, locked.ID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					notFound = true
					return nil
				}
				return err
			}

			if *input.Quantity <= 0 {
				if err := tx.Delete(&item).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&item).Update("quantity", *input.Quantity).Error; err != nil {
					return err
				}
			}

			return persistTotals(tx, locked)
		})
		if err != nil {
			log.Printf("cart update failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		if notFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}

		respondWithCart(c, db, cart.ID, http.StatusOK)
	}
}

// DELETE /cart?itemId=
// With itemId removes that line; without it empties the whole cart. The cart
// row itself is never deleted.
func RemoveCartItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		itemID := c.Query("itemId")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		var notFound bool
		err := db.Transaction(func(tx *gorm.DB) error {
			locked, err := lockCart(tx, userID)
			if err != nil {
				return err
			}

			if itemID != "" {
				result := tx.Where("id = ? AND cart_id = ?", itemID, locked.ID).Delete(&models.CartItem{})
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					notFound = true
					return nil
				}
			} else {
				if err := tx.Where("cart_id = ?", locked.ID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			}

			return persistTotals(tx, locked)
		})
		if err != nil {
			log.Printf("cart delete failed for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart items"})
			return
		}
		if notFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}

		respondWithCart(c, db, cart.ID, http.StatusOK)
	}
}

// ClearCart empties a user's cart as part of order placement. Exposed for the
// order controller; runs its own transaction.
func ClearCart(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return persistTotals(tx, cart)
	})
}
