package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	cartControllers "github.com/Jafar777/exte/controllers/cart"
	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID uint          `json:"productId" binding:"required"`
	Size      string        `json:"size" binding:"required"`
	Color     *models.Color `json:"color"`
	Quantity  int           `json:"quantity" binding:"required,min=1"`
	Price     float64       `json:"price"`
}

type CreateOrderInput struct {
	Items []OrderItemInput `json:"items"`
	Total float64          `json:"total"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

var (
	errInsufficientStock = errors.New("insufficient stock")
	errPriceMismatch     = errors.New("price does not match")
	errTotalMismatch     = errors.New("order total does not match item prices")
)

func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// POST /orders
// The client sends its cart snapshot plus the total it displayed. Client
// prices are never trusted: each line is repriced server-side (the caller's
// cart line price when one matches, the catalog price otherwise) and both a
// per-line price mismatch and a total mismatch reject the order. Stock is
// verified and decremented per (product, size) under row locks. The owner's
// cart is cleared after the order is committed; a failed clear never rolls
// the order back.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if len(input.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			// Cart lines carry the price captured at add time; they are
			// the pricing authority for lines the user actually carted.
			var cartLines []models.CartItem
			if err := tx.Joins("JOIN carts ON carts.id = cart_items.cart_id").
				Where("carts.user_id = ?", userID).
				Find(&cartLines).Error; err != nil {
				return err
			}

			var serverTotal float64
			var orderItems []models.OrderItem
			for _, item := range input.Items {
				var product models.Product
				if err := tx.First(&product, "id = ? AND is_active = ?", item.ProductID, true).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("product %d: %w", item.ProductID, gorm.ErrRecordNotFound)
					}
					return err
				}

				color := models.Color{}
				if item.Color != nil {
					color = *item.Color
				}
				unitPrice := product.Price
				for _, line := range cartLines {
					if line.Matches(product.ID, item.Size, color) {
						unitPrice = line.Price
						break
					}
				}
				if math.Abs(item.Price-unitPrice) > 0.01 {
					return fmt.Errorf("%s (%s): %w", product.Name, item.Size, errPriceMismatch)
				}

				if err := deductStock(tx, product.ID, item.Size, item.Quantity); err != nil {
					return fmt.Errorf("%s (%s): %w", product.Name, item.Size, err)
				}

				image := ""
				if len(product.Images) > 0 {
					image = product.Images[0]
				}
				serverTotal += unitPrice * float64(item.Quantity)
				orderItems = append(orderItems, models.OrderItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					Image:       image,
					Size:        item.Size,
					Color:       color,
					Quantity:    item.Quantity,
					Price:       unitPrice,
				})
			}

			if math.Abs(serverTotal-input.Total) > 0.01 {
				return errTotalMismatch
			}

			order = models.Order{
				OrderNumber:   generateOrderNumber(),
				UserID:        userID,
				Items:         orderItems,
				Total:         serverTotal,
				Status:        models.OrderStatusPending,
				PaymentMethod: models.PaymentMethodCOD,
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.Is(err, errInsufficientStock), errors.Is(err, errPriceMismatch),
				errors.Is(err, errTotalMismatch):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("order create failed for %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		// The order stands even if the cart clear fails.
		if err := cartControllers.ClearCart(db, userID); err != nil {
			log.Printf("cart clear after order %s failed: %v", order.OrderNumber, err)
		}

		broadcastOrderEvent("order_created", order)
		c.JSON(http.StatusCreated, order)
	}
}

// deductStock locks the size row and decrements it. A size with no stock row
// is untracked and passes through unchecked.
func deductStock(tx *gorm.DB, productID uint, size string, quantity int) error {
	var ps models.ProductSize
	err := models.LockForUpdate(tx).
		Where("product_id = ? AND size = ?", productID, size).First(&ps).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if ps.Stock < quantity {
		return errInsufficientStock
	}
	return tx.Model(&ps).Update("stock", gorm.Expr("stock - ?", quantity)).Error
}

// GET /orders
// Admins see every order system-wide; users see only their own. Both newest
// first.
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		role := models.Role(c.GetString("role"))

		query := db.Preload("Items").Preload("Items.Product").Order("created_at DESC")
		if role.IsAdmin() {
			query = query.Preload("User")
		} else {
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			log.Printf("orders fetch failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /orders/:id
// Admin only (enforced by the route group). The fulfillment graph is hard
// enforced; an edge outside it fails without mutating the order.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		newStatus, ok := models.ParseOrderStatus(input.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}

		var order models.Order
		var badTransition bool
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := models.LockForUpdate(tx).
				First(&order, "id = ?", orderID).Error; err != nil {
				return err
			}
			if !models.CanTransition(order.Status, newStatus) {
				badTransition = true
				return nil
			}
			order.Status = newStatus
			return tx.Model(&order).Update("status", newStatus).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Printf("order status update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		if badTransition {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Cannot transition order from %s to %s", order.Status, newStatus),
			})
			return
		}

		broadcastOrderEvent("order_status_changed", order)
		c.JSON(http.StatusOK, order)
	}
}
