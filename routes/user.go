package routes

import (
	cartControllers "github.com/Jafar777/exte/controllers/cart"
	orderControllers "github.com/Jafar777/exte/controllers/order"
	productControllers "github.com/Jafar777/exte/controllers/product"
	reviewControllers "github.com/Jafar777/exte/controllers/review"
	userControllers "github.com/Jafar777/exte/controllers/user"
	"github.com/Jafar777/exte/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers everything requiring an authenticated identity.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	authed := r.Group("")
	authed.Use(middleware.ValidateToken)
	{
		authed.GET("/user", userControllers.GetUser(db))
		authed.PUT("/user", userControllers.UpdateUser(db))

		authed.GET("/cart", cartControllers.GetCart(db))
		authed.POST("/cart", cartControllers.AddCartItem(db))
		authed.PUT("/cart", cartControllers.UpdateCartItem(db))
		authed.DELETE("/cart", cartControllers.RemoveCartItems(db))

		authed.GET("/orders", orderControllers.ListOrders(db))
		authed.POST("/orders", orderControllers.CreateOrder(db))

		authed.POST("/products/:id/like", productControllers.ToggleLike(db))
		authed.GET("/users/likes", productControllers.GetLikedProducts(db))

		authed.GET("/reviews/eligible-products", reviewControllers.GetEligibleProducts(db))
		authed.POST("/reviews", reviewControllers.CreateReview(db))
		authed.DELETE("/reviews/:id", reviewControllers.DeleteReview(db))
	}
}
