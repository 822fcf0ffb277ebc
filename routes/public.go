package routes

import (
	catalogControllers "github.com/Jafar777/exte/controllers/catalog"
	productControllers "github.com/Jafar777/exte/controllers/product"
	reviewControllers "github.com/Jafar777/exte/controllers/review"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the unauthenticated catalog reads.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/products/:id/reviews", reviewControllers.GetProductReviews(db))

	r.GET("/categories", catalogControllers.GetCategories(db))
	r.GET("/categories/:id", catalogControllers.GetCategoryByID(db))
	r.GET("/subcategories", catalogControllers.GetSubCategories(db))
	r.GET("/collections", catalogControllers.GetCollections(db))
}
