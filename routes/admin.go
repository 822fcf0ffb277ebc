package routes

import (
	catalogControllers "github.com/Jafar777/exte/controllers/catalog"
	orderControllers "github.com/Jafar777/exte/controllers/order"
	productControllers "github.com/Jafar777/exte/controllers/product"
	userControllers "github.com/Jafar777/exte/controllers/user"
	"github.com/Jafar777/exte/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers every admin-role mutation. All of it sits behind
// ValidateToken + RequireAdmin.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("")
	admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		admin.POST("/products", productControllers.CreateProduct(db))
		admin.PUT("/products/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(db))

		admin.POST("/categories", catalogControllers.CreateCategory(db))
		admin.PUT("/categories/:id", catalogControllers.UpdateCategory(db))
		admin.DELETE("/categories/:id", catalogControllers.DeleteCategory(db))
		admin.POST("/subcategories", catalogControllers.CreateSubCategory(db))
		admin.POST("/collections", catalogControllers.CreateCollection(db))

		admin.PUT("/orders/:id", orderControllers.UpdateOrderStatus(db))

		admin.GET("/admin/users", userControllers.GetAllUsers(db))
		admin.PUT("/admin/users/:id/role", userControllers.UpdateUserRole(db))
		admin.GET("/admin/orders/export", orderControllers.ExportOrdersToExcel(db))
		admin.GET("/ws/orders", orderControllers.OrderFeed)
	}
}
