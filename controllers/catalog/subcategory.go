package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubCategoryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	CategoryID  uint   `json:"categoryId" binding:"required"`
	Description string `json:"description" binding:"max=500"`
	Image       string `json:"image"`
	Order       int    `json:"order"`
}

// GET /subcategories?category=&activeOnly=
func GetSubCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Category").Order("\"order\", name")
		if c.Query("activeOnly") != "false" {
			query = query.Where("is_active = ?", true)
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category_id = ?", category)
		}

		var subCategories []models.SubCategory
		if err := query.Find(&subCategories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
			return
		}
		c.JSON(http.StatusOK, subCategories)
	}
}

// POST /admin/subcategories
// The parent category must exist and the name must be unique within it,
// case-insensitively.
func CreateSubCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
			}
			return
		}

		var existing models.SubCategory
		err := db.Where("category_id = ? AND LOWER(name) = LOWER(?)", input.CategoryID, input.Name).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "SubCategory with this name already exists in this category"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
			return
		}

		subCategory := models.SubCategory{
			Name:        input.Name,
			CategoryID:  input.CategoryID,
			Description: input.Description,
			Image:       input.Image,
			Order:       input.Order,
			IsActive:    true,
		}
		if err := db.Create(&subCategory).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
			return
		}

		if err := db.Preload("Category").First(&subCategory, subCategory.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
			return
		}
		c.JSON(http.StatusCreated, subCategory)
	}
}
