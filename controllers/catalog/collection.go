package catalogControllers

import (
	"net/http"

	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CollectionInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Image       string `json:"image"`
}

// GET /collections
func GetCollections(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("name")
		if c.Query("activeOnly") != "false" {
			query = query.Where("is_active = ?", true)
		}

		var collections []models.Collection
		if err := query.Find(&collections).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
			return
		}
		c.JSON(http.StatusOK, collections)
	}
}

// POST /admin/collections
func CreateCollection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CollectionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		collection := models.Collection{
			Name:        input.Name,
			Description: input.Description,
			Image:       input.Image,
			IsActive:    true,
		}
		if err := db.Create(&collection).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Collection with this name already exists"})
			return
		}
		c.JSON(http.StatusCreated, collection)
	}
}
