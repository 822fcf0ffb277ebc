package productControllers

import (
	"net/http"

	"github.com/Jafar777/exte/models"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type SizeInput struct {
	Size  string `json:"size" binding:"required"`
	Stock int    `json:"stock"`
}

type ColorInput struct {
	Name   string   `json:"name" binding:"required"`
	Hex    string   `json:"hex"`
	Images []string `json:"images"`
}

type ProductInput struct {
	Name          string       `json:"name" binding:"required"`
	Description   string       `json:"description"`
	Price         float64      `json:"price" binding:"required,gt=0"`
	Images        []string     `json:"images"`
	Sizes         []SizeInput  `json:"sizes"`
	Colors        []ColorInput `json:"colors"`
	CategoryID    *uint        `json:"categoryId"`
	SubCategoryID *uint        `json:"subCategoryId"`
	CollectionID  *uint        `json:"collectionId"`
}

func buildProduct(input ProductInput) models.Product {
	product := models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Images:        pq.StringArray(input.Images),
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		CollectionID:  input.CollectionID,
		IsActive:      true,
	}
	for _, s := range input.Sizes {
		product.Sizes = append(product.Sizes, models.ProductSize{Size: s.Size, Stock: s.Stock})
	}
	for _, col := range input.Colors {
		product.Colors = append(product.Colors, models.ProductColor{
			Name:   col.Name,
			Hex:    col.Hex,
			Images: pq.StringArray(col.Images),
		})
	}
	return product
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := buildProduct(input)
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
