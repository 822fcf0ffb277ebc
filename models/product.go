package models

import (
	"time"

	"github.com/lib/pq"
)

type Product struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	Sizes         []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	Colors        []ProductColor `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors"`
	Likes         int            `gorm:"default:0" json:"likes"`
	CategoryID    *uint          `json:"categoryId"`
	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID *uint          `json:"subCategoryId"`
	SubCategory   *SubCategory   `gorm:"foreignKey:SubCategoryID" json:"subCategory,omitempty"`
	CollectionID  *uint          `json:"collectionId"`
	Collection    *Collection    `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// ProductSize tracks per-size stock. Stock is only consulted and decremented
// when an order is placed, never when an item is added to a cart.
type ProductSize struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"index" json:"-"`
	Size      string `gorm:"not null" json:"size"`
	Stock     int    `gorm:"default:0" json:"stock"`
}

type ProductColor struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	ProductID uint           `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Hex       string         `json:"hex"`
	Images    pq.StringArray `gorm:"type:text[]" json:"images"`
}
