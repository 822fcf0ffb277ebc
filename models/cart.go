package models

import "time"

// Color is the (name, hex) pair a cart line was added with. Two lines are the
// same only when product, size, name and hex all match.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"userId"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64    `gorm:"default:0" json:"total"`
	ItemCount int        `gorm:"default:0" json:"itemCount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	CartID    uint     `gorm:"index" json:"-"`
	ProductID uint     `gorm:"not null" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Size      string   `gorm:"not null" json:"size"`
	Color     Color    `gorm:"embedded;embeddedPrefix:color_" json:"color"`
	Quantity  int      `gorm:"not null;default:1" json:"quantity"`
	// Price is captured when the line is added; later catalog price changes
	// do not touch existing lines.
	Price   float64   `gorm:"not null" json:"price"`
	AddedAt time.Time `json:"addedAt"`
}

// Matches reports whether an incoming (product, size, color) addresses this line.
func (i CartItem) Matches(productID uint, size string, color Color) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// RecomputeTotals derives itemCount and total from an item list. It is the
// single source of truth for the cart's derived pair; every mutation runs it
// before persisting, in the same transaction as the item write.
func RecomputeTotals(items []CartItem) (itemCount int, total float64) {
	for _, it := range items {
		itemCount += it.Quantity
		total += it.Price * float64(it.Quantity)
	}
	return itemCount, total
}

// Recompute refreshes the cart's derived fields from its loaded items.
func (c *Cart) Recompute() {
	c.ItemCount, c.Total = RecomputeTotals(c.Items)
}
