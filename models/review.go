package models

import "time"

// Review is unique per (user, product) while it exists; deleting one frees
// the slot for a re-review.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_review_user_product" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Like is the membership row behind the denormalized likes counter on
// Product; the two are written in the same transaction.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_like_user_product" json:"userId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_like_user_product" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}
