package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// PaymentMethodCOD is the only payment method; there is no gateway integration.
const PaymentMethodCOD = "cash_on_delivery"

// orderTransitions is the full fulfillment graph. rejected and delivered are
// terminal; no edge reverses or skips a stage.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusAccepted, OrderStatusRejected},
	OrderStatusAccepted: {OrderStatusShipped},
	OrderStatusShipped:  {OrderStatusDelivered},
}

// ParseOrderStatus maps a request string to a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected,
		OrderStatusShipped, OrderStatusDelivered:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"uniqueIndex;not null" json:"orderNumber"`
	UserID        string      `gorm:"not null;index" json:"userId"`
	User          *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total         float64     `gorm:"not null" json:"total"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMethod string      `gorm:"default:'cash_on_delivery'" json:"paymentMethod"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// OrderItem is a detached snapshot of a cart line; later cart or catalog
// mutations never reach it.
type OrderItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	OrderID     uint     `gorm:"index" json:"-"`
	ProductID   uint     `gorm:"not null" json:"productId"`
	Product     *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName string   `json:"productName"`
	Image       string   `json:"image"`
	Size        string   `gorm:"not null" json:"size"`
	Color       Color    `gorm:"embedded;embeddedPrefix:color_" json:"color"`
	Quantity    int      `gorm:"not null" json:"quantity"`
	Price       float64  `gorm:"not null" json:"price"`
}
