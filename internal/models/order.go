package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a durable, append-only record of a completed purchase batch.
// TotalAmount is fixed at creation time and equals the sum of the item
// prices captured then.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64     `json:"total_amount" gorm:"not null"`
	Status          string      `json:"status" gorm:"type:varchar(20);not null;default:'completed'"`
	ShippingAddress string      `json:"shipping_address" gorm:"type:text"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem is a price-snapshotted line within an order. The product fields
// are denormalized copies taken at purchase time so that order history stays
// accurate even if the product is later edited or deleted. There is
// deliberately no foreign key back to products.
type OrderItem struct {
	ID              string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID         string  `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID       string  `json:"product_id" gorm:"type:varchar(36);not null"`
	ProductTitle    string  `json:"product_title" gorm:"type:varchar(100);not null"`
	ProductImageURL string  `json:"product_image_url" gorm:"type:varchar(500)"`
	SellerID        string  `json:"seller_id" gorm:"type:varchar(36);not null"`
	Price           float64 `json:"price" gorm:"not null"` // price at the time of purchase
}
