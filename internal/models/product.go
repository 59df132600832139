package models

import "time"

// Product conditions accepted by the listing form.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like-new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// Product is a second-hand listing. Each product is a single physical item:
// once IsSold is set it can never be purchased again, though the seller may
// still edit its metadata.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"required,max=2000"`
	Price       float64   `json:"price" gorm:"not null" validate:"required,gt=0"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Condition   string    `json:"condition" gorm:"type:varchar(20);not null" validate:"required,oneof=new like-new good fair poor"`
	Category    string    `json:"category" gorm:"type:varchar(50);not null;index" validate:"required,max=50"`
	IsSold      bool      `json:"is_sold" gorm:"not null;default:false;index"`
	SellerID    string    `json:"seller_id" gorm:"type:varchar(36);not null;index"`
	Seller      *User     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
