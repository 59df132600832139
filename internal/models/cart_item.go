package models

import "time"

// CartItem is an ephemeral intent-to-buy record. It lives between "add to
// cart" and either removal or checkout, at which point it is converted into
// an OrderItem. The composite unique index keeps each product in a user's
// cart at most once.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
