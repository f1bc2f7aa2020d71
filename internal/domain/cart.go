package domain

import "time"

// Cart holds the items a user intends to purchase. Each user has at most
// one cart; checkout drains it.
type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	TotalCents int64      `json:"totalCents"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CartItem struct {
	ID             string    `json:"id"`
	CartID         string    `json:"cartId"`
	ProductID      string    `json:"productId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	CreatedAt      time.Time `json:"createdAt"`
}
