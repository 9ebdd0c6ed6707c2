package domain

import "time"

type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []CartItem `json:"items,omitempty"`
}

type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalCents is the line total; zero when the product is not loaded.
func (i CartItem) TotalCents() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.PriceCents * int64(i.Quantity)
}
