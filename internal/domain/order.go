package domain

import "time"

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	IsCompleted bool        `json:"isCompleted"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem carries a snapshot of the product at purchase time, so later
// price or name changes do not rewrite order history.
type OrderItem struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	PriceCents  int64  `json:"priceCents"`
	Quantity    int    `json:"quantity"`
}

func (i OrderItem) TotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}
