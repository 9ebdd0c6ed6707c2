package domain

import "time"

// User is a registered shopper. Authentication is intentionally thin: the
// storefront only needs an identity to key carts and orders on.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
