package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the entity belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized indicates the operation needs an authenticated user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCartEmpty indicates checkout was attempted without a cart.
	ErrCartEmpty = errors.New("cart is empty")
)

// InsufficientStockError reports a requested quantity exceeding what is in
// stock. It is user-recoverable: callers surface it, they do not abort on it.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d left in stock", e.ProductName, e.Available)
}

// StockErrors collects every insufficient-stock violation found in one
// validation pass, one entry per product.
type StockErrors []InsufficientStockError

func (e StockErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, item := range e {
		msgs = append(msgs, item.Error())
	}
	return strings.Join(msgs, "; ")
}

// AsStockErrors unwraps err into StockErrors, accepting a single
// InsufficientStockError as a one-element batch.
func AsStockErrors(err error) (StockErrors, bool) {
	var batch StockErrors
	if errors.As(err, &batch) {
		return batch, true
	}
	var single InsufficientStockError
	if errors.As(err, &single) {
		return StockErrors{single}, true
	}
	return nil, false
}
