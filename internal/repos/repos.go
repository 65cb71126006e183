// Package repos exposes typed repositories over store collections.
package repos

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrDuplicate  = errors.New("duplicate id")
)

// Collection keys.
const (
	KeyProducts   = "products"
	KeyUsers      = "users"
	KeyOrders     = "orders"
	KeySessions   = "sessions"
	cartKeyPrefix = "cart:"
)
