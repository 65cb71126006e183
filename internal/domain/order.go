package domain

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

var transitions = map[OrderStatus][]OrderStatus{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return st, true
	}
	return "", false
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool { return len(transitions[s]) == 0 }

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Transition validates s -> next.
func (s OrderStatus) Transition(next OrderStatus) error {
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return nil
}

type OrderItem struct {
	ProductID string  `json:"productId" yaml:"productId"`
	Name      string  `json:"name" yaml:"name"`
	Price     float64 `json:"price" yaml:"price"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Image     string  `json:"image" yaml:"image"`
}

type Order struct {
	ID              string          `json:"id" yaml:"id"`
	OrderDate       time.Time       `json:"orderDate" yaml:"orderDate"`
	Status          OrderStatus     `json:"status" yaml:"status"`
	Total           float64         `json:"total" yaml:"total"`
	Items           []OrderItem     `json:"items" yaml:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" yaml:"shippingAddress"`
	CustomerID      string          `json:"customerId" yaml:"customerId"`
}
