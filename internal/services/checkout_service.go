package services

import (
	"context"
	"errors"
	"strings"

	"cottoncare/internal/domain"
	"cottoncare/internal/validate"
)

var ErrEmptyCart = errors.New("cart is empty")

const (
	FreeShippingOver = 50.0
	ShippingFee      = 7.99
)

type PaymentMethod string

const (
	PayCreditCard PaymentMethod = "creditCard"
	PayPayPal     PaymentMethod = "paypal"
	PayGooglePay  PaymentMethod = "googlePay"
)

// PaymentDetails are validated and then dropped; nothing is charged.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber" validate:"required,cardnum"`
	ExpiryDate string `json:"expiryDate" validate:"required,expiry"`
	CVC        string `json:"cvc" validate:"required,cvc"`
	NameOnCard string `json:"nameOnCard" validate:"required,min=2"`
}

type CheckoutInput struct {
	Shipping              domain.ShippingAddress  `json:"shippingAddress"`
	BillingSameAsShipping bool                    `json:"billingSameAsShipping"`
	Billing               *domain.ShippingAddress `json:"billingAddress" validate:"required_if=BillingSameAsShipping false,omitempty"`
	PaymentMethod         PaymentMethod           `json:"paymentMethod" validate:"required,oneof=creditCard paypal googlePay"`
	Payment               *PaymentDetails         `json:"paymentDetails" validate:"required_if=PaymentMethod creditCard,omitempty"`
}

// Receipt is returned by Checkout. Warning is non-empty when the order could not be
// written to the history.
type Receipt struct {
	Order    domain.Order `json:"order"`
	Subtotal float64      `json:"subtotal"`
	Shipping float64      `json:"shipping"`
	Total    float64      `json:"total"`
	Warning  string       `json:"warning,omitempty"`
}

// ShippingFor is free above FreeShippingOver and for an empty cart.
func ShippingFor(subtotal float64) float64 {
	if subtotal > FreeShippingOver || subtotal == 0 {
		return 0
	}
	return ShippingFee
}

type CheckoutService struct {
	Cart   *CartService
	Orders *OrderService
}

func NewCheckoutService(cart *CartService, orders *OrderService) *CheckoutService {
	return &CheckoutService{Cart: cart, Orders: orders}
}

func trimAddress(a *domain.ShippingAddress) {
	a.FullName = strings.TrimSpace(a.FullName)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	a.PhoneNumber = strings.TrimSpace(a.PhoneNumber)
}

// Checkout turns the session cart into an order. Totals are computed from the stored
// cart. The cart is cleared once the order has been placed.
func (s *CheckoutService) Checkout(ctx context.Context, sid, customerID string, in CheckoutInput) (Receipt, error) {
	trimAddress(&in.Shipping)
	if in.Billing != nil {
		trimAddress(in.Billing)
	}
	if err := validate.Struct(in); err != nil {
		return Receipt{}, err
	}

	items, err := s.Cart.Items(ctx, sid)
	if err != nil {
		return Receipt{}, err
	}
	cart := NewCart(items, s.Cart.Policy)
	if cart.ItemCount() == 0 {
		return Receipt{}, ErrEmptyCart
	}

	subtotal := cart.Subtotal()
	shipping := ShippingFor(subtotal)
	total := roundCents(subtotal + shipping)

	addr := in.Shipping
	if !in.BillingSameAsShipping && in.Billing != nil {
		addr = *in.Billing
	}
	pl, err := s.Orders.PlaceOrder(ctx, PlaceOrderInput{
		CustomerID: customerID,
		Items:      cart.Items,
		Total:      total,
		Shipping:   addr,
	})
	if err != nil {
		return Receipt{}, err
	}
	s.Cart.Clear(ctx, sid)

	r := Receipt{Order: pl.Order, Subtotal: subtotal, Shipping: shipping, Total: total}
	if pl.HistoryErr != nil {
		r.Warning = "Your order was placed but could not be saved to your order history."
	}
	return r, nil
}
