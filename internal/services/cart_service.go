package services

import (
	"context"
	"errors"

	"cottoncare/internal/domain"
	"cottoncare/internal/repos"
)

var ErrProductNotFound = errors.New("product not found")

// CartService binds a Cart to a session id and writes every change through to the store.
type CartService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Policy StockPolicy
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, policy StockPolicy) *CartService {
	return &CartService{Carts: carts, Prods: prods, Policy: policy}
}

// CartView is what the cart endpoints answer with. Loading is true when the stored
// cart could not be read and Items is a placeholder rather than the session's cart.
type CartView struct {
	Items     []domain.CartLineItem `json:"items"`
	Subtotal  float64               `json:"subtotal"`
	ItemCount int                   `json:"itemCount"`
	Loading   bool                  `json:"loading"`
	Notices   []Notice              `json:"notices,omitempty"`
}

func (s *CartService) view(c *Cart, loading bool, notices ...*Notice) CartView {
	v := CartView{Items: c.Items, Subtotal: c.Subtotal(), ItemCount: c.ItemCount(), Loading: loading}
	for _, n := range notices {
		if n != nil {
			v.Notices = append(v.Notices, *n)
		}
	}
	return v
}

var saveFailed = &Notice{
	Kind:    NoticeSaveFailed,
	Title:   "Cart not saved",
	Message: "Your cart could not be saved. Changes may be lost if you leave this page.",
	Warning: true,
}

func (s *CartService) View(ctx context.Context, sid string) CartView {
	items, err := s.Carts.Load(ctx, sid)
	return s.view(NewCart(items, s.Policy), err != nil)
}

// Items returns the stored lines for sid.
func (s *CartService) Items(ctx context.Context, sid string) ([]domain.CartLineItem, error) {
	return s.Carts.Load(ctx, sid)
}

// mutate loads, applies op and saves. A failed load or save leaves a save_failed notice.
func (s *CartService) mutate(ctx context.Context, sid string, op func(*Cart) *Notice) CartView {
	var (
		applied *Cart
		notice  *Notice
	)
	items, err := s.Carts.Update(ctx, sid, func(cur []domain.CartLineItem) ([]domain.CartLineItem, error) {
		applied = NewCart(cur, s.Policy)
		notice = op(applied)
		return applied.Items, nil
	})
	if applied == nil {
		// load failed, nothing was applied
		return s.view(NewCart(items, s.Policy), true, saveFailed)
	}
	if err != nil {
		return s.view(applied, false, notice, saveFailed)
	}
	return s.view(applied, false, notice)
}

// Add puts qty units of the product in the cart.
func (s *CartService) Add(ctx context.Context, sid, productID string, qty int) (CartView, error) {
	p, ok, _ := s.Prods.Get(ctx, productID)
	if !ok {
		return CartView{}, ErrProductNotFound
	}
	return s.mutate(ctx, sid, func(c *Cart) *Notice { return c.AddItem(p, qty) }), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sid, productID string, n int) CartView {
	return s.mutate(ctx, sid, func(c *Cart) *Notice { return c.UpdateQuantity(productID, n) })
}

func (s *CartService) Remove(ctx context.Context, sid, productID string) CartView {
	return s.mutate(ctx, sid, func(c *Cart) *Notice { return c.RemoveItem(productID) })
}

func (s *CartService) Clear(ctx context.Context, sid string) CartView {
	return s.mutate(ctx, sid, func(c *Cart) *Notice { return c.Clear() })
}
