package services

import (
	"context"
	"errors"
	"math"
	"time"

	"cottoncare/internal/domain"
	"cottoncare/internal/repos"
)

const (
	unknownProductName  = "Unknown Product"
	unknownProductImage = "https://placehold.co/100x100.png"
)

var ErrNoItems = errors.New("order has no items")

type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
	Now    func() time.Time
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo) *OrderService {
	return &OrderService{Orders: orders, Prods: prods, Now: time.Now}
}

type PlaceOrderInput struct {
	CustomerID string
	Items      []domain.CartLineItem
	Total      float64
	Shipping   domain.ShippingAddress
}

// Placement is the result of PlaceOrder. HistoryErr is set when the order was built
// but could not be recorded; the order itself is still valid.
type Placement struct {
	Order      domain.Order
	HistoryErr error
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }

// PlaceOrder snapshots the items, assigns an id and records the order at the head of
// the history.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (Placement, error) {
	if len(in.Items) == 0 {
		return Placement{}, ErrNoItems
	}
	catalog, _ := s.Prods.List(ctx)
	byID := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		oi := domain.OrderItem{
			ProductID: it.ProductID,
			Name:      unknownProductName,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     unknownProductImage,
		}
		if p, ok := byID[it.ProductID]; ok {
			oi.Name = p.Name
			if img := p.FirstImage(); img != "" {
				oi.Image = img
			}
		}
		items = append(items, oi)
	}

	o := domain.Order{
		ID:              newOrderID(),
		OrderDate:       s.Now().UTC(),
		Status:          domain.StatusProcessing,
		Total:           roundCents(in.Total),
		Items:           items,
		ShippingAddress: in.Shipping,
		CustomerID:      in.CustomerID,
	}
	return Placement{Order: o, HistoryErr: s.Orders.Prepend(ctx, o)}, nil
}

// ListAll returns every order, most recent first.
func (s *OrderService) ListAll(ctx context.Context) []domain.Order {
	all, _ := s.Orders.ListLatest(ctx, 0)
	return all
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID string) []domain.Order {
	out, _ := s.Orders.ListByCustomer(ctx, customerID)
	return out
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, bool) {
	o, ok, _ := s.Orders.Get(ctx, id)
	return o, ok
}

// UpdateStatus moves an order along Processing -> Shipped -> Delivered, with
// cancellation allowed before delivery.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus) (domain.Order, bool, error) {
	o, err := s.Orders.Modify(ctx, id, func(o *domain.Order) error {
		if err := o.Status.Transition(next); err != nil {
			return err
		}
		o.Status = next
		return nil
	})
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, true, err
	}
	return o, true, nil
}
