package repos

import (
	"context"

	"cottoncare/internal/domain"
	"cottoncare/internal/seed"
	"cottoncare/internal/store"
)

// OrderRepo keeps the order history most-recent-first.
type OrderRepo struct {
	col *store.Collection[domain.Order]
}

func NewOrderRepo(s *store.Store) *OrderRepo {
	return &OrderRepo{col: store.NewCollection(s, KeyOrders, seed.Orders)}
}

// Prepend records o ahead of every existing order.
func (r *OrderRepo) Prepend(ctx context.Context, o domain.Order) error {
	_, err := r.col.Update(ctx, func(all []domain.Order) ([]domain.Order, error) {
		return append([]domain.Order{o}, all...), nil
	})
	return err
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	all, err := r.col.Load(ctx)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, err
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	all, err := r.col.Load(ctx)
	out := []domain.Order{}
	for _, o := range all {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, err
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, bool, error) {
	all, err := r.col.Load(ctx)
	for _, o := range all {
		if o.ID == id {
			return o, true, err
		}
	}
	return domain.Order{}, false, err
}

// Modify applies fn to the order with the given id; fn may refuse by returning an error.
func (r *OrderRepo) Modify(ctx context.Context, id string, fn func(*domain.Order) error) (domain.Order, error) {
	var out domain.Order
	_, err := r.col.Update(ctx, func(all []domain.Order) ([]domain.Order, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			if err := fn(&all[i]); err != nil {
				return nil, err
			}
			out = all[i]
			return all, nil
		}
		return nil, ErrNotFound
	})
	return out, err
}
