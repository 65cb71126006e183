package repos

import (
	"context"

	"cottoncare/internal/domain"
	"cottoncare/internal/store"
)

// CartRepo stores one cart per session id.
type CartRepo struct{ s *store.Store }

func NewCartRepo(s *store.Store) *CartRepo { return &CartRepo{s: s} }

func (r *CartRepo) col(sid string) *store.Collection[domain.CartLineItem] {
	return store.NewCollection[domain.CartLineItem](r.s, cartKeyPrefix+sid, nil)
}

func (r *CartRepo) Load(ctx context.Context, sid string) ([]domain.CartLineItem, error) {
	return r.col(sid).Load(ctx)
}

func (r *CartRepo) Update(ctx context.Context, sid string, fn func([]domain.CartLineItem) ([]domain.CartLineItem, error)) ([]domain.CartLineItem, error) {
	return r.col(sid).Update(ctx, fn)
}

// Clear drops the stored cart for sid.
func (r *CartRepo) Clear(ctx context.Context, sid string) error {
	return r.col(sid).Drop(ctx)
}
