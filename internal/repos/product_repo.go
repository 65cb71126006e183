package repos

import (
	"context"
	"fmt"

	"cottoncare/internal/domain"
	"cottoncare/internal/seed"
	"cottoncare/internal/store"
)

type ProductRepo struct {
	col *store.Collection[domain.Product]
}

func NewProductRepo(s *store.Store) *ProductRepo {
	return &ProductRepo{col: store.NewCollection(s, KeyProducts, seed.Products)}
}

// List returns the catalog. A non-nil error is a warning: the list is then the seed.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.col.Load(ctx)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	all, err := r.col.Load(ctx)
	for _, p := range all {
		if p.ID == id {
			return p, true, err
		}
	}
	return domain.Product{}, false, err
}

func (r *ProductRepo) Insert(ctx context.Context, p domain.Product) error {
	_, err := r.col.Update(ctx, func(all []domain.Product) ([]domain.Product, error) {
		for _, x := range all {
			if x.ID == p.ID {
				return nil, fmt.Errorf("%w: %s", ErrDuplicate, p.ID)
			}
		}
		return append(all, p), nil
	})
	return err
}

// Modify applies fn to the product with the given id and saves the result.
func (r *ProductRepo) Modify(ctx context.Context, id string, fn func(*domain.Product) error) (domain.Product, error) {
	var out domain.Product
	_, err := r.col.Update(ctx, func(all []domain.Product) ([]domain.Product, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			p := all[i]
			if err := fn(&p); err != nil {
				return nil, err
			}
			all[i] = p
			out = p
			return all, nil
		}
		return nil, ErrNotFound
	})
	return out, err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.Update(ctx, func(all []domain.Product) ([]domain.Product, error) {
		for i := range all {
			if all[i].ID == id {
				return append(all[:i], all[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	return err
}
