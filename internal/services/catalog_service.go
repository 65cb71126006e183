package services

import (
	"context"
	"errors"
	"strings"

	"cottoncare/internal/domain"
	"cottoncare/internal/repos"
	"cottoncare/internal/validate"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// ProductInput is the admin create form.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"required,min=5"`
	Price       float64  `json:"price" validate:"gt=0"`
	Images      []string `json:"images" validate:"min=1,dive,required,url"`
	SuitableFor []string `json:"suitableFor" validate:"dive,disease"`
	Category    string   `json:"category" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

// ProductPatch carries only the fields to change.
type ProductPatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Images      *[]string `json:"images"`
	SuitableFor *[]string `json:"suitableFor"`
	Category    *string   `json:"category"`
	Stock       *int      `json:"stock"`
}

func inputOf(p domain.Product) ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		SuitableFor: p.SuitableFor,
		Category:    p.Category,
		Stock:       p.Stock,
	}
}

// List returns products tagged with the given disease. An empty tag, or a tag that
// matches nothing, yields the whole catalog.
func (s *CatalogService) List(ctx context.Context, tag string) []domain.Product {
	all, _ := s.Prods.List(ctx) // the store has already logged; all is the seed on failure
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return all
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.SuitableForTag(tag) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}

// Recommend lists the products suited to a detected disease.
func (s *CatalogService) Recommend(ctx context.Context, d domain.Disease) []domain.Product {
	return s.List(ctx, string(d))
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Product, bool) {
	p, ok, _ := s.Prods.Get(ctx, id)
	return p, ok
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, err
	}
	if in.SuitableFor == nil {
		in.SuitableFor = []string{}
	}
	p := domain.Product{
		ID:          newProductID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		SuitableFor: in.SuitableFor,
		Category:    in.Category,
		Stock:       in.Stock,
	}
	if err := s.Prods.Insert(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update applies a partial change. The merged product must still be valid.
func (s *CatalogService) Update(ctx context.Context, id string, patch ProductPatch) (domain.Product, bool, error) {
	p, err := s.Prods.Modify(ctx, id, func(p *domain.Product) error {
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Images != nil {
			p.Images = *patch.Images
		}
		if patch.SuitableFor != nil {
			p.SuitableFor = *patch.SuitableFor
		}
		if patch.Category != nil {
			p.Category = strings.TrimSpace(*patch.Category)
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		return validate.Struct(inputOf(*p))
	})
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, true, err
	}
	return p, true, nil
}

// Delete removes a product. Carts and orders that reference it are left alone.
func (s *CatalogService) Delete(ctx context.Context, id string) (bool, error) {
	err := s.Prods.Delete(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
