package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cottoncare/internal/advisor"
	"cottoncare/internal/domain"
)

// Advice is everything the results page shows for one detected disease.
type Advice struct {
	Disease              domain.Disease   `json:"disease"`
	Summary              string           `json:"summary,omitempty"`
	TreatmentOptions     string           `json:"treatmentOptions,omitempty"`
	PreventativeMeasures string           `json:"preventativeMeasures,omitempty"`
	PlantingTips         string           `json:"plantingTips,omitempty"`
	Products             []domain.Product `json:"products"`
}

type AdviceService struct {
	Advisor *advisor.Advisor
	Catalog *CatalogService
}

func NewAdviceService(a *advisor.Advisor, catalog *CatalogService) *AdviceService {
	return &AdviceService{Advisor: a, Catalog: catalog}
}

// ForDisease returns planting tips for a healthy plant, otherwise a summary and a
// treatment plan built around the recommended products. The two calls run concurrently.
func (s *AdviceService) ForDisease(ctx context.Context, d domain.Disease) (Advice, error) {
	out := Advice{Disease: d, Products: []domain.Product{}}
	if d == domain.Healthy {
		tips, err := s.Advisor.PlantingTips(ctx, advisor.PlantingTipsInput{Disease: string(d)})
		if err != nil {
			return Advice{}, err
		}
		out.PlantingTips = tips.PlantingTips
		return out, nil
	}

	out.Products = s.Catalog.Recommend(ctx, d)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.Advisor.Summarize(gctx, advisor.SummaryInput{Disease: string(d)})
		out.Summary = sum.Summary
		return err
	})
	g.Go(func() error {
		tr, err := s.Advisor.SuggestTreatment(gctx, advisor.TreatmentInput{
			Disease:           string(d),
			AvailableProducts: advisor.Briefs(out.Products),
		})
		out.TreatmentOptions = tr.TreatmentOptions
		out.PreventativeMeasures = tr.PreventativeMeasures
		return err
	})
	if err := g.Wait(); err != nil {
		return Advice{}, err
	}
	return out, nil
}
