package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cottoncare/internal/advisor"
	"cottoncare/internal/domain"
	"cottoncare/internal/services"
)

type scriptedGen map[string]string

func (s scriptedGen) Generate(_ context.Context, p advisor.Prompt) (string, error) {
	if p.Name == "suggestTreatmentOptions" && !strings.Contains(p.Text, "Neem Oil Spray") {
		return `{"treatmentOptions":"none","preventativeMeasures":"none"}`, nil
	}
	return s[p.Name], nil
}

var replies = scriptedGen{
	"summarizeDiseaseInfo":    `{"summary":"Aphids weaken plants."}`,
	"suggestTreatmentOptions": `{"treatmentOptions":"Use Neem Oil Spray.","preventativeMeasures":"Encourage ladybugs."}`,
	"generatePlantingTips":    `{"plantingTips":"Keep watering even."}`,
}

func TestAdviceForDisease(t *testing.T) {
	e := newEnv(t)
	svc := services.NewAdviceService(advisor.New(replies), e.catalog)

	a, err := svc.ForDisease(context.Background(), domain.Aphids)
	require.NoError(t, err)
	assert.Equal(t, "Aphids weaken plants.", a.Summary)
	assert.Equal(t, "Use Neem Oil Spray.", a.TreatmentOptions)
	assert.Equal(t, "Encourage ladybugs.", a.PreventativeMeasures)
	assert.Empty(t, a.PlantingTips)
	assert.Len(t, a.Products, 2)
}

func TestAdviceForHealthyPlant(t *testing.T) {
	e := newEnv(t)
	svc := services.NewAdviceService(advisor.New(replies), e.catalog)

	a, err := svc.ForDisease(context.Background(), domain.Healthy)
	require.NoError(t, err)
	assert.Equal(t, "Keep watering even.", a.PlantingTips)
	assert.Empty(t, a.Summary)
	assert.Empty(t, a.Products)
}

func TestAdviceFailsWhenAFlowFails(t *testing.T) {
	e := newEnv(t)
	broken := scriptedGen{
		"summarizeDiseaseInfo":    `not json`,
		"suggestTreatmentOptions": replies["suggestTreatmentOptions"],
	}
	_, err := services.NewAdviceService(advisor.New(broken), e.catalog).ForDisease(context.Background(), domain.Aphids)
	assert.ErrorIs(t, err, advisor.ErrMalformedResponse)
}
