package advisor_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"cottoncare/internal/advisor"
	"cottoncare/internal/validate"
)

type fakeGen struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	prompts []advisor.Prompt
}

func (f *fakeGen) Generate(_ context.Context, p advisor.Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	if f.err != nil {
		return "", f.err
	}
	return f.replies[p.Name], nil
}

func TestSummarize(t *testing.T) {
	gen := &fakeGen{replies: map[string]string{
		"summarizeDiseaseInfo": `{"summary":"Aphids are sap-sucking insects."}`,
	}}
	out, err := advisor.New(gen).Summarize(context.Background(), advisor.SummaryInput{Disease: "Aphids"})
	require.NoError(t, err)
	assert.Equal(t, "Aphids are sap-sucking insects.", out.Summary)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0].Text, "Disease: Aphids")
	assert.Equal(t, []string{"summary"}, gen.prompts[0].Schema.Required)
}

func TestSummarizeRejectsEmptyDisease(t *testing.T) {
	gen := &fakeGen{}
	_, err := advisor.New(gen).Summarize(context.Background(), advisor.SummaryInput{})
	var fe validate.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "disease")
	assert.Empty(t, gen.prompts, "no call on invalid input")
}

func TestSuggestTreatmentListsProducts(t *testing.T) {
	gen := &fakeGen{replies: map[string]string{
		"suggestTreatmentOptions": "```json\n{\"treatmentOptions\":\"Spray neem oil.\",\"preventativeMeasures\":\"Scout weekly.\"}\n```",
	}}
	out, err := advisor.New(gen).SuggestTreatment(context.Background(), advisor.TreatmentInput{
		Disease:           "Aphids",
		AvailableProducts: []advisor.ProductBrief{{Name: "Neem Oil Spray", Description: "Organic insecticide"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Spray neem oil.", out.TreatmentOptions)
	assert.Equal(t, "Scout weekly.", out.PreventativeMeasures)
	assert.Contains(t, gen.prompts[0].Text, "- Name: Neem Oil Spray")
}

func TestSuggestTreatmentRejectsUnknownLabel(t *testing.T) {
	_, err := advisor.New(&fakeGen{}).SuggestTreatment(context.Background(), advisor.TreatmentInput{Disease: "Rust"})
	assert.Error(t, err)
}

func TestMalformedResponses(t *testing.T) {
	cases := map[string]string{
		"not json":      "Aphids are bad",
		"unknown shape": `{"summary":"x","extra":1}`,
		"empty field":   `{"summary":"  "}`,
		"wrong type":    `{"summary":42}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGen{replies: map[string]string{"summarizeDiseaseInfo": reply}}
			_, err := advisor.New(gen).Summarize(context.Background(), advisor.SummaryInput{Disease: "Aphids"})
			assert.ErrorIs(t, err, advisor.ErrMalformedResponse)
		})
	}
}

func TestPlantingTipsOnlyForHealthy(t *testing.T) {
	gen := &fakeGen{replies: map[string]string{"generatePlantingTips": `{"plantingTips":"Rotate crops."}`}}
	a := advisor.New(gen)

	_, err := a.PlantingTips(context.Background(), advisor.PlantingTipsInput{Disease: "Aphids"})
	assert.Error(t, err)

	out, err := a.PlantingTips(context.Background(), advisor.PlantingTipsInput{Disease: "Healthy"})
	require.NoError(t, err)
	assert.Equal(t, "Rotate crops.", out.PlantingTips)
}

func TestGeneratorErrorIsWrapped(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := advisor.New(&fakeGen{err: boom}).Summarize(context.Background(), advisor.SummaryInput{Disease: "Aphids"})
	assert.ErrorIs(t, err, boom)
}

func TestGenAIAgainstFakeEndpoint(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b := new(strings.Builder)
		_, _ = io.Copy(b, r.Body)
		gotBody = b.String()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"summary\":\"Target spot is fungal.\"}"}]}}]}`))
	}))
	defer srv.Close()

	g, err := advisor.NewGenAI(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	}, "gemini-2.0-flash", 0)
	require.NoError(t, err)

	out, err := advisor.New(g).Summarize(context.Background(), advisor.SummaryInput{Disease: "Target spot"})
	require.NoError(t, err)
	assert.Equal(t, "Target spot is fungal.", out.Summary)
	assert.Contains(t, gotPath, "gemini-2.0-flash:generateContent")
	assert.Contains(t, gotBody, "application/json")
}

func TestNewGenAIRequiresKey(t *testing.T) {
	_, err := advisor.NewGenAI(context.Background(), &genai.ClientConfig{}, "", 0)
	assert.Error(t, err)
}
