// Package advisor produces disease summaries, treatment plans and planting tips
// with a generative text model.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"cottoncare/internal/domain"
	"cottoncare/internal/validate"
)

var ErrMalformedResponse = errors.New("malformed model response")

// Prompt is one rendered request to the model. Schema describes the JSON object the
// model must answer with.
type Prompt struct {
	Name   string
	Text   string
	Schema *genai.Schema
}

// Generator returns the raw JSON text the model produced for p.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

type SummaryInput struct {
	Disease string `json:"disease" validate:"required"`
}

type SummaryOutput struct {
	Summary string `json:"summary"`
}

type ProductBrief struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type TreatmentInput struct {
	Disease           string         `json:"disease" validate:"required,disease"`
	AvailableProducts []ProductBrief `json:"availableProducts" validate:"dive"`
}

type TreatmentOutput struct {
	TreatmentOptions     string `json:"treatmentOptions"`
	PreventativeMeasures string `json:"preventativeMeasures"`
}

type PlantingTipsInput struct {
	Disease string `json:"disease" validate:"required,eq=Healthy"`
}

type PlantingTipsOutput struct {
	PlantingTips string `json:"plantingTips"`
}

var (
	summaryTmpl = template.Must(template.New("summary").Parse(
		`You are an expert in cotton plant diseases. Summarize the following disease, including its common causes and potential impact on the cotton crop.

Disease: {{.Disease}}
`))

	treatmentTmpl = template.Must(template.New("treatment").Parse(
		`You are an expert in cotton disease management. Given the detected disease and available pesticide products, suggest treatment options and preventative measures.

Disease: {{.Disease}}

Available Products:
{{range .AvailableProducts}}- Name: {{.Name}}
  Description: {{.Description}}
{{else}}(none)
{{end}}
Treatment Options: Summarize treatment options using the available pesticide products.

Preventative Measures: Suggest preventative measures to avoid future outbreaks of the disease.
`))

	tipsTmpl = template.Must(template.New("tips").Parse(
		`You are an expert in cotton plant care. Given that the cotton plant is healthy, provide proactive tips on maintaining its health and preventing diseases.

Disease: {{.Disease}}
`))
)

func objectSchema(fields map[string]string) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
	for name, desc := range fields {
		s.Properties[name] = &genai.Schema{Type: genai.TypeString, Description: desc}
		s.Required = append(s.Required, name)
	}
	sort.Strings(s.Required)
	return s
}

var (
	summarySchema = objectSchema(map[string]string{
		"summary": "A summary of the detected disease, its common causes, and potential impact on the cotton crop.",
	})
	treatmentSchema = objectSchema(map[string]string{
		"treatmentOptions":     "Suggested treatment options for the disease.",
		"preventativeMeasures": "Preventative measures to avoid future outbreaks.",
	})
	tipsSchema = objectSchema(map[string]string{
		"plantingTips": "Tips for maintaining the health of the cotton plant and preventing diseases.",
	})
)

// Advisor runs the three advice flows against a Generator.
type Advisor struct {
	gen Generator
}

func New(gen Generator) *Advisor { return &Advisor{gen: gen} }

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// run renders the prompt, calls the model and decodes its answer into out.
func (a *Advisor) run(ctx context.Context, name string, t *template.Template, schema *genai.Schema, in, out any) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	text, err := render(t, in)
	if err != nil {
		return err
	}
	raw, err := a.gen.Generate(ctx, Prompt{Name: name, Text: text, Schema: schema})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	dec := json.NewDecoder(strings.NewReader(stripFence(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrMalformedResponse, err)
	}
	return nil
}

// stripFence removes a ```json fence some models wrap around JSON output.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func missing(name, field string) error {
	return fmt.Errorf("%s: %w: %s is empty", name, ErrMalformedResponse, field)
}

func (a *Advisor) Summarize(ctx context.Context, in SummaryInput) (SummaryOutput, error) {
	var out SummaryOutput
	if err := a.run(ctx, "summarizeDiseaseInfo", summaryTmpl, summarySchema, in, &out); err != nil {
		return SummaryOutput{}, err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return SummaryOutput{}, missing("summarizeDiseaseInfo", "summary")
	}
	return out, nil
}

func (a *Advisor) SuggestTreatment(ctx context.Context, in TreatmentInput) (TreatmentOutput, error) {
	if in.AvailableProducts == nil {
		in.AvailableProducts = []ProductBrief{}
	}
	var out TreatmentOutput
	if err := a.run(ctx, "suggestTreatmentOptions", treatmentTmpl, treatmentSchema, in, &out); err != nil {
		return TreatmentOutput{}, err
	}
	if strings.TrimSpace(out.TreatmentOptions) == "" {
		return TreatmentOutput{}, missing("suggestTreatmentOptions", "treatmentOptions")
	}
	if strings.TrimSpace(out.PreventativeMeasures) == "" {
		return TreatmentOutput{}, missing("suggestTreatmentOptions", "preventativeMeasures")
	}
	return out, nil
}

func (a *Advisor) PlantingTips(ctx context.Context, in PlantingTipsInput) (PlantingTipsOutput, error) {
	var out PlantingTipsOutput
	if err := a.run(ctx, "generatePlantingTips", tipsTmpl, tipsSchema, in, &out); err != nil {
		return PlantingTipsOutput{}, err
	}
	if strings.TrimSpace(out.PlantingTips) == "" {
		return PlantingTipsOutput{}, missing("generatePlantingTips", "plantingTips")
	}
	return out, nil
}

// Briefs converts catalog products into the treatment prompt's product list.
func Briefs(products []domain.Product) []ProductBrief {
	out := make([]ProductBrief, 0, len(products))
	for _, p := range products {
		out = append(out, ProductBrief{Name: p.Name, Description: p.Description})
	}
	return out
}
