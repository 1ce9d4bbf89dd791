package cost

// Pricing holds per-model unit costs in USD per million tokens.
type Pricing struct {
	Name             string
	InputPerMillion  float64
	OutputPerMillion float64
}

// Model identifiers used by the research pipeline.
const (
	ModelFlash = "gemini-3-flash-preview"
	ModelLite  = "gemini-2.5-flash-lite"
	ModelPro   = "gemini-2.5-pro"
)

// DefaultModel is the pricing entry unknown models fall back to. Cost
// reporting is best-effort; an unknown model must never abort a run.
const DefaultModel = ModelFlash

// pricingTable is static and read-only.
var pricingTable = map[string]Pricing{
	ModelFlash: {Name: "Gemini 3 Flash", InputPerMillion: 0.50, OutputPerMillion: 3.00},
	ModelLite:  {Name: "Gemini 2.5 Flash Lite", InputPerMillion: 0.075, OutputPerMillion: 0.30},
	ModelPro:   {Name: "Gemini 2.5 Pro", InputPerMillion: 1.25, OutputPerMillion: 10.00},
}

// Models lists the known model identifiers in table order for reports.
var Models = []string{ModelLite, ModelFlash, ModelPro}

// PricingFor returns the pricing entry for a model, falling back to the
// default entry for unknown identifiers.
func PricingFor(model string) Pricing {
	if p, ok := pricingTable[model]; ok {
		return p
	}
	return pricingTable[DefaultModel]
}

// Estimate converts token counts into a monetary estimate. Pure function;
// no rounding is applied (formatting is a presentation concern).
func Estimate(model string, inputTokens, outputTokens int64) float64 {
	p := PricingFor(model)
	inputCost := float64(inputTokens) / 1_000_000 * p.InputPerMillion
	outputCost := float64(outputTokens) / 1_000_000 * p.OutputPerMillion
	return inputCost + outputCost
}
