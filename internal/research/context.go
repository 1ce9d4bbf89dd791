package research

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sentinel values for fields the model failed to deliver. The pipeline
// never aborts because the model's narrative text failed to parse.
const (
	Unavailable          = "N/A"
	UnavailableVisual    = "Geen visuele analyse beschikbaar"
	FailedVisualSentinel = "Analyse mislukt."
)

// Context is the structured research result for one lot.
type Context struct {
	HistoricalSignificance string   `json:"historische_significantie"`
	CulturalContext        string   `json:"culturele_context"`
	Craftsmanship          string   `json:"vakmanschap_details"`
	MarketPotential        string   `json:"marktpotentieel"`
	VisualAnalysis         string   `json:"visuele_analyse"`
	StorytellingHooks      []string `json:"storytelling_hooks"`
	LifestyleScenario      string   `json:"lifestyle_scenario"`
	// SupplementarySummary is filled by the optional second call over
	// non-grid extra images; empty otherwise.
	SupplementarySummary string `json:"-"`
}

// FallbackContext is returned when the research call failed outright.
func FallbackContext() *Context {
	return &Context{
		HistoricalSignificance: Unavailable,
		CulturalContext:        Unavailable,
		Craftsmanship:          Unavailable,
		MarketPotential:        Unavailable,
		VisualAnalysis:         FailedVisualSentinel,
		StorytellingHooks:      []string{},
		LifestyleScenario:      Unavailable,
	}
}

// extractJSONObject extracts a JSON object from text that may contain
// markdown code blocks or other formatting.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return text[start : end+1], nil
}

// parseContext scans free text for the first brace-delimited block and
// decodes it. Missing fields fall back to sentinels; unparseable text
// yields the full fallback context.
func parseContext(text string) *Context {
	jsonStr, err := extractJSONObject(text)
	if err != nil {
		return FallbackContext()
	}

	var c Context
	if err := json.Unmarshal([]byte(jsonStr), &c); err != nil {
		return FallbackContext()
	}

	if c.HistoricalSignificance == "" {
		c.HistoricalSignificance = Unavailable
	}
	if c.CulturalContext == "" {
		c.CulturalContext = Unavailable
	}
	if c.Craftsmanship == "" {
		c.Craftsmanship = Unavailable
	}
	if c.MarketPotential == "" {
		c.MarketPotential = Unavailable
	}
	if c.VisualAnalysis == "" {
		c.VisualAnalysis = UnavailableVisual
	}
	if c.StorytellingHooks == nil {
		c.StorytellingHooks = []string{}
	}
	if c.LifestyleScenario == "" {
		c.LifestyleScenario = Unavailable
	}
	return &c
}
