package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/cost"
	"github.com/rs/zerolog/log"
)

const composeSystem = `Je bent een briljante social media copywriter voor een luxe veilinghuis. Schrijf boeiende, emotionele posts die het object tot leven brengen. Gebruik de toon en structuur van de succesvolle voorbeelden.`

const composePrompt = `Schrijf een social media post voor dit veilingkavel. PRIORITEIT: FEITEN EERST, subtiele verhalen tweede.

**ONDERZOEKSDATA:**
- **Historisch:** %s
- **Cultureel:** %s
- **Vakmanschap:** %s
- **Visueel:** %s
- **Lifestyle:** %s
- **Marktwaarde:** %s

**KAVEL INFO:**
- **Titel:** %s
- **Veiling:** %s

**STRICTE SCHRIJFREGELS:**
1. **START MET FEITEN** - Begin met het concrete object: wat het is, maker, periode
2. **VISUELE BESCHRIJVING** - Gebruik ALLEEN de visuele analyse, geen verzonnen details
3. **HISTORISCHE CONTEXT** - Een feitelijke zin over maker/periode/belang
4. **SUBTIELE LIFESTYLE** - Hoe het object nu gebruikt kan worden (factual, niet poëtisch)
5. **DIRECTE CALL TO ACTION** - Simpel en helder
6. **PRAKTISCHE VRAAG** - Over gebruik of interesse, geen metaforen

**VERBODEN:**
- Poëtische metaforen ("danst", "fluistert", "vertelt verhalen")
- Verzonnen geschiedenis ("Gouden Eeuw", "verre reizen")
- Overdreven emotie ("glorie", "meesterwerk", "juweel")
- Tijd-reizen fantasieën ("tijdmachine", "geheimen")

**TOEGESTAAN:**
- Feitelijke beschrijvingen van het object
- Historische feiten over maker/periode
- Praktische moderne toepassingen
- Subtiele waardering voor vakmanschap

**TOON:** Informatief, respectvol enthousiast, gebaseerd op feiten.
**LENGTE:** 2-3 paragrafen, direct en helder.`

// Composer turns a research context into final post prose via a second
// completion call.
type Composer struct {
	completer Completer
	tracker   *cost.Tracker
	model     string
}

func NewComposer(completer Completer, tracker *cost.Tracker) *Composer {
	return &Composer{
		completer: completer,
		tracker:   tracker,
		model:     DefaultModel,
	}
}

// WithModel overrides the composition model.
func (c *Composer) WithModel(model string) *Composer {
	c.model = model
	return c
}

// ComposePost generates the final post text. On failure it returns a
// minimal factual line so the pipeline still completes.
func (c *Composer) ComposePost(ctx context.Context, research *Context, lot artisio.Lot, auction artisio.Auction) string {
	visual := research.VisualAnalysis
	if research.SupplementarySummary != "" {
		visual = visual + " " + research.SupplementarySummary
	}

	req := Request{
		Model:  c.model,
		System: composeSystem,
		Prompt: fmt.Sprintf(composePrompt,
			research.HistoricalSignificance,
			research.CulturalContext,
			research.Craftsmanship,
			visual,
			research.LifestyleScenario,
			research.MarketPotential,
			lot.Title,
			auction.Title,
		),
		MaxTokens:   1200,
		Temperature: 0.6,
	}

	completion, err := c.completer.Complete(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("lot", lot.LotID).Msg("post composition failed")
		return fmt.Sprintf("Ontdek dit bijzondere stuk: %s in onze '%s' veiling.", lot.Title, auction.Title)
	}
	c.tracker.Record(c.model, completion.InputTokens, completion.OutputTokens, "compose")

	return strings.TrimSpace(completion.Text)
}
