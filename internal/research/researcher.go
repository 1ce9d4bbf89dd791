package research

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/cost"
	"github.com/Luminc/iris/internal/images"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultModel runs the primary research and composition calls.
	DefaultModel = cost.ModelFlash
	// LiteModel runs the cheap supplementary-image summary.
	LiteModel = cost.ModelLite
)

const researchSystem = `Je bent een expert veilingspecialist die boeiende social media content creëert. Focus op visuele details, verhalen en lifestyle aspecten die het object tot leven brengen.`

const visionInstruction = `ANALYSEER DE AFBEELDING ZEER GEDETAILLEERD:
- Welke SPECIFIEKE kleuren, materialen en texturen zie je?
- Wat is de staat van het object (nieuw, vintage, slijtage, patina)?
- Welke stijlkenmerken zijn zichtbaar (vormen, decoraties, proporties)?
- Hoe zou dit object er in een moderne woonruimte uitzien?
- Welke emotie of sfeer roept de afbeelding op?`

const gridInstruction = `De afbeelding is een raster van %d foto's van hetzelfde object vanuit verschillende hoeken. Gebruik alle foto's samen voor een compleet beeld van staat, materialen en details.`

const noImageInstruction = `Geen afbeelding beschikbaar - focus op tekstuele beschrijving.`

const researchPrompt = `Voer diepgaand onderzoek uit naar dit veilingkavel voor een SOCIAL MEDIA POST.

**KAVELGEGEVENS:**
- **Titel:** %s
- **Omschrijving:** %s

**VISUELE ANALYSE INSTRUCTIE:**
%s

**ONDERZOEKSTAKEN:**
Creëer een **perfect valide JSON-object** met deze Nederlandse sleutels:

- ` + "`historische_significantie`" + `: De historische achtergrond, periode, maker/ontwerper (max 2 zinnen)
- ` + "`culturele_context`" + `: Maatschappelijke context en gebruik in die tijd (max 2 zinnen)
- ` + "`vakmanschap_details`" + `: Specifieke materialen, technieken, kwaliteitsindicatoren (max 2 zinnen)
- ` + "`marktpotentieel`" + `: Waarom dit nu interessant is voor verzamelaars (max 2 zinnen)
- ` + "`visuele_analyse`" + `: ZEER GEDETAILLEERD wat je in de afbeelding ziet - kleuren, staat, sfeer, details (max 3 zinnen)
- ` + "`storytelling_hooks`" + `: Array van 2-3 boeiende verhaallijnen/anekdotes over dit object
- ` + "`lifestyle_scenario`" + `: Hoe zou een moderne eigenaar dit object gebruiken/presenteren? (max 2 zinnen)

Focus op SPECIFIEKE, VISUELE en EMOTIONELE details die perfect zijn voor social media.`

const supplementaryPrompt = `Dit zijn extra foto's van hetzelfde veilingkavel: %s.
Beschrijf in maximaal 3 zinnen welke AANVULLENDE details deze foto's tonen (achterzijde, merktekens, beschadigingen, accessoires). Alleen platte tekst, geen JSON.`

// Researcher issues the vision research call and parses its structured
// result. Usage of every billed call is appended to the tracker.
type Researcher struct {
	completer Completer
	tracker   *cost.Tracker
	model     string
	liteModel string
}

func NewResearcher(completer Completer, tracker *cost.Tracker) *Researcher {
	return &Researcher{
		completer: completer,
		tracker:   tracker,
		model:     DefaultModel,
		liteModel: LiteModel,
	}
}

// WithModel overrides the primary research model.
func (r *Researcher) WithModel(model string) *Researcher {
	r.model = model
	return r
}

// Research runs one billed research call over the lot metadata and the
// aggregated payload (nil for text-only research). It always returns a
// usable context: transport failures and malformed replies degrade to
// sentinel values instead of aborting the pipeline.
func (r *Researcher) Research(ctx context.Context, lot artisio.Lot, payload *images.Payload) *Context {
	instruction := noImageInstruction
	var imgs []InlineImage
	if payload != nil {
		instruction = visionInstruction
		if payload.SourceCount > 1 {
			instruction = fmt.Sprintf(gridInstruction, payload.SourceCount) + "\n\n" + visionInstruction
		}
		imgs = []InlineImage{{MIMEType: payload.MIMEType, Data: payload.Data}}
	}

	req := Request{
		Model:       r.model,
		System:      researchSystem,
		Prompt:      fmt.Sprintf(researchPrompt, lot.Title, lot.Description, instruction),
		Images:      imgs,
		MaxTokens:   2500,
		Temperature: 0.4,
	}

	completion, err := r.completer.Complete(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("lot", lot.LotID).Msg("research call failed")
		return FallbackContext()
	}
	r.tracker.Record(r.model, completion.InputTokens, completion.OutputTokens, "research")

	return parseContext(completion.Text)
}

// SummarizeSupplementary runs one lightweight call over extra persisted
// photos that were not part of the billed primary payload. Failures
// degrade to an empty summary.
func (r *Researcher) SummarizeSupplementary(ctx context.Context, lot artisio.Lot, extraPaths []string) string {
	if len(extraPaths) == 0 {
		return ""
	}

	var imgs []InlineImage
	for _, path := range extraPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to read saved image")
			continue
		}
		imgs = append(imgs, InlineImage{MIMEType: "image/jpeg", Data: data})
	}
	if len(imgs) == 0 {
		return ""
	}

	req := Request{
		Model:       r.liteModel,
		Prompt:      fmt.Sprintf(supplementaryPrompt, lot.Title),
		Images:      imgs,
		MaxTokens:   400,
		Temperature: 0.3,
	}

	completion, err := r.completer.Complete(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("lot", lot.LotID).Msg("supplementary summary failed")
		return ""
	}
	r.tracker.Record(r.liteModel, completion.InputTokens, completion.OutputTokens, "supplementary")

	return strings.TrimSpace(completion.Text)
}
