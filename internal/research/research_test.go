package research

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/cost"
	"github.com/Luminc/iris/internal/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter returns canned completions and captures requests.
type fakeCompleter struct {
	completion *Completion
	err        error
	requests   []Request
}

func (f *fakeCompleter) Complete(_ context.Context, req Request) (*Completion, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.completion, nil
}

var testLot = artisio.Lot{
	LotID:       "lot-1",
	Title:       "Art Deco wandlamp",
	Description: "Messing wandlamp, jaren '20",
}

const researchReply = `Hier is het onderzoek:
{
  "historische_significantie": "Frans ontwerp uit de jaren '20.",
  "culturele_context": "Art Deco was de stijl van het interbellum.",
  "vakmanschap_details": "Gegoten messing met melkglazen kap.",
  "marktpotentieel": "Art Deco verlichting is gewild.",
  "visuele_analyse": "Warm gepatineerd messing, gave kap.",
  "storytelling_hooks": ["Parijs 1925", "Het licht van het interbellum"],
  "lifestyle_scenario": "Sfeerverlichting boven een leeshoek."
}`

func TestResearchParsesStructuredReply(t *testing.T) {
	fake := &fakeCompleter{completion: &Completion{Text: researchReply, InputTokens: 2400, OutputTokens: 700}}
	tracker := cost.NewTracker()
	r := NewResearcher(fake, tracker)

	got := r.Research(context.Background(), testLot, &images.Payload{
		Data: []byte("jpeg"), MIMEType: "image/jpeg", SourceCount: 4, Cols: 2, Rows: 2,
	})

	assert.Equal(t, "Frans ontwerp uit de jaren '20.", got.HistoricalSignificance)
	assert.Equal(t, []string{"Parijs 1925", "Het licht van het interbellum"}, got.StorytellingHooks)

	// The image travelled with the request and the grid instruction was used.
	require.Len(t, fake.requests, 1)
	require.Len(t, fake.requests[0].Images, 1)
	assert.Contains(t, fake.requests[0].Prompt, "raster van 4 foto's")
	assert.Contains(t, fake.requests[0].Prompt, "Art Deco wandlamp")

	// The billed call was recorded.
	require.Len(t, tracker.Records(), 1)
	assert.Equal(t, "research", tracker.Records()[0].Phase)
	assert.Equal(t, cost.Estimate(DefaultModel, 2400, 700), tracker.SessionTotal())
}

func TestResearchTextOnlyWithoutPayload(t *testing.T) {
	fake := &fakeCompleter{completion: &Completion{Text: researchReply}}
	r := NewResearcher(fake, cost.NewTracker())

	r.Research(context.Background(), testLot, nil)

	require.Len(t, fake.requests, 1)
	assert.Empty(t, fake.requests[0].Images)
	assert.Contains(t, fake.requests[0].Prompt, noImageInstruction)
}

func TestResearchFallsBackOnTransportError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}
	tracker := cost.NewTracker()
	r := NewResearcher(fake, tracker)

	got := r.Research(context.Background(), testLot, nil)

	assert.Equal(t, FallbackContext(), got)
	assert.Empty(t, tracker.Records(), "failed calls are not billed")
}

func TestParseContext(t *testing.T) {
	tests := []struct {
		name string
		text string
		want func(*testing.T, *Context)
	}{
		{
			name: "no json at all",
			text: "Sorry, ik kan dit niet analyseren.",
			want: func(t *testing.T, c *Context) {
				assert.Equal(t, FallbackContext(), c)
			},
		},
		{
			name: "malformed json",
			text: `{"historische_significantie": }`,
			want: func(t *testing.T, c *Context) {
				assert.Equal(t, FallbackContext(), c)
			},
		},
		{
			name: "partial fields get sentinels",
			text: `{"visuele_analyse": "Blauw porselein met craquelé."}`,
			want: func(t *testing.T, c *Context) {
				assert.Equal(t, "Blauw porselein met craquelé.", c.VisualAnalysis)
				assert.Equal(t, Unavailable, c.HistoricalSignificance)
				assert.Equal(t, Unavailable, c.LifestyleScenario)
				assert.Equal(t, []string{}, c.StorytellingHooks)
			},
		},
		{
			name: "json wrapped in markdown",
			text: "```json\n{\"culturele_context\": \"Hollands glaswerk.\"}\n```",
			want: func(t *testing.T, c *Context) {
				assert.Equal(t, "Hollands glaswerk.", c.CulturalContext)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, parseContext(tt.text))
		})
	}
}

func TestComposePost(t *testing.T) {
	fake := &fakeCompleter{completion: &Completion{Text: "  Een bijzondere wandlamp.  ", InputTokens: 1500, OutputTokens: 400}}
	tracker := cost.NewTracker()
	c := NewComposer(fake, tracker)

	auction := artisio.Auction{Title: "Design & Verlichting"}
	post := c.ComposePost(context.Background(), FallbackContext(), testLot, auction)

	assert.Equal(t, "Een bijzondere wandlamp.", post)
	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.requests[0].Prompt, "Design & Verlichting")
	require.Len(t, tracker.Records(), 1)
	assert.Equal(t, "compose", tracker.Records()[0].Phase)
}

func TestComposePostFallbackLine(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("quota exceeded")}
	c := NewComposer(fake, cost.NewTracker())

	post := c.ComposePost(context.Background(), FallbackContext(), testLot, artisio.Auction{Title: "Kunst & Antiek"})
	assert.Equal(t, "Ontdek dit bijzondere stuk: Art Deco wandlamp in onze 'Kunst & Antiek' veiling.", post)
}

func TestSummarizeSupplementary(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 2)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("%d.jpg", i))
		require.NoError(t, os.WriteFile(paths[i], []byte("jpegdata"), 0644))
	}

	fake := &fakeCompleter{completion: &Completion{Text: "Achterzijde toont makersmerk.\n", InputTokens: 600, OutputTokens: 80}}
	tracker := cost.NewTracker()
	r := NewResearcher(fake, tracker)

	summary := r.SummarizeSupplementary(context.Background(), testLot, paths)
	assert.Equal(t, "Achterzijde toont makersmerk.", summary)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, LiteModel, fake.requests[0].Model)
	assert.Len(t, fake.requests[0].Images, 2)

	require.Len(t, tracker.Records(), 1)
	assert.Equal(t, "supplementary", tracker.Records()[0].Phase)
	assert.Equal(t, LiteModel, tracker.Records()[0].Model)
}

func TestSummarizeSupplementaryNoPaths(t *testing.T) {
	fake := &fakeCompleter{completion: &Completion{Text: "extra"}}
	r := NewResearcher(fake, cost.NewTracker())

	assert.Empty(t, r.SummarizeSupplementary(context.Background(), testLot, nil))
	assert.Empty(t, fake.requests)
}
