package post

import (
	"os"
	"testing"
	"time"

	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/research"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() Document {
	end := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	return Document{
		Lot: artisio.Lot{
			LotID: "lot-1",
			Title: "Art Deco wandlamp",
		},
		Auction: artisio.Auction{
			AuctionID:  "auction-9",
			Title:      "Design & Verlichting",
			EndDate:    &end,
			PickupInfo: "Ophalen op zaterdag",
		},
		Research: &research.Context{
			HistoricalSignificance: "Frans ontwerp uit de jaren '20.",
			CulturalContext:        "Art Deco interbellum.",
			Craftsmanship:          "Gegoten messing.",
			MarketPotential:        "Gewild bij verzamelaars.",
			VisualAnalysis:         "Warm gepatineerd messing.",
			StorytellingHooks:      []string{"Parijs 1925"},
			LifestyleScenario:      "Boven een leeshoek.",
		},
		FinalPost:   "Een bijzondere wandlamp uit het interbellum.",
		Hashtags:    []string{"#Veiling", "#ArtDeco"},
		SavedImages: []string{"images/20240601_1200_Art_Deco_wandlamp_1.jpg"},
	}
}

func TestRender(t *testing.T) {
	out := Render(testDocument())

	assert.Contains(t, out, "# 🌸 Iris Post: Art Deco wandlamp")
	assert.Contains(t, out, "Een bijzondere wandlamp uit het interbellum.")
	assert.Contains(t, out, "**Veiling:** Design & Verlichting")
	// 18:00 UTC is 20:00 in Amsterdam (CEST).
	assert.Contains(t, out, "01 June 2024, 20:00 uur")
	assert.Contains(t, out, "**Ophaaldagen:** 📍 Ophalen op zaterdag")
	assert.Contains(t, out, "#Veiling #ArtDeco")
	assert.Contains(t, out, "- Parijs 1925")
	assert.Contains(t, out, "images/20240601_1200_Art_Deco_wandlamp_1.jpg")
	assert.Contains(t, out, "*Lot: lot-1 | Auction: auction-9*")
}

func TestRenderWithoutEndDateOrHooks(t *testing.T) {
	doc := testDocument()
	doc.Auction.EndDate = nil
	doc.Research.StorytellingHooks = nil
	doc.SavedImages = nil

	out := Render(doc)
	assert.Contains(t, out, "Zie website")
	assert.Contains(t, out, "Geen hooks beschikbaar")
	assert.NotContains(t, out, "Opgeslagen Afbeeldingen")
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		title string
		want  string
	}{
		{"Art Deco wandlamp", "20240601_1430_iris_Art_Deco_wandlamp.md"},
		{"Stoel, ca. 1930!", "20240601_1430_iris_Stoel_ca_1930.md"},
		{"Thonet café-stoel", "20240601_1430_iris_Thonet_café-stoel.md"},
		{"", "20240601_1430_iris_lot.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.title, now))
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)

	path, err := Write(testDocument(), dir, now)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Art Deco wandlamp")
}

func TestHashtags(t *testing.T) {
	lot := artisio.Lot{Title: "Mahonie fauteuil"}
	ctx := &research.Context{
		HistoricalSignificance: "Frans Art Deco ontwerp",
		CulturalContext:        "Interbellum",
		Craftsmanship:          "Massief mahonie",
	}

	tags := Hashtags(lot, ctx)

	// Base tags lead, matches follow sorted.
	assert.Equal(t, []string{"#Veiling", "#BiedenMaar", "#Amstelveen"}, tags[:3])
	assert.Contains(t, tags, "#ArtDeco")
	assert.Contains(t, tags, "#Mahoniehout")
	assert.Contains(t, tags, "#FransDesign")
	assert.Contains(t, tags, "#DesignStoel")
	assert.LessOrEqual(t, len(tags), maxHashtags)

	// Deterministic across calls.
	assert.Equal(t, tags, Hashtags(lot, ctx))
}

func TestHashtagsNoMatches(t *testing.T) {
	tags := Hashtags(artisio.Lot{Title: "Onbekend object"}, research.FallbackContext())
	assert.Equal(t, baseTags, tags)
}
