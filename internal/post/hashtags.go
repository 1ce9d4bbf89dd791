package post

import (
	"sort"
	"strings"

	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/research"
)

const maxHashtags = 12

// baseTags appear on every post.
var baseTags = []string{"#Veiling", "#BiedenMaar", "#Amstelveen"}

// Keyword-to-hashtag mappings applied over the research text and title.
var (
	styleTags = map[string]string{
		"art deco":    "#ArtDeco",
		"rococo":      "#Rococo",
		"barok":       "#Barok",
		"mid-century": "#MidCenturyModern",
		"modernist":   "#ModernistDesign",
		"vintage":     "#VintageDesign",
		"antiek":      "#Antiek",
		"klassiek":    "#KlassiekDesign",
	}
	materialTags = map[string]string{
		"mahonie":   "#Mahoniehout",
		"eiken":     "#Eikenhout",
		"teak":      "#TeakHout",
		"zilver":    "#Zilver",
		"brons":     "#Brons",
		"keramiek":  "#Keramiek",
		"glas":      "#Glas",
		"kristal":   "#Kristal",
		"porselein": "#Porselein",
	}
	originTags = map[string]string{
		"nederlands": "#NederlandsDesign",
		"hollands":   "#HollandsAntiek",
		"italiaans":  "#ItalianDesign",
		"deens":      "#DeensDesign",
		"zweeds":     "#ZweedsDesign",
		"frans":      "#FransDesign",
	}
)

// furnitureRules adds a category tag when any of its keywords match.
var furnitureRules = []struct {
	keywords []string
	tag      string
}{
	{[]string{"stoel", "fauteuil", "chair"}, "#DesignStoel"},
	{[]string{"tafel", "table"}, "#DesignTafel"},
	{[]string{"lamp", "verlichting"}, "#DesignVerlichting"},
}

// Hashtags derives tags from the research context and lot title. The
// result is deterministic (sorted additions after the base tags) and
// capped at 12 tags.
func Hashtags(lot artisio.Lot, ctx *research.Context) []string {
	text := strings.ToLower(strings.Join([]string{
		ctx.HistoricalSignificance,
		ctx.CulturalContext,
		ctx.Craftsmanship,
		lot.Title,
	}, " "))

	seen := make(map[string]bool, maxHashtags)
	tags := make([]string, 0, maxHashtags)
	for _, t := range baseTags {
		seen[t] = true
		tags = append(tags, t)
	}

	var matched []string
	for _, mapping := range []map[string]string{styleTags, materialTags, originTags} {
		for keyword, tag := range mapping {
			if strings.Contains(text, keyword) && !seen[tag] {
				seen[tag] = true
				matched = append(matched, tag)
			}
		}
	}
	for _, rule := range furnitureRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) && !seen[rule.tag] {
				seen[rule.tag] = true
				matched = append(matched, rule.tag)
				break
			}
		}
	}

	sort.Strings(matched)
	tags = append(tags, matched...)
	if len(tags) > maxHashtags {
		tags = tags[:maxHashtags]
	}
	return tags
}
