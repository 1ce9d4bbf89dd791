package post

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/images"
	"github.com/Luminc/iris/internal/research"
	"github.com/rs/zerolog/log"
)

// amsterdam is the auction house's timezone for closing times. Falls back
// to UTC when tzdata is unavailable.
var amsterdam = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// Document bundles everything that ends up in one generated post file.
type Document struct {
	Lot         artisio.Lot
	Auction     artisio.Auction
	Research    *research.Context
	FinalPost   string
	Hashtags    []string
	SavedImages []string
}

// Render produces the markdown document for a generated post.
func Render(doc Document) string {
	endDate := "Zie website"
	if doc.Auction.EndDate != nil {
		endDate = doc.Auction.EndDate.In(amsterdam).Format("02 January 2006, 15:04") + " uur"
	}

	hooks := "Geen hooks beschikbaar"
	if len(doc.Research.StorytellingHooks) > 0 {
		var lines []string
		for _, hook := range doc.Research.StorytellingHooks {
			lines = append(lines, "- "+hook)
		}
		hooks = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# 🌸 Iris Post: %s\n\n", doc.Lot.Title)
	b.WriteString("## 🚀 Social Media Post\n\n")
	b.WriteString(doc.FinalPost)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "**Veiling:** %s  \n", doc.Auction.Title)
	fmt.Fprintf(&b, "**Sluiting:** 🕰️ %s  \n", endDate)
	fmt.Fprintf(&b, "**Ophaaldagen:** 📍 %s\n\n", doc.Auction.PickupInfo)
	b.WriteString("➡️ **Link in bio!**\n\n")
	b.WriteString(strings.Join(doc.Hashtags, " "))
	b.WriteString("\n\n---\n\n")
	b.WriteString("## 🧠 Enhanced Research Context\n\n")
	fmt.Fprintf(&b, "**Historische Significantie:** %s\n\n", doc.Research.HistoricalSignificance)
	fmt.Fprintf(&b, "**Culturele Context:** %s\n\n", doc.Research.CulturalContext)
	fmt.Fprintf(&b, "**Vakmanschap:** %s\n\n", doc.Research.Craftsmanship)
	fmt.Fprintf(&b, "**Visuele Analyse:** %s\n\n", doc.Research.VisualAnalysis)
	if doc.Research.SupplementarySummary != "" {
		fmt.Fprintf(&b, "**Aanvullende Details:** %s\n\n", doc.Research.SupplementarySummary)
	}
	fmt.Fprintf(&b, "**Lifestyle Scenario:** %s\n\n", doc.Research.LifestyleScenario)
	fmt.Fprintf(&b, "**Storytelling Hooks:**\n%s\n\n", hooks)
	fmt.Fprintf(&b, "**Marktpotentieel:** %s\n\n", doc.Research.MarketPotential)
	if len(doc.SavedImages) > 0 {
		b.WriteString("**Opgeslagen Afbeeldingen:**\n")
		for _, path := range doc.SavedImages {
			fmt.Fprintf(&b, "- %s\n", path)
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n")
	b.WriteString("*Generated by 🌸 Iris - The Vision That Describes*  \n")
	fmt.Fprintf(&b, "*Lot: %s | Auction: %s*\n", doc.Lot.LotID, doc.Auction.AuctionID)

	return b.String()
}

// Filename builds the post's on-disk name from a timestamp and the
// sanitized title.
func Filename(title string, now time.Time) string {
	return fmt.Sprintf("%s_iris_%s.md", now.Format("20060102_1504"), images.SanitizeTitle(title))
}

// Write renders the document and writes it under outputDir, returning the
// full path.
func Write(doc Document, outputDir string, now time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(outputDir, Filename(doc.Lot.Title, now))
	if err := os.WriteFile(path, []byte(Render(doc)), 0644); err != nil {
		return "", fmt.Errorf("failed to write post: %w", err)
	}
	log.Info().Str("path", path).Msg("post saved")
	return path, nil
}
