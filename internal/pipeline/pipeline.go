package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/cost"
	"github.com/Luminc/iris/internal/images"
	"github.com/Luminc/iris/internal/post"
	"github.com/Luminc/iris/internal/research"
	"github.com/rs/zerolog/log"
)

// LotFetcher retrieves a lot with its auction.
type LotFetcher interface {
	GetLotWithAuction(ctx context.Context, lotUUID string) (artisio.Lot, artisio.Auction, error)
}

// Aggregator produces the vision payload and persisted photo paths.
type Aggregator interface {
	Aggregate(ctx context.Context, urls []string, level images.Level, title string) (*images.Payload, []string, error)
}

// Publisher pushes a finished post to an external channel. Optional.
type Publisher interface {
	Publish(text string, imagePaths []string) error
}

// Ledger persists usage records across runs. Optional.
type Ledger interface {
	AppendAll(recs []cost.UsageRecord) error
}

// Generator sequences lot retrieval, image aggregation, research, post
// composition and persistence for one lot. Strictly sequential; one lot is
// processed start to finish per invocation.
type Generator struct {
	fetcher    LotFetcher
	aggregator Aggregator
	researcher *research.Researcher
	composer   *research.Composer
	tracker    *cost.Tracker
	publisher  Publisher
	ledger     Ledger
	outputDir  string
	level      images.Level
	now        func() time.Time
}

type Opts struct {
	Fetcher    LotFetcher
	Aggregator Aggregator
	Researcher *research.Researcher
	Composer   *research.Composer
	Tracker    *cost.Tracker
	Publisher  Publisher
	Ledger     Ledger
	OutputDir  string
	Level      images.Level
}

func NewGenerator(opts Opts) *Generator {
	return &Generator{
		fetcher:    opts.Fetcher,
		aggregator: opts.Aggregator,
		researcher: opts.Researcher,
		composer:   opts.Composer,
		tracker:    opts.Tracker,
		publisher:  opts.Publisher,
		ledger:     opts.Ledger,
		outputDir:  opts.OutputDir,
		level:      opts.Level,
		now:        time.Now,
	}
}

// GeneratePost runs the full pipeline for one lot and returns the path of
// the written post document.
func (g *Generator) GeneratePost(ctx context.Context, lotUUID string) (string, error) {
	lot, auction, err := g.fetcher.GetLotWithAuction(ctx, lotUUID)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve lot %s: %w", lotUUID, err)
	}
	log.Info().Str("lot", lot.LotID).Str("title", lot.Title).Str("level", g.level.String()).Msg("generating post")

	payload, savedImages, err := g.aggregator.Aggregate(ctx, lot.ImageURLs, g.level, lot.Title)
	if err != nil {
		if !errors.Is(err, images.ErrNoImages) {
			return "", fmt.Errorf("image aggregation failed: %w", err)
		}
		// Requested images but got none; degrade to text-only research.
		log.Warn().Str("lot", lot.LotID).Msg("no images retrieved, falling back to text-only research")
		payload = nil
	}

	researchCtx := g.researcher.Research(ctx, lot, payload)

	// At premium the extra photos are not part of the billed payload;
	// summarize them with one lightweight call.
	if g.level == images.LevelPremium && len(savedImages) > 1 {
		researchCtx.SupplementarySummary = g.researcher.SummarizeSupplementary(ctx, lot, savedImages[1:])
	}

	finalPost := g.composer.ComposePost(ctx, researchCtx, lot, auction)

	doc := post.Document{
		Lot:         lot,
		Auction:     auction,
		Research:    researchCtx,
		FinalPost:   finalPost,
		Hashtags:    post.Hashtags(lot, researchCtx),
		SavedImages: savedImages,
	}
	path, err := post.Write(doc, g.outputDir, g.now())
	if err != nil {
		return "", err
	}

	if g.publisher != nil {
		if err := g.publisher.Publish(finalPost, savedImages); err != nil {
			log.Warn().Err(err).Msg("telegram publish failed")
		}
	}

	if g.ledger != nil {
		if err := g.ledger.AppendAll(g.tracker.Records()); err != nil {
			log.Warn().Err(err).Msg("failed to persist usage records")
		}
	}

	log.Info().
		Str("path", path).
		Int("billedCalls", len(g.tracker.Records())).
		Float64("sessionCostUSD", g.tracker.SessionTotal()).
		Msg("generation complete")

	return path, nil
}
