package images

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxImages caps how many photos are fetched per lot regardless of level.
const MaxImages = 4

// ErrNoImages signals that a level requested images but every download in
// the batch failed. Callers fall back to text-only research. Distinct from
// a nil payload at LevelBasic, which never attempts retrieval.
var ErrNoImages = errors.New("no images could be retrieved")

// Payload is the single image submitted to the vision service. It is
// created by the aggregator and never mutated afterwards.
type Payload struct {
	Data     []byte
	MIMEType string
	// SavedPath is where a processed copy was persisted, if any.
	SavedPath string
	// SourceCount and Cols/Rows describe composite payloads; SourceCount
	// is 1 for single-photo payloads.
	SourceCount int
	Cols        int
	Rows        int
}

// Aggregator turns a lot's remote photo URLs into at most one vision
// payload plus locally persisted copies, according to the research level.
type Aggregator struct {
	downloader *Downloader
	imagesDir  string
	maxImages  int
	now        func() time.Time
}

// NewAggregator creates an Aggregator persisting processed photos under
// imagesDir. The directory is created on first save.
func NewAggregator(downloader *Downloader, imagesDir string) *Aggregator {
	return &Aggregator{
		downloader: downloader,
		imagesDir:  imagesDir,
		maxImages:  MaxImages,
		now:        time.Now,
	}
}

// WithMaxImages overrides the per-lot photo cap.
func (a *Aggregator) WithMaxImages(max int) *Aggregator {
	a.maxImages = max
	return a
}

// Aggregate applies the level's retrieval policy to the ordered photo URLs
// and returns the payload for analysis plus the paths of any photos
// persisted for reuse (for example attaching to a published post).
//
// A nil payload with nil error means the level requested no images. A nil
// payload with ErrNoImages means every download in the batch failed.
func (a *Aggregator) Aggregate(ctx context.Context, urls []string, level Level, title string) (*Payload, []string, error) {
	if !level.WantsImages() {
		return nil, nil, nil
	}
	if len(urls) == 0 {
		return nil, nil, ErrNoImages
	}

	fetched := a.fetchBatch(ctx, urls, a.maxImages)
	if len(fetched) == 0 {
		return nil, nil, ErrNoImages
	}

	saved := a.persist(fetched, title)

	var payload *Payload
	var err error
	switch level {
	case LevelStandard, LevelPremium:
		// Standard analyzes the first photo; premium bills the first
		// successful photo and keeps the rest for supplementary use.
		payload, err = singlePayload(fetched[0])
	case LevelComprehensive:
		payload, err = a.compositePayload(fetched, title)
	default:
		return nil, saved, fmt.Errorf("unsupported level %q", level)
	}
	if err != nil {
		// The batch downloaded but processing failed; degrade to text-only.
		log.Warn().Err(err).Str("level", level.String()).Msg("image processing failed")
		return nil, saved, ErrNoImages
	}

	if payload.SavedPath == "" && len(saved) > 0 {
		payload.SavedPath = saved[0]
	}

	log.Info().
		Str("level", level.String()).
		Int("fetched", len(fetched)).
		Int("saved", len(saved)).
		Int("payloadBytes", len(payload.Data)).
		Msg("image aggregation complete")

	return payload, saved, nil
}

// fetchBatch downloads photos in input order, skipping failed URLs, until
// max successes or the list is exhausted. Each entry holds decoded pixels
// alongside the (bounded, re-encoded) bytes.
type fetchedImage struct {
	img  image.Image
	data []byte
}

func (a *Aggregator) fetchBatch(ctx context.Context, urls []string, max int) []fetchedImage {
	var out []fetchedImage
	for _, url := range urls {
		if len(out) >= max {
			break
		}
		raw, err := a.downloader.Download(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str("url", url).Msg("skipping image")
			continue
		}
		img, data, err := processPhoto(raw)
		if err != nil {
			log.Warn().Err(err).Str("url", url).Msg("skipping unprocessable image")
			continue
		}
		out = append(out, fetchedImage{img: img, data: data})
	}
	return out
}

func singlePayload(f fetchedImage) (*Payload, error) {
	return &Payload{
		Data:        f.data,
		MIMEType:    "image/jpeg",
		SourceCount: 1,
		Cols:        1,
		Rows:        1,
	}, nil
}

func (a *Aggregator) compositePayload(fetched []fetchedImage, title string) (*Payload, error) {
	photos := make([]image.Image, len(fetched))
	for i, f := range fetched {
		photos[i] = f.img
	}
	canvas, cols, rows := composeGrid(photos)
	data, err := encodeJPEG(canvas)
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		Data:        data,
		MIMEType:    "image/jpeg",
		SourceCount: len(fetched),
		Cols:        cols,
		Rows:        rows,
	}

	// Keep a copy of the composite next to the individual photos.
	if path, err := a.saveFile(data, title, "grid"); err != nil {
		log.Warn().Err(err).Msg("failed to save composite image")
	} else {
		payload.SavedPath = path
	}

	return payload, nil
}

// persist writes each processed photo to the images dir. Save failures are
// logged and skipped; persistence never gates the analysis payload.
func (a *Aggregator) persist(fetched []fetchedImage, title string) []string {
	paths := make([]string, 0, len(fetched))
	for i, f := range fetched {
		path, err := a.saveFile(f.data, title, fmt.Sprintf("%d", i+1))
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("failed to save image")
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func (a *Aggregator) saveFile(data []byte, title, suffix string) (string, error) {
	if err := os.MkdirAll(a.imagesDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s.jpg", a.now().Format("20060102_1504"), SanitizeTitle(title), suffix)
	path := filepath.Join(a.imagesDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

// Letters and digits in any script survive; punctuation goes.
var unsafeTitleRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// SanitizeTitle makes a lot title safe for filenames: strip punctuation,
// collapse spaces to underscores, cap the length at 40 runes. Shared by
// photo and post filenames.
func SanitizeTitle(title string) string {
	s := unsafeTitleRe.ReplaceAllString(title, "")
	s = strings.Join(strings.Fields(s), "_")
	if runes := []rune(s); len(runes) > 40 {
		s = string(runes[:40])
	}
	if s == "" {
		s = "lot"
	}
	return s
}
