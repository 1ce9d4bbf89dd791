package images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultDownloadTimeout is the per-request timeout for photo downloads.
	DefaultDownloadTimeout = 15 * time.Second
	// DefaultMaxImageSize caps downloaded photos at 10MB.
	DefaultMaxImageSize = 10 * 1024 * 1024
	// downloadAttempts is the total number of tries per URL (1 + 2 retries).
	downloadAttempts = 3
)

// Downloader fetches lot photos over HTTP with bounded retries. The same
// headers as the marketplace API calls are sent so the CDN accepts us.
type Downloader struct {
	client   *resty.Client
	maxSize  int64
	attempts int
}

// NewDownloader creates a Downloader with default limits.
func NewDownloader() *Downloader {
	return &Downloader{
		client: resty.New().
			SetDebug(false).
			SetTimeout(DefaultDownloadTimeout).
			SetHeaders(map[string]string{
				"Origin":            "https://vendulion.com",
				"Referer":           "https://vendulion.com/",
				"artisio-client-id": "84528469",
				"artisio-language":  "nl",
			}),
		maxSize:  DefaultMaxImageSize,
		attempts: downloadAttempts,
	}
}

// WithBaseClient replaces the underlying resty client. Used by tests to
// point downloads at a local server without the production headers.
func (d *Downloader) WithBaseClient(client *resty.Client) *Downloader {
	d.client = client
	return d
}

// Download fetches a single photo, retrying transient failures up to two
// times before abandoning the URL.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		data, err := d.downloadOnce(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
		log.Warn().Err(err).Str("url", url).Int("attempt", attempt).Msg("image download failed")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (d *Downloader) downloadOnce(ctx context.Context, url string) ([]byte, error) {
	res, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("download failed: status %d", res.StatusCode())
	}

	contentType := res.Header().Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("invalid content type: expected image/*, got %s", contentType)
	}

	data := res.Body()
	if int64(len(data)) > d.maxSize {
		return nil, fmt.Errorf("image too large: %d bytes exceeds limit of %d bytes", len(data), d.maxSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	return data, nil
}
