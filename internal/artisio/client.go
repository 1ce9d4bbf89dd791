package artisio

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	ApiBaseUrl = "https://webapp.artisio.co"

	// DefaultLanguage selects which localized variant of title/description
	// fields is extracted.
	DefaultLanguage = "nl"

	// DefaultPickupInfo is used when the auction carries no collection
	// information.
	DefaultPickupInfo = "Zie veilinginformatie in Amstelveen"
)

type ClientOpts struct {
	BaseURL  string
	ClientID string
	Language string
}

type Client struct {
	httpClient *resty.Client
	language   string
}

func NewClient(opts ClientOpts) *Client {
	c := Client{language: DefaultLanguage}
	baseURL := ApiBaseUrl
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	clientID := opts.ClientID
	if clientID == "" {
		clientID = "84528469"
	}
	if opts.Language != "" {
		c.language = opts.Language
	}
	c.httpClient = resty.New().
		SetDebug(false).
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetHeaders(
			map[string]string{
				"Origin":            "https://vendulion.com",
				"Referer":           "https://vendulion.com/",
				"artisio-client-id": clientID,
				"artisio-language":  c.language,
			},
		)

	return &c
}

func (c *Client) req(ctx context.Context, result any) *resty.Request {
	request := c.httpClient.
		NewRequest().
		SetContext(ctx)

	if result != nil {
		request.SetResult(result)
	}

	return request
}

// GetLotWithAuction fetches a lot by UUID together with its parent auction.
func (c *Client) GetLotWithAuction(ctx context.Context, lotUUID string) (Lot, Auction, error) {
	result := &lotResponse{}

	_, err := handleError(c.req(ctx, result).
		SetQueryParam("lot_status", "all").
		SetPathParams(map[string]string{
			"lotUuid": lotUUID,
		}).
		Get("/website/lots/{lotUuid}"))
	if err != nil {
		return Lot{}, Auction{}, err
	}

	return result.lot(c.language), result.auction(c.language), nil
}

// handleError is a generic error handler for failing responses (>399 status
// code). Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}

	return res, nil
}
