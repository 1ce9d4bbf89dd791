package artisio

import (
	"encoding/json"
	"time"
)

// Lot is a single item listed for auction.
type Lot struct {
	LotID       string
	Title       string
	Description string
	ImageURLs   []string
}

// Auction groups lots under a shared closing date and pickup arrangement.
type Auction struct {
	AuctionID  string
	Title      string
	EndDate    *time.Time
	PickupInfo string
}

// localized is a map of language code to text, e.g. {"nl": "...", "en": "..."}.
type localized map[string]string

func (l localized) get(lang string) string {
	if l == nil {
		return ""
	}
	if v, ok := l[lang]; ok {
		return v
	}
	return ""
}

// imageVariant is either a bare URL string or an object with a "url" field,
// depending on which API version served the lot.
type imageVariant struct {
	URL string
}

func (v *imageVariant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.URL = s
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	v.URL = obj.URL
	return nil
}

type lotImage struct {
	Lg       *imageVariant `json:"lg"`
	Original *imageVariant `json:"original"`
	Xlg      *imageVariant `json:"xlg"`
}

// bestURL prefers the large variant, then the original, then extra-large.
func (img lotImage) bestURL() string {
	for _, v := range []*imageVariant{img.Lg, img.Original, img.Xlg} {
		if v != nil && v.URL != "" {
			return v.URL
		}
	}
	return ""
}

type auctionDate struct {
	EndDate string `json:"end_date"`
}

type lotResponse struct {
	UUID        string     `json:"uuid"`
	Title       localized  `json:"title"`
	Description localized  `json:"description"`
	Images      []lotImage `json:"images"`
	Auction     struct {
		UUID                  string        `json:"uuid"`
		Title                 localized     `json:"title"`
		CollectionInformation localized     `json:"collection_information"`
		AuctionDates          []auctionDate `json:"auction_dates"`
	} `json:"auction"`
}

func (r *lotResponse) lot(lang string) Lot {
	lot := Lot{
		LotID:       r.UUID,
		Title:       CleanHTML(r.Title.get(lang)),
		Description: CleanHTML(r.Description.get(lang)),
	}
	if lot.Title == "" {
		lot.Title = "Titel niet beschikbaar"
	}
	for _, img := range r.Images {
		if url := img.bestURL(); url != "" {
			lot.ImageURLs = append(lot.ImageURLs, url)
		}
	}
	return lot
}

func (r *lotResponse) auction(lang string) Auction {
	a := Auction{
		AuctionID:  r.Auction.UUID,
		Title:      CleanHTML(r.Auction.Title.get(lang)),
		PickupInfo: DefaultPickupInfo,
	}
	if a.Title == "" {
		a.Title = "Veiling niet beschikbaar"
	}
	if info := CleanHTML(r.Auction.CollectionInformation.get(lang)); info != "" {
		a.PickupInfo = info
	}
	if len(r.Auction.AuctionDates) > 0 && r.Auction.AuctionDates[0].EndDate != "" {
		if t, err := time.Parse(time.RFC3339, r.Auction.AuctionDates[0].EndDate); err == nil {
			a.EndDate = &t
		}
	}
	return a
}
