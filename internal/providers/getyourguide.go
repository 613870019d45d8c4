package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/voyagerhq/tripsearch/internal/models"
)

// ActivityPayload is the raw product listing of the activity supplier.
type ActivityPayload struct {
	Activities []RawActivity `json:"data"`
}

type RawActivity struct {
	ID                  string              `json:"id"`
	Title               string              `json:"title"`
	Abstract            string              `json:"abstract,omitempty"`
	Description         string              `json:"description,omitempty"`
	SupplierName        string              `json:"supplier_name"`
	Location            RawActivityLocation `json:"location"`
	Pictures            []RawPicture        `json:"pictures,omitempty"`
	RetailPrice         float64             `json:"retail_price"`
	OriginalRetailPrice *float64            `json:"original_retail_price,omitempty"`
	Currency            string              `json:"currency"`
	OverallRating       float64             `json:"overall_rating"`
	NumberOfRatings     int                 `json:"number_of_ratings"`
	Duration            string              `json:"duration,omitempty"`
	DurationRange       *RawDurationRange   `json:"duration_range,omitempty"`
	Tags                []string            `json:"tags,omitempty"`
	Categories          []RawCategory       `json:"categories,omitempty"`
	InstantConfirmation bool                `json:"instant_confirmation"`
	FreeCancellation    bool                `json:"free_cancellation"`
}

type RawActivityLocation struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type RawPicture struct {
	Variants []RawPictureVariant `json:"variants"`
}

type RawPictureVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type RawDurationRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type RawCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetYourGuideProvider is a thin shim over the GetYourGuide partner API.
// Same contract shape as the flight adapter: one attempt, typed failures.
type GetYourGuideProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type GetYourGuideConfig struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

const gygDefaultBaseURL = "https://api.getyourguide.com"

func NewGetYourGuideProvider(cfg GetYourGuideConfig) *GetYourGuideProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = gygDefaultBaseURL
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	return &GetYourGuideProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  cfg.Client,
	}
}

func (p *GetYourGuideProvider) Name() string {
	return "getyourguide"
}

type gygErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *GetYourGuideProvider) Search(ctx context.Context, req models.ActivitySearchRequest) (*ActivityPayload, error) {
	if p.apiKey == "" {
		return nil, NewUnavailable(p.Name(), fmt.Errorf("api key is not configured"))
	}

	query := url.Values{}
	query.Set("q", req.Destination)
	query.Set("participants", strconv.Itoa(req.Participants))
	if req.StartDate != nil && *req.StartDate != "" {
		query.Set("date_from", *req.StartDate)
	}
	if req.EndDate != nil && *req.EndDate != "" {
		query.Set("date_to", *req.EndDate)
	}
	if len(req.Categories) > 0 {
		query.Set("categories", strings.Join(req.Categories, ","))
	}

	endpoint := p.baseURL + "/activities?" + query.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}
	httpReq.Header.Set("X-ACCESS-TOKEN", p.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, NewUnavailable(p.Name(), fmt.Errorf("upstream returned %d", resp.StatusCode))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewUnavailable(p.Name(), fmt.Errorf("credentials rejected with %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return nil, NewRejected(p.Name(), extractGYGMessage(raw), resp.StatusCode)
	}

	var payload ActivityPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}

	return &payload, nil
}

func extractGYGMessage(raw []byte) string {
	var envelope gygErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return "the activity search could not be completed for these criteria"
}
