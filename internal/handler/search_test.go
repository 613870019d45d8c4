package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/resultstore"
)

// stubSearcher returns canned outcomes without touching any provider.
type stubSearcher struct {
	flightOutcome   models.SearchOutcome
	activityOutcome models.SearchOutcome
}

func (s *stubSearcher) SearchFlights(ctx context.Context, req models.FlightSearchRequest) models.SearchOutcome {
	return s.flightOutcome
}

func (s *stubSearcher) SearchActivities(ctx context.Context, req models.ActivitySearchRequest) models.SearchOutcome {
	return s.activityOutcome
}

func (s *stubSearcher) SearchTrip(ctx context.Context, flightReq models.FlightSearchRequest, activityReq models.ActivitySearchRequest) (models.SearchOutcome, models.SearchOutcome) {
	return s.flightOutcome, s.activityOutcome
}

func activityOffer(id string, price float64) models.Offer {
	return models.Offer{
		ID:       id,
		Kind:     models.OfferKindActivity,
		Price:    models.Money{Amount: price, Currency: "EUR"},
		Activity: &models.ActivityOffer{Title: "Offer " + id, Supplier: "Stub Tours"},
	}
}

func successOutcome(offers ...models.Offer) models.SearchOutcome {
	min, max := 0.0, 0.0
	if len(offers) > 0 {
		min, max = offers[0].Price.Amount, offers[0].Price.Amount
		for _, o := range offers[1:] {
			if o.Price.Amount < min {
				min = o.Price.Amount
			}
			if o.Price.Amount > max {
				max = o.Price.Amount
			}
		}
	}
	return models.SearchOutcome{
		Status: models.StatusSuccess,
		Offers: offers,
		Metadata: models.Metadata{
			TotalResults: len(offers),
			PriceRange:   models.PriceRange{Min: min, Max: max},
		},
	}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestActivitiesSearchEnvelope(t *testing.T) {
	searcher := &stubSearcher{
		activityOutcome: successOutcome(activityOffer("act_1", 25), activityOffer("act_2", 95)),
	}
	h := NewSearchHandler(searcher, resultstore.NewMemoryStore(time.Hour))

	rec := doJSON(t, h.Activities, http.MethodPost, "/api/v1/activities/search",
		`{"destination":"Bali","participants":2}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SearchID)
	assert.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, 2, resp.Metadata.TotalResults)
	assert.Len(t, resp.Page.Items, 2)
	assert.Equal(t, 1, resp.Page.PageNumber)
}

func TestActivitiesSearchDegradedKeepsReason(t *testing.T) {
	searcher := &stubSearcher{
		activityOutcome: models.SearchOutcome{
			Status: models.StatusDegraded,
			Offers: []models.Offer{activityOffer("fallback-activity-1", 25)},
			Reason: "activity inventory is temporarily unavailable; showing estimated offers",
		},
	}
	h := NewSearchHandler(searcher, resultstore.NewMemoryStore(time.Hour))

	rec := doJSON(t, h.Activities, http.MethodPost, "/api/v1/activities/search",
		`{"destination":"Bali","participants":1}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusDegraded, resp.Status)
	assert.NotEmpty(t, resp.Reason)
}

func TestActivitiesSearchRejectedIs400(t *testing.T) {
	searcher := &stubSearcher{
		activityOutcome: models.SearchOutcome{
			Status:      models.StatusRejected,
			UserMessage: "destination is required",
		},
	}
	h := NewSearchHandler(searcher, resultstore.NewMemoryStore(time.Hour))

	rec := doJSON(t, h.Activities, http.MethodPost, "/api/v1/activities/search", `{"participants":1}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "search_rejected", errResp.Error)
	assert.Equal(t, "destination is required", errResp.Message)
}

func TestFlightsSearchMalformedBody(t *testing.T) {
	h := NewSearchHandler(&stubSearcher{}, resultstore.NewMemoryStore(time.Hour))

	rec := doJSON(t, h.Flights, http.MethodPost, "/api/v1/flights/search", `{"origin":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid_request", errResp.Error)
}

func TestTripSearchCombinesBothOutcomes(t *testing.T) {
	searcher := &stubSearcher{
		flightOutcome: successOutcome(),
		activityOutcome: models.SearchOutcome{
			Status: models.StatusDegraded,
			Offers: []models.Offer{activityOffer("fallback-activity-1", 25)},
			Reason: "activity inventory is temporarily unavailable; showing estimated offers",
		},
	}
	h := NewSearchHandler(searcher, resultstore.NewMemoryStore(time.Hour))

	rec := doJSON(t, h.Trip, http.MethodPost, "/api/v1/search/trip",
		`{"flights":{"origin":"AMS","destination":"DPS"},"activities":{"destination":"Bali","participants":2}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TripResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusSuccess, resp.Flights.Status)
	assert.Equal(t, models.StatusDegraded, resp.Activities.Status)
	assert.NotEmpty(t, resp.Activities.Reason)
}

func TestHealthHandler(t *testing.T) {
	rec := doJSON(t, HealthHandler, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
