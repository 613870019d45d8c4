package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/voyagerhq/tripsearch/internal/filter"
	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/resultstore"
)

// Searcher is the engine surface the handlers depend on.
type Searcher interface {
	SearchFlights(ctx context.Context, req models.FlightSearchRequest) models.SearchOutcome
	SearchActivities(ctx context.Context, req models.ActivitySearchRequest) models.SearchOutcome
	SearchTrip(ctx context.Context, flightReq models.FlightSearchRequest, activityReq models.ActivitySearchRequest) (models.SearchOutcome, models.SearchOutcome)
}

type SearchHandler struct {
	engine Searcher
	store  resultstore.Store
}

func NewSearchHandler(engine Searcher, store resultstore.Store) *SearchHandler {
	return &SearchHandler{
		engine: engine,
		store:  store,
	}
}

type SearchResponse struct {
	SearchID     string               `json:"search_id,omitempty"`
	Status       models.OutcomeStatus `json:"status"`
	Reason       string               `json:"reason,omitempty"`
	Metadata     models.Metadata      `json:"metadata"`
	Page         models.Page          `json:"page"`
	SearchTimeMs int64                `json:"search_time_ms"`
}

type TripResponse struct {
	Flights      SearchResponse `json:"flights"`
	Activities   SearchResponse `json:"activities"`
	SearchTimeMs int64          `json:"search_time_ms"`
}

func (h *SearchHandler) Flights(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.FlightSearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	outcome := h.engine.SearchFlights(ctx, req)
	return h.respond(c, outcome, models.OfferKindFlight, models.FilterState{}, startTime)
}

func (h *SearchHandler) Activities(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.ActivitySearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	outcome := h.engine.SearchActivities(ctx, req)
	return h.respond(c, outcome, models.OfferKindActivity, models.FilterState{SortBy: req.SortBy}, startTime)
}

type tripRequest struct {
	Flights    models.FlightSearchRequest   `json:"flights"`
	Activities models.ActivitySearchRequest `json:"activities"`
}

func (h *SearchHandler) Trip(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	flightOutcome, activityOutcome := h.engine.SearchTrip(ctx, req.Flights, req.Activities)

	flightResp, err := h.buildResponse(c, flightOutcome, models.OfferKindFlight, models.FilterState{}, startTime)
	if err != nil {
		return err
	}
	activityResp, err := h.buildResponse(c, activityOutcome, models.OfferKindActivity, models.FilterState{SortBy: req.Activities.SortBy}, startTime)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TripResponse{
		Flights:      flightResp,
		Activities:   activityResp,
		SearchTimeMs: time.Since(startTime).Milliseconds(),
	})
}

func (h *SearchHandler) respond(c echo.Context, outcome models.SearchOutcome, kind models.OfferKind, state models.FilterState, startTime time.Time) error {
	if outcome.Status == models.StatusRejected {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "search_rejected",
			Message: outcome.UserMessage,
			Code:    http.StatusBadRequest,
		})
	}

	resp, err := h.buildResponse(c, outcome, kind, state, startTime)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// buildResponse persists the offer set as a refinement session and renders
// the first page per the caller's initial filter state.
func (h *SearchHandler) buildResponse(c echo.Context, outcome models.SearchOutcome, kind models.OfferKind, state models.FilterState, startTime time.Time) (SearchResponse, error) {
	resp := SearchResponse{
		Status:       outcome.Status,
		Reason:       outcome.Reason,
		Metadata:     outcome.Metadata,
		SearchTimeMs: time.Since(startTime).Milliseconds(),
	}
	if outcome.Status == models.StatusRejected {
		resp.Page = models.Page{Items: []models.Offer{}}
		resp.Reason = outcome.UserMessage
		return resp, nil
	}

	session := &resultstore.Session{
		SearchID:   uuid.NewString(),
		Kind:       kind,
		Status:     outcome.Status,
		Reason:     outcome.Reason,
		Offers:     outcome.Offers,
		Metadata:   outcome.Metadata,
		FilterHash: state.Fingerprint(),
		CreatedAt:  time.Now(),
	}
	if err := h.store.Save(c.Request().Context(), session); err != nil {
		// The first page is still served; only refinement is lost.
		session.SearchID = ""
	}

	filtered := filter.Apply(outcome.Offers, &state)
	sorted := filter.Sort(filtered, state.SortBy)

	resp.SearchID = session.SearchID
	resp.Page = filter.Paginate(sorted, filter.DefaultPageSize, 1)
	return resp, nil
}

func badRequest(c echo.Context, kind, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
