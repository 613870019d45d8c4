package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyagerhq/tripsearch/internal/filter"
	"github.com/voyagerhq/tripsearch/internal/models"
)

type RefineRequest struct {
	Filters models.FilterState `json:"filters"`
	Page    int                `json:"page"`
}

type RefineResponse struct {
	SearchID string               `json:"search_id"`
	Status   models.OutcomeStatus `json:"status"`
	Reason   string               `json:"reason,omitempty"`
	Metadata models.Metadata      `json:"metadata"`
	Page     models.Page          `json:"page"`
}

// Refine re-applies a filter state against a stored search session. The
// offer set and its metadata are immutable for the session's lifetime; only
// filtering, sorting and pagination re-run. A filter state that differs from
// the one last applied resets the page position to 1.
func (h *SearchHandler) Refine(c echo.Context) error {
	searchID := c.Param("id")

	var req RefineRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	session, ok := h.store.Get(c.Request().Context(), searchID)
	if !ok {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "search_not_found",
			Message: "This search has expired; start a new one",
			Code:    http.StatusNotFound,
		})
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	fingerprint := req.Filters.Fingerprint()
	if fingerprint != session.FilterHash {
		page = 1
		session.FilterHash = fingerprint
		session.CreatedAt = time.Now()
		if err := h.store.Save(c.Request().Context(), session); err != nil {
			c.Logger().Warnf("failed to update search session %s: %v", searchID, err)
		}
	}

	filtered := filter.Apply(session.Offers, &req.Filters)
	sorted := filter.Sort(filtered, req.Filters.SortBy)

	return c.JSON(http.StatusOK, RefineResponse{
		SearchID: session.SearchID,
		Status:   session.Status,
		Reason:   session.Reason,
		Metadata: session.Metadata,
		Page:     filter.Paginate(sorted, filter.DefaultPageSize, page),
	})
}
