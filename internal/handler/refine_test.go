package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagerhq/tripsearch/internal/filter"
	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/resultstore"
)

func seedSession(t *testing.T, store resultstore.Store, offerCount int) *resultstore.Session {
	t.Helper()

	offers := make([]models.Offer, 0, offerCount)
	for i := 0; i < offerCount; i++ {
		offers = append(offers, models.Offer{
			ID:    fmt.Sprintf("act_%d", i+1),
			Kind:  models.OfferKindActivity,
			Price: models.Money{Amount: float64(20 + i*10), Currency: "EUR"},
			Activity: &models.ActivityOffer{
				Title:    fmt.Sprintf("Tour %d", i+1),
				Supplier: "Stub Tours",
			},
		})
	}

	session := &resultstore.Session{
		SearchID:   "s-refine",
		Kind:       models.OfferKindActivity,
		Status:     models.StatusSuccess,
		Offers:     offers,
		Metadata:   models.Metadata{TotalResults: offerCount},
		FilterHash: models.FilterState{}.Fingerprint(),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.Save(context.Background(), session))
	return session
}

func doRefine(t *testing.T, h *SearchHandler, searchID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/results/"+searchID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(searchID)
	require.NoError(t, h.Refine(c))
	return rec
}

func TestRefineUnknownSearch(t *testing.T) {
	h := NewSearchHandler(&stubSearcher{}, resultstore.NewMemoryStore(time.Hour))

	rec := doRefine(t, h, "missing", `{"filters":{},"page":1}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "search_not_found", errResp.Error)
}

func TestRefineSamePageWithUnchangedFilters(t *testing.T) {
	store := resultstore.NewMemoryStore(time.Hour)
	seedSession(t, store, filter.DefaultPageSize+5)
	h := NewSearchHandler(&stubSearcher{}, store)

	rec := doRefine(t, h, "s-refine", `{"filters":{},"page":2}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page.PageNumber)
	assert.Len(t, resp.Page.Items, 5)
}

// Changing the filter state resets pagination: a request for page 2 with new
// filters comes back on page 1.
func TestRefineFilterChangeResetsPage(t *testing.T) {
	store := resultstore.NewMemoryStore(time.Hour)
	seedSession(t, store, filter.DefaultPageSize+5)
	h := NewSearchHandler(&stubSearcher{}, store)

	rec := doRefine(t, h, "s-refine", `{"filters":{"price_min":50},"page":2}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page.PageNumber)

	// The new fingerprint is stored, so repeating the same filters keeps the
	// requested page.
	rec = doRefine(t, h, "s-refine", `{"filters":{"price_min":50},"page":2}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page.PageNumber)
}

// Concurrent refinements of one search with differing filters must not race
// on the stored session; each request works on its own copy.
func TestRefineConcurrentFilterChanges(t *testing.T) {
	store := resultstore.NewMemoryStore(time.Hour)
	seedSession(t, store, filter.DefaultPageSize+5)
	h := NewSearchHandler(&stubSearcher{}, store)
	e := echo.New()

	const workers = 50
	codes := make(chan int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(priceMin int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"filters":{"price_min":%d},"page":2}`, priceMin)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/results/s-refine", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("s-refine")
			if err := h.Refine(c); err != nil {
				codes <- http.StatusInternalServerError
				return
			}
			codes <- rec.Code
		}(i)
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestRefineFiltersApplyToStoredSet(t *testing.T) {
	store := resultstore.NewMemoryStore(time.Hour)
	seedSession(t, store, 10) // prices 20..110
	h := NewSearchHandler(&stubSearcher{}, store)

	rec := doRefine(t, h, "s-refine", `{"filters":{"price_min":50,"price_max":80},"page":1}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Page.Items, 4) // 50, 60, 70, 80
	for _, o := range resp.Page.Items {
		assert.GreaterOrEqual(t, o.Price.Amount, 50.0)
		assert.LessOrEqual(t, o.Price.Amount, 80.0)
	}

	// Metadata still describes the stored set, not the filtered view.
	assert.Equal(t, 10, resp.Metadata.TotalResults)
}
