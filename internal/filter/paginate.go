package filter

import "github.com/voyagerhq/tripsearch/internal/models"

// DefaultPageSize is the fixed result-page size of both search surfaces.
const DefaultPageSize = 20

// Paginate slices the offers into 1-indexed pages. A page past the end
// yields an empty items slice, not an error. An empty input paginates to
// zero total pages: callers render "no results" from the empty items slice,
// so no phantom first page is reported.
func Paginate(offers []models.Offer, pageSize, page int) models.Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(offers) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	items := []models.Offer{}
	if start < len(offers) {
		if end > len(offers) {
			end = len(offers)
		}
		items = append(items, offers[start:end]...)
	}

	return models.Page{
		Items:      items,
		PageNumber: page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
