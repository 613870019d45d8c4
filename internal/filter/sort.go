package filter

import (
	"sort"
	"time"

	"github.com/voyagerhq/tripsearch/internal/models"
)

// Sort orders offers by the given key into a fresh slice. The sort is
// stable: equal keys keep their input order.
func Sort(offers []models.Offer, key models.SortKey) []models.Offer {
	sorted := append([]models.Offer(nil), offers...)
	if len(sorted) < 2 {
		return sorted
	}

	switch key {
	case models.SortPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.Amount < sorted[j].Price.Amount
		})

	case models.SortDuration:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DurationMinutes() < sorted[j].DurationMinutes()
		})

	case models.SortRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RatingAverage() > sorted[j].RatingAverage()
		})

	case models.SortDeparture:
		sort.SliceStable(sorted, func(i, j int) bool {
			return departureOf(sorted[i]).Before(departureOf(sorted[j]))
		})

	default:
		// Popularity: most reviewed first.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ReviewCount() > sorted[j].ReviewCount()
		})
	}

	return sorted
}

// departureOf pushes offers without a departure to the end of an ascending
// departure sort.
func departureOf(o models.Offer) time.Time {
	if t, ok := o.OutboundDeparture(); ok {
		return t
	}
	return time.Unix(1<<62, 0)
}
