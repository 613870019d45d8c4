// Package filter applies the caller-owned filter state to an immutable offer
// set, then sorts and paginates the survivors. Every function returns a new
// slice; the input is never mutated or reordered in place.
package filter

import (
	"strings"

	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/timeparse"
)

// Apply returns the offers satisfying every active predicate. Inactive
// predicates (nil bounds, empty sets, zero thresholds) pass everything.
func Apply(offers []models.Offer, state *models.FilterState) []models.Offer {
	if state == nil {
		return append([]models.Offer(nil), offers...)
	}

	categorySet := buildSet(state.Categories)
	supplierSet := buildSet(state.Suppliers)
	airlineSet := buildSet(state.Airlines)

	result := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if matches(o, state, categorySet, supplierSet, airlineSet) {
			result = append(result, o)
		}
	}
	return result
}

func matches(o models.Offer, state *models.FilterState, categorySet, supplierSet, airlineSet map[string]struct{}) bool {
	if state.PriceMin != nil && o.Price.Amount < *state.PriceMin {
		return false
	}
	if state.PriceMax != nil && o.Price.Amount > *state.PriceMax {
		return false
	}

	// Unknown duration reads as 0, so it passes whenever the requested
	// range covers 0.
	d := o.DurationMinutes()
	if state.DurationMin != nil && d < *state.DurationMin {
		return false
	}
	if state.DurationMax != nil && d > *state.DurationMax {
		return false
	}

	if len(categorySet) > 0 && !hasCategory(o, categorySet) {
		return false
	}
	if len(supplierSet) > 0 && !hasSupplier(o, supplierSet) {
		return false
	}
	if len(airlineSet) > 0 && !hasAirline(o, airlineSet) {
		return false
	}

	if state.MinRating > 0 && o.RatingAverage() < state.MinRating {
		return false
	}

	switch state.FlightType {
	case models.FlightTypeDirect:
		// A slice with stops disqualifies; offers without slices pass.
		if o.AnySliceWithStops() {
			return false
		}
	case models.FlightTypeWithStops:
		if !o.AnySliceWithStops() {
			return false
		}
	}

	if state.OutboundWindow != nil && !departsWithin(o, 0, state.OutboundWindow) {
		return false
	}
	if state.ReturnWindow != nil && !departsWithin(o, 1, state.ReturnWindow) {
		return false
	}

	if state.InstantConfirmation && (o.Activity == nil || !o.Activity.InstantConfirmation) {
		return false
	}
	if state.FreeCancellation && (o.Activity == nil || !o.Activity.FreeCancellation) {
		return false
	}

	return true
}

// departsWithin checks the wall clock of the first segment departure of the
// given slice against the window. An offer missing that slice is excluded:
// a return window can only be satisfied by a round trip.
func departsWithin(o models.Offer, sliceIdx int, window *models.TimeWindow) bool {
	if o.Flight == nil || len(o.Flight.Slices) <= sliceIdx {
		return false
	}
	slice := o.Flight.Slices[sliceIdx]
	if len(slice.Segments) == 0 {
		return false
	}

	departure := timeparse.MinutesOfDay(slice.Segments[0].DepartingAt)

	// JSON decoding already rejects malformed bounds; a window built in code
	// with an unparsable bound matches nothing rather than everything.
	from, err := timeparse.ParseClock(window.From)
	if err != nil {
		return false
	}
	to, err := timeparse.ParseClock(window.To)
	if err != nil {
		return false
	}
	return departure >= from && departure <= to
}

func hasCategory(o models.Offer, set map[string]struct{}) bool {
	if o.Activity == nil {
		return false
	}
	for _, c := range o.Activity.Categories {
		if _, ok := set[strings.ToUpper(c.ID)]; ok {
			return true
		}
	}
	return false
}

func hasSupplier(o models.Offer, set map[string]struct{}) bool {
	if o.Activity == nil {
		return false
	}
	_, ok := set[strings.ToUpper(o.Activity.Supplier)]
	return ok
}

func hasAirline(o models.Offer, set map[string]struct{}) bool {
	for _, name := range o.CarrierNames() {
		if _, ok := set[strings.ToUpper(name)]; ok {
			return true
		}
	}
	return false
}

func buildSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToUpper(v)] = struct{}{}
	}
	return set
}
