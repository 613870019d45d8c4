// Package meta derives aggregate facts from a normalized offer set. The
// result seeds the filter controls and is computed once per offer set; it is
// not recomputed when the filter state changes.
package meta

import (
	"sort"
	"strings"

	"github.com/voyagerhq/tripsearch/internal/models"
)

// Compute scans the offer set once and returns its metadata. An empty set
// yields zero ranges and empty facet lists.
func Compute(offers []models.Offer) models.Metadata {
	md := models.Metadata{TotalResults: len(offers)}
	if len(offers) == 0 {
		return md
	}

	pricesSeen := false
	durationsSeen := false
	airlineSeen := make(map[string]string)
	supplierSeen := make(map[string]string)
	categorySeen := make(map[string]models.Category)

	for _, o := range offers {
		if !pricesSeen || o.Price.Amount < md.PriceRange.Min {
			md.PriceRange.Min = o.Price.Amount
		}
		if !pricesSeen || o.Price.Amount > md.PriceRange.Max {
			md.PriceRange.Max = o.Price.Amount
		}
		pricesSeen = true

		// Offers with unknown duration stay in the set but are excluded
		// from the range.
		if d := o.DurationMinutes(); d > 0 {
			if !durationsSeen || d < md.DurationRange.Min {
				md.DurationRange.Min = d
			}
			if !durationsSeen || d > md.DurationRange.Max {
				md.DurationRange.Max = d
			}
			durationsSeen = true
		}

		for _, name := range o.CarrierNames() {
			airlineSeen[strings.ToUpper(name)] = name
		}

		if o.Flight != nil && o.AllSlicesDirect() {
			md.HasDirect = true
		}

		if o.Activity != nil {
			if o.Activity.Supplier != "" {
				supplierSeen[strings.ToUpper(o.Activity.Supplier)] = o.Activity.Supplier
			}
			for _, c := range o.Activity.Categories {
				categorySeen[c.ID] = c
			}
			if o.Activity.InstantConfirmation {
				md.HasInstantConfirmation = true
			}
			if o.Activity.FreeCancellation {
				md.HasFreeCancellation = true
			}
		}
	}

	md.Airlines = sortedValues(airlineSeen)
	md.Suppliers = sortedValues(supplierSeen)

	for _, c := range categorySeen {
		md.Categories = append(md.Categories, c)
	}
	sort.Slice(md.Categories, func(i, j int) bool {
		return md.Categories[i].Name < md.Categories[j].Name
	})

	return md
}

func sortedValues(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	values := make([]string, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
