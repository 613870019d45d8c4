// Package fallback synthesizes a small deterministic offer set when the
// upstream provider is unreachable, so the metadata, filter and sort stages
// always receive well-formed, non-degenerate input. Results built from this
// package are tagged degraded at the engine boundary; they are never passed
// off as real inventory.
package fallback

import (
	"fmt"
	"time"

	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/normalize"
	"github.com/voyagerhq/tripsearch/pkg/currency"
)

type flightSeed struct {
	carrierName string
	carrierCode string
	number      string
	price       float64
	minutes     int
	stops       int
	depClock    string
	aircraft    string
}

var flightSeeds = []flightSeed{
	{"Aurora Airlines", "AU", "AU412", 129, 135, 0, "08:15", "Airbus A320neo"},
	{"Pacific Wings", "PW", "PW77", 189.5, 225, 1, "12:40", "Boeing 737-800"},
	{"Northline", "NL", "NL903", 249, 340, 2, "18:05", "Embraer E195"},
}

// Flights produces three plausible itineraries for the requested route with
// a fixed price, duration and stop spread (one direct, one 1-stop, one
// 2-stop) so every downstream filter stays exercisable.
func Flights(req models.FlightSearchRequest) []models.Offer {
	depDate, err := time.Parse(models.DateLayout, req.DepartureDate)
	if err != nil {
		depDate = time.Now().AddDate(0, 0, models.MinLeadTimeDays)
	}

	offers := make([]models.Offer, 0, len(flightSeeds))
	for i, seed := range flightSeeds {
		slices := []models.Slice{
			buildSlice(seed, req.Origin, req.Destination, depDate),
		}
		if req.IsRoundTrip() {
			if retDate, err := time.Parse(models.DateLayout, *req.ReturnDate); err == nil {
				slices = append(slices, buildSlice(seed, req.Destination, req.Origin, retDate))
			}
		}

		price := seed.price * float64(len(slices))
		offers = append(offers, models.Offer{
			ID:   fmt.Sprintf("fallback-flight-%d", i+1),
			Kind: models.OfferKindFlight,
			Price: models.Money{
				Amount:    price,
				Currency:  "EUR",
				Formatted: currency.Format(price, "EUR"),
			},
			Flight: &models.FlightOffer{
				ExpiresAt: depDate.Add(-24 * time.Hour),
				Slices:    slices,
			},
		})
	}
	return offers
}

func buildSlice(seed flightSeed, origin, destination string, date time.Time) models.Slice {
	clock, _ := time.Parse("15:04", seed.depClock)
	departing := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)

	segCount := seed.stops + 1
	segMinutes := seed.minutes / segCount
	aircraft := seed.aircraft

	// Fixed connection points keep the synthetic itineraries deterministic.
	viaPoints := []string{"FRA", "IST"}

	segments := make([]models.Segment, 0, segCount)
	segStart := departing
	for s := 0; s < segCount; s++ {
		segOrigin := origin
		segDest := destination
		if s > 0 {
			segOrigin = viaPoints[(s-1)%len(viaPoints)]
		}
		if s < segCount-1 {
			segDest = viaPoints[s%len(viaPoints)]
		}
		segments = append(segments, models.Segment{
			CarrierName:  seed.carrierName,
			CarrierCode:  seed.carrierCode,
			FlightNumber: seed.number,
			Origin:       models.Location{Code: segOrigin, Name: segOrigin},
			Destination:  models.Location{Code: segDest, Name: segDest},
			DepartingAt:  segStart,
			ArrivingAt:   segStart.Add(time.Duration(segMinutes) * time.Minute),
			Duration: models.Duration{
				TotalMinutes: segMinutes,
				Formatted:    normalize.FormatMinutes(segMinutes),
			},
			Aircraft:   &aircraft,
			CabinClass: models.CabinEconomy,
		})
		segStart = segStart.Add(time.Duration(segMinutes+45) * time.Minute)
	}

	return models.Slice{
		Origin:      models.Location{Code: origin, Name: origin},
		Destination: models.Location{Code: destination, Name: destination},
		Segments:    segments,
		Duration: models.Duration{
			TotalMinutes: seed.minutes,
			Formatted:    normalize.FormatMinutes(seed.minutes),
		},
		HasStops: seed.stops > 0,
		Stops:    seed.stops,
	}
}

type activitySeed struct {
	title               string
	supplier            string
	price               float64
	rating              float64
	reviews             int
	minutes             int
	rangeMin            int
	rangeMax            int
	category            models.Category
	instantConfirmation bool
	freeCancellation    bool
}

var activitySeeds = []activitySeed{
	{
		title: "%s Old Town Walking Tour", supplier: "Local Legends Tours",
		price: 25, rating: 4.7, reviews: 1204, minutes: 120,
		category:            models.Category{ID: "walking-tours", Name: "Walking Tours"},
		instantConfirmation: true, freeCancellation: true,
	},
	{
		title: "%s Street Food Experience", supplier: "Taste Trails",
		price: 95, rating: 4.5, reviews: 388, rangeMin: 180, rangeMax: 300,
		category:            models.Category{ID: "food-drink", Name: "Food & Drink"},
		instantConfirmation: true,
	},
	{
		title: "Full-Day %s Highlights by Private Car", supplier: "Compass Private Guides",
		price: 350, rating: 4.9, reviews: 76, minutes: 480,
		category: models.Category{ID: "day-trips", Name: "Day Trips"},
	},
}

// Activities produces three plausible products for the requested destination
// with a fixed 25–350 price spread and varied ratings, durations and
// capability flags.
func Activities(req models.ActivitySearchRequest) []models.Offer {
	offers := make([]models.Offer, 0, len(activitySeeds))
	for i, seed := range activitySeeds {
		duration := models.ActivityDuration{}
		if seed.minutes > 0 {
			duration.Minutes = seed.minutes
			duration.Formatted = normalize.FormatMinutes(seed.minutes)
		} else {
			duration.MinMinutes = seed.rangeMin
			duration.MaxMinutes = seed.rangeMax
			duration.Formatted = normalize.FormatMinutesRange(seed.rangeMin, seed.rangeMax)
		}

		offers = append(offers, models.Offer{
			ID:   fmt.Sprintf("fallback-activity-%d", i+1),
			Kind: models.OfferKindActivity,
			Price: models.Money{
				Amount:    seed.price,
				Currency:  "EUR",
				Formatted: currency.Format(seed.price, "EUR"),
			},
			Activity: &models.ActivityOffer{
				Title:    fmt.Sprintf(seed.title, req.Destination),
				Supplier: seed.supplier,
				Location: models.Location{Name: req.Destination},
				Images:   []string{},
				Rating: models.Rating{
					Average:     seed.rating,
					ReviewCount: seed.reviews,
				},
				Duration:            duration,
				Categories:          []models.Category{seed.category},
				InstantConfirmation: seed.instantConfirmation,
				FreeCancellation:    seed.freeCancellation,
			},
		})
	}
	return offers
}
