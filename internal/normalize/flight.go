// Package normalize maps raw provider payloads into canonical offers.
// Malformed records are dropped one at a time; a bad record never fails the
// batch.
package normalize

import (
	"strconv"

	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/providers"
	"github.com/voyagerhq/tripsearch/internal/timeparse"
	"github.com/voyagerhq/tripsearch/pkg/currency"
)

// Flights converts a raw flight payload into canonical offers.
func Flights(payload *providers.FlightPayload) []models.Offer {
	if payload == nil {
		return []models.Offer{}
	}

	offers := make([]models.Offer, 0, len(payload.Offers))
	for _, raw := range payload.Offers {
		offer, ok := flightOffer(raw)
		if !ok {
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

func flightOffer(raw providers.RawFlightOffer) (models.Offer, bool) {
	if raw.ID == "" {
		return models.Offer{}, false
	}
	amount, err := strconv.ParseFloat(raw.TotalAmount, 64)
	if err != nil || amount <= 0 {
		return models.Offer{}, false
	}
	if len(raw.Slices) == 0 {
		return models.Offer{}, false
	}

	flight := &models.FlightOffer{
		Slices: make([]models.Slice, 0, len(raw.Slices)),
	}
	if expires, err := timeparse.ParseTimestamp(raw.ExpiresAt); err == nil {
		flight.ExpiresAt = expires
	}

	for _, rawSlice := range raw.Slices {
		slice, ok := flightSlice(rawSlice)
		if !ok {
			return models.Offer{}, false
		}
		flight.Slices = append(flight.Slices, slice)
	}

	return models.Offer{
		ID:   raw.ID,
		Kind: models.OfferKindFlight,
		Price: models.Money{
			Amount:    amount,
			Currency:  raw.TotalCurrency,
			Formatted: currency.Format(amount, raw.TotalCurrency),
		},
		Flight: flight,
	}, true
}

func flightSlice(raw providers.RawSlice) (models.Slice, bool) {
	if len(raw.Segments) == 0 {
		return models.Slice{}, false
	}

	// Segment order is preserved exactly as the provider sent it.
	segments := make([]models.Segment, 0, len(raw.Segments))
	totalMinutes := 0
	for _, rawSeg := range raw.Segments {
		seg, ok := flightSegment(rawSeg)
		if !ok {
			return models.Slice{}, false
		}
		segments = append(segments, seg)
		totalMinutes += seg.Duration.TotalMinutes
	}

	// Prefer the provider's own slice duration; fall back to the segment sum.
	sliceMinutes, ok := ParseISODuration(raw.Duration)
	if !ok {
		sliceMinutes = totalMinutes
	}

	stops := len(segments) - 1
	return models.Slice{
		Origin:      place(raw.Origin),
		Destination: place(raw.Destination),
		Segments:    segments,
		Duration: models.Duration{
			TotalMinutes: sliceMinutes,
			Formatted:    FormatMinutes(sliceMinutes),
		},
		HasStops: stops > 0,
		Stops:    stops,
	}, true
}

func flightSegment(raw providers.RawSegment) (models.Segment, bool) {
	departing, err := timeparse.ParseTimestamp(raw.DepartingAt)
	if err != nil {
		return models.Segment{}, false
	}
	arriving, err := timeparse.ParseTimestamp(raw.ArrivingAt)
	if err != nil {
		return models.Segment{}, false
	}

	// When the provider omits the segment duration, derive it from the
	// scheduled times; it must not stay zero when they differ.
	minutes, ok := ParseISODuration(raw.Duration)
	if !ok {
		minutes = int(arriving.Sub(departing).Minutes())
		if minutes < 0 {
			minutes = 0
		}
	}

	var aircraft *string
	if raw.Aircraft != nil && raw.Aircraft.Name != "" {
		name := raw.Aircraft.Name
		aircraft = &name
	}

	cabin := models.CabinEconomy
	if len(raw.Passengers) > 0 && raw.Passengers[0].CabinClass != "" {
		cabin = models.CabinClass(raw.Passengers[0].CabinClass)
	}

	return models.Segment{
		CarrierName:  raw.OperatingCarrier.Name,
		CarrierCode:  raw.OperatingCarrier.IATACode,
		FlightNumber: raw.CarrierFlightNumber,
		Origin:       place(raw.Origin),
		Destination:  place(raw.Destination),
		DepartingAt:  departing,
		ArrivingAt:   arriving,
		Duration: models.Duration{
			TotalMinutes: minutes,
			Formatted:    FormatMinutes(minutes),
		},
		Aircraft:   aircraft,
		CabinClass: cabin,
	}, true
}

func place(raw providers.RawPlace) models.Location {
	return models.Location{
		Code: raw.IATACode,
		Name: raw.Name,
		City: raw.CityName,
	}
}
