package models

import (
	"strings"
	"time"
)

type OfferKind string

const (
	OfferKindFlight   OfferKind = "flight"
	OfferKindActivity OfferKind = "activity"
)

type Money struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted,omitempty"`
}

type Location struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type Duration struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// Segment is one physical flight operated by a single carrier.
type Segment struct {
	CarrierName  string     `json:"carrier_name"`
	CarrierCode  string     `json:"carrier_code"`
	FlightNumber string     `json:"flight_number"`
	Origin       Location   `json:"origin"`
	Destination  Location   `json:"destination"`
	DepartingAt  time.Time  `json:"departing_at"`
	ArrivingAt   time.Time  `json:"arriving_at"`
	Duration     Duration   `json:"duration"`
	Aircraft     *string    `json:"aircraft,omitempty"`
	CabinClass   CabinClass `json:"cabin_class"`
}

// Slice is one directional leg of an itinerary (outbound or return).
type Slice struct {
	Origin      Location  `json:"origin"`
	Destination Location  `json:"destination"`
	Segments    []Segment `json:"segments"`
	Duration    Duration  `json:"duration"`
	HasStops    bool      `json:"has_stops"`
	Stops       int       `json:"stops"`
}

type FlightOffer struct {
	ExpiresAt time.Time `json:"expires_at"`
	Slices    []Slice   `json:"slices"`
}

type Rating struct {
	Average     float64 `json:"average"`
	ReviewCount int     `json:"review_count"`
}

// ActivityDuration is either a fixed minute count or a min/max range.
// Minutes is zero when only a range is known; all three are zero when the
// provider gave no usable duration at all.
type ActivityDuration struct {
	Minutes    int    `json:"minutes,omitempty"`
	MinMinutes int    `json:"min_minutes,omitempty"`
	MaxMinutes int    `json:"max_minutes,omitempty"`
	Formatted  string `json:"formatted,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ActivityOffer struct {
	Title               string           `json:"title"`
	Summary             string           `json:"summary,omitempty"`
	Description         string           `json:"description,omitempty"`
	Supplier            string           `json:"supplier"`
	Location            Location         `json:"location"`
	Images              []string         `json:"images"`
	OriginalPrice       *Money           `json:"original_price,omitempty"`
	DiscountPercent     *int             `json:"discount_percent,omitempty"`
	Rating              Rating           `json:"rating"`
	Duration            ActivityDuration `json:"duration"`
	Tags                []string         `json:"tags,omitempty"`
	Categories          []Category       `json:"categories,omitempty"`
	InstantConfirmation bool             `json:"instant_confirmation"`
	FreeCancellation    bool             `json:"free_cancellation"`
}

// Offer is the canonical bookable item every pipeline stage operates on.
// Exactly one of Flight/Activity is set, matching Kind. Price is the total
// price for flights and the from-price for activities.
type Offer struct {
	ID       string         `json:"id"`
	Kind     OfferKind      `json:"kind"`
	Price    Money          `json:"price"`
	Flight   *FlightOffer   `json:"flight,omitempty"`
	Activity *ActivityOffer `json:"activity,omitempty"`
}

// DurationMinutes returns the representative duration used by the metadata
// and filter stages: slice-summed minutes for flights, primary minutes for
// activities. Zero means unknown.
func (o Offer) DurationMinutes() int {
	switch {
	case o.Flight != nil:
		total := 0
		for _, s := range o.Flight.Slices {
			total += s.Duration.TotalMinutes
		}
		return total
	case o.Activity != nil:
		if o.Activity.Duration.Minutes > 0 {
			return o.Activity.Duration.Minutes
		}
		return o.Activity.Duration.MinMinutes
	}
	return 0
}

func (o Offer) RatingAverage() float64 {
	if o.Activity != nil {
		return o.Activity.Rating.Average
	}
	return 0
}

func (o Offer) ReviewCount() int {
	if o.Activity != nil {
		return o.Activity.Rating.ReviewCount
	}
	return 0
}

// OutboundDeparture returns the scheduled departure of the first segment of
// the outbound slice.
func (o Offer) OutboundDeparture() (time.Time, bool) {
	if o.Flight == nil || len(o.Flight.Slices) == 0 || len(o.Flight.Slices[0].Segments) == 0 {
		return time.Time{}, false
	}
	return o.Flight.Slices[0].Segments[0].DepartingAt, true
}

// CarrierNames lists the distinct carriers operating any segment of the
// offer, in first-seen order.
func (o Offer) CarrierNames() []string {
	if o.Flight == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, s := range o.Flight.Slices {
		for _, seg := range s.Segments {
			key := strings.ToUpper(seg.CarrierName)
			if seg.CarrierName != "" && !seen[key] {
				seen[key] = true
				names = append(names, seg.CarrierName)
			}
		}
	}
	return names
}

// AllSlicesDirect reports whether every slice of a flight offer is nonstop.
func (o Offer) AllSlicesDirect() bool {
	if o.Flight == nil {
		return false
	}
	for _, s := range o.Flight.Slices {
		if s.HasStops {
			return false
		}
	}
	return true
}

// AnySliceWithStops reports whether at least one slice has a connection.
func (o Offer) AnySliceWithStops() bool {
	if o.Flight == nil {
		return false
	}
	for _, s := range o.Flight.Slices {
		if s.HasStops {
			return true
		}
	}
	return false
}
