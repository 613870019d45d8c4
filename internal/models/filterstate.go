package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/voyagerhq/tripsearch/internal/timeparse"
)

// SortKey is the closed set of result orderings. Unknown values fail JSON
// decoding instead of silently falling through to a default.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPrice      SortKey = "price"
	SortDuration   SortKey = "duration"
	SortRating     SortKey = "rating"
	SortDeparture  SortKey = "departure"
)

func (k *SortKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch SortKey(s) {
	case "":
		*k = SortPopularity
	case SortPopularity, SortPrice, SortDuration, SortRating, SortDeparture:
		*k = SortKey(s)
	default:
		return fmt.Errorf("unknown sort key %q", s)
	}
	return nil
}

// FlightType narrows flight offers by stop count.
type FlightType string

const (
	FlightTypeAll       FlightType = "all"
	FlightTypeDirect    FlightType = "direct"
	FlightTypeWithStops FlightType = "with_stops"
)

func (t *FlightType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch FlightType(s) {
	case "":
		*t = FlightTypeAll
	case FlightTypeAll, FlightTypeDirect, FlightTypeWithStops:
		*t = FlightType(s)
	default:
		return fmt.Errorf("unknown flight type %q", s)
	}
	return nil
}

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

func (c *CabinClass) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch CabinClass(s) {
	case "":
		*c = CabinEconomy
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		*c = CabinClass(s)
	default:
		return fmt.Errorf("unknown cabin class %q", s)
	}
	return nil
}

// TimeWindow bounds a departure to a wall-clock interval, "HH:MM" inclusive
// on both ends. Provider-local clock, no timezone conversion.
type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Both bounds are required and must be valid clock strings; a window that
// cannot bound anything fails decoding instead of silently matching
// everything.
func (w *TimeWindow) UnmarshalJSON(data []byte) error {
	type plain TimeWindow
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if _, err := timeparse.ParseClock(p.From); err != nil {
		return fmt.Errorf("invalid time window bound %q", p.From)
	}
	if _, err := timeparse.ParseClock(p.To); err != nil {
		return fmt.Errorf("invalid time window bound %q", p.To)
	}
	*w = TimeWindow(p)
	return nil
}

// FilterState is the caller-owned set of filter and sort preferences
// re-applied against one immutable offer set. Nil pointers and empty slices
// mean the corresponding predicate is inactive.
type FilterState struct {
	PriceMin            *float64    `json:"price_min,omitempty"`
	PriceMax            *float64    `json:"price_max,omitempty"`
	DurationMin         *int        `json:"duration_min,omitempty"`
	DurationMax         *int        `json:"duration_max,omitempty"`
	Categories          []string    `json:"categories,omitempty"`
	Suppliers           []string    `json:"suppliers,omitempty"`
	Airlines            []string    `json:"airlines,omitempty"`
	MinRating           float64     `json:"min_rating,omitempty"`
	InstantConfirmation bool        `json:"instant_confirmation,omitempty"`
	FreeCancellation    bool        `json:"free_cancellation,omitempty"`
	FlightType          FlightType  `json:"flight_type,omitempty"`
	OutboundWindow      *TimeWindow `json:"outbound_window,omitempty"`
	ReturnWindow        *TimeWindow `json:"return_window,omitempty"`
	SortBy              SortKey     `json:"sort_by,omitempty"`
}

// Fingerprint identifies this exact filter/sort combination. Any change in
// it invalidates a previously requested page position.
func (f FilterState) Fingerprint() string {
	data, _ := json.Marshal(f)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
