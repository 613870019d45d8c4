package models

import (
	"time"
)

const (
	// MaxPassengers is the upstream limit on travellers per flight search.
	MaxPassengers = 9

	// MinLeadTimeDays is the minimum number of calendar days between the
	// current date and a requested departure.
	MinLeadTimeDays = 2

	DateLayout = "2006-01-02"
)

// Passenger is either an explicit adult or an age-typed traveller. A
// passenger with an age under 2 is an infant and travels held by an adult.
type Passenger struct {
	Type string `json:"type,omitempty"`
	Age  *int   `json:"age,omitempty"`
}

func (p Passenger) IsAdult() bool {
	if p.Type == "adult" {
		return true
	}
	return p.Age != nil && *p.Age >= 18
}

func (p Passenger) IsInfant() bool {
	return p.Type != "adult" && p.Age != nil && *p.Age < 2
}

type FlightSearchRequest struct {
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination"`
	DepartureDate string      `json:"departure_date"`
	ReturnDate    *string     `json:"return_date,omitempty"`
	Passengers    []Passenger `json:"passengers"`
	CabinClass    CabinClass  `json:"cabin_class,omitempty"`
}

// Validate checks structural and composition invariants against the supplied
// clock. It never corrects the request; every violation is reported.
func (r *FlightSearchRequest) Validate(now time.Time) error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if len(r.Passengers) == 0 {
		return ErrNoPassengers
	}
	if len(r.Passengers) > MaxPassengers {
		return ErrTooManyPassengers
	}

	adults, infants := 0, 0
	for _, p := range r.Passengers {
		if p.IsAdult() {
			adults++
		} else if p.IsInfant() {
			infants++
		}
	}
	if adults == 0 {
		return ErrNoAdult
	}
	if infants > adults {
		return ErrTooManyInfants
	}

	if r.CabinClass == "" {
		r.CabinClass = CabinEconomy
	}

	dep, err := time.Parse(DateLayout, r.DepartureDate)
	if err != nil {
		return ErrBadDepartureDate
	}
	earliest := truncateToDay(now).AddDate(0, 0, MinLeadTimeDays)
	if dep.Before(earliest) {
		return ErrDepartureTooSoon
	}

	if r.ReturnDate != nil && *r.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, *r.ReturnDate)
		if err != nil {
			return ErrBadReturnDate
		}
		if !ret.After(dep) {
			return ErrReturnBeforeDeparture
		}
	}

	return nil
}

// IsRoundTrip reports whether a return leg was requested.
func (r *FlightSearchRequest) IsRoundTrip() bool {
	return r.ReturnDate != nil && *r.ReturnDate != ""
}

type ActivitySearchRequest struct {
	Destination  string   `json:"destination"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	Participants int      `json:"participants"`
	Categories   []string `json:"categories,omitempty"`
	SortBy       SortKey  `json:"sort_by,omitempty"`
}

func (r *ActivitySearchRequest) Validate(now time.Time) error {
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.Participants < 1 {
		return ErrNoParticipants
	}

	var start, end time.Time
	if r.StartDate != nil && *r.StartDate != "" {
		t, err := time.Parse(DateLayout, *r.StartDate)
		if err != nil {
			return ErrBadStartDate
		}
		if t.Before(truncateToDay(now)) {
			return ErrStartDateInPast
		}
		start = t
	}
	if r.EndDate != nil && *r.EndDate != "" {
		t, err := time.Parse(DateLayout, *r.EndDate)
		if err != nil {
			return ErrBadEndDate
		}
		end = t
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return ErrEndBeforeStart
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "origin is required"
	ErrMissingDestination    ValidationError = "destination is required"
	ErrMissingDepartureDate  ValidationError = "departure_date is required"
	ErrNoPassengers          ValidationError = "at least one passenger is required"
	ErrTooManyPassengers     ValidationError = "a search is limited to 9 passengers"
	ErrNoAdult               ValidationError = "at least one adult passenger is required"
	ErrTooManyInfants        ValidationError = "each infant must be accompanied by an adult"
	ErrBadDepartureDate      ValidationError = "departure_date must be formatted as YYYY-MM-DD"
	ErrDepartureTooSoon      ValidationError = "departure must be at least 2 days from today"
	ErrBadReturnDate         ValidationError = "return_date must be formatted as YYYY-MM-DD"
	ErrReturnBeforeDeparture ValidationError = "return_date must be after departure_date"
	ErrNoParticipants        ValidationError = "at least one participant is required"
	ErrBadStartDate          ValidationError = "start_date must be formatted as YYYY-MM-DD"
	ErrStartDateInPast       ValidationError = "start_date must not be in the past"
	ErrBadEndDate            ValidationError = "end_date must be formatted as YYYY-MM-DD"
	ErrEndBeforeStart        ValidationError = "end_date must not be before start_date"
)
