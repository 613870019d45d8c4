package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/voyagerhq/tripsearch/internal/models"
)

// FlightPayload is the raw offer-request response of the flight supplier,
// decoded but not yet normalized.
type FlightPayload struct {
	Offers []RawFlightOffer `json:"offers"`
}

type RawFlightOffer struct {
	ID            string     `json:"id"`
	TotalAmount   string     `json:"total_amount"`
	TotalCurrency string     `json:"total_currency"`
	ExpiresAt     string     `json:"expires_at"`
	Slices        []RawSlice `json:"slices"`
}

type RawSlice struct {
	Origin      RawPlace     `json:"origin"`
	Destination RawPlace     `json:"destination"`
	Duration    string       `json:"duration,omitempty"`
	Segments    []RawSegment `json:"segments"`
}

type RawPlace struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	CityName string `json:"city_name,omitempty"`
}

type RawSegment struct {
	OperatingCarrier    RawCarrier            `json:"operating_carrier"`
	CarrierFlightNumber string                `json:"operating_carrier_flight_number"`
	Origin              RawPlace              `json:"origin"`
	Destination         RawPlace              `json:"destination"`
	DepartingAt         string                `json:"departing_at"`
	ArrivingAt          string                `json:"arriving_at"`
	Duration            string                `json:"duration,omitempty"`
	Aircraft            *RawAircraft          `json:"aircraft,omitempty"`
	Passengers          []RawSegmentPassenger `json:"passengers,omitempty"`
}

type RawCarrier struct {
	Name     string `json:"name"`
	IATACode string `json:"iata_code"`
}

type RawAircraft struct {
	Name string `json:"name"`
}

type RawSegmentPassenger struct {
	CabinClass string `json:"cabin_class"`
}

// DuffelProvider is a thin shim over the Duffel offers API. It performs one
// attempt per search and reports every failure as a typed ProviderError.
type DuffelProvider struct {
	token   string
	baseURL string
	client  *http.Client
}

type DuffelConfig struct {
	Token   string
	BaseURL string
	Client  *http.Client
}

const duffelDefaultBaseURL = "https://api.duffel.com"

func NewDuffelProvider(cfg DuffelConfig) *DuffelProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = duffelDefaultBaseURL
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	return &DuffelProvider{
		token:   cfg.Token,
		baseURL: cfg.BaseURL,
		client:  cfg.Client,
	}
}

func (p *DuffelProvider) Name() string {
	return "duffel"
}

type duffelSliceRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type duffelPassengerRequest struct {
	Type string `json:"type,omitempty"`
	Age  *int   `json:"age,omitempty"`
}

type duffelOfferRequest struct {
	Slices     []duffelSliceRequest     `json:"slices"`
	Passengers []duffelPassengerRequest `json:"passengers"`
	CabinClass string                   `json:"cabin_class"`
}

type duffelEnvelope struct {
	Data FlightPayload `json:"data"`
}

type duffelErrorEnvelope struct {
	Errors []struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (p *DuffelProvider) Search(ctx context.Context, req models.FlightSearchRequest) (*FlightPayload, error) {
	if p.token == "" {
		return nil, NewUnavailable(p.Name(), fmt.Errorf("api token is not configured"))
	}

	slices := []duffelSliceRequest{{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
	}}
	if req.IsRoundTrip() {
		slices = append(slices, duffelSliceRequest{
			Origin:        req.Destination,
			Destination:   req.Origin,
			DepartureDate: *req.ReturnDate,
		})
	}

	passengers := make([]duffelPassengerRequest, len(req.Passengers))
	for i, pax := range req.Passengers {
		passengers[i] = duffelPassengerRequest{Type: pax.Type, Age: pax.Age}
	}

	body, err := json.Marshal(struct {
		Data duffelOfferRequest `json:"data"`
	}{Data: duffelOfferRequest{
		Slices:     slices,
		Passengers: passengers,
		CabinClass: string(req.CabinClass),
	}})
	if err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}

	url := p.baseURL + "/air/offer_requests?return_offers=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.token)
	httpReq.Header.Set("Duffel-Version", "v2")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, NewUnavailable(p.Name(), fmt.Errorf("upstream returned %d", resp.StatusCode))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewUnavailable(p.Name(), fmt.Errorf("credentials rejected with %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return nil, NewRejected(p.Name(), extractDuffelMessage(raw), resp.StatusCode)
	}

	var envelope duffelEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, NewUnavailable(p.Name(), err)
	}

	return &envelope.Data, nil
}

func extractDuffelMessage(raw []byte) string {
	var envelope duffelErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Errors) > 0 {
		if envelope.Errors[0].Message != "" {
			return envelope.Errors[0].Message
		}
		return envelope.Errors[0].Title
	}
	return "the flight search could not be completed for these criteria"
}
