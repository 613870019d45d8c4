package providers

import (
	"context"
	"fmt"

	"github.com/voyagerhq/tripsearch/internal/models"
)

// FlightProvider is the upstream flight supply contract. Search performs a
// single attempt; retry policy, if any, belongs to the caller.
type FlightProvider interface {
	Name() string
	Search(ctx context.Context, req models.FlightSearchRequest) (*FlightPayload, error)
}

// ActivityProvider is the upstream activity supply contract.
type ActivityProvider interface {
	Name() string
	Search(ctx context.Context, req models.ActivitySearchRequest) (*ActivityPayload, error)
}

// ErrorKind separates provider failures the user can act on from outages the
// engine absorbs into a degraded result.
type ErrorKind int

const (
	// KindRejected means the provider understood and refused the request.
	KindRejected ErrorKind = iota
	// KindUnavailable means the provider could not be reached or answered
	// with a server error; the engine falls back to synthesized offers.
	KindUnavailable
)

type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewRejected(provider, message string, status int) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     KindRejected,
		Message:  message,
		Status:   status,
	}
}

func NewUnavailable(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     KindUnavailable,
		Err:      err,
	}
}
