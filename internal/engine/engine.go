// Package engine composes the search pipeline: validate the request,
// rate-limit and call the provider adapter once, normalize the payload (or
// synthesize a degraded fallback set), and derive metadata. Every path
// returns an outcome value; nothing here panics or escalates.
package engine

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/voyagerhq/tripsearch/internal/fallback"
	"github.com/voyagerhq/tripsearch/internal/meta"
	"github.com/voyagerhq/tripsearch/internal/models"
	"github.com/voyagerhq/tripsearch/internal/normalize"
	"github.com/voyagerhq/tripsearch/internal/providers"
	"github.com/voyagerhq/tripsearch/internal/ratelimit"
)

type Config struct {
	// Timeout bounds the single provider attempt. On expiry the outcome is
	// degraded, exactly as if the provider had answered with an outage.
	Timeout time.Duration

	RateLimiter *ratelimit.Limiter

	// Now is the injected clock all date validation runs against.
	Now func() time.Time
}

type Engine struct {
	flights    providers.FlightProvider
	activities providers.ActivityProvider
	config     Config
}

func New(flights providers.FlightProvider, activities providers.ActivityProvider, config Config) *Engine {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Engine{
		flights:    flights,
		activities: activities,
		config:     config,
	}
}

// SearchFlights runs the full pipeline for a flight request.
func (e *Engine) SearchFlights(ctx context.Context, req models.FlightSearchRequest) models.SearchOutcome {
	if err := req.Validate(e.config.Now()); err != nil {
		return rejected(err.Error())
	}

	payload, err := e.callFlights(ctx, req)
	if err != nil {
		if outcome, ok := rejectedByProvider(err); ok {
			return outcome
		}
		log.Printf("flight provider unavailable, synthesizing fallback offers: %v", err)
		return degraded(fallback.Flights(req), "flight inventory is temporarily unavailable; showing estimated offers")
	}

	offers := normalize.Flights(payload)
	return success(offers)
}

// SearchActivities runs the full pipeline for an activity request.
func (e *Engine) SearchActivities(ctx context.Context, req models.ActivitySearchRequest) models.SearchOutcome {
	if err := req.Validate(e.config.Now()); err != nil {
		return rejected(err.Error())
	}

	payload, err := e.callActivities(ctx, req)
	if err != nil {
		if outcome, ok := rejectedByProvider(err); ok {
			return outcome
		}
		log.Printf("activity provider unavailable, synthesizing fallback offers: %v", err)
		return degraded(fallback.Activities(req), "activity inventory is temporarily unavailable; showing estimated offers")
	}

	offers := normalize.Activities(payload)
	return success(offers)
}

// SearchTrip runs the flight and activity searches concurrently for a
// combined destination view. Each half degrades or rejects independently.
func (e *Engine) SearchTrip(ctx context.Context, flightReq models.FlightSearchRequest, activityReq models.ActivitySearchRequest) (models.SearchOutcome, models.SearchOutcome) {
	var flightOutcome, activityOutcome models.SearchOutcome

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		flightOutcome = e.SearchFlights(gctx, flightReq)
		return nil
	})
	g.Go(func() error {
		activityOutcome = e.SearchActivities(gctx, activityReq)
		return nil
	})
	_ = g.Wait()

	return flightOutcome, activityOutcome
}

func (e *Engine) callFlights(ctx context.Context, req models.FlightSearchRequest) (*providers.FlightPayload, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	if e.config.RateLimiter != nil {
		if err := e.config.RateLimiter.Wait(callCtx, e.flights.Name()); err != nil {
			return nil, providers.NewUnavailable(e.flights.Name(), err)
		}
	}
	return e.flights.Search(callCtx, req)
}

func (e *Engine) callActivities(ctx context.Context, req models.ActivitySearchRequest) (*providers.ActivityPayload, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	if e.config.RateLimiter != nil {
		if err := e.config.RateLimiter.Wait(callCtx, e.activities.Name()); err != nil {
			return nil, providers.NewUnavailable(e.activities.Name(), err)
		}
	}
	return e.activities.Search(callCtx, req)
}

// rejectedByProvider translates a provider parameter rejection into a
// Rejected outcome. Everything else (timeouts, 5xx, missing credentials)
// falls through to the degraded path.
func rejectedByProvider(err error) (models.SearchOutcome, bool) {
	var perr *providers.ProviderError
	if errors.As(err, &perr) && perr.Kind == providers.KindRejected {
		return rejected(perr.Message), true
	}
	return models.SearchOutcome{}, false
}

func success(offers []models.Offer) models.SearchOutcome {
	return models.SearchOutcome{
		Status:   models.StatusSuccess,
		Offers:   offers,
		Metadata: meta.Compute(offers),
	}
}

func degraded(offers []models.Offer, reason string) models.SearchOutcome {
	return models.SearchOutcome{
		Status:   models.StatusDegraded,
		Offers:   offers,
		Metadata: meta.Compute(offers),
		Reason:   reason,
	}
}

func rejected(message string) models.SearchOutcome {
	return models.SearchOutcome{
		Status:      models.StatusRejected,
		UserMessage: message,
	}
}
