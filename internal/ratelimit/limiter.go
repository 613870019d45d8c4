// Package ratelimit bounds the rate of outbound calls per supply provider.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

// Limiter keeps one token bucket per provider name, created lazily with the
// default config unless a provider-specific limit was set.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

func New(defaults Config) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

func NewWithDefaults() *Limiter {
	return New(DefaultConfig())
}

func (l *Limiter) SetLimit(provider string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[provider] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the provider's bucket permits a call or ctx is done.
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	return l.limiter(provider).Wait(ctx)
}

func (l *Limiter) limiter(provider string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[provider]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok = l.limiters[provider]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[provider] = limiter
	return limiter
}
