package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/voyagerhq/tripsearch/internal/engine"
	"github.com/voyagerhq/tripsearch/internal/handler"
	"github.com/voyagerhq/tripsearch/internal/providers"
	"github.com/voyagerhq/tripsearch/internal/ratelimit"
	"github.com/voyagerhq/tripsearch/internal/resultstore"
)

type Config struct {
	Port          string
	SearchTimeout time.Duration
	DuffelToken   string
	DuffelBaseURL string
	GYGAPIKey     string
	GYGBaseURL    string
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	SessionTTL    time.Duration
}

func main() {
	godotenv.Load()
	cfg := loadConfig()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	flightProvider := providers.NewDuffelProvider(providers.DuffelConfig{
		Token:   cfg.DuffelToken,
		BaseURL: cfg.DuffelBaseURL,
	})
	activityProvider := providers.NewGetYourGuideProvider(providers.GetYourGuideConfig{
		APIKey:  cfg.GYGAPIKey,
		BaseURL: cfg.GYGBaseURL,
	})

	rateLimiter := ratelimit.NewWithDefaults()
	rateLimiter.SetLimit(flightProvider.Name(), 5, 10)
	rateLimiter.SetLimit(activityProvider.Name(), 10, 20)

	eng := engine.New(flightProvider, activityProvider, engine.Config{
		Timeout:     cfg.SearchTimeout,
		RateLimiter: rateLimiter,
	})

	var store resultstore.Store
	if cfg.RedisEnabled {
		redisStore, err := resultstore.NewRedisStore(resultstore.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.SessionTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
		log.Printf("Redis result store enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.SessionTTL)
	} else {
		store = resultstore.NewMemoryStore(cfg.SessionTTL)
		log.Println("Using in-memory result store")
	}
	defer store.Close()

	searchHandler := handler.NewSearchHandler(eng, store)

	api := e.Group("/api/v1")
	api.POST("/flights/search", searchHandler.Flights)
	api.POST("/activities/search", searchHandler.Activities)
	api.POST("/search/trip", searchHandler.Trip)
	api.POST("/results/:id", searchHandler.Refine)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting travel search server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		SearchTimeout: getEnvDuration("SEARCH_TIMEOUT", 10*time.Second),
		DuffelToken:   getEnv("DUFFEL_API_TOKEN", ""),
		DuffelBaseURL: getEnv("DUFFEL_BASE_URL", ""),
		GYGAPIKey:     getEnv("GYG_API_KEY", ""),
		GYGBaseURL:    getEnv("GYG_BASE_URL", ""),
		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 30*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
