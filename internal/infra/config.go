package infra

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects every knob the pipeline reads from the environment.
// Defaults are tuned so the service runs with no configuration at all,
// serving the embedded offline dataset.
type Config struct {
	Port string

	PostgresURL string
	RedisURL    string

	PlacesAPIKey  string
	PlacesBaseURL string

	MapboxToken   string
	MapboxBaseURL string

	WeatherBaseURL string

	MLBaseURL string

	PlacesTimeout  time.Duration
	RoutingTimeout time.Duration
	WeatherTimeout time.Duration
	MLTimeout      time.Duration

	BreakerThreshold int
	BreakerCooldown  time.Duration

	ShortlistSize int
	MaxResults    int

	CandidateTTL time.Duration
	TravelTTL    time.Duration
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	return Config{
		Port: envOr("PORT", "8080"),

		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		PlacesAPIKey:  os.Getenv("PLACES_API_KEY"),
		PlacesBaseURL: envOr("PLACES_BASE_URL", "https://places.googleapis.com"),

		MapboxToken:   os.Getenv("MAPBOX_ACCESS_TOKEN"),
		MapboxBaseURL: envOr("MAPBOX_BASE_URL", "https://api.mapbox.com"),

		WeatherBaseURL: envOr("WEATHER_BASE_URL", "https://api.open-meteo.com"),

		MLBaseURL: os.Getenv("ML_BASE_URL"),

		PlacesTimeout:  envDuration("PLACES_TIMEOUT", 4*time.Second),
		RoutingTimeout: envDuration("ROUTING_TIMEOUT", 3*time.Second),
		WeatherTimeout: envDuration("WEATHER_TIMEOUT", 3*time.Second),
		MLTimeout:      envDuration("ML_TIMEOUT", 2*time.Second),

		BreakerThreshold: envInt("BREAKER_THRESHOLD", 3),
		BreakerCooldown:  envDuration("BREAKER_COOLDOWN", time.Minute),

		ShortlistSize: envInt("SHORTLIST_SIZE", 10),
		MaxResults:    envInt("MAX_RESULTS", 5),

		CandidateTTL: envDuration("CANDIDATE_CACHE_TTL", 10*time.Minute),
		TravelTTL:    envDuration("TRAVEL_CACHE_TTL", time.Hour),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
