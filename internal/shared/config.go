package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	TripBase     string
	Country      string
	FetchTimeout time.Duration
	FetchRPS     int
	Workers      int
	PerRegionCap int
	MinDelay     time.Duration
	MaxDelay     time.Duration
	OutputPath   string
}

func Load() Config {
	// a local .env is optional
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		TripBase:     env("TRIP_BASE_URL", "https://www.trip.com"),
		Country:      env("COUNTRY", "Cambodia"),
		FetchTimeout: time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		FetchRPS:     atoi("FETCH_RPS", 1),
		Workers:      atoi("SCRAPE_WORKERS", 1),
		PerRegionCap: atoi("PER_REGION_CAP", 20),
		MinDelay:     time.Duration(atoi("DELAY_MIN_MS", 1000)) * time.Millisecond,
		MaxDelay:     time.Duration(atoi("DELAY_MAX_MS", 3000)) * time.Millisecond,
		OutputPath:   env("OUTPUT_PATH", "scraped_hotels.json"),
	}
	if c.MaxDelay < c.MinDelay {
		log.Warn().Dur("min", c.MinDelay).Dur("max", c.MaxDelay).Msg("DELAY_MAX_MS below DELAY_MIN_MS, using min")
		c.MaxDelay = c.MinDelay
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
