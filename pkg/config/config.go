package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// FetchTimeout bounds every static fetch and DNS lookup the extraction
	// pipeline performs.
	FetchTimeout time.Duration
	// MaxRedirects caps how many redirect hops a fetch may follow; each hop
	// is re-validated against the blocked address ranges.
	MaxRedirects int
	// RenderNavTimeout bounds headless-browser navigation.
	RenderNavTimeout time.Duration
	// RenderSettleDelay is how long the renderer waits after navigation for
	// client-rendered meta tags to appear. A heuristic, not a guarantee.
	RenderSettleDelay time.Duration
	// WorkerCount is the number of goroutines draining the ingestion queue.
	WorkerCount int
	// MetadataCacheTTL is how long extracted previews stay cached.
	MetadataCacheTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "user"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:       getEnv("POSTGRES_DB", "listmaker"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),

		FetchTimeout:      getEnvAsSeconds("FETCH_TIMEOUT_SECONDS", 10),
		MaxRedirects:      getEnvAsInt("FETCH_MAX_REDIRECTS", 5),
		RenderNavTimeout:  getEnvAsSeconds("RENDER_NAV_TIMEOUT_SECONDS", 10),
		RenderSettleDelay: time.Duration(getEnvAsInt("RENDER_SETTLE_DELAY_MS", 500)) * time.Millisecond,
		WorkerCount:       getEnvAsInt("INGESTION_WORKERS", 4),
		MetadataCacheTTL:  getEnvAsSeconds("METADATA_CACHE_TTL_SECONDS", 3600),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}
