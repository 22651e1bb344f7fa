package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the API process reads from the environment.
type Config struct {
	AppPort        string
	AppBaseURL     string
	AllowedOrigins string

	MongoURI string
	MongoDB  string

	RedisURI      string
	RedisPassword string

	JWTSecret string
	JWTTTL    time.Duration

	SweepInterval time.Duration
	SweepCron     string

	LogLevel  string
	LogPretty bool

	SeedDemo bool
}

// RedisEnabled reports whether a Redis address was configured.
func (c Config) RedisEnabled() bool {
	return c.RedisURI != ""
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ No .env file found, using environment variables")
	}

	return Config{
		AppPort:        getEnv("APP_PORT", "8888"),
		AppBaseURL:     strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8888"), "/"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB", "BizoniiDB"),

		RedisURI:      getEnv("REDIS_URI", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret: getEnv("JWT_SECRET", "your_secret_key"),
		JWTTTL:    getDuration("JWT_TTL", 10*time.Hour),

		SweepInterval: getDuration("SWEEP_INTERVAL", 24*time.Hour),
		SweepCron:     getEnv("SWEEP_CRON", "@daily"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getBool("LOG_PRETTY", false),

		SeedDemo: getBool("SEED_DEMO", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid bool, using default")
		return fallback
	}
	return b
}
