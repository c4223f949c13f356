package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	Environment string
	AppId       string
	LogLevel    string
	LogToDB     bool

	// Dashboard origins allowed by CORS, comma separated.
	AllowOrigins string

	// Redis is optional; an empty address disables the open-tickets cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OpenTicketsCacheTTLSeconds int
	TicketStatsSchedule        string
	RequestTimeoutSeconds      int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:                       getEnv("PORT", "8080"),
		MongoURI:                   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:                     getEnv("DB_NAME", "go-support"),
		Environment:                getEnv("ENVIRONMENT", "development"),
		AppId:                      getEnv("APP_ID", "go-support"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		LogToDB:                    getEnvAsBool("LOG_TO_DB", false),
		AllowOrigins:               getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000, http://localhost:5173"),
		RedisAddr:                  getEnv("REDIS_ADDR", ""),
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		RedisDB:                    getEnvAsInt("REDIS_DB", 0),
		OpenTicketsCacheTTLSeconds: getEnvAsInt("OPEN_TICKETS_CACHE_TTL_SECONDS", 30),
		TicketStatsSchedule:        getEnv("TICKET_STATS_SCHEDULE", "@hourly"),
		RequestTimeoutSeconds:      getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
	}, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// RequestTimeout returns the per-request deadline, or zero when disabled.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// OpenTicketsCacheTTL returns how long the dashboard view may be served from cache.
func (c *Config) OpenTicketsCacheTTL() time.Duration {
	if c.OpenTicketsCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.OpenTicketsCacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
