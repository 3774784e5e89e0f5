package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

type Config struct {
	Port           string
	AdminToken     string
	JWTSecret      string
	AllowedOrigins []string
	DatabaseURL    string
	LogLevel       string
	LogFormat      string
	Cache          *CacheConfig
}

type CacheConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	DefaultTTL    time.Duration
}

// Enabled reports whether a Redis host was configured.
func (c *CacheConfig) Enabled() bool {
	return c != nil && c.RedisHost != ""
}

func (c *CacheConfig) Addr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Load reads the optional .env files and builds the configuration from the
// environment. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		Port:           getEnv("PORT", "8000"),
		AdminToken:     getEnv("ADMIN_TOKEN", "admin_token"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Cache:          NewCacheConfig(),
	}
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		DefaultTTL:    getEnvDuration("CACHE_TTL", 15*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
