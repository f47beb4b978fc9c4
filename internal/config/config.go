package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds process configuration read from the environment.
type Config struct {
	PGHost string
	PGPort string
	PGUser string
	PGPass string
	PGDB   string

	Port string
	Env  string

	// BoundaryPath, when set, loads the region boundary dataset from a
	// local file instead of BoundaryURL.
	BoundaryPath string
	BoundaryURL  string

	// RedisAddr is optional; empty disables the Redis-backed selection
	// store and sessions are kept in process memory.
	RedisAddr string
	RedisPass string
	RedisDB   int
}

// Load reads configuration from the environment. The five PG_* variables
// are required; missing any of them is a startup failure.
func Load() (*Config, error) {
	cfg := &Config{
		PGHost: os.Getenv("PG_HOST"),
		PGPort: os.Getenv("PG_PORT"),
		PGUser: os.Getenv("PG_USER"),
		PGPass: os.Getenv("PG_PASS"),
		PGDB:   os.Getenv("PG_DB"),

		Port: getEnv("PORT", "8080"),
		Env:  getEnv("GO_ENV", "development"),

		BoundaryPath: os.Getenv("GEOJSON_PATH"),
		BoundaryURL:  os.Getenv("GEOJSON_URL"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
	}

	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{"PG_HOST", cfg.PGHost},
		{"PG_PORT", cfg.PGPort},
		{"PG_USER", cfg.PGUser},
		{"PG_PASS", cfg.PGPass},
		{"PG_DB", cfg.PGDB},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// DatabaseURL builds the connection string for the transaction store.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", c.PGUser, c.PGPass, c.PGHost, c.PGPort, c.PGDB)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}
