// Package config loads service settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings resolved by Load.
type Config struct {
	Port            string
	Debug           bool
	MaxNodes        int
	MaxEdges        int
	BodyLimit       int
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load reads .env (if present) and the process environment.
// Variables already set in the environment win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            GetEnvString("PORT", "3000"),
		Debug:           GetEnvBool("DEBUG", false),
		MaxNodes:        GetEnvInt("MAX_NODES", 10_000),
		MaxEdges:        GetEnvInt("MAX_EDGES", 50_000),
		BodyLimit:       GetEnvInt("BODY_LIMIT", 4<<20),
		CORSOrigins:     GetEnvList("CORS_ORIGINS", []string{"*"}),
		ShutdownTimeout: GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// lookup treats a variable set to the empty string as unset.
func lookup(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists && value != ""
}

func GetEnvString(key string, defaultValue string) string {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// GetEnvList splits a comma separated value, dropping empty entries.
func GetEnvList(key string, defaultValue []string) []string {
	value, exists := lookup(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
