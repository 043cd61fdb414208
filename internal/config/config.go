package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mmrzaf/jsonfixture/internal/domain"
	"github.com/spf13/cast"
)

type Config struct {
	Output      string
	Count       int
	Seed        int64
	LogLevel    string
	ProfilesDir string
	RunsDB      string
}

// Load reads .env from the working directory (without overriding variables
// already set) and then the JSONFIXTURE_* environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Output:      getEnv("JSONFIXTURE_OUTPUT", domain.DefaultOutput),
		Count:       getEnvInt("JSONFIXTURE_COUNT", domain.DefaultCount),
		Seed:        getEnvInt64("JSONFIXTURE_SEED", domain.DefaultSeed),
		LogLevel:    getEnv("JSONFIXTURE_LOG_LEVEL", "info"),
		ProfilesDir: getEnv("JSONFIXTURE_PROFILES_DIR", "./profiles"),
		RunsDB:      getEnv("JSONFIXTURE_RUNS_DB", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := cast.ToIntE(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := cast.ToInt64E(value)
	if err != nil {
		return defaultValue
	}
	return n
}
