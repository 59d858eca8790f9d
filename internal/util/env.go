package util

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/doublelucky/compass/pkg/logger"
)

// LoadEnv merges a .env file into the process environment when one
// exists. Variables already set in the environment win over the file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
}

// GetEnv returns the value of key, or the empty string when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvString returns the value of key, or defaultValue when unset.
// An explicitly set empty value is returned as-is.
func GetEnvString(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetEnvNumeric parses key as a float, falling back to defaultValue
// when the variable is unset or not a number.
func GetEnvNumeric(key string, defaultValue int) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return float64(defaultValue)
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return float64(defaultValue)
	}
	return parsed
}

// GetEnvBool interprets key as the literal "true" or "false"; anything
// else, including unset, yields defaultValue.
func GetEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true":
		return true
	case "false":
		return false
	default:
		return defaultValue
	}
}
