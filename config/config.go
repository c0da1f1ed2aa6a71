// Package config reads the CLI configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kelly-lin/bevyml/log"
)

const (
	EnvDebug   = "BEVYML_DEBUG"
	EnvLogFile = "BEVYML_LOG_FILE"
	EnvNoColor = "BEVYML_NO_COLOR"
)

type Config struct {
	// Debug enables file logging.
	Debug bool
	// LogFile is the log destination used when Debug is set.
	LogFile string
	// NoColor disables coloured log prefixes.
	NoColor bool
}

// Load reads the configuration from the process environment. Values in the
// .env files are only applied when the variable is not already set; a missing
// .env file is not an error.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		_ = godotenv.Load(path)
	}
	return fromLookup(os.Getenv)
}

// LoadFromMap builds the configuration from envMap instead of the process
// environment.
func LoadFromMap(envMap map[string]string) Config {
	return fromLookup(func(key string) string { return envMap[key] })
}

// Parse reads a configuration in .env format without touching the process
// environment.
func Parse(content string) (Config, error) {
	envMap, err := godotenv.Unmarshal(content)
	if err != nil {
		return Config{}, err
	}
	return LoadFromMap(envMap), nil
}

func fromLookup(getenv func(string) string) Config {
	return Config{
		Debug:   getBoolOrDefault(getenv, EnvDebug, false),
		LogFile: getOrDefault(getenv, EnvLogFile, log.DefaultFilepath),
		NoColor: getBoolOrDefault(getenv, EnvNoColor, false),
	}
}

func getOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolOrDefault(getenv func(string) string, key string, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
