package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pursuit/meta"
)

// Config holds the run configuration. Every field can be set through a
// PURSUIT_* environment variable or a .env file.
type Config struct {
	Layout      string        // Path of the maze layout file
	Pursuers    int           // Number of pursuers, negative for one per spawn
	Seeker      string        // Seeker policy: a planner name or a searcher kind
	Pursuer     string        // Pursuer policy: random or greedy
	Depth       int           // Adversarial search depth in rounds
	NumGames    int           // Games per agent configuration
	MaxMoves    int           // Move cap per game
	Seed        uint64        // Seed of every random source
	Temperature float64       // Softmax temperature of greedy pursuers
	LogLevel    zerolog.Level // Global log level
	RecordsDir  string        // Directory of experiment records
}

// Load reads files (".env" when none are given) into the environment, then
// builds the configuration. Missing files are not an error; malformed
// values are.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Msgf(".env file not found or could not be loaded: %v", err)
	}

	var c Config
	var err error
	c.Layout = getEnvWithDefault("PURSUIT_LAYOUT", meta.LAYOUT)
	c.Seeker = getEnvWithDefault("PURSUIT_SEEKER", "alphabeta")
	c.Pursuer = getEnvWithDefault("PURSUIT_PURSUER", "greedy")
	c.RecordsDir = getEnvWithDefault("PURSUIT_RECORDS_DIR", meta.RECORDS_DIR)
	if c.Pursuers, err = getEnvAsInt("PURSUIT_PURSUERS", -1); err != nil {
		return c, err
	}
	if c.Depth, err = getEnvAsInt("PURSUIT_DEPTH", meta.SEARCH_DEPTH); err != nil {
		return c, err
	}
	if c.NumGames, err = getEnvAsInt("PURSUIT_NUM_GAMES", meta.NUM_GAMES); err != nil {
		return c, err
	}
	if c.MaxMoves, err = getEnvAsInt("PURSUIT_MAX_MOVES", meta.MAX_MOVES); err != nil {
		return c, err
	}

	seed := getEnvWithDefault("PURSUIT_SEED", strconv.Itoa(meta.SEED))
	if c.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return c, fmt.Errorf("environment variable PURSUIT_SEED must be an unsigned integer: %w", err)
	}
	temperature := getEnvWithDefault("PURSUIT_TEMPERATURE", strconv.FormatFloat(meta.TEMPERATURE, 'g', -1, 64))
	if c.Temperature, err = strconv.ParseFloat(temperature, 64); err != nil {
		return c, fmt.Errorf("environment variable PURSUIT_TEMPERATURE must be a number: %w", err)
	}
	if c.LogLevel, err = zerolog.ParseLevel(getEnvWithDefault("PURSUIT_LOG_LEVEL", "info")); err != nil {
		return c, fmt.Errorf("environment variable PURSUIT_LOG_LEVEL: %w", err)
	}
	return c, nil
}

// getEnvAsInt retrieves an integer environment variable or a default value if not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
