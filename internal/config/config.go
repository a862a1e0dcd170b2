package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults point at a local development API.
const (
	DefaultLoginURL    = "http://localhost:8000/api/token/"
	DefaultJobsURL     = "http://localhost:8000/api/job-posts/"
	DefaultRegisterURL = "http://localhost:5173/register"
	// No release feed by default; the update notice is opt-in.
	DefaultReleasesURL = ""
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	LoginURL    string
	JobsURL     string
	RegisterURL string
	// ReleasesURL is polled for a newer version; empty disables the check.
	ReleasesURL string

	// Token, when set, overrides the stored session token.
	Token string
	// Home is the directory holding the token file.
	Home string

	HTTPTimeout time.Duration

	LogFile string
	Debug   bool
}

// Load reads an optional .env file (JOBDESK_ENV_FILE, default ./.env) and then
// the environment. Variables already set in the environment win over the file.
func Load() (*Config, error) {
	envFile := getEnvString("JOBDESK_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: read %s: %w", envFile, err)
	}

	cfg := &Config{
		LoginURL:    getEnvString("JOBDESK_LOGIN_URL", DefaultLoginURL),
		JobsURL:     getEnvString("JOBDESK_JOBS_URL", DefaultJobsURL),
		RegisterURL: getEnvString("JOBDESK_REGISTER_URL", DefaultRegisterURL),
		ReleasesURL: getEnvString("JOBDESK_RELEASES_URL", DefaultReleasesURL),
		Token:       getEnvString("JOBDESK_TOKEN", ""),
		Home:        getEnvString("JOBDESK_HOME", ""),
		HTTPTimeout: getEnvDuration("JOBDESK_HTTP_TIMEOUT", 30*time.Second),
		LogFile:     getEnvString("JOBDESK_LOG_FILE", ""),
		Debug:       getEnvBool("JOBDESK_DEBUG", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	if c.LoginURL == "" {
		return errors.New("config: JOBDESK_LOGIN_URL is empty")
	}
	if c.JobsURL == "" {
		return errors.New("config: JOBDESK_JOBS_URL is empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: JOBDESK_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
