package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DSN           string
	LogLevel      string
	SlowThreshold time.Duration

	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string

	LabelsFile string
}

// Load reads the given env files (".env" when none are given) into the process
// environment and builds a Config from it. Missing env files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		DSN:             os.Getenv("DSN"),
		LogLevel:        strings.ToLower(getenv("LOG_LEVEL", "warn")),
		AccountID:       os.Getenv("ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("ACCESS_KEY_SECRET"),
		BucketName:      os.Getenv("BUCKET_NAME"),
		PublicURL:       os.Getenv("PUBLIC_URL"),
		LabelsFile:      os.Getenv("LABELS_FILE"),
	}

	switch cfg.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	ms, err := strconv.Atoi(getenv("SLOW_QUERY_MS", "200"))
	if err != nil || ms < 0 {
		return nil, fmt.Errorf("invalid SLOW_QUERY_MS %q", os.Getenv("SLOW_QUERY_MS"))
	}
	cfg.SlowThreshold = time.Duration(ms) * time.Millisecond

	return cfg, nil
}

// RequireDatabase reports an error when no DSN is configured.
func (c *Config) RequireDatabase() error {
	if c.DSN == "" {
		return errors.New("DSN is not set")
	}
	return nil
}

// RequireStorage reports which object storage settings are missing, if any.
func (c *Config) RequireStorage() error {
	var missing []string
	for name, v := range map[string]string{
		"ACCOUNT_ID":        c.AccountID,
		"ACCESS_KEY_ID":     c.AccessKeyID,
		"ACCESS_KEY_SECRET": c.AccessKeySecret,
		"BUCKET_NAME":       c.BucketName,
		"PUBLIC_URL":        c.PublicURL,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("object storage not configured, missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
