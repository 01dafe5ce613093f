package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrMissingSignKey       = errors.New("please define OAuth signing key (OAUTH_SIGN_KEY)")
	ErrMissingTokenProvider = errors.New("please provide token provider URL (OAUTH_TOKEN_PROVIDER)")
)

const (
	DefaultDatabase    = "sqlite:///./sql_app.db"
	DefaultOriginRegex = `https:\/\/.*cardmatching.ovh.*`
)

var signingAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

type Config struct {
	DatabaseURL   string
	SignKey       string
	Algorithm     string
	TokenProvider string
	OriginPattern *regexp.Regexp
	Port          string
	RedisAddr     string
	RedisPassword string
	KafkaBrokers  []string
	KafkaTopic    string
	ResetDB       bool
}

// TokenURL is where clients obtain bearer tokens.
func (c *Config) TokenURL() string {
	return strings.TrimRight(c.TokenProvider, "/") + "/tokens"
}

// Load reads the process environment, after merging an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	getEnv := func(key, defaultVal string) string {
		val, ok := lookup(key)
		if !ok || val == "" {
			return defaultVal
		}
		return val
	}

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_IP", DefaultDatabase),
		SignKey:       getEnv("OAUTH_SIGN_KEY", ""),
		Algorithm:     strings.ToUpper(getEnv("OAUTH_ALGORITHM", "HS256")),
		TokenProvider: getEnv("OAUTH_TOKEN_PROVIDER", ""),
		Port:          getEnv("PORT", "8080"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:  splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "message-events"),
	}

	if cfg.SignKey == "" {
		return nil, ErrMissingSignKey
	}
	if cfg.TokenProvider == "" {
		return nil, ErrMissingTokenProvider
	}
	if !signingAlgorithms[cfg.Algorithm] {
		return nil, fmt.Errorf("unsupported OAUTH_ALGORITHM %q", cfg.Algorithm)
	}

	// The whole origin must match, not a substring of it.
	pattern, err := regexp.Compile(`^(?:` + getEnv("CORS_ORIGIN_REGEX", DefaultOriginRegex) + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid CORS_ORIGIN_REGEX: %w", err)
	}
	cfg.OriginPattern = pattern

	if raw := getEnv("RESET_DB", ""); raw != "" {
		reset, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RESET_DB: %w", err)
		}
		cfg.ResetDB = reset
	}
	return cfg, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
