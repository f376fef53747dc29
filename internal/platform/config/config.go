package config

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures the gateway's configuration: where it listens, where the
// four upstream services live, and the view/session tunables.
type Server struct {
	Addr string

	UsersBaseURL   string
	BooksBaseURL   string
	BorrowsBaseURL string
	FinesBaseURL   string

	UpstreamTimeout time.Duration
	UpstreamToken   string
	PageSize        int
	SessionTTL      time.Duration
	JWTSigningKey   string
	TrustedProxies  []netip.Prefix
	Environment     string
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A local .env file is loaded first when present (development only).
func FromEnv() Server {
	_ = godotenv.Load()

	return Server{
		Addr:            envOr("CONSOLE_ADDR", ":8080"),
		UsersBaseURL:    envOr("USERS_BASE_URL", "http://localhost:8081"),
		BooksBaseURL:    envOr("BOOKS_BASE_URL", "http://localhost:8082"),
		BorrowsBaseURL:  envOr("BORROWS_BASE_URL", "http://localhost:8086"),
		FinesBaseURL:    envOr("FINES_BASE_URL", "http://localhost:8086"),
		UpstreamTimeout: envDurationOr("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamToken:   os.Getenv("UPSTREAM_TOKEN"),
		PageSize:        envIntOr("CONSOLE_PAGE_SIZE", 8),
		SessionTTL:      envDurationOr("CONSOLE_SESSION_TTL", 30*time.Minute),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TrustedProxies:  envPrefixes("TRUSTED_PROXIES"),
		Environment:     envOr("CONSOLE_ENV", "development"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// envPrefixes parses a comma-separated list of CIDR prefixes; entries that
// do not parse are skipped.
func envPrefixes(key string) []netip.Prefix {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []netip.Prefix
	for _, raw := range strings.Split(v, ",") {
		if p, err := netip.ParsePrefix(strings.TrimSpace(raw)); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
