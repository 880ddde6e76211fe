package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	strutil "leetcoach/pkg/string"
)

const (
	// DefaultJWTSigningKey is only acceptable outside production.
	DefaultJWTSigningKey = "dev-secret-key-change-in-production"
	minProductionKeyLen  = 32
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWTSigningKey string
	TokenTTL      time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Feedback FeedbackConfig

	// TrustedProxies is the raw comma separated CIDR list; parsed by the metadata middleware.
	TrustedProxies  string
	AllowedOrigins  []string
	CleanupInterval time.Duration
	// GlobalRPS caps process-wide admissions; 0 disables the throttle.
	GlobalRPS float64
}

type DatabaseConfig struct {
	// URL is empty for in-memory stores, postgres://... or sqlite://path otherwise.
	URL string
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KafkaConfig struct {
	Brokers             string
	SecurityEventsTopic string
}

type FeedbackConfig struct {
	Provider    string
	APIKey      string
	Model       string
	ReviewModel string
	BaseURL     string
	Timeout     time.Duration
}

const (
	ProviderGemini = "gemini"
	ProviderEcho   = "echo"
)

// IsProduction reports whether the stricter production checks apply.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// LoadDotEnv loads variables from a .env file when one exists. Variables
// already present in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Server config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Server, error) {
	r := reader{lookup: lookup}

	cfg := Server{
		Addr:          r.str("LEETCOACH_ADDR", ":8000"),
		Environment:   r.str("LEETCOACH_ENV", "development"),
		LogLevel:      r.str("LOG_LEVEL", "info"),
		JWTSigningKey: r.str("JWT_SIGNING_KEY", DefaultJWTSigningKey),
		TokenTTL:      r.duration("TOKEN_TTL", 60*time.Minute),
		Database: DatabaseConfig{
			URL: r.str("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL:          r.str("REDIS_URL", ""),
			PoolSize:     r.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: r.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  r.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  r.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: r.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:             r.str("KAFKA_BROKERS", ""),
			SecurityEventsTopic: r.str("SECURITY_EVENTS_TOPIC", "leetcoach.security-events"),
		},
		Feedback: FeedbackConfig{
			Provider:    r.str("FEEDBACK_PROVIDER", ProviderGemini),
			APIKey:      r.str("GEMINI_API_KEY", ""),
			Model:       r.str("GEMINI_MODEL", "gemini-2.5-pro"),
			ReviewModel: r.str("GEMINI_REVIEW_MODEL", "gemini-2.0-flash"),
			BaseURL:     r.str("GEMINI_BASE_URL", ""),
			Timeout:     r.duration("FEEDBACK_TIMEOUT", 30*time.Second),
		},
		TrustedProxies:  r.str("TRUSTED_PROXIES", ""),
		AllowedOrigins:  splitList(r.str("ALLOWED_ORIGINS", "http://localhost:3000")),
		CleanupInterval: r.duration("CLEANUP_INTERVAL", time.Minute),
		GlobalRPS:       r.float("GLOBAL_RPS", 0),
	}

	if r.err != nil {
		return Server{}, r.err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that are unsafe to serve with.
func (s Server) Validate() error {
	if s.IsProduction() {
		if s.JWTSigningKey == DefaultJWTSigningKey {
			return errors.New("JWT_SIGNING_KEY must be set in production")
		}
		if len(s.JWTSigningKey) < minProductionKeyLen {
			return fmt.Errorf("JWT_SIGNING_KEY must be at least %d bytes in production", minProductionKeyLen)
		}
	}
	if s.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if s.CleanupInterval <= 0 {
		return errors.New("CLEANUP_INTERVAL must be positive")
	}
	if s.GlobalRPS < 0 {
		return errors.New("GLOBAL_RPS cannot be negative")
	}
	switch s.Feedback.Provider {
	case ProviderGemini, ProviderEcho:
	default:
		return fmt.Errorf("unknown FEEDBACK_PROVIDER %q", s.Feedback.Provider)
	}
	return nil
}

// reader accumulates the first parse error so FromLookup reads linearly.
type reader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}

func (r *reader) int(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *reader) float(key string, def float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return f
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func splitList(raw string) []string {
	return strutil.SplitList(raw)
}
