package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when CONFIG_PATH is unset. A missing file is not an error.
const DefaultPath = "config.yaml"

// Config is the full runtime configuration of the service.
type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`

	DBDriver       string   `yaml:"dbDriver"` // "pgx" (default) or "pq"
	PostgresURL    string   `yaml:"postgresURL"`
	AutoMigrate    bool     `yaml:"autoMigrate"`
	JWTSecret      string   `yaml:"jwtSecret"`
	AllowedOrigins []string `yaml:"allowedOrigins"`

	RedisAddr               string `yaml:"redisAddr"`
	RedisPassword           string `yaml:"redisPassword"`
	ApplyRateLimitPerMinute int    `yaml:"applyRateLimitPerMinute"`
	EventsStream            string `yaml:"eventsStream"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`
	MediaBaseURL   string `yaml:"mediaBaseURL"`

	SMTPHost     string `yaml:"smtpHost"`
	SMTPPort     int    `yaml:"smtpPort"`
	SMTPUsername string `yaml:"smtpUsername"`
	SMTPPassword string `yaml:"smtpPassword"`
	SMTPFrom     string `yaml:"smtpFrom"`
	SMTPFromName string `yaml:"smtpFromName"`
	SMTPUseSSL   bool   `yaml:"smtpUseSSL"`

	ReconcileInterval string `yaml:"reconcileInterval"`
	IdempotencyTTL    string `yaml:"idempotencyTTL"`
}

// Load reads .env, then the YAML file at path (CONFIG_PATH or DefaultPath
// when empty), then applies environment overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:         "5000",
		LogLevel:     "info",
		DBDriver:     "pgx",
		AutoMigrate:  true,
		EventsStream: "lumijob:events",
		MinioBucket:  "lumijob",
		SMTPPort:     587,
		SMTPFromName: "LumiJob",
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.TrimSpace(v)
	}
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.PostgresURL = v
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.AutoMigrate = b
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitCSV(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("APPLY_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.ApplyRateLimitPerMinute = n
		}
	}
	if v := os.Getenv("EVENTS_STREAM"); v != "" {
		cfg.EventsStream = strings.TrimSpace(v)
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.MinioUseSSL = b
		}
	}
	if v := os.Getenv("MEDIA_BASE_URL"); v != "" {
		cfg.MediaBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTPHost = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.SMTPPort = n
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTPUsername = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTPPassword = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTPFrom = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMTP_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.SMTPUseSSL = b
		}
	}
	if v := os.Getenv("RECONCILE_INTERVAL"); v != "" {
		cfg.ReconcileInterval = v
	}
	if v := os.Getenv("IDEMPOTENCY_TTL"); v != "" {
		cfg.IdempotencyTTL = v
	}
}

func validate(cfg Config) error {
	if cfg.Port == "" {
		return errors.New("config: port is required")
	}
	switch cfg.DBDriver {
	case "pgx", "pq":
	default:
		return fmt.Errorf("config: unsupported dbDriver %q (use pgx or pq)", cfg.DBDriver)
	}
	if cfg.ApplyRateLimitPerMinute < 0 {
		return errors.New("config: applyRateLimitPerMinute must be >= 0")
	}
	if cfg.SMTPHost != "" && cfg.SMTPFrom == "" {
		return errors.New("config: smtpFrom is required when smtpHost is set")
	}
	if _, err := ParseDuration(cfg.ReconcileInterval); err != nil {
		return fmt.Errorf("config: reconcileInterval: %w", err)
	}
	if _, err := ParseDuration(cfg.IdempotencyTTL); err != nil {
		return fmt.Errorf("config: idempotencyTTL: %w", err)
	}
	return nil
}

// ParseDuration parses an optional duration string. Empty means zero.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("duration must be >= 0")
	}
	return d, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
