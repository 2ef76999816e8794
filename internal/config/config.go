package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	LogLevel    slog.Level
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	NATS        NATSConfig
	APNs        APNsConfig
	Telemetry   TelemetryConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type NATSConfig struct {
	URL string
}

// APNsConfig is left empty to run the notifier in mock mode.
type APNsConfig struct {
	KeyPath    string
	KeyID      string
	TeamID     string
	Topic      string
	Production bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
}

// RateLimitConfig is read from RATE_LIMIT_MAX and RATE_LIMIT_EXPIRATION (seconds).
type RateLimitConfig struct {
	Max        int
	Expiration time.Duration
}

// Load reads .env.dev when present, then the process environment and an
// optional CONFIG_FILE. Environment variables win over the file.
func Load(serviceName string) (*Config, error) {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", p, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		ServiceName: serviceName,
		LogLevel:    level,
		Server: ServerConfig{
			Port: v.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  v.GetDuration("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: v.GetDuration("JWT_REFRESH_EXPIRY"),
		},
		NATS: NATSConfig{
			URL: v.GetString("NATS_URL"),
		},
		APNs: APNsConfig{
			KeyPath:    v.GetString("APNS_KEY_PATH"),
			KeyID:      v.GetString("APNS_KEY_ID"),
			TeamID:     v.GetString("APNS_TEAM_ID"),
			Topic:      v.GetString("APNS_TOPIC"),
			Production: v.GetBool("APNS_PRODUCTION"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		RateLimit: RateLimitConfig{
			Max:        v.GetInt("RATE_LIMIT_MAX"),
			Expiration: time.Duration(v.GetInt("RATE_LIMIT_EXPIRATION")) * time.Second,
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_PORT", "8001")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "standups")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ACCESS_EXPIRY", 15*time.Minute)
	v.SetDefault("JWT_REFRESH_EXPIRY", 30*24*time.Hour)
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_EXPIRATION", 60)
}

func (j JWTConfig) Validate() error {
	if j.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// MockPush reports whether APNs credentials are missing.
func (a APNsConfig) MockPush() bool {
	return a.KeyPath == "" || a.KeyID == "" || a.TeamID == ""
}
