package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MaxShortcodeLength is the width of the recipes.shortcode column.
const MaxShortcodeLength = 16

// Config holds every runtime setting of the service.
type Config struct {
	AppPort       string
	PublicBaseURL string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	RabbitMQURL string

	RedisURL        string
	RateLimitMax    int
	RateLimitWindow time.Duration

	StorageDriver string
	MediaRoot     string
	MediaURL      string
	S3Bucket      string
	AWSRegion     string

	LogLevel  string
	LogFormat string

	ShortcodeLength      int
	ShortcodeMaxAttempts int

	PageSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "foodgram.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("MEDIA_URL", "/media")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHORTCODE_LENGTH", 8)
	v.SetDefault("SHORTCODE_MAX_ATTEMPTS", 10)
	v.SetDefault("PAGE_SIZE", 6)
}

// Load reads config.yaml from the working directory when present and lets
// environment variables override any key.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:              v.GetString("APP_PORT"),
		PublicBaseURL:        strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		DatabaseDriver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		TokenTTL:             v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		RedisURL:             v.GetString("REDIS_URL"),
		RateLimitMax:         v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:      v.GetDuration("RATE_LIMIT_WINDOW"),
		StorageDriver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MediaRoot:            v.GetString("MEDIA_ROOT"),
		MediaURL:             strings.TrimRight(v.GetString("MEDIA_URL"), "/"),
		S3Bucket:             v.GetString("S3_BUCKET"),
		AWSRegion:            v.GetString("AWS_REGION"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		ShortcodeLength:      v.GetInt("SHORTCODE_LENGTH"),
		ShortcodeMaxAttempts: v.GetInt("SHORTCODE_MAX_ATTEMPTS"),
		PageSize:             v.GetInt("PAGE_SIZE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER is s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.ShortcodeLength <= 0 || c.ShortcodeLength > MaxShortcodeLength {
		return fmt.Errorf("SHORTCODE_LENGTH must be between 1 and %d", MaxShortcodeLength)
	}
	if c.ShortcodeMaxAttempts <= 0 {
		return errors.New("SHORTCODE_MAX_ATTEMPTS must be positive")
	}
	if c.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be positive")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
