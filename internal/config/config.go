package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Images   ImagesConfig
	Vision   VisionConfig
	Staging  StagingConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string
}

// ImagesConfig holds the root directory for stored garment images.
type ImagesConfig struct {
	Dir string
}

// VisionConfig contains endpoints and options for the external vision services.
type VisionConfig struct {
	SegmenterURL  string
	ClassifierURL string
	Timeout       time.Duration
	CropFace      bool
}

// StagingConfig holds staging lifecycle settings. A zero TTL disables the
// background sweep of abandoned records.
type StagingConfig struct {
	TTL          time.Duration
	ReapSchedule string
}

// AuthConfig holds authentication bootstrap settings.
type AuthConfig struct {
	AdminUser string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	visionTimeout, err := parseDuration("GARDEROBA_VISION_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	stagingTTL, err := parseDuration("GARDEROBA_STAGING_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: getenvWithDefault("GARDEROBA_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("GARDEROBA_DB_PATH", "garderoba.db"),
		},
		Images: ImagesConfig{
			Dir: getenvWithDefault("GARDEROBA_IMAGES_DIR", "images"),
		},
		Vision: VisionConfig{
			SegmenterURL:  os.Getenv("GARDEROBA_SEGMENTER_URL"),
			ClassifierURL: os.Getenv("GARDEROBA_CLASSIFIER_URL"),
			Timeout:       visionTimeout,
			CropFace:      os.Getenv("GARDEROBA_CROP_FACE") == "true",
		},
		Staging: StagingConfig{
			TTL:          stagingTTL,
			ReapSchedule: getenvWithDefault("GARDEROBA_REAP_SCHEDULE", "@hourly"),
		},
		Auth: AuthConfig{
			AdminUser: getenvWithDefault("GARDEROBA_ADMIN_USER", "admin"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Addr == "" {
		return errors.New("GARDEROBA_ADDR must not be empty")
	}
	if c.Database.Path == "" {
		return errors.New("GARDEROBA_DB_PATH must not be empty")
	}
	if c.Images.Dir == "" {
		return errors.New("GARDEROBA_IMAGES_DIR must not be empty")
	}

	switch {
	case c.Vision.SegmenterURL == "":
		return errors.New("GARDEROBA_SEGMENTER_URL must be provided")
	case c.Vision.ClassifierURL == "":
		return errors.New("GARDEROBA_CLASSIFIER_URL must be provided")
	}

	if c.Staging.TTL > 0 && c.Staging.ReapSchedule == "" {
		return errors.New("GARDEROBA_REAP_SCHEDULE must be provided when a staging TTL is set")
	}
	if c.Auth.AdminUser == "" {
		return errors.New("GARDEROBA_ADMIN_USER must not be empty")
	}

	return nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
