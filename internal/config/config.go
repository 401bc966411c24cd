package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/telemetry"
	"github.com/RichStephens/killzone/internal/world"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
		// Optional graceful shutdown budget, Go duration syntax ("10s").
		ShutdownTimeout string `json:"shutdown_timeout"`
	} `json:"server"`
	World *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"world"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	// Interval for the background collision sweeper ("0" or empty disables
	// it, which is the default).
	CollisionSweepInterval string `json:"collision_sweep_interval"`
	AllowReset             bool   `json:"allow_reset"`
	LeaderboardSize        int    `json:"leaderboard_size"`
	Telemetry              *struct {
		Endpoint    string   `json:"endpoint"`
		Enabled     *bool    `json:"enabled"`
		SampleRatio *float64 `json:"sample_ratio"`
	} `json:"telemetry"`
}

// LoadedConfig is the resolved server configuration. Environment variables
// named in the env tags override file values.
type LoadedConfig struct {
	ServerAddress          string        `env:"KILLZONE_ADDR"`
	ShutdownTimeout        time.Duration `env:"KILLZONE_SHUTDOWN_TIMEOUT"`
	WorldWidth             int           `env:"KILLZONE_WORLD_WIDTH"`
	WorldHeight            int           `env:"KILLZONE_WORLD_HEIGHT"`
	DatabasePath           string        `env:"KILLZONE_DB"`
	CollisionSweepInterval time.Duration `env:"KILLZONE_COLLISION_SWEEP_INTERVAL"`
	AllowReset             bool          `env:"KILLZONE_ALLOW_RESET"`
	LeaderboardSize        int           `env:"KILLZONE_LEADERBOARD_SIZE"`

	// Tracing is exported only when an endpoint is configured and
	// OTelEnabled is left on.
	OTelEndpoint    string  `env:"KILLZONE_OTEL_ENDPOINT"`
	OTelEnabled     bool    `env:"KILLZONE_OTEL_ENABLED"`
	OTelSampleRatio float64 `env:"KILLZONE_OTEL_SAMPLE_RATIO"`

	// Port mirrors the conventional PORT variable; when set it wins over
	// ServerAddress.
	Port string `env:"PORT"`
}

// Defaults returns the configuration used when no file or env is present.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:   constants.DefaultServerAddress,
		ShutdownTimeout: 10 * time.Second,
		WorldWidth:      world.DefaultWidth,
		WorldHeight:     world.DefaultHeight,
		DatabasePath:    constants.DefaultDatabasePath,
		LeaderboardSize: 10,
		OTelEnabled:     true,
		OTelSampleRatio: 1,
	}
}

// WorldConfig returns the grid dimensions for world.New.
func (c *LoadedConfig) WorldConfig() world.Config {
	return world.Config{Width: c.WorldWidth, Height: c.WorldHeight}
}

// TelemetryConfig returns the tracing settings for telemetry.Setup.
func (c *LoadedConfig) TelemetryConfig(serviceName, serviceVersion string) telemetry.Config {
	return telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Endpoint:       c.OTelEndpoint,
		Enabled:        c.OTelEnabled,
		SampleRatio:    c.OTelSampleRatio,
	}
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig reads the optional configuration file at path, applies
// environment overrides and validates the result. A missing file is not an
// error; defaults are used instead.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := Defaults()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyFile(cfg, path, b); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if p := strings.TrimSpace(cfg.Port); p != "" {
		cfg.ServerAddress = ":" + strings.TrimPrefix(p, ":")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *LoadedConfig, path string, b []byte) error {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if rc.Server != nil {
		if rc.Server.Address != "" {
			cfg.ServerAddress = rc.Server.Address
		}
		if s := strings.TrimSpace(rc.Server.ShutdownTimeout); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return fmt.Errorf("config file %s: invalid server.shutdown_timeout %q: %w", path, s, err)
			}
			cfg.ShutdownTimeout = d
		}
	}
	if rc.World != nil {
		if rc.World.Width != 0 {
			cfg.WorldWidth = rc.World.Width
		}
		if rc.World.Height != 0 {
			cfg.WorldHeight = rc.World.Height
		}
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if s := strings.TrimSpace(rc.CollisionSweepInterval); s != "" && s != "0" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("config file %s: invalid collision_sweep_interval %q: %w", path, s, err)
		}
		cfg.CollisionSweepInterval = d
	}
	cfg.AllowReset = rc.AllowReset
	if t := rc.Telemetry; t != nil {
		cfg.OTelEndpoint = strings.TrimSpace(t.Endpoint)
		if t.Enabled != nil {
			cfg.OTelEnabled = *t.Enabled
		}
		if t.SampleRatio != nil {
			cfg.OTelSampleRatio = *t.SampleRatio
		}
	}
	if rc.LeaderboardSize != 0 {
		cfg.LeaderboardSize = rc.LeaderboardSize
	}
	return nil
}

func (c *LoadedConfig) validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %dx%d", c.WorldWidth, c.WorldHeight)
	}
	if c.CollisionSweepInterval < 0 {
		return fmt.Errorf("collision_sweep_interval must not be negative, got %s", c.CollisionSweepInterval)
	}
	if c.LeaderboardSize <= 0 || c.LeaderboardSize > 100 {
		return fmt.Errorf("leaderboard_size must be between 1 and 100, got %d", c.LeaderboardSize)
	}
	if c.OTelSampleRatio < 0 || c.OTelSampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be within [0,1], got %v", c.OTelSampleRatio)
	}
	if c.ServerAddress == "" {
		return errors.New("server address must not be empty")
	}
	return nil
}
