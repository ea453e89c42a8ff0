// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note — Configuration Management:
// NewDefaultConfig gives a fully populated struct literal, which is all tests
// need. Load layers the same defaults under an optional config.yaml and
// SURGE_* environment variables using "github.com/spf13/viper", so a
// deployment can override any field without code changes.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted by StoreConfig.Driver.
const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

// Config is the top-level configuration container.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Store         StoreConfig         `mapstructure:"store"`
	Pricing       PricingConfig       `mapstructure:"pricing"`
	Heatmap       HeatmapConfig       `mapstructure:"heatmap"`
	Subscriptions SubscriptionsConfig `mapstructure:"subscriptions"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// StoreConfig selects where the state document lives. Path is a JSON file
// for the file driver and a database file for sqlite; memory ignores it.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// PricingConfig controls price locks and surge bounds.
// lockedPrice = basePrice * multiplier, currentPrice = basePrice * AssumedCurrentSurge.
type PricingConfig struct {
	DefaultRouteID      string        `mapstructure:"default_route_id"`
	DefaultMultiplier   float64       `mapstructure:"default_multiplier"`
	AssumedCurrentSurge float64       `mapstructure:"assumed_current_surge"`
	LockTTL             time.Duration `mapstructure:"lock_ttl"`
	SurgePriceMax       float64       `mapstructure:"surge_price_max"`
}

// HeatmapConfig tunes the demand point generator and zone bucketing.
type HeatmapConfig struct {
	DefaultCity       string  `mapstructure:"default_city"`
	PointsPerRadius   float64 `mapstructure:"points_per_radius"`
	OffsetScale       float64 `mapstructure:"offset_scale"`
	GeohashPrecision  int     `mapstructure:"geohash_precision"`
	IncentiveRadiusKm float64 `mapstructure:"incentive_radius_km"`
	DemandZoneLimit   int     `mapstructure:"demand_zone_limit"`
}

// SubscriptionsConfig controls the polled subscription handlers.
type SubscriptionsConfig struct {
	DriverPositionCount int `mapstructure:"driver_position_count"`
}

// LogConfig is passed to logging.Setup.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewDefaultConfig returns a Config populated with sensible defaults.
//
// Go Learning Note — Constructor Functions:
// Go has no constructors. By convention, New<Type>() functions serve the same
// purpose. Returning *Config lets tests tweak a field in place before wiring.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Driver: StoreDriverFile,
			Path:   "data/db.json",
		},
		Pricing: PricingConfig{
			DefaultRouteID:      "default-route-id",
			DefaultMultiplier:   1.2,
			AssumedCurrentSurge: 1.8,
			LockTTL:             30 * time.Minute,
			SurgePriceMax:       3.0,
		},
		Heatmap: HeatmapConfig{
			DefaultCity:       "San Francisco",
			PointsPerRadius:   150,
			OffsetScale:       0.015,
			GeohashPrecision:  6,
			IncentiveRadiusKm: 0.5,
			DemandZoneLimit:   5,
		},
		Subscriptions: SubscriptionsConfig{
			DriverPositionCount: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, an optional config.yaml in . or
// ./configs, and SURGE_* environment variables (SURGE_STORE_DRIVER → store.driver).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v, NewDefaultConfig())

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("SURGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AutomaticEnv only resolves keys viper already knows about, so every field
// gets an explicit default.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("pricing.default_route_id", d.Pricing.DefaultRouteID)
	v.SetDefault("pricing.default_multiplier", d.Pricing.DefaultMultiplier)
	v.SetDefault("pricing.assumed_current_surge", d.Pricing.AssumedCurrentSurge)
	v.SetDefault("pricing.lock_ttl", d.Pricing.LockTTL)
	v.SetDefault("pricing.surge_price_max", d.Pricing.SurgePriceMax)
	v.SetDefault("heatmap.default_city", d.Heatmap.DefaultCity)
	v.SetDefault("heatmap.points_per_radius", d.Heatmap.PointsPerRadius)
	v.SetDefault("heatmap.offset_scale", d.Heatmap.OffsetScale)
	v.SetDefault("heatmap.geohash_precision", d.Heatmap.GeohashPrecision)
	v.SetDefault("heatmap.incentive_radius_km", d.Heatmap.IncentiveRadiusKm)
	v.SetDefault("heatmap.demand_zone_limit", d.Heatmap.DemandZoneLimit)
	v.SetDefault("subscriptions.driver_position_count", d.Subscriptions.DriverPositionCount)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	switch c.Store.Driver {
	case StoreDriverFile, StoreDriverSQLite:
		if c.Store.Path == "" {
			errs = append(errs, fmt.Sprintf("store.path is required for driver %q", c.Store.Driver))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be file, sqlite or memory, got %q", c.Store.Driver))
	}
	if c.Pricing.DefaultMultiplier <= 0 {
		errs = append(errs, "pricing.default_multiplier must be positive")
	}
	if c.Pricing.AssumedCurrentSurge <= 0 {
		errs = append(errs, "pricing.assumed_current_surge must be positive")
	}
	if c.Pricing.LockTTL <= 0 {
		errs = append(errs, "pricing.lock_ttl must be positive")
	}
	if c.Pricing.SurgePriceMax < 1 {
		errs = append(errs, "pricing.surge_price_max must be at least 1")
	}
	if c.Heatmap.PointsPerRadius <= 0 {
		errs = append(errs, "heatmap.points_per_radius must be positive")
	}
	if c.Heatmap.OffsetScale <= 0 {
		errs = append(errs, "heatmap.offset_scale must be positive")
	}
	if c.Heatmap.GeohashPrecision < 1 || c.Heatmap.GeohashPrecision > 12 {
		errs = append(errs, fmt.Sprintf("heatmap.geohash_precision must be 1-12, got %d", c.Heatmap.GeohashPrecision))
	}
	if c.Subscriptions.DriverPositionCount <= 0 {
		errs = append(errs, "subscriptions.driver_position_count must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
