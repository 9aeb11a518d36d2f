package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Assignment AssignmentConfig
	Distance   DistanceConfig
	Grid       GridConfig
	Routing    RoutingConfig
	Log        LogConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AssignmentConfig struct {
	CapacityPerCenter int
	UseRoadDistances  bool
}

type DistanceConfig struct {
	BatchSize  int
	BatchDelay time.Duration
	CacheTTL   time.Duration
}

type GridConfig struct {
	ResolutionDeg float64
	MarginDeg     float64
	MaxRangeKm    float64
	MaxExpansions int
}

type RoutingConfig struct {
	Provider string
	OSRM     OSRMConfig
	Mapbox   MapboxConfig
}

type OSRMConfig struct {
	BaseURL string
	Profile string
	Timeout time.Duration
}

type MapboxConfig struct {
	BaseURL     string
	AccessToken string
	Profile     string
	Timeout     time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	Concurrency       int
	ProgressEvery     int
}

const (
	ProviderOSRM   = "osrm"
	ProviderMapbox = "mapbox"
)

// Load reads .env (optional) and the process environment
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads the given env file (optional) and the process environment
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetDefault("USE_ROAD_DISTANCES", true)
	v.SetDefault("WORKER_ENABLED", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("API_HOST"),
			Port:           v.GetInt("API_PORT"),
			Env:            v.GetString("API_ENV"),
			CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
			RequestTimeout: time.Duration(v.GetInt("API_REQUEST_TIMEOUT_MS")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Assignment: AssignmentConfig{
			CapacityPerCenter: v.GetInt("CAPACITY_PER_CENTER"),
			UseRoadDistances:  v.GetBool("USE_ROAD_DISTANCES"),
		},
		Distance: DistanceConfig{
			BatchSize:  v.GetInt("DISTANCE_BATCH_SIZE"),
			BatchDelay: time.Duration(v.GetInt("DISTANCE_BATCH_DELAY_MS")) * time.Millisecond,
			CacheTTL:   time.Duration(v.GetInt("DISTANCE_CACHE_TTL_MS")) * time.Millisecond,
		},
		Grid: GridConfig{
			ResolutionDeg: v.GetFloat64("GRID_RESOLUTION_DEG"),
			MarginDeg:     v.GetFloat64("GRID_MARGIN_DEG"),
			MaxRangeKm:    v.GetFloat64("GRID_MAX_RANGE_KM"),
			MaxExpansions: v.GetInt("GRID_MAX_EXPANSIONS"),
		},
		Routing: RoutingConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("ROUTING_PROVIDER"))),
			OSRM: OSRMConfig{
				BaseURL: v.GetString("OSRM_BASE_URL"),
				Profile: v.GetString("OSRM_PROFILE"),
				Timeout: time.Duration(v.GetInt("OSRM_TIMEOUT_MS")) * time.Millisecond,
			},
			Mapbox: MapboxConfig{
				BaseURL:     v.GetString("MAPBOX_BASE_URL"),
				AccessToken: v.GetString("MAPBOX_ACCESS_TOKEN"),
				Profile:     v.GetString("MAPBOX_PROFILE"),
				Timeout:     time.Duration(v.GetInt("MAPBOX_TIMEOUT_MS")) * time.Millisecond,
			},
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			Concurrency:       v.GetInt("WORKER_CONCURRENCY"),
			ProgressEvery:     v.GetInt("WORKER_PROGRESS_EVERY"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Set default values if not provided
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 120 * time.Second
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Assignment.CapacityPerCenter == 0 {
		c.Assignment.CapacityPerCenter = 50
	}
	if c.Distance.BatchSize == 0 {
		c.Distance.BatchSize = 25
	}
	if c.Distance.BatchDelay == 0 {
		c.Distance.BatchDelay = 100 * time.Millisecond
	}
	if c.Distance.CacheTTL == 0 {
		c.Distance.CacheTTL = 300000 * time.Millisecond
	}
	if c.Grid.ResolutionDeg == 0 {
		c.Grid.ResolutionDeg = 0.001
	}
	if c.Grid.MarginDeg == 0 {
		c.Grid.MarginDeg = 0.005
	}
	if c.Grid.MaxRangeKm == 0 {
		c.Grid.MaxRangeKm = 100
	}
	if c.Grid.MaxExpansions == 0 {
		c.Grid.MaxExpansions = 250000
	}
	if c.Routing.Provider == "" {
		c.Routing.Provider = ProviderOSRM
	}
	if c.Routing.OSRM.BaseURL == "" {
		c.Routing.OSRM.BaseURL = "https://router.project-osrm.org"
	}
	if c.Routing.OSRM.Profile == "" {
		c.Routing.OSRM.Profile = "driving"
	}
	if c.Routing.OSRM.Timeout == 0 {
		c.Routing.OSRM.Timeout = 10 * time.Second
	}
	if c.Routing.Mapbox.BaseURL == "" {
		c.Routing.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Routing.Mapbox.Profile == "" {
		c.Routing.Mapbox.Profile = "mapbox/driving"
	}
	if c.Routing.Mapbox.Timeout == 0 {
		c.Routing.Mapbox.Timeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "assignment-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.Concurrency == 0 {
		c.Worker.Concurrency = 2
	}
	if c.Worker.ProgressEvery == 0 {
		c.Worker.ProgressEvery = 25
	}
}

// Validate rejects values the services cannot run with
func (c *Config) Validate() error {
	if c.Assignment.CapacityPerCenter < 0 {
		return fmt.Errorf("CAPACITY_PER_CENTER must be positive, got %d", c.Assignment.CapacityPerCenter)
	}
	if c.Distance.BatchSize < 0 {
		return fmt.Errorf("DISTANCE_BATCH_SIZE must be positive, got %d", c.Distance.BatchSize)
	}
	if c.Grid.ResolutionDeg < 0 {
		return fmt.Errorf("GRID_RESOLUTION_DEG must be positive, got %f", c.Grid.ResolutionDeg)
	}
	switch c.Routing.Provider {
	case ProviderOSRM:
	case ProviderMapbox:
		if c.Routing.Mapbox.AccessToken == "" {
			return fmt.Errorf("MAPBOX_ACCESS_TOKEN is required when ROUTING_PROVIDER=%s", ProviderMapbox)
		}
	default:
		return fmt.Errorf("unknown ROUTING_PROVIDER %q", c.Routing.Provider)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
