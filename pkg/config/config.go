package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/tgvmax/pkg/transforms"
	"github.com/travigo/tgvmax/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRecordsURL  = "https://ressources.data.sncf.com/api/explore/v2.1/catalog/datasets/tgvmax/records"
	DefaultStationsURL = "https://raw.githubusercontent.com/trainline-eu/stations/master/stations.csv"

	// MaxTransferLevelsCap bounds how many connections any search may use
	MaxTransferLevelsCap = 3

	environmentPrefix = "TGVMAX_"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Records  RecordsConfig  `yaml:"records"`
	Transfer TransferConfig `yaml:"transfer"`
	Cache    CacheConfig    `yaml:"cache"`
	Stations StationsConfig `yaml:"stations"`
	Server   ServerConfig   `yaml:"server"`
}

type RecordsConfig struct {
	BaseURL  string `yaml:"base_url" validate:"required,url"`
	PageSize int    `yaml:"page_size" validate:"gt=0,lte=100"`
	FareFlag string `yaml:"fare_flag" validate:"required"`

	RequestTimeout Duration `yaml:"request_timeout" validate:"gt=0"`
	Retries        int      `yaml:"retries" validate:"gte=0,lte=5"`
	RetryInterval  Duration `yaml:"retry_interval" validate:"gte=0"`

	MaxConcurrentRequests int `yaml:"max_concurrent_requests" validate:"gt=0,lte=256"`
}

type TransferConfig struct {
	MinWait int `yaml:"min_wait" validate:"gte=0"`
	MaxWait int `yaml:"max_wait" validate:"gtefield=MinWait"`

	MaxTotalHours        int  `yaml:"max_total_hours" validate:"gt=0,lte=24"`
	EnforceTotalDuration bool `yaml:"enforce_total_duration"`

	MaxLevels int `yaml:"max_levels" validate:"gte=0,lte=3"`
}

type CacheConfig struct {
	Backend         string   `yaml:"backend" validate:"oneof=memory redis none"`
	Expiration      Duration `yaml:"expiration" validate:"gt=0"`
	CleanupInterval Duration `yaml:"cleanup_interval" validate:"gte=0"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig is only used by the redis cache backend
type RedisConfig struct {
	Address  string `yaml:"address" validate:"required,hostname_port"`
	Password string `yaml:"password"`
	Database int    `yaml:"database" validate:"gte=0"`
}

type StationsConfig struct {
	Source          string   `yaml:"source" validate:"required"`
	CacheDuration   Duration `yaml:"cache_duration" validate:"gt=0"`
	SuggestionLimit int      `yaml:"suggestion_limit" validate:"gt=0"`

	// Overrides patch stations after every load, matched on string fields
	Overrides []transforms.TransformDefinition `yaml:"overrides"`
}

type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

// Default returns the built in configuration
func Default() *Config {
	return &Config{
		Records: RecordsConfig{
			BaseURL:               DefaultRecordsURL,
			PageSize:              100,
			FareFlag:              "OUI",
			RequestTimeout:        Duration(15 * time.Second),
			Retries:               2,
			RetryInterval:         Duration(250 * time.Millisecond),
			MaxConcurrentRequests: 16,
		},
		Transfer: TransferConfig{
			MinWait:              10,
			MaxWait:              180,
			MaxTotalHours:        10,
			EnforceTotalDuration: true,
			MaxLevels:            1,
		},
		Cache: CacheConfig{
			Backend:         "memory",
			Expiration:      Duration(90 * time.Minute),
			CleanupInterval: Duration(10 * time.Minute),
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
		},
		Stations: StationsConfig{
			Source:          DefaultStationsURL,
			CacheDuration:   Duration(30 * time.Minute),
			SuggestionLimit: 15,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// Load builds the configuration from the defaults, an optional YAML file and
// TGVMAX_* environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvironment(util.GetEnvironmentVariables(environmentPrefix)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	return nil
}

// MaxTotalMinutes is the total journey duration cap in minutes, 0 when not enforced
func (t TransferConfig) MaxTotalMinutes() int {
	if !t.EnforceTotalDuration {
		return 0
	}
	return t.MaxTotalHours * 60
}

func (c *Config) applyEnvironment(env map[string]string) error {
	if value := env["TGVMAX_RECORDS_URL"]; value != "" {
		c.Records.BaseURL = value
	}

	if value := env["TGVMAX_STATIONS_SOURCE"]; value != "" {
		c.Stations.Source = value
	}

	if value := env["TGVMAX_CACHE_BACKEND"]; value != "" {
		c.Cache.Backend = value
	}

	if value := env["TGVMAX_REDIS_ADDRESS"]; value != "" {
		c.Cache.Redis.Address = value
	}

	if value := env["TGVMAX_REDIS_PASSWORD"]; value != "" {
		c.Cache.Redis.Password = value
	}

	if value := env["TGVMAX_LISTEN"]; value != "" {
		c.Server.Listen = value
	}

	integers := map[string]*int{
		"TGVMAX_PAGE_SIZE":               &c.Records.PageSize,
		"TGVMAX_RETRIES":                 &c.Records.Retries,
		"TGVMAX_MAX_CONCURRENT_REQUESTS": &c.Records.MaxConcurrentRequests,
		"TGVMAX_MAX_TRANSFER_LEVELS":     &c.Transfer.MaxLevels,
		"TGVMAX_REDIS_DATABASE":          &c.Cache.Redis.Database,
	}
	for name, target := range integers {
		value := env[name]
		if value == "" {
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s should be an integer", ErrInvalidConfig, name)
		}
		*target = n
	}

	if value := env["TGVMAX_REQUEST_TIMEOUT"]; value != "" {
		timeout, err := ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
		c.Records.RequestTimeout = timeout
	}

	if value := env["TGVMAX_CACHE_EXPIRATION"]; value != "" {
		expiration, err := ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
		c.Cache.Expiration = expiration
	}

	return nil
}
