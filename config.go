package bpm

import (
	"context"
	"errors"
	"fmt"

	"github.com/polytechnice-si/5A-BPM-Demo/policy"
	"github.com/polytechnice-si/5A-BPM-Demo/service/engine"
	"github.com/polytechnice-si/5A-BPM-Demo/service/meta"
)

// Store kinds
const (
	StoreMemory = "memory"
	StoreFS     = "fs"
)

// Config is a serialisable representation of the service configuration.
// New replaces a zero Engine or Store section with its DefaultConfig value;
// LoadConfig keeps defaults for omitted settings.
type Config struct {
	Engine  engine.Config  `json:"engine" yaml:"engine"`
	Store   StoreConfig    `json:"store" yaml:"store"`
	Tracing TracingConfig  `json:"tracing" yaml:"tracing"`
	Metrics MetricsConfig  `json:"metrics" yaml:"metrics"`
	Log     LogConfig      `json:"log" yaml:"log"`
	Policy  *policy.Config `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// StoreConfig selects where instance snapshots live.
type StoreConfig struct {
	Kind    string `json:"kind" yaml:"kind"`
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Addr serves /metrics when set, e.g. ":9090".
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Engine:  engine.DefaultConfig(),
		Store:   StoreConfig{Kind: StoreMemory},
		Tracing: TracingConfig{ServiceName: "holiday-bpm", ServiceVersion: "0.1.0"},
	}
}

// withDefaults returns a copy of c with zero Engine and Store sections
// replaced by their defaults.
func (c *Config) withDefaults() *Config {
	ret := *c
	defaults := DefaultConfig()
	if ret.Engine == (engine.Config{}) {
		ret.Engine = defaults.Engine
	}
	if ret.Store == (StoreConfig{}) {
		ret.Store = defaults.Store
	}
	return &ret
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.Engine.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Store.Kind {
	case StoreMemory:
	case StoreFS:
		if c.Store.BaseURL == "" {
			errs = append(errs, fmt.Errorf("store.baseURL is required for %s store", StoreFS))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported store.kind %q", c.Store.Kind))
	}
	if c.Metrics.Addr != "" && !c.Metrics.Enabled {
		errs = append(errs, fmt.Errorf("metrics.addr set while metrics are disabled"))
	}
	if c.Policy != nil {
		switch c.Policy.Mode {
		case "", policy.ModeAuto, policy.ModeEnforce, policy.ModeDeny:
		default:
			errs = append(errs, fmt.Errorf("unsupported policy.mode %q", c.Policy.Mode))
		}
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML or JSON config from any afs location, expanding
// ${env.KEY} expressions. Missing settings keep their defaults.
func LoadConfig(ctx context.Context, location string, options ...meta.Option) (*Config, error) {
	return loadConfig(ctx, meta.New("", options...), location)
}

func loadConfig(ctx context.Context, metaService *meta.Service, location string) (*Config, error) {
	cfg := DefaultConfig()
	if err := metaService.Load(ctx, location, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", location, err)
	}
	return cfg, nil
}
