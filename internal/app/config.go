package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/jessc/internal/config"
)

// DefaultWatchInterval is the polling interval used when none is configured.
const DefaultWatchInterval = time.Second

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // .jess file or directory
	OutputPath string // file, or directory for directory input; stdout when empty
	ConfigPath string // jessc.hcl; discovered next to the input when empty

	SearchPath []string
	Extension  string
	CacheFile  string
	Force      bool
	Bundle     bool
	PrintDeps  bool

	Watch           bool
	WatchInterval   time.Duration
	ReloadPort      int
	HealthcheckPort int

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.WatchInterval < 0 {
		return nil, fmt.Errorf("watch interval must not be negative, got %s", cfg.WatchInterval)
	}
	for name, port := range map[string]int{"reload port": cfg.ReloadPort, "healthcheck port": cfg.HealthcheckPort} {
		if port < 0 || port > 65535 {
			return nil, fmt.Errorf("%s out of range: %d", name, port)
		}
	}
	if cfg.PrintDeps && cfg.Watch {
		return nil, errors.New("deps report and watch mode cannot be combined")
	}
	return &cfg, nil
}

// merge fills settings left unset on the command line from the project file.
// Search path entries from the command line come first.
func (c *Config) merge(f *config.File) {
	c.SearchPath = append(c.SearchPath, f.SearchPath...)
	if c.Extension == "" {
		c.Extension = f.Extension
	}
	if c.OutputPath == "" {
		c.OutputPath = f.Output
	}
	if c.CacheFile == "" {
		c.CacheFile = f.CacheFile
	}
	c.Bundle = c.Bundle || f.BundleRuntime

	if f.Watch == nil {
		return
	}
	if c.WatchInterval == 0 {
		c.WatchInterval = f.Watch.Interval
	}
	if c.ReloadPort == 0 {
		c.ReloadPort = f.Watch.ReloadPort
	}
	if c.HealthcheckPort == 0 {
		c.HealthcheckPort = f.Watch.HealthcheckPort
	}
}
