package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jsphweid/timegrid/model"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string           `yaml:"log_level"`
	Addr     string           `yaml:"addr"`
	Tempo    model.TempoMeter `yaml:"tempo"`
	// Debounce delays gridline recomputation after a viewport resize.
	Debounce time.Duration `yaml:"debounce"`
	// Measures is the default timeline length for the grid commands.
	Measures int `yaml:"measures"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Addr:     ":8080",
		Tempo: model.TempoMeter{
			BPM:           120,
			TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
		},
		Debounce: 150 * time.Millisecond,
		Measures: 16,
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return cfg, fmt.Errorf("could not expand config path %s: %w", path, err)
		}
		dat, err := os.ReadFile(expanded)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("could not read config %s: %w", expanded, err)
		default:
			if err := yaml.Unmarshal(dat, &cfg); err != nil {
				return cfg, fmt.Errorf("could not parse config %s: %w", expanded, err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.Tempo.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Measures <= 0 {
		return cfg, model.InvalidParameter("measures %d must be positive", cfg.Measures)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if level := os.Getenv("TIMEGRID_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if addr := os.Getenv("TIMEGRID_ADDR"); addr != "" {
		cfg.Addr = addr
	}
}
