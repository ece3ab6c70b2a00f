package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/avigny/taskforge/core/metrics"
	"github.com/avigny/taskforge/core/schedule"
	"github.com/avigny/taskforge/infra/ai"
)

// HTTPConfig defines the API listen address.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies the default listen address.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// FetchConfig bounds document fetching.
type FetchConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies the default fetch timeout.
func (c *FetchConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

// Config aggregates all service configuration.
type Config struct {
	HTTP    HTTPConfig      `json:"http"`
	AI      ai.Config       `json:"ai"`
	Planner schedule.Config `json:"planner"`
	Metrics metrics.Config  `json:"metrics"`
	Fetch   FetchConfig     `json:"fetch"`
}

// Load reads the configuration file at path (JSON or YAML by extension),
// applies TF_*__* environment overrides and fills defaults. A .env file in
// the working directory is honored before the environment is read.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("TF_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "tf_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.Fetch.SetDefaults()
	cfg.Planner.SetDefaults()
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
