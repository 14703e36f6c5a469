// Package config loads server configuration from defaults, an optional
// YAML file and TIDES_ prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the server settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `koanf:"addr"`
	// DataDir is the tide model data directory.
	DataDir string `koanf:"data_dir"`
	// DeltaTimeFile is the TT minus UT1 table. Empty disables the GOT
	// class models.
	DeltaTimeFile string `koanf:"delta_time_file"`
	// DefaultModel is used when a request names no model.
	DefaultModel string `koanf:"default_model"`
	// CORSOrigins lists the allowed cross origin hosts.
	CORSOrigins []string `koanf:"cors_origins"`
}

const envPrefix = "TIDES_"

func defaults() Config {
	return Config{
		Addr:         ":8080",
		DataDir:      "data",
		DefaultModel: "TPXO9.1",
		CORSOrigins:  []string{"*"},
	}
}

// Load builds the configuration. path may be empty; a named file that
// does not exist is an error, so typos do not silently fall back to
// defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("listen address must not be empty")
	}
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("data directory must not be empty")
	}
	return cfg, nil
}
