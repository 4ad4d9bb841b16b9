package vecs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads engine settings from a YAML file. Keys that are not part
// of Config are rejected so that typos do not silently fall back to
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data. Empty input yields the zero Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if cfg.StepQuota < 0 {
		return Config{}, fmt.Errorf("step_quota must not be negative")
	}
	if cfg.RecursionLimit < 0 {
		return Config{}, fmt.Errorf("recursion_limit must not be negative")
	}
	return cfg, nil
}
