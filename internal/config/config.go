// Package config loads monitor settings from an optional YAML file, a
// dotenv file, and PLANTMON_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PLANTMON_"

// Config holds all monitor settings.
type Config struct {
	Title           string  `yaml:"title"`
	TimestampLayout string  `yaml:"timestamp_layout"`
	AltScreen       bool    `yaml:"alt_screen"`
	Initial         Initial `yaml:"initial"`
	Log             Log     `yaml:"log"`
}

// Initial is the reading the monitor starts with.
type Initial struct {
	Moisture    int `yaml:"moisture"`
	Temperature int `yaml:"temperature"`
	Light       int `yaml:"light"`
	WaterLevel  int `yaml:"water_level"`
}

// Log configures the file logger. An empty File disables logging.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Title:           "Inventify Team Project",
		TimestampLayout: "1/2/2006, 3:04:05 PM",
		AltScreen:       true,
		Initial: Initial{
			Moisture:    45,
			Temperature: 22,
			Light:       450,
			WaterLevel:  30,
		},
		Log: Log{Level: "info"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and environment overrides, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load env file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"TITLE", &cfg.Title},
		{"TIMESTAMP_LAYOUT", &cfg.TimestampLayout},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FILE", &cfg.Log.File},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(envPrefix + s.key); ok {
			*s.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"MOISTURE", &cfg.Initial.Moisture},
		{"TEMPERATURE", &cfg.Initial.Temperature},
		{"LIGHT", &cfg.Initial.Light},
		{"WATER_LEVEL", &cfg.Initial.WaterLevel},
	}
	for _, i := range ints {
		v, ok := os.LookupEnv(envPrefix + i.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: parse %s%s: %w", envPrefix, i.key, err)
		}
		*i.dst = n
	}

	if v, ok := os.LookupEnv(envPrefix + "ALT_SCREEN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: parse %sALT_SCREEN: %w", envPrefix, err)
		}
		cfg.AltScreen = b
	}
	return nil
}

// Validate checks percentage fields and required strings.
func (c Config) Validate() error {
	if c.Initial.Moisture < 0 || c.Initial.Moisture > 100 {
		return fmt.Errorf("config: initial.moisture %d out of range [0,100]", c.Initial.Moisture)
	}
	if c.Initial.WaterLevel < 0 || c.Initial.WaterLevel > 100 {
		return fmt.Errorf("config: initial.water_level %d out of range [0,100]", c.Initial.WaterLevel)
	}
	if c.TimestampLayout == "" {
		return errors.New("config: timestamp_layout is empty")
	}
	return nil
}
