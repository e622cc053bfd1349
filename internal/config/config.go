package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"wheel-quiz-service/internal/domain"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		TTL string `yaml:"ttl"`
	} `yaml:"questions"`
	Wheel struct {
		// Seed fixes the spinner's random source; 0 seeds from the clock.
		Seed     int64            `yaml:"seed"`
		Segments []domain.Segment `yaml:"segments"`
	} `yaml:"wheel"`
}

// SeedFile is the layout read by the seed command.
type SeedFile struct {
	Questions []domain.Question `yaml:"questions"`
	Segments  []domain.Segment  `yaml:"segments"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadSeed reads a question bank / wheel seed file.
func LoadSeed(path string) (SeedFile, error) {
	seed := SeedFile{}
	data, err := os.ReadFile(path)
	if err != nil {
		return seed, err
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return seed, err
	}
	return seed, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
