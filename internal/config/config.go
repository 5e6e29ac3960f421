package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pable/vbscout/internal/aggregator"
	"github.com/pable/vbscout/internal/model"
)

// Config is the contents of the YAML config file.
type Config struct {
	DB       string        `yaml:"db"`
	Team     string        `yaml:"team"`
	LogLevel string        `yaml:"log_level"`
	SetOdds  SetOddsConfig `yaml:"set_odds"`
	Analyze  AnalyzeConfig `yaml:"analyze"`
}

type SetOddsConfig struct {
	OH1 PlayerConfig `yaml:"oh1"`
	OH2 PlayerConfig `yaml:"oh2"`
}

// PlayerConfig names an outside hitter and the rotations in which they are front row.
type PlayerConfig struct {
	Number    int              `yaml:"number"`
	Rotations []RotationConfig `yaml:"rotations"`
}

type RotationConfig struct {
	Marker string `yaml:"marker"` // "*z1".."*z6"
	Label  string `yaml:"label"`
}

type AnalyzeConfig struct {
	Model string `yaml:"model"`
}

// DefaultPath returns ~/.vbscout/config.yaml.
func DefaultPath(home string) string {
	return filepath.Join(home, ".vbscout", "config.yaml")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		SetOdds: SetOddsConfig{
			OH1: PlayerConfig{Rotations: rotationConfigs(aggregator.DefaultOH1Rotations)},
			OH2: PlayerConfig{Rotations: rotationConfigs(aggregator.DefaultOH2Rotations)},
		},
		Analyze: AnalyzeConfig{Model: "claude-haiku-4-5-20251001"},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not an
// error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every configured rotation marker names one of the six rotations.
func (c *Config) Validate() error {
	for name, p := range map[string]PlayerConfig{"oh1": c.SetOdds.OH1, "oh2": c.SetOdds.OH2} {
		if _, err := p.RotationLabels(); err != nil {
			return fmt.Errorf("set_odds.%s: %w", name, err)
		}
	}
	return nil
}

// RotationLabels converts the configured rotations into set-odds input.
func (p PlayerConfig) RotationLabels() ([]model.RotationLabel, error) {
	out := make([]model.RotationLabel, 0, len(p.Rotations))
	for _, r := range p.Rotations {
		rot, err := model.ParseRotation(r.Marker)
		if err != nil {
			return nil, err
		}
		label := r.Label
		if label == "" {
			label = rot.Label()
		}
		out = append(out, model.RotationLabel{Rotation: rot, Label: label})
	}
	return out, nil
}

func rotationConfigs(rls []model.RotationLabel) []RotationConfig {
	out := make([]RotationConfig, 0, len(rls))
	for _, rl := range rls {
		out = append(out, RotationConfig{Marker: rl.Rotation.Marker(), Label: rl.Label})
	}
	return out
}
