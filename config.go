package playstage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the window, frame rate and physics of a scene.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`

	// PhysicsMultiplier is the number of physics sub-steps per frame.
	PhysicsMultiplier int `yaml:"physics_multiplier"`

	Gravity float64 `yaml:"gravity"`

	BackgroundColor string `yaml:"background_color"`
	BackgroundImage string `yaml:"background_image"`
}

// DefaultConfig returns the configuration used when none is loaded.
func DefaultConfig() Config {
	return Config{
		Title:             "playstage",
		Width:             1280,
		Height:            720,
		FPS:               60,
		PhysicsMultiplier: 4,
		BackgroundColor:   "purple",
	}
}

// LoadConfig reads a YAML config file over the defaults, so absent keys
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
