package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:  30,
			Height: 30,
		},
		Speed: SpeedConfig{
			InitialDelay:   15.0,
			SpeedIncrement: 0.5,
			TickRate:       33,
		},
		Start: StartConfig{
			X:       -1,
			Y:       -1,
			Heading: "right",
		},
		Food: FoodConfig{
			MaxAttempts: 0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
