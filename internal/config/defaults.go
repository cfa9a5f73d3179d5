package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TargetFPS:          60,
			MaxUpdatesPerFrame: 5,
			MaxDeltaTime:       5.0 / 60.0,
		},
		Adaptive: AdaptiveConfig{
			LowFPSThreshold:  30,
			HighFPSThreshold: 55,
			SwitchCooldown:   1.0,
		},
		Demo: DemoConfig{
			Balls:       12,
			Gravity:     30.0,
			Restitution: 0.85,
		},
	}
}
