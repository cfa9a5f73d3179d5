// Package config provides YAML-based configuration loading for the
// frameloop engine and its demo simulation.
package config

import "fmt"

// Config is the full configuration surface.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Adaptive AdaptiveConfig `yaml:"adaptive"`
	Demo     DemoConfig     `yaml:"demo"`
}

// EngineConfig holds the timing parameters shared by every loop
// strategy.
type EngineConfig struct {
	// TargetFPS is the fixed simulation rate; fixed_delta_time is
	// derived as 1/target_fps.
	TargetFPS float64 `yaml:"target_fps"`
	// MaxUpdatesPerFrame bounds fixed-step catch-up work per frame.
	MaxUpdatesPerFrame int `yaml:"max_updates_per_frame"`
	// MaxDeltaTime clamps a single frame delta, in seconds.
	MaxDeltaTime float64 `yaml:"max_delta_time"`
}

// AdaptiveConfig tunes the adaptive strategy controller.
type AdaptiveConfig struct {
	// LowFPSThreshold triggers the switch to fixed-step mode.
	LowFPSThreshold float64 `yaml:"low_fps_threshold"`
	// HighFPSThreshold triggers the switch back to variable mode.
	HighFPSThreshold float64 `yaml:"high_fps_threshold"`
	// SwitchCooldown is the hysteresis window in seconds.
	SwitchCooldown float64 `yaml:"switch_cooldown"`
}

// DemoConfig parameterizes the bouncing-ball demo simulation.
type DemoConfig struct {
	// Balls is the number of simulated bodies.
	Balls int `yaml:"balls"`
	// Gravity in cells per second squared.
	Gravity float64 `yaml:"gravity"`
	// Restitution is the bounce energy retention in [0, 1].
	Restitution float64 `yaml:"restitution"`
	// Seed for deterministic placement; 0 means time-based.
	Seed int64 `yaml:"seed"`
}

// Validate rejects configuration errors before anything is wired.
func (c Config) Validate() error {
	if c.Engine.TargetFPS <= 0 {
		return fmt.Errorf("config: engine.target_fps must be positive, got %v", c.Engine.TargetFPS)
	}
	if c.Engine.MaxUpdatesPerFrame <= 0 {
		return fmt.Errorf("config: engine.max_updates_per_frame must be positive, got %d", c.Engine.MaxUpdatesPerFrame)
	}
	if c.Engine.MaxDeltaTime <= 0 {
		return fmt.Errorf("config: engine.max_delta_time must be positive, got %v", c.Engine.MaxDeltaTime)
	}
	if c.Adaptive.LowFPSThreshold >= c.Adaptive.HighFPSThreshold {
		return fmt.Errorf("config: adaptive.low_fps_threshold %v must be below high_fps_threshold %v",
			c.Adaptive.LowFPSThreshold, c.Adaptive.HighFPSThreshold)
	}
	if c.Adaptive.SwitchCooldown < 0 {
		return fmt.Errorf("config: adaptive.switch_cooldown must not be negative, got %v", c.Adaptive.SwitchCooldown)
	}
	if c.Demo.Balls <= 0 {
		return fmt.Errorf("config: demo.balls must be positive, got %d", c.Demo.Balls)
	}
	if c.Demo.Restitution < 0 || c.Demo.Restitution > 1 {
		return fmt.Errorf("config: demo.restitution must be in [0, 1], got %v", c.Demo.Restitution)
	}
	return nil
}
