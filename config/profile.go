package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Profile overrides defaults by key; file and environment values still win
type Profile map[string]any

func weights(pairs ...any) []map[string]any {
	out := make([]map[string]any, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, map[string]any{"name": pairs[i], "weight": pairs[i+1]})
	}
	return out
}

// Built-in profiles for common panel setups
var profiles = map[string]Profile{
	"basic": {
		"behavior.emotions": weights(
			"normal", 1.0, "happy", 0.8, "sad", 0.3, "angry", 0.2, "surprised", 0.5),
	},
	"home_assistant": {
		"eyes.size":       22,
		"eyes.distance":   6,
		"timing.look":     2500,
		"timing.behavior": 4000,
		"behavior.emotions": weights(
			"normal", 1.5, "happy", 1.2, "sad", 0.6, "angry", 0.4,
			"surprised", 0.8, "fearful", 0.3, "content", 1.0),
	},
	"high_performance": {
		"eyes.size":       24,
		"eyes.distance":   3,
		"timing.frame":    33,
		"timing.blink":    2000,
		"timing.look":     1500,
		"timing.behavior": 3000,
		"behavior.emotions": weights(
			"normal", 1.0, "happy", 1.0, "content", 0.8, "focused", 0.6),
	},
	"low_power": {
		"eyes.size":            18,
		"eyes.distance":        4,
		"timing.frame":         100,
		"timing.blink":         4000,
		"timing.look":          0,
		"timing.behavior":      8000,
		"behavior.random_look": false,
		"behavior.emotions": weights(
			"normal", 1.0, "content", 0.8, "relaxed", 0.6),
	},
}

// ApplyProfile layers a named profile over the defaults in v
func ApplyProfile(v *viper.Viper, name string) error {
	p, ok := profiles[name]
	if !ok {
		return fmt.Errorf("%w: unknown profile %q (have %v)", ErrInvalidConfig, name, ProfileNames())
	}
	for k, val := range p {
		v.SetDefault(k, val)
	}
	return nil
}
