// Package config loads eye settings from TOML (or YAML) files, VIEYES_*
// environment variables and named profiles, and validates emotion names before
// they reach the core
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-eyes/emotion"
	"github.com/lixenwraith/vi-eyes/host"
	"github.com/lixenwraith/vi-eyes/logging"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. VIEYES_EYES_SIZE
	EnvPrefix = "VIEYES"
	// DefaultName is the config file looked up in the working directory
	DefaultName = "vi-eyes"
	// DefaultType is the format assumed for DefaultName
	DefaultType = "toml"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// EmotionConfig is one configured emotion weight
type EmotionConfig struct {
	Name   string  `mapstructure:"name"`
	Weight float64 `mapstructure:"weight"`
}

// DisplayConfig selects the surface
type DisplayConfig struct {
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	Backend string `mapstructure:"backend"` // mono or fb
}

// EyesConfig sizes the eyes
type EyesConfig struct {
	Size         int `mapstructure:"size"`
	Distance     int `mapstructure:"distance"`
	CornerRadius int `mapstructure:"corner_radius"`
	Transition   int `mapstructure:"transition"`
}

// TimingConfig holds every interval in milliseconds; 0 disables a random timer
type TimingConfig struct {
	Frame          int `mapstructure:"frame"`
	Blink          int `mapstructure:"blink"`
	BlinkVariation int `mapstructure:"blink_variation"`
	Look           int `mapstructure:"look"`
	Behavior       int `mapstructure:"behavior"`
}

// BehaviorConfig toggles the random controllers and seeds emotions
type BehaviorConfig struct {
	RandomBehavior bool            `mapstructure:"random_behavior"`
	RandomBlink    bool            `mapstructure:"random_blink"`
	RandomLook     bool            `mapstructure:"random_look"`
	Seed           uint64          `mapstructure:"seed"`
	Emotions       []EmotionConfig `mapstructure:"emotions"`
}

// Config is the root configuration
type Config struct {
	Profile  string         `mapstructure:"profile"`
	Display  DisplayConfig  `mapstructure:"display"`
	Eyes     EyesConfig     `mapstructure:"eyes"`
	Timing   TimingConfig   `mapstructure:"timing"`
	Behavior BehaviorConfig `mapstructure:"behavior"`
	Logger   logging.Config `mapstructure:"logger"`
}

// SetDefaults registers the 128x64 panel defaults
func SetDefaults(v *viper.Viper) {
	d := host.DefaultSettings()

	v.SetDefault("profile", "")

	v.SetDefault("display.width", d.ScreenWidth)
	v.SetDefault("display.height", d.ScreenHeight)
	v.SetDefault("display.backend", "mono")

	v.SetDefault("eyes.size", d.EyeSize)
	v.SetDefault("eyes.distance", d.EyeDistance)
	v.SetDefault("eyes.corner_radius", d.CornerRadius)
	v.SetDefault("eyes.transition", d.TransitionMillis)

	v.SetDefault("timing.frame", d.FrameInterval)
	v.SetDefault("timing.blink", d.BlinkInterval)
	v.SetDefault("timing.blink_variation", 0)
	v.SetDefault("timing.look", d.LookInterval)
	v.SetDefault("timing.behavior", d.BehaviorInterval)

	v.SetDefault("behavior.random_behavior", d.RandomBehavior)
	v.SetDefault("behavior.random_blink", d.RandomBlink)
	v.SetDefault("behavior.random_look", d.RandomLook)
	v.SetDefault("behavior.seed", 0)
	v.SetDefault("behavior.emotions", []map[string]any{})

	l := logging.Defaults()
	v.SetDefault("logger.level", l.Level)
	v.SetDefault("logger.format", l.Format)
	v.SetDefault("logger.file", l.File)
	v.SetDefault("logger.max_size", l.MaxSize)
	v.SetDefault("logger.max_backups", l.MaxBackups)
	v.SetDefault("logger.max_age", l.MaxAge)
	v.SetDefault("logger.compress", l.Compress)
}

// Defaults returns the configuration with no file, env or profile applied
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load layers defaults, profile, config file and environment, in rising priority
// An empty file searches ./vi-eyes.toml and tolerates its absence; an explicit
// file must exist
func Load(v *viper.Viper, file, profile string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultName)
		v.SetConfigType(DefaultType)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// A profile named in the file or environment applies when none was passed
	if profile == "" {
		profile = v.GetString("profile")
	}
	if profile != "" {
		if err := ApplyProfile(v, profile); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Profile = profile
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks sizes, intervals and emotion names
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
	}

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return invalid("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.Width > 32767 || c.Display.Height > 32767 {
		return invalid("display size %dx%d exceeds 16-bit coordinates", c.Display.Width, c.Display.Height)
	}
	switch c.Display.Backend {
	case "mono", "fb":
	default:
		return invalid("display.backend must be mono or fb, got %q", c.Display.Backend)
	}
	if c.Eyes.Size <= 0 {
		return invalid("eyes.size must be positive, got %d", c.Eyes.Size)
	}
	if c.Eyes.Distance < 0 || c.Eyes.CornerRadius < 0 || c.Eyes.Transition < 0 {
		return invalid("eyes.distance, eyes.corner_radius and eyes.transition must not be negative")
	}
	if c.Timing.Frame <= 0 {
		return invalid("timing.frame must be positive, got %d", c.Timing.Frame)
	}
	if c.Timing.Blink < 0 || c.Timing.BlinkVariation < 0 || c.Timing.Look < 0 || c.Timing.Behavior < 0 {
		return invalid("timing intervals must not be negative")
	}
	// Millisecond values are carried as uint32 past this point
	for _, m := range []struct {
		key string
		v   int
	}{
		{"timing.frame", c.Timing.Frame},
		{"timing.blink", c.Timing.Blink},
		{"timing.blink_variation", c.Timing.BlinkVariation},
		{"timing.look", c.Timing.Look},
		{"timing.behavior", c.Timing.Behavior},
		{"eyes.transition", c.Eyes.Transition},
	} {
		if int64(m.v) > math.MaxUint32 {
			return invalid("%s %d exceeds %d ms", m.key, m.v, uint32(math.MaxUint32))
		}
	}
	if _, err := c.Emotions(); err != nil {
		return err
	}
	return nil
}

// Emotions resolves the configured names
func (c *Config) Emotions() ([]emotion.Weight, error) {
	out := make([]emotion.Weight, 0, len(c.Behavior.Emotions))
	for i, ec := range c.Behavior.Emotions {
		e, err := emotion.Parse(ec.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: behavior.emotions[%d]: %w", ErrInvalidConfig, i, err)
		}
		if ec.Weight < 0 {
			return nil, fmt.Errorf("%w: behavior.emotions[%d] %s: weight %g is negative", ErrInvalidConfig, i, e, ec.Weight)
		}
		out = append(out, emotion.Weight{Emotion: e, Weight: ec.Weight})
	}
	return out, nil
}

// Settings converts a validated config into host settings
func (c *Config) Settings() (host.Settings, error) {
	emotions, err := c.Emotions()
	if err != nil {
		return host.Settings{}, err
	}
	return host.Settings{
		ScreenWidth:      c.Display.Width,
		ScreenHeight:     c.Display.Height,
		EyeSize:          c.Eyes.Size,
		EyeDistance:      c.Eyes.Distance,
		CornerRadius:     c.Eyes.CornerRadius,
		FrameInterval:    uint32(c.Timing.Frame),
		BlinkInterval:    uint32(c.Timing.Blink),
		BlinkVariation:   uint32(c.Timing.BlinkVariation),
		LookInterval:     uint32(c.Timing.Look),
		BehaviorInterval: uint32(c.Timing.Behavior),
		TransitionMillis: uint32(c.Eyes.Transition),
		RandomBehavior:   c.Behavior.RandomBehavior,
		RandomBlink:      c.Behavior.RandomBlink,
		RandomLook:       c.Behavior.RandomLook,
		Emotions:         emotions,
		Seed:             c.Behavior.Seed,
	}, nil
}

// Apply pushes the runtime-adjustable parts of the config onto a running host
func (c *Config) Apply(h *host.Host) error {
	st, err := c.Settings()
	if err != nil {
		return err
	}
	h.SetFrameInterval(st.FrameInterval)

	f := h.Face()
	if f == nil {
		return nil
	}
	f.SetScreenSize(st.ScreenWidth, st.ScreenHeight)
	f.SetEyeSize(st.EyeSize)
	f.SetEyeDistance(st.EyeDistance)
	f.SetCornerRadius(st.CornerRadius)
	f.SetTransition(st.TransitionMillis)
	f.SetBlinkInterval(st.BlinkInterval)
	f.SetBlinkVariation(st.BlinkVariation)
	f.SetLookInterval(st.LookInterval)
	f.SetBehaviorInterval(st.BehaviorInterval)
	f.EnableRandomBehavior(st.RandomBehavior)
	f.EnableRandomBlink(st.RandomBlink)
	f.EnableRandomLook(st.RandomLook)
	for _, w := range st.Emotions {
		f.SetEmotion(w.Emotion, w.Weight)
	}
	return nil
}

// ProfileNames lists the built-in profiles
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
