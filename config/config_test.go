package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-eyes/emotion"
	"github.com/lixenwraith/vi-eyes/host"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults_MatchComponent(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 128, cfg.Display.Width)
	assert.Equal(t, 64, cfg.Display.Height)
	assert.Equal(t, "mono", cfg.Display.Backend)
	assert.Equal(t, 20, cfg.Eyes.Size)
	assert.Equal(t, 4, cfg.Eyes.Distance)
	assert.Equal(t, 50, cfg.Timing.Frame)
	assert.Equal(t, 3000, cfg.Timing.Blink)
	assert.Equal(t, 2000, cfg.Timing.Look)
	assert.Equal(t, 5000, cfg.Timing.Behavior)
	assert.True(t, cfg.Behavior.RandomBehavior)
	assert.True(t, cfg.Behavior.RandomBlink)
	assert.True(t, cfg.Behavior.RandomLook)
	assert.Empty(t, cfg.Behavior.Emotions)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "", "")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Eyes, cfg.Eyes)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := writeConfig(t, "eyes.toml", `
[eyes]
size = 30
corner_radius = 3

[timing]
frame = 40

[[behavior.emotions]]
name = "happy"
weight = 2.0

[[behavior.emotions]]
name = "Angry"
weight = 0.5
`)
	cfg, err := Load(viper.New(), path, "")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Eyes.Size)
	assert.Equal(t, 3, cfg.Eyes.CornerRadius)
	assert.Equal(t, 40, cfg.Timing.Frame)
	assert.Equal(t, 4, cfg.Eyes.Distance, "unset keys keep defaults")

	got, err := cfg.Emotions()
	require.NoError(t, err)
	assert.Equal(t, []emotion.Weight{
		{Emotion: emotion.Happy, Weight: 2},
		{Emotion: emotion.Angry, Weight: 0.5},
	}, got)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "eyes.yaml", "eyes:\n  size: 28\n")
	cfg, err := Load(viper.New(), path, "")
	require.NoError(t, err)
	assert.Equal(t, 28, cfg.Eyes.Size)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VIEYES_EYES_SIZE", "26")
	t.Setenv("VIEYES_BEHAVIOR_RANDOM_LOOK", "false")
	cfg, err := Load(viper.New(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 26, cfg.Eyes.Size)
	assert.False(t, cfg.Behavior.RandomLook)
}

func TestLoad_Profiles(t *testing.T) {
	cfg, err := Load(viper.New(), "", "high_performance")
	require.NoError(t, err)
	assert.Equal(t, "high_performance", cfg.Profile)
	assert.Equal(t, 33, cfg.Timing.Frame)
	assert.Equal(t, 24, cfg.Eyes.Size)
	assert.Equal(t, 3, cfg.Eyes.Distance)
	assert.Len(t, cfg.Behavior.Emotions, 4)

	cfg, err = Load(viper.New(), "", "low_power")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Timing.Frame)
	assert.Equal(t, 0, cfg.Timing.Look)
	assert.False(t, cfg.Behavior.RandomLook)
}

func TestLoad_FileBeatsProfile(t *testing.T) {
	path := writeConfig(t, "eyes.toml", "[eyes]\nsize = 40\n")
	cfg, err := Load(viper.New(), path, "high_performance")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Eyes.Size)
	assert.Equal(t, 33, cfg.Timing.Frame)
}

func TestLoad_ProfileFromFile(t *testing.T) {
	path := writeConfig(t, "eyes.toml", "profile = \"low_power\"\n")
	cfg, err := Load(viper.New(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "low_power", cfg.Profile)
	assert.Equal(t, 18, cfg.Eyes.Size)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(viper.New(), "", "turbo")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"), "")
	assert.Error(t, err)

	path := writeConfig(t, "eyes.toml", "[[behavior.emotions]]\nname = \"bored\"\nweight = 1.0\n")
	_, err = Load(viper.New(), path, "")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, emotion.ErrUnknown)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"huge height", func(c *Config) { c.Display.Height = 40000 }},
		{"backend", func(c *Config) { c.Display.Backend = "vga" }},
		{"eye size", func(c *Config) { c.Eyes.Size = -1 }},
		{"distance", func(c *Config) { c.Eyes.Distance = -2 }},
		{"frame", func(c *Config) { c.Timing.Frame = 0 }},
		{"blink", func(c *Config) { c.Timing.Blink = -5 }},
		{"blink past uint32", func(c *Config) { c.Timing.Blink = int(int64(math.MaxUint32) + int64(c.Eyes.Size)) }},
		{"transition past uint32", func(c *Config) { c.Eyes.Transition = int(int64(math.MaxUint32) + int64(c.Eyes.Size)) }},
		{"weight", func(c *Config) {
			c.Behavior.Emotions = []EmotionConfig{{Name: "sad", Weight: -1}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad_MillisOutOfRange(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int cannot hold the value on this platform")
	}
	path := writeConfig(t, "eyes.toml", "[timing]\nblink = 4294967296\n")
	_, err := Load(viper.New(), path, "")
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "timing.blink")
}

// The largest variation is accepted and the host keeps blinking
func TestLoad_MaxVariationRuns(t *testing.T) {
	path := writeConfig(t, "eyes.toml", "[timing]\nblink = 100\nblink_variation = 4294967295\n")
	cfg, err := Load(viper.New(), path, "")
	require.NoError(t, err)
	st, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), st.BlinkVariation)

	h := host.New(nil, st, nil)
	h.Setup()
	require.NotPanics(t, func() {
		for now := uint32(0); now <= 1000; now += 50 {
			h.Loop(now)
		}
	})
	assert.GreaterOrEqual(t, h.Face().Blink().Timer().IntervalMillis(), uint32(100))
}

func TestSettingsAndApply(t *testing.T) {
	cfg, err := Load(viper.New(), "", "home_assistant")
	require.NoError(t, err)

	st, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, 22, st.EyeSize)
	assert.Equal(t, uint32(2500), st.LookInterval)
	require.Len(t, st.Emotions, 7)
	assert.Equal(t, emotion.Normal, st.Emotions[0].Emotion)

	h := host.New(nil, host.DefaultSettings(), nil)
	h.Setup()
	cfg.Timing.Frame = 70
	require.NoError(t, cfg.Apply(h))
	assert.Equal(t, uint32(70), h.FrameInterval())
	assert.Equal(t, 22, h.Face().EyeSize())
	assert.Equal(t, 6, h.Face().EyeDistance())
	assert.InDelta(t, 1.2, h.Face().Blender().Weight(emotion.Happy), 1e-9)
}

func TestProfileNames(t *testing.T) {
	assert.Equal(t, []string{"basic", "high_performance", "home_assistant", "low_power"}, ProfileNames())
}
