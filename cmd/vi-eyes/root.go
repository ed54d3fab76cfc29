package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/vi-eyes/config"
	"github.com/lixenwraith/vi-eyes/emotion"
	"github.com/lixenwraith/vi-eyes/host"
	"github.com/lixenwraith/vi-eyes/logging"
)

// app carries flags and the loaded config between cobra hooks
type app struct {
	cfgFile string
	profile string
	debug   bool
	verbose bool

	// Scene overrides shared by every command
	emotionName string
	look        string
	seed        uint64

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "vi-eyes",
		Short:         "Animated robotic eyes for small bitmap displays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./vi-eyes.toml)")
	pf.StringVarP(&a.profile, "profile", "p", "", "built-in profile: "+strings.Join(config.ProfileNames(), ", "))
	pf.BoolVar(&a.debug, "debug", false, "write a debug log to "+logging.DebugFile())
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")
	pf.StringVarP(&a.emotionName, "emotion", "e", "", "show a single emotion instead of random behavior")
	pf.StringVar(&a.look, "look", "", "fixed gaze target as x,y in [-1,1]")
	pf.Uint64Var(&a.seed, "seed", 0, "random seed (0 = config value)")

	root.AddCommand(
		newPreviewCmd(a),
		newSnapshotCmd(a),
		newTraceCmd(a),
		newProfilesCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(viper.New(), a.cfgFile, a.profile)
	if err != nil {
		return err
	}
	if a.seed != 0 {
		cfg.Behavior.Seed = a.seed
	}
	a.cfg = cfg

	lc := cfg.Logger
	if a.debug {
		lc.Level = "debug"
		if lc.File == "" {
			lc.File = logging.DebugFile()
		}
	}
	// The preview owns the terminal; console output would corrupt it
	var console zapcore.WriteSyncer
	if a.verbose && cmd.Name() != "preview" {
		console = zapcore.Lock(os.Stderr)
	}
	a.log = logging.Initialize(lc, console)
	a.log.Debug("config loaded",
		zap.String("command", cmd.Name()),
		zap.String("profile", cfg.Profile),
		zap.String("backend", cfg.Display.Backend))
	return nil
}

// settings resolves host settings with the scene overrides applied
func (a *app) settings() (host.Settings, error) {
	st, err := a.cfg.Settings()
	if err != nil {
		return st, err
	}
	if a.emotionName != "" {
		e, err := emotion.Parse(a.emotionName)
		if err != nil {
			return st, err
		}
		st.RandomBehavior = false
		// Normal stays at zero so only the chosen emotion is expressed
		st.Emotions = []emotion.Weight{
			{Emotion: e, Weight: emotion.DefaultWeight},
			{Emotion: emotion.Normal, Weight: 0},
		}
	}
	if a.look != "" {
		st.RandomLook = false
	}
	return st, nil
}

// applyScene sets the fixed gaze after Setup
func (a *app) applyScene(h *host.Host) error {
	if a.look == "" {
		return nil
	}
	x, y, err := parseLook(a.look)
	if err != nil {
		return err
	}
	h.Face().LookAt(x, y)
	return nil
}

func parseLook(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --look %q: want x,y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid --look %q: want x,y", s)
	}
	return x, y, nil
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List built-in configuration profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range config.ProfileNames() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
