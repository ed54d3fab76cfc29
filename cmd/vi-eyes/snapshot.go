package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-eyes/clock"
	"github.com/lixenwraith/vi-eyes/host"
	"github.com/lixenwraith/vi-eyes/surface"
)

// defaultSeed keeps offline renders reproducible when no seed is configured
const defaultSeed = 1

// offline drives a host on a mock clock up to and including at
func (a *app) offline(s surface.Surface, at uint32, each func(h *host.Host, now uint32)) (*host.Host, error) {
	st, err := a.settings()
	if err != nil {
		return nil, err
	}
	if st.Seed == 0 {
		st.Seed = defaultSeed
	}
	h := host.New(s, st, a.log)
	h.Setup()
	if err := a.applyScene(h); err != nil {
		return nil, err
	}

	clk := clock.NewMock(0)
	step := time.Duration(h.FrameInterval()) * time.Millisecond
	for {
		now := clk.Millis()
		if h.Loop(now) && each != nil {
			each(h, now)
		}
		if now+h.FrameInterval() > at {
			break
		}
		clk.Advance(step)
	}
	return h, nil
}

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		at     uint32
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to ASCII, PBM or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(a.cfg.Display.Backend, a.cfg.Display.Width, a.cfg.Display.Height, nil)
			if err != nil {
				return err
			}
			h, err := a.offline(p.surface, at, nil)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "ascii":
				err = p.writeASCII(w)
			case "pbm":
				err = p.writePBM(w)
			case "png":
				err = p.writePNG(w)
			default:
				return fmt.Errorf("unknown format %q: want ascii, pbm or png", format)
			}
			if err != nil {
				return err
			}
			a.log.Debug("snapshot written",
				zap.String("format", format),
				zap.Uint64("frames", h.Frames()),
				zap.Stringer("expression", h.Face().Expression()))
			return nil
		},
	}
	cmd.Flags().Uint32Var(&at, "at", 1000, "timestamp to render, in ms")
	cmd.Flags().StringVarP(&format, "format", "f", "ascii", "output format: ascii, pbm or png")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
