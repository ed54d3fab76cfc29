package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-eyes/host"
	"github.com/lixenwraith/vi-eyes/surface"
)

func newTraceCmd(a *app) *cobra.Command {
	var frames int
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the draw calls issued for each frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 {
				return fmt.Errorf("--frames must be positive, got %d", frames)
			}
			p, err := newPipeline(a.cfg.Display.Backend, a.cfg.Display.Width, a.cfg.Display.Height, nil)
			if err != nil {
				return err
			}
			rec := surface.Wrap(p.surface)

			w := cmd.OutOrStdout()
			at := uint32(a.cfg.Timing.Frame) * uint32(frames-1)
			_, err = a.offline(rec, at, func(h *host.Host, now uint32) {
				calls := rec.Calls()
				parts := make([]string, len(calls))
				for i, c := range calls {
					parts[i] = c.String()
				}
				fmt.Fprintf(w, "t=%d %s %s\n", now, h.Face().Expression(), strings.Join(parts, " "))
				rec.Reset()
			})
			return err
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 10, "number of frames")
	return cmd
}
