package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-eyes/canvas"
	"github.com/lixenwraith/vi-eyes/clock"
	"github.com/lixenwraith/vi-eyes/control"
	"github.com/lixenwraith/vi-eyes/host"
)

// pollEvery is the wake-up rate of the preview loop; Host.Loop does the frame throttling
const pollEvery = 10 * time.Millisecond

var (
	styleStatus  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 180, 180))
	styleError   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 80, 80))
	styleCommand = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// preview renders the face into a terminal, two pixel rows per cell
type preview struct {
	screen tcell.Screen
	host   *host.Host
	log    *zap.Logger

	commandMode bool
	command     []rune
	message     string
	failed      bool
}

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the animated eyes in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.settings()
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()
			screen.HideCursor()

			p := &preview{screen: screen, log: a.log.Named("preview"), message: "':' for commands, q to quit"}
			pl, err := newPipeline(a.cfg.Display.Backend, a.cfg.Display.Width, a.cfg.Display.Height, p.flush)
			if err != nil {
				return err
			}

			p.host = host.New(pl.surface, st, a.log)
			p.host.Setup()
			if err := a.applyScene(p.host); err != nil {
				return err
			}
			p.host.DumpConfig()
			p.run(clock.NewMonotonic())
			return nil
		},
	}
}

func (p *preview) run(clk *clock.Monotonic) {
	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handleInput(ev) {
				p.log.Info("preview closed", zap.Uint64("frames", p.host.Frames()))
				return
			}

		case <-ticker.C:
			p.host.Loop(clk.Millis())
		}
	}
}

// flush is the present step of the pipeline: canvas, status line, then Show
func (p *preview) flush(buf *canvas.Buffer) error {
	p.screen.Clear()
	buf.FlushToScreen(p.screen, 0, 0)
	_, h := buf.Size()
	p.drawStatus((h + 1) / 2)
	p.screen.Show()
	return nil
}

func (p *preview) drawStatus(row int) {
	if p.commandMode {
		p.drawText(0, row, ":"+string(p.command), styleCommand)
		return
	}
	style := styleStatus
	if p.failed {
		style = styleError
	}
	p.drawText(0, row, p.message, style)
}

func (p *preview) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (p *preview) setResult(r control.Result) {
	p.message, p.failed = r.Message, r.Failed
}

// handleInput returns false when the preview should exit
func (p *preview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if p.commandMode {
			return p.handleCommandKey(ev)
		}
		return p.handleNormalKey(ev)

	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *preview) handleNormalKey(ev *tcell.EventKey) bool {
	f := p.host.Face()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		f.LookLeft()
	case tcell.KeyRight:
		f.LookRight()
	case tcell.KeyUp:
		f.LookTop()
	case tcell.KeyDown:
		f.LookBottom()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			f.LookFront()
		case 'b':
			p.setResult(control.ExecuteCommand(p.host, "blink"))
		case ':':
			p.commandMode = true
			p.command = p.command[:0]
		}
	}
	return true
}

func (p *preview) handleCommandKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.commandMode = false
	case tcell.KeyEnter:
		p.commandMode = false
		r := control.ExecuteCommand(p.host, string(p.command))
		p.setResult(r)
		if r.Failed {
			p.log.Debug("command rejected", zap.String("command", string(p.command)), zap.String("reason", r.Message))
		}
		return r.Continue
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.command) > 0 {
			p.command = p.command[:len(p.command)-1]
		} else {
			p.commandMode = false
		}
	case tcell.KeyRune:
		p.command = append(p.command, ev.Rune())
	}
	return true
}
