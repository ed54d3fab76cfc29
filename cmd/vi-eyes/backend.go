package main

import (
	"fmt"
	"image/png"
	"io"

	"github.com/lixenwraith/vi-eyes/canvas"
	"github.com/lixenwraith/vi-eyes/surface"
	"github.com/lixenwraith/vi-eyes/surface/fb"
	"github.com/lixenwraith/vi-eyes/surface/mono"
)

// pipeline is a backend surface that always lands in an RGB canvas
// The mono backend reaches the canvas through its display driver on Present
type pipeline struct {
	surface surface.Surface
	canvas  *canvas.Buffer
	mono    *mono.Surface // nil for fb
}

func newPipeline(backend string, width, height int, flush func(*canvas.Buffer) error) (*pipeline, error) {
	buf := canvas.NewBuffer(width, height, canvas.RgbBackground)
	p := &pipeline{canvas: buf}

	switch backend {
	case "mono":
		var f func() error
		if flush != nil {
			f = func() error { return flush(buf) }
		}
		p.mono = mono.NewForDisplay(canvas.NewDisplay(buf, f))
		p.surface = p.mono
	case "fb":
		p.surface = fb.New(buf, fb.DefaultPalette, flush)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
	return p, nil
}

// writeASCII renders lit pixels as '#'
func (p *pipeline) writeASCII(w io.Writer) error {
	if p.mono != nil {
		_, err := io.WriteString(w, p.mono.String())
		return err
	}
	width, height := p.canvas.Size()
	bg := p.canvas.Background()
	line := make([]byte, width+1)
	line[width] = '\n'
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			line[x] = '.'
			if p.canvas.At(x, y) != bg {
				line[x] = '#'
			}
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func (p *pipeline) writePBM(w io.Writer) error {
	if p.mono == nil {
		return fmt.Errorf("pbm output needs the mono backend")
	}
	return p.mono.WritePBM(w)
}

func (p *pipeline) writePNG(w io.Writer) error {
	return png.Encode(w, p.canvas.Image())
}
