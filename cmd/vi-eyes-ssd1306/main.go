//go:build tinygo

// Command vi-eyes-ssd1306 runs the eyes on a 128x64 SSD1306 OLED over I2C
package main

import (
	"image/color"
	"machine"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/drivers/ssd1306"

	"github.com/lixenwraith/vi-eyes/clock"
	"github.com/lixenwraith/vi-eyes/host"
	"github.com/lixenwraith/vi-eyes/surface/mono"
)

const (
	panelAddress = 0x3C
	panelWidth   = 128
	panelHeight  = 64
)

// panel adapts the driver's method set to drivers.Displayer
type panel struct {
	size    func() (int16, int16)
	set     func(x, y int16, c color.RGBA)
	display func() error
}

func (p *panel) Size() (int16, int16)              { return p.size() }
func (p *panel) SetPixel(x, y int16, c color.RGBA) { p.set(x, y, c) }
func (p *panel) Display() error                    { return p.display() }

func main() {
	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{Address: panelAddress, Width: panelWidth, Height: panelHeight})
	dev.ClearDisplay()

	s := mono.NewForDisplay(&panel{size: dev.Size, set: dev.SetPixel, display: dev.Display})

	st := host.DefaultSettings()
	st.Seed = uint64(time.Now().UnixNano())
	h := host.New(s, st, zap.NewNop())
	h.Setup()

	clk := clock.NewMonotonic()
	for {
		h.Loop(clk.Millis())
		time.Sleep(time.Millisecond)
	}
}
