// Package control executes colon commands against a running host
//
// Commands are tokenized with shell quoting rules, e.g.
//
//	:look -0.5 1
//	:emotion happy 0.8
//	:random blink off
package control

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/lixenwraith/vi-eyes/emotion"
	"github.com/lixenwraith/vi-eyes/host"
)

// Result is the outcome of one command
type Result struct {
	Continue bool   // false = exit requested
	Message  string // status line for the user
	Failed   bool   // command was rejected
}

func ok(format string, args ...any) Result {
	return Result{Continue: true, Message: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) Result {
	return Result{Continue: true, Message: fmt.Sprintf(format, args...), Failed: true}
}

// ExecuteCommand parses and executes a command line
func ExecuteCommand(h *host.Host, command string) Result {
	command = strings.TrimPrefix(strings.TrimSpace(command), ":")
	if command == "" {
		return Result{Continue: true}
	}

	parts, err := shlex.Split(command)
	if err != nil {
		return fail("Parse error: %v", err)
	}
	if len(parts) == 0 {
		return Result{Continue: true}
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	if cmd == "q" || cmd == "quit" {
		return Result{Continue: false, Message: "bye"}
	}
	if cmd == "h" || cmd == "help" || cmd == "?" {
		return handleHelpCommand()
	}
	if h.Face() == nil {
		return fail("Host not set up")
	}

	switch cmd {
	case "l", "look":
		return handleLookCommand(h, args)
	case "left", "right", "up", "top", "down", "bottom", "front", "center":
		return handlePresetCommand(h, cmd)
	case "b", "blink":
		return handleBlinkCommand(h)
	case "e", "emotion":
		return handleEmotionCommand(h, args)
	case "reset":
		h.Face().Blender().Reset()
		return ok("Emotions reset")
	case "r", "random":
		return handleRandomCommand(h, args)
	case "i", "interval":
		return handleIntervalCommand(h, args)
	case "size", "distance", "radius":
		return handleGeometryCommand(h, cmd, args)
	case "s", "status":
		return handleStatusCommand(h)
	default:
		return fail("Unknown command: %s", cmd)
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// handleLookCommand sets the gaze target; values are clamped by the controller
func handleLookCommand(h *host.Host, args []string) Result {
	if len(args) != 2 {
		return fail("Usage: look <x> <y>")
	}
	x, errX := parseFloat(args[0])
	y, errY := parseFloat(args[1])
	if errX != nil || errY != nil {
		return fail("Invalid arguments for look")
	}
	h.Face().LookAt(x, y)
	t := h.Face().Gaze().Target()
	return ok("Looking at %.2f %.2f", t.X, t.Y)
}

func handlePresetCommand(h *host.Host, cmd string) Result {
	f := h.Face()
	switch cmd {
	case "left":
		f.LookLeft()
	case "right":
		f.LookRight()
	case "up", "top":
		f.LookTop()
	case "down", "bottom":
		f.LookBottom()
	default:
		f.LookFront()
	}
	return ok("Looking %s", cmd)
}

func handleBlinkCommand(h *host.Host) Result {
	if !h.Face().DoBlink() {
		return ok("Already blinking")
	}
	return ok("Blink")
}

// handleEmotionCommand validates the name here; the core ignores unknown values
func handleEmotionCommand(h *host.Host, args []string) Result {
	if len(args) < 1 || len(args) > 2 {
		return fail("Usage: emotion <name> [weight]")
	}
	e, err := emotion.Parse(args[0])
	if err != nil {
		return fail("Invalid emotion: %s", args[0])
	}
	weight := 1.0
	if len(args) == 2 {
		if weight, err = parseFloat(args[1]); err != nil {
			return fail("Invalid weight: %s", args[1])
		}
	}
	h.Face().SetEmotion(e, weight)
	return ok("Emotion %s = %g", e, h.Face().Blender().Weight(e))
}

func parseToggle(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "e", "enable", "enabled", "true", "1":
		return true, true
	case "off", "d", "disable", "disabled", "false", "0":
		return false, true
	default:
		return false, false
	}
}

func handleRandomCommand(h *host.Host, args []string) Result {
	if len(args) != 2 {
		return fail("Usage: random <behavior|blink|look|all> <on|off>")
	}
	enabled, valid := parseToggle(args[1])
	if !valid {
		return fail("Invalid toggle: %s", args[1])
	}
	f := h.Face()
	switch args[0] {
	case "behavior":
		f.EnableRandomBehavior(enabled)
	case "blink":
		f.EnableRandomBlink(enabled)
	case "look":
		f.EnableRandomLook(enabled)
	case "all":
		f.EnableRandomBehavior(enabled)
		f.EnableRandomBlink(enabled)
		f.EnableRandomLook(enabled)
	default:
		return fail("Invalid random target: %s", args[0])
	}
	return ok("Random %s %v", args[0], enabled)
}

func handleIntervalCommand(h *host.Host, args []string) Result {
	if len(args) != 2 {
		return fail("Usage: interval <frame|blink|look|behavior> <ms>")
	}
	ms, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fail("Invalid interval: %s", args[1])
	}
	f := h.Face()
	switch args[0] {
	case "frame":
		h.SetFrameInterval(uint32(ms))
	case "blink":
		f.SetBlinkInterval(uint32(ms))
	case "look":
		f.SetLookInterval(uint32(ms))
	case "behavior":
		f.SetBehaviorInterval(uint32(ms))
	default:
		return fail("Invalid interval target: %s", args[0])
	}
	return ok("Interval %s = %dms", args[0], ms)
}

func handleGeometryCommand(h *host.Host, cmd string, args []string) Result {
	if len(args) != 1 {
		return fail("Usage: %s <pixels>", cmd)
	}
	px, err := strconv.Atoi(args[0])
	if err != nil {
		return fail("Invalid arguments for %s", cmd)
	}
	f := h.Face()
	switch cmd {
	case "size":
		f.SetEyeSize(px)
		px = f.EyeSize()
	case "distance":
		f.SetEyeDistance(px)
		px = f.EyeDistance()
	default:
		f.SetCornerRadius(px)
		px = f.CornerRadius()
	}
	return ok("%s = %d", cmd, px)
}

func handleStatusCommand(h *host.Host) Result {
	f := h.Face()
	cur := f.Gaze().Current()
	return ok("%s blink:%s gaze:%.2f,%.2f frames:%d",
		f.Expression(), f.Blink().Phase(), cur.X, cur.Y, h.Frames())
}

func handleHelpCommand() Result {
	return ok("look x y | left right up down front | blink | emotion name [w] | reset | " +
		"random behavior|blink|look|all on|off | interval frame|blink|look|behavior ms | " +
		"size|distance|radius px | status | quit")
}
