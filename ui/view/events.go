package view

import (
	"log/slog"
	"strconv"

	"github.com/soocke/pixel-label-go/domain/interaction"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// InputSink receives raw canvas and keyboard events. Implementations latch
// them until the next display cycle.
type InputSink interface {
	Motion(x, y int)
	Leave()
	Press(x, y int)
	Release(x, y int)
	SecondaryPress()
	Wheel(delta int)
	PanStart(x, y int)
	PanMove(x, y int)
	PanEnd()
	Intent(i interaction.Intent)
}

// BindCanvas routes mouse events on the canvas label to in. onResize gets
// the label size after the window is resized.
func BindCanvas(c CanvasView, in InputSink, onResize func(w, h int)) {
	if c == nil || c.Label() == nil || in == nil {
		return
	}
	lbl := c.Label()
	Bind(lbl, "<Motion>", Command(func(e *Event) { in.Motion(e.X, e.Y) }))
	Bind(lbl, "<Leave>", Command(func() { in.Leave() }))
	Bind(lbl, "<ButtonPress-1>", Command(func(e *Event) { in.Press(e.X, e.Y) }))
	Bind(lbl, "<ButtonRelease-1>", Command(func(e *Event) { in.Release(e.X, e.Y) }))
	Bind(lbl, "<ButtonPress-3>", Command(func() { in.SecondaryPress() }))
	Bind(lbl, "<MouseWheel>", Command(func(e *Event) { in.Wheel(e.Delta) }))
	// X11 without wheel translation
	Bind(lbl, "<Button-4>", Command(func() { in.Wheel(1) }))
	Bind(lbl, "<Button-5>", Command(func() { in.Wheel(-1) }))
	Bind(lbl, "<ButtonPress-2>", Command(func(e *Event) { in.PanStart(e.X, e.Y) }))
	Bind(lbl, "<B2-Motion>", Command(func(e *Event) { in.PanMove(e.X, e.Y) }))
	Bind(lbl, "<ButtonRelease-2>", Command(func() { in.PanEnd() }))
	if onResize != nil {
		Bind(lbl, "<Configure>", Command(func() {
			w, errW := strconv.Atoi(WinfoWidth(lbl.Window))
			h, errH := strconv.Atoi(WinfoHeight(lbl.Window))
			if errW == nil && errH == nil {
				onResize(w, h)
			}
		}))
	}
}

// BindKeys routes key presses on the main window through km.
func BindKeys(km interaction.Keymap, in InputSink, logger *slog.Logger) {
	if in == nil {
		return
	}
	Bind(App, "<KeyPress>", Command(func(e *Event) {
		intent, ok := km.Lookup(e.Keysym)
		if !ok {
			return
		}
		if logger != nil {
			logger.Debug("key intent", "key", e.Keysym, "intent", string(intent))
		}
		in.Intent(intent)
	}))
}
