package presenter

import (
	"image"
	"image/color"
	"log/slog"
	"slices"
	"time"

	"github.com/soocke/pixel-label-go/domain/geometry"
	"github.com/soocke/pixel-label-go/domain/interaction"
	"github.com/soocke/pixel-label-go/ui/images"
	"github.com/soocke/pixel-label-go/ui/model"
)

// InputSource hands out one latched input frame per cycle.
type InputSource interface {
	Snapshot(now time.Time) model.Frame
}

// CanvasView shows the rendered viewport and pointer feedback.
type CanvasView interface {
	ShowCanvas(img image.Image)
	SetPointer(hoverBox bool, vertex geometry.Vertex)
	SetZoomLabel(text string)
}

// BoxListView shows the box rows and the class picker.
type BoxListView interface {
	SetBoxRows(rows []string, selected int)
	SetClassSelection(class int)
}

// Navigator handles the dataset intents of the keymap.
type Navigator interface {
	Next()
	Prev()
	Save() error
}

// EditorPresenter runs one display cycle per Tick: read the input latch,
// resolve the viewport, step the interaction machine, then render.
type EditorPresenter struct {
	input    InputSource
	viewport *model.ViewportModel
	data     *model.DatasetModel
	session  *model.SessionModel
	machine  *interaction.Machine
	renderer *images.Renderer
	canvas   CanvasView
	list     BoxListView
	nav      Navigator
	logger   *slog.Logger

	boxColor   color.NRGBA
	scrollStep int

	// render cache key
	lastImg   image.Image
	lastTF    geometry.Transform
	lastItems []interaction.DrawItem
	lastZoom  string
	listStale bool
}

// NewEditorPresenter wires the editor cycle.
func NewEditorPresenter(input InputSource, viewport *model.ViewportModel, data *model.DatasetModel, session *model.SessionModel,
	machine *interaction.Machine, canvas CanvasView, list BoxListView, nav Navigator, boxColor string, logger *slog.Logger) *EditorPresenter {
	return &EditorPresenter{
		input:      input,
		viewport:   viewport,
		data:       data,
		session:    session,
		machine:    machine,
		renderer:   images.NewRenderer(),
		canvas:     canvas,
		list:       list,
		nav:        nav,
		logger:     logger,
		boxColor:   images.BoxColor(boxColor),
		scrollStep: 40,
		listStale:  true,
	}
}

// SetBoxColor changes the outline colour and forces a redraw.
func (p *EditorPresenter) SetBoxColor(name string) {
	if p == nil {
		return
	}
	p.boxColor = images.BoxColor(name)
	p.lastImg = nil
}

// SetNavigator sets the handler for dataset intents.
func (p *EditorPresenter) SetNavigator(nav Navigator) {
	if p != nil {
		p.nav = nav
	}
}

// SampleChanged drops cached render state after a new image was swapped in.
func (p *EditorPresenter) SampleChanged() {
	if p == nil {
		return
	}
	p.renderer.Reset()
	p.lastImg = nil
	p.listStale = true
}

// SelectBox selects the box at list row i. A negative i clears the selection.
func (p *EditorPresenter) SelectBox(i int) {
	if p == nil || !p.data.Loaded() {
		return
	}
	s := p.data.Sample()
	if i < 0 {
		s.Deselect()
		p.listStale = true
		return
	}
	if s.SelectIndex(i) {
		p.listStale = true
		if b := s.Box(i); b != nil && p.list != nil {
			p.list.SetClassSelection(b.Class())
		}
	}
}

// SetClass applies a class picked in the UI: it becomes the default for new
// boxes and relabels the selected box.
func (p *EditorPresenter) SetClass(class int) {
	if p == nil || class < 0 {
		return
	}
	p.data.SetDefaultClass(class)
	if !p.data.Loaded() {
		return
	}
	if p.data.Sample().SetSelectedClass(class) {
		p.data.MarkDirty()
		p.listStale = true
	}
}

// Tick runs one display cycle.
func (p *EditorPresenter) Tick(now time.Time) {
	if p == nil || p.input == nil || p.viewport == nil || p.machine == nil {
		return
	}
	frame := p.input.Snapshot(now)
	p.applyIntents(frame)
	if frame.Pan != (image.Point{}) {
		p.viewport.ScrollBy(-frame.Pan.X, -frame.Pan.Y)
	}
	if !p.data.Loaded() {
		return
	}
	img := p.data.Image()
	s := p.data.Sample()
	b := img.Bounds()
	tf := p.viewport.Resolve(b.Dx(), b.Dy(), frame.Wheel)

	before := s.Len()
	fx := p.machine.Step(s, tf, frame.Input)
	if fx.Changed {
		p.data.MarkDirty()
		p.session.CountBoxes(before, s.Len())
		p.listStale = true
	}
	if fx.SelectionChanged {
		p.listStale = true
		if fx.SelectedClass >= 0 && p.list != nil {
			p.list.SetClassSelection(fx.SelectedClass)
		}
	}
	if p.listStale && p.list != nil {
		p.list.SetBoxRows(s.Rows(p.data.Classes().Name), fx.SelectedIndex)
		p.listStale = false
	}
	p.render(img, tf, fx)
}

func (p *EditorPresenter) applyIntents(f model.Frame) {
	for _, i := range f.Intents {
		switch i {
		case interaction.IntentNextImage:
			if p.nav != nil {
				p.nav.Next()
			}
		case interaction.IntentPrevImage:
			if p.nav != nil {
				p.nav.Prev()
			}
		case interaction.IntentSave:
			if p.nav != nil {
				if err := p.nav.Save(); err != nil && p.logger != nil {
					p.logger.Error("save annotations", "error", err)
				}
			}
		case interaction.IntentZoomIn:
			p.viewport.StepZoom(1)
		case interaction.IntentZoomOut:
			p.viewport.StepZoom(-1)
		case interaction.IntentScrollLeft:
			p.viewport.ScrollBy(-p.scrollStep, 0)
		case interaction.IntentScrollRight:
			p.viewport.ScrollBy(p.scrollStep, 0)
		case interaction.IntentScrollUp:
			p.viewport.ScrollBy(0, -p.scrollStep)
		case interaction.IntentScrollDown:
			p.viewport.ScrollBy(0, p.scrollStep)
		}
	}
}

func (p *EditorPresenter) render(img image.Image, tf geometry.Transform, fx interaction.Effects) {
	if p.canvas == nil {
		return
	}
	v := fx.Hover
	if fx.Mode == interaction.ModeDraggingVertex {
		v = fx.Active
	}
	p.canvas.SetPointer(fx.HoveringBox, v)
	if z := p.viewport.ZoomLabel(); z != p.lastZoom {
		p.lastZoom = z
		p.canvas.SetZoomLabel(z)
	}
	if img == p.lastImg && tf == p.lastTF && slices.Equal(fx.Items, p.lastItems) {
		return
	}
	out := p.renderer.Render(img, tf)
	if out == nil {
		return
	}
	images.DrawBoxes(out, fx.Items, p.boxColor)
	p.canvas.ShowCanvas(out)
	p.lastImg, p.lastTF = img, tf
	p.lastItems = slices.Clone(fx.Items)
}
