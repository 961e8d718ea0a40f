package view

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/soocke/pixel-label-go/domain/geometry"
	"github.com/soocke/pixel-label-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CanvasView shows the rendered viewport. It owns one LabelWidget and replaces
// its photo on every update.
type CanvasView interface {
	ShowCanvas(img image.Image)
	SetPointer(hoverBox bool, vertex geometry.Vertex)
	Label() *LabelWidget
}

type canvasView struct {
	label  *LabelWidget
	photo  *Img // last Tk photo, deleted before it is replaced
	cursor string
}

// NewCanvas creates the canvas label inside parent at (row, col) with a blank
// w x h placeholder.
func NewCanvas(parent *FrameWidget, row, col, w, h int) CanvasView {
	placeholder := imaging.New(w, h, color.NRGBA{0x30, 0x30, 0x30, 0xff})
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	lbl := Label(Image(photo), Anchor("nw"), Borderwidth(0), Cursor("crosshair"))
	Grid(lbl, In(parent), Row(row), Column(col), Sticky("nsew"))
	return &canvasView{label: lbl, photo: photo, cursor: "crosshair"}
}

func (v *canvasView) Label() *LabelWidget { return v.label }

func (v *canvasView) ShowCanvas(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	v.label.Configure(Image(photo))
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = photo
}

func (v *canvasView) SetPointer(hoverBox bool, vertex geometry.Vertex) {
	if v == nil || v.label == nil {
		return
	}
	c := pointerCursor(hoverBox, vertex)
	if c == v.cursor {
		return
	}
	v.cursor = c
	v.label.Configure(Cursor(c))
}

// pointerCursor picks the Tk cursor name for the hover state.
func pointerCursor(hoverBox bool, v geometry.Vertex) string {
	switch {
	case v.X == geometry.EdgeLeft && v.Y == geometry.EdgeTop:
		return "top_left_corner"
	case v.X == geometry.EdgeRight && v.Y == geometry.EdgeTop:
		return "top_right_corner"
	case v.X == geometry.EdgeLeft && v.Y == geometry.EdgeBottom:
		return "bottom_left_corner"
	case v.X == geometry.EdgeRight && v.Y == geometry.EdgeBottom:
		return "bottom_right_corner"
	case v.X != geometry.EdgeNone:
		return "sb_h_double_arrow"
	case v.Y != geometry.EdgeNone:
		return "sb_v_double_arrow"
	case hoverBox:
		return "fleur"
	}
	return "crosshair"
}
