package geometry

import (
	"image"
	"regexp"
	"strconv"
	"strings"
)

// windowGeomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var windowGeomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseWindowGeometry parses a "WxH+X+Y" window geometry into a screen rectangle.
func ParseWindowGeometry(g string) (image.Rectangle, bool) {
	m := windowGeomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// WindowGeometry formats r as "WxH+X+Y".
func WindowGeometry(r image.Rectangle) string {
	return strconv.Itoa(r.Dx()) + "x" + strconv.Itoa(r.Dy()) + "+" + strconv.Itoa(r.Min.X) + "+" + strconv.Itoa(r.Min.Y)
}

// CenteredRect returns a w x h rectangle centred in screen.
func CenteredRect(screen image.Rectangle, w, h int) image.Rectangle {
	w, h = max(w, 1), max(h, 1)
	x := screen.Min.X + (screen.Dx()-w)/2
	y := screen.Min.Y + (screen.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
