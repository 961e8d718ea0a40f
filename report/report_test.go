package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soocke/pixel-label-go/domain/dataset"
)

func TestRenderListsResultsAndSummary(t *testing.T) {
	rep := dataset.Report{
		Dir:     "imgs",
		Classes: dataset.NewClasses([]string{"cat", "dog"}),
		Results: []dataset.CheckResult{
			{Image: "a.png", Width: 640, Height: 480, Boxes: 3},
			{Image: "b.png", Width: 10, Height: 10, Boxes: 1, UnknownClasses: 1},
			{Image: "c.png", Err: errors.New("c.txt: line 2: bad")},
		},
	}
	var buf bytes.Buffer
	Render(&buf, rep)
	out := buf.String()
	assert.Contains(t, out, "IMAGE")
	assert.Contains(t, out, "640x480")
	assert.Contains(t, out, "1 unknown class ids")
	assert.Contains(t, out, "line 2: bad")
	assert.Contains(t, out, "3 images, 4 boxes, 1 failed, classes: none")
}
