package presenter

import (
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/pixel-label-go/domain/annotation"
	"github.com/soocke/pixel-label-go/domain/dataset"
	"github.com/soocke/pixel-label-go/domain/geometry"
	"github.com/soocke/pixel-label-go/domain/interaction"
	"github.com/soocke/pixel-label-go/ui/model"
)

type fakeCanvas struct {
	shown  int
	hover  bool
	vertex geometry.Vertex
	zoom   string
}

func (c *fakeCanvas) ShowCanvas(img image.Image)                  { c.shown++ }
func (c *fakeCanvas) SetPointer(hover bool, vertex geometry.Vertex) {
	c.hover, c.vertex = hover, vertex
}
func (c *fakeCanvas) SetZoomLabel(text string)                      { c.zoom = text }

type fakeList struct {
	rows     []string
	selected int
	class    int
}

func (l *fakeList) SetBoxRows(rows []string, selected int) { l.rows, l.selected = rows, selected }
func (l *fakeList) SetClassSelection(class int)            { l.class = class }

type fakeNav struct{ next, prev, saves int }

func (n *fakeNav) Next()       { n.next++ }
func (n *fakeNav) Prev()       { n.prev++ }
func (n *fakeNav) Save() error { n.saves++; return nil }

type fakeDatasetView struct {
	mu      sync.Mutex
	images  []string
	current int
	classes []string
	status  string
}

func (v *fakeDatasetView) SetImageList(names []string, current int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.images, v.current = names, current
}
func (v *fakeDatasetView) SetClassNames(names []string) { v.classes = names }
func (v *fakeDatasetView) SetStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = text
}

func loadedEditor(t *testing.T) (*EditorPresenter, *model.InputModel, *model.DatasetModel, *fakeCanvas, *fakeList, *fakeNav) {
	t.Helper()
	data := model.NewDatasetModel()
	data.SetLoaded("img.png", image.NewNRGBA(image.Rect(0, 0, 400, 300)), annotation.NewSample(400, 300, nil))
	input := model.NewInputModel()
	vp := model.NewViewportModel(400, 300, 100, geometry.DefaultZoomLimits())
	canvas, list, nav := &fakeCanvas{}, &fakeList{}, &fakeNav{}
	m := interaction.NewMachine(interaction.DefaultOptions(), slog.Default())
	p := NewEditorPresenter(input, vp, data, model.NewSessionModel(), m, canvas, list, nav, "red", nil)
	return p, input, data, canvas, list, nav
}

func TestEditorCreatesBoxAndMarksDirty(t *testing.T) {
	p, input, data, canvas, list, _ := loadedEditor(t)
	input.Motion(200, 150)
	input.Intent(interaction.IntentCreate)
	p.Tick(time.Unix(10, 0))

	require.Equal(t, 1, data.Sample().Len())
	assert.True(t, data.Dirty())
	assert.Len(t, list.rows, 1)
	assert.Equal(t, 0, list.selected)
	assert.Equal(t, 1, canvas.shown)
	assert.Equal(t, "x1.00", canvas.zoom)

	// nothing changed, nothing redrawn
	p.Tick(time.Unix(10, 1))
	assert.Equal(t, 1, canvas.shown)
}

func TestEditorPointerFollowsDraggedVertex(t *testing.T) {
	p, input, data, canvas, _, _ := loadedEditor(t)
	b, ok := data.Sample().AddBoxSized(100, 100, 0.01, 0.01)
	require.True(t, ok)
	b.SetPixelRect(100, 100, 200, 160)

	input.Press(99, 101)
	p.Tick(time.Unix(10, 0))
	input.Motion(80, 90)
	p.Tick(time.Unix(10, 1))

	assert.Equal(t, image.Rect(80, 90, 200, 160), b.Rect())
	assert.False(t, canvas.hover)
	assert.Equal(t, geometry.Vertex{X: geometry.EdgeLeft, Y: geometry.EdgeTop}, canvas.vertex)
}

func TestEditorRoutesIntents(t *testing.T) {
	p, input, _, _, _, nav := loadedEditor(t)
	input.Intent(interaction.IntentNextImage)
	input.Intent(interaction.IntentSave)
	input.Intent(interaction.IntentZoomIn)
	p.Tick(time.Unix(10, 0))

	assert.Equal(t, 1, nav.next)
	assert.Equal(t, 1, nav.saves)
	assert.Greater(t, p.viewport.Zoom(), 100)
}

func TestEditorSetClassRelabelsSelection(t *testing.T) {
	p, input, data, _, list, _ := loadedEditor(t)
	input.Motion(200, 150)
	input.Intent(interaction.IntentCreate)
	p.Tick(time.Unix(10, 0))
	data.ClearDirty()

	p.SetClass(3)
	assert.Equal(t, 3, data.Sample().Box(0).Class())
	assert.True(t, data.Dirty())
	assert.Equal(t, 3, data.DefaultClass())

	data.Sample().Deselect()
	p.SelectBox(0)
	assert.Equal(t, 3, list.class)
}

func TestEditorIdleWithoutImage(t *testing.T) {
	input := model.NewInputModel()
	canvas := &fakeCanvas{}
	p := NewEditorPresenter(input, model.NewViewportModel(100, 100, 100, geometry.DefaultZoomLimits()), model.NewDatasetModel(),
		nil, interaction.NewMachine(interaction.Options{}, nil), canvas, nil, nil, "blue", nil)
	input.Press(5, 5)
	p.Tick(time.Now())
	assert.Zero(t, canvas.shown)
}

func writeImages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	return dir
}

func fakeLoader(path string, logger *slog.Logger) (image.Image, *annotation.Sample, error) {
	if filepath.Base(path) == "broken.png" {
		return nil, nil, errors.New("corrupt")
	}
	return image.NewNRGBA(image.Rect(0, 0, 200, 100)), annotation.NewSample(200, 100, logger), nil
}

func waitLoaded(t *testing.T, p *DatasetPresenter, data *model.DatasetModel, name string) {
	t.Helper()
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		return filepath.Base(data.Path()) == name
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDatasetPresenterNavigatesAndAutosaves(t *testing.T) {
	dir := writeImages(t, "b.png", "a.png", "notes.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.ClassesFileName), []byte("cat\ndog\n"), 0o644))
	data := model.NewDatasetModel()
	view := &fakeDatasetView{}
	session := model.NewSessionModel()
	m := interaction.NewMachine(interaction.DefaultOptions(), nil)
	vp := model.NewViewportModel(100, 100, 100, geometry.DefaultZoomLimits())
	p := NewDatasetPresenter(data, vp, session, m, view, fakeLoader, nil)
	defer p.Close()
	changed := 0
	p.OnSampleChanged(func() { changed++ })

	require.NoError(t, p.OpenDir(dir))
	assert.Equal(t, []string{"a.png", "b.png"}, view.images)
	assert.Equal(t, []string{"cat", "dog"}, view.classes)
	waitLoaded(t, p, data, "a.png")
	assert.Equal(t, 1, changed)

	_, ok := data.Sample().AddBox(50, 50)
	require.True(t, ok)
	data.MarkDirty()

	p.Next()
	assert.Equal(t, 1, view.current)
	waitLoaded(t, p, data, "b.png")
	raw, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "0 0.25 0.5 ")
	_, _, saves := session.Counts()
	assert.Equal(t, 1, saves)

	p.Next() // already at the end
	assert.Equal(t, 1, view.current)
	p.Prev()
	waitLoaded(t, p, data, "a.png")
}

func TestDatasetPresenterLoadFailureKeepsSample(t *testing.T) {
	dir := writeImages(t, "a.png", "broken.png")
	data := model.NewDatasetModel()
	view := &fakeDatasetView{}
	p := NewDatasetPresenter(data, nil, nil, nil, view, fakeLoader, nil)
	defer p.Close()
	require.NoError(t, p.OpenDir(dir))
	waitLoaded(t, p, data, "a.png")

	p.Next()
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		return p.Loading() == ""
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "a.png", filepath.Base(data.Path()))
	assert.Equal(t, "Failed to load file broken.png", data.Status())
}

func TestDatasetPresenterOpenEmptyDir(t *testing.T) {
	data := model.NewDatasetModel()
	view := &fakeDatasetView{}
	p := NewDatasetPresenter(data, nil, nil, nil, view, fakeLoader, nil)
	err := p.OpenDir(t.TempDir())
	require.ErrorIs(t, err, dataset.ErrNoImages)
	assert.Contains(t, view.status, "Cannot open")
	assert.NoError(t, p.Save())
	assert.Equal(t, "No file loaded.", data.Status())
}

func TestDatasetPresenterRescanSelectsNewImage(t *testing.T) {
	dir := writeImages(t, "a.png")
	data := model.NewDatasetModel()
	view := &fakeDatasetView{}
	p := NewDatasetPresenter(data, nil, nil, nil, view, fakeLoader, nil)
	defer p.Close()
	require.NoError(t, p.OpenDir(dir))
	waitLoaded(t, p, data, "a.png")

	newPath := filepath.Join(dir, "snap_1.png")
	require.NoError(t, os.WriteFile(newPath, nil, 0o644))
	require.NoError(t, p.Rescan(newPath))
	assert.Equal(t, []string{"a.png", "snap_1.png"}, view.images)
	waitLoaded(t, p, data, "snap_1.png")
}

type recordingMode struct{ label string }

func (v *recordingMode) SetModeLabel(text string) { v.label = text }

func TestModePresenterFlushesLatest(t *testing.T) {
	v := &recordingMode{}
	p := NewModePresenter(v)
	p.Tick(time.Now())
	assert.Equal(t, "Mode: idle", v.label)

	p.OnMode(interaction.ModeIdle, interaction.ModeBoxSelected)
	p.OnMode(interaction.ModeBoxSelected, interaction.ModeDraggingBox)
	p.Tick(time.Now())
	assert.Equal(t, "Mode: dragging-box", v.label)

	v.label = ""
	p.Tick(time.Now())
	assert.Empty(t, v.label)
}

type loadedFlag bool

func (l loadedFlag) Loaded() bool { return bool(l) }

type recordingSession struct {
	session, total           time.Duration
	created, deleted, saves int
}

func (v *recordingSession) SetSession(s, t time.Duration) { v.session, v.total = s, t }
func (v *recordingSession) SetCounts(c, d, s int)         { v.created, v.deleted, v.saves = c, d, s }

func TestSessionPresenterPushesTimesAndCounts(t *testing.T) {
	sess := model.NewSessionModel()
	sess.CountBoxes(0, 2)
	sess.CountSave()
	v := &recordingSession{}
	p := NewSessionPresenter(sess, loadedFlag(true), v)
	start := time.Unix(0, 0)
	p.Tick(start)
	p.Tick(start.Add(3 * time.Second))
	assert.Equal(t, 3*time.Second, v.session)
	assert.Equal(t, 2, v.created)
	assert.Equal(t, 1, v.saves)
}

type fakeSnapper struct{}

func (f *fakeSnapper) Snapshot(dir string, region *image.Rectangle) (string, error) {
	path := filepath.Join(dir, "snap_42.png")
	return path, os.WriteFile(path, nil, 0o644)
}

type recordingRescan struct {
	mu   sync.Mutex
	path string
}

func (r *recordingRescan) Rescan(p string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = p
	return nil
}

func TestSnapshotPresenterRescansNewImage(t *testing.T) {
	dir := writeImages(t, "a.png")
	ds, err := dataset.Open(dir)
	require.NoError(t, err)
	data := model.NewDatasetModel()
	data.SetDataset(ds)
	rescan := &recordingRescan{}
	p := NewSnapshotPresenter(&fakeSnapper{}, nil, data, rescan, nil, nil)

	require.True(t, p.Request())
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		return !p.Busy()
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, filepath.Join(dir, "snap_42.png"), rescan.path)
	assert.Equal(t, "Snapshot snap_42.png", data.Status())
}

func TestSnapshotPresenterNeedsDirectory(t *testing.T) {
	data := model.NewDatasetModel()
	p := NewSnapshotPresenter(&fakeSnapper{}, nil, data, nil, nil, nil)
	assert.False(t, p.Request())
	assert.Equal(t, "Open an image directory first.", data.Status())
}

func TestDirWatcherFlagsChanges(t *testing.T) {
	var mu sync.Mutex
	listing := []string{"a.png"}
	list := func(string) ([]string, error) {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), listing...), nil
	}
	w := NewDirWatcher(nil, list, 5*time.Millisecond)
	w.Watch("dir")
	defer w.Stop()
	require.True(t, w.Running())

	time.Sleep(30 * time.Millisecond)
	assert.False(t, w.Changed())

	mu.Lock()
	listing = append(listing, "b.png")
	mu.Unlock()
	require.Eventually(t, w.Changed, time.Second, 5*time.Millisecond)
	assert.False(t, w.Changed())

	w.Stop()
	assert.False(t, w.Running())
}

func TestLoopIsNilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	called := 0
	(&Loop{Schedule: func() { called++ }}).Tick()
	assert.Equal(t, 1, called)
}
