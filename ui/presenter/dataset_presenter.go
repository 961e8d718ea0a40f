package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/soocke/pixel-label-go/domain/annotation"
	"github.com/soocke/pixel-label-go/domain/dataset"
	"github.com/soocke/pixel-label-go/ui/model"
)

// ImageLoader decodes an image and reads its annotation file.
type ImageLoader func(path string, logger *slog.Logger) (image.Image, *annotation.Sample, error)

// LoadImage is the default ImageLoader.
func LoadImage(path string, logger *slog.Logger) (image.Image, *annotation.Sample, error) {
	img, err := dataset.DecodeImage(path)
	if err != nil {
		return nil, nil, err
	}
	b := img.Bounds()
	s, err := dataset.LoadSample(path, b.Dx(), b.Dy(), logger)
	if err != nil {
		return nil, nil, err
	}
	return img, s, nil
}

// DatasetView lists images and classes and shows the status line.
type DatasetView interface {
	SetImageList(names []string, current int)
	SetClassNames(names []string)
	SetStatus(text string)
}

// Resetter is reset when a new sample is swapped in.
type Resetter interface{ Reset() }

type loadTask struct {
	seq  uint64
	path string
}

type loadResult struct {
	seq      uint64
	path     string
	img      image.Image
	sample   *annotation.Sample
	err      error
	duration time.Duration
}

// DatasetPresenter owns directory navigation and persistence. Decoding runs
// on a worker goroutine; results are swapped in on Tick so the display
// cycle never sees a half-loaded sample.
type DatasetPresenter struct {
	data     *model.DatasetModel
	viewport *model.ViewportModel
	session  *model.SessionModel
	machine  Resetter
	view     DatasetView
	load     ImageLoader
	logger   *slog.Logger

	onSample    []func()
	autosave    bool
	defaultW    float64
	defaultH    float64
	classesFile string

	workerOnce sync.Once
	closeOnce  sync.Once
	workCh     chan loadTask
	resultCh   chan loadResult
	seq        uint64
	loading    string
}

// NewDatasetPresenter constructs a dataset presenter. A nil loader uses LoadImage.
func NewDatasetPresenter(data *model.DatasetModel, viewport *model.ViewportModel, session *model.SessionModel,
	machine Resetter, view DatasetView, load ImageLoader, logger *slog.Logger) *DatasetPresenter {
	if load == nil {
		load = LoadImage
	}
	return &DatasetPresenter{
		data:     data,
		viewport: viewport,
		session:  session,
		machine:  machine,
		view:     view,
		load:     load,
		logger:   logger,
		autosave: true,
		defaultW: annotation.DefaultBoxSize,
		defaultH: annotation.DefaultBoxSize,
		workCh:   make(chan loadTask, 1),
		resultCh: make(chan loadResult, 1),
	}
}

// OnSampleChanged registers fn to run after a new sample is swapped in.
func (p *DatasetPresenter) OnSampleChanged(fn func()) {
	if p != nil && fn != nil {
		p.onSample = append(p.onSample, fn)
	}
}

// SetAutosave toggles saving before switching images.
func (p *DatasetPresenter) SetAutosave(b bool) {
	if p != nil {
		p.autosave = b
	}
}

// SetDefaultBoxSize sets the normalized size of the first box on each image.
func (p *DatasetPresenter) SetDefaultBoxSize(w, h float64) {
	if p != nil {
		p.defaultW, p.defaultH = w, h
	}
}

// SetClassesFile pins the class list to path instead of auto-discovery.
func (p *DatasetPresenter) SetClassesFile(path string) error {
	if p == nil {
		return nil
	}
	p.classesFile = path
	if path == "" {
		return nil
	}
	return p.loadClasses(path)
}

// Loading reports the path being decoded, if any.
func (p *DatasetPresenter) Loading() string {
	if p == nil {
		return ""
	}
	return p.loading
}

// OpenDir lists dir and starts loading its first image.
func (p *DatasetPresenter) OpenDir(dir string) error {
	if p == nil {
		return nil
	}
	ds, err := dataset.Open(dir)
	if err != nil {
		p.status(fmt.Sprintf("Cannot open %s: %v", dir, err))
		return err
	}
	p.saveIfDirty()
	p.data.SetDataset(ds)
	if p.classesFile == "" {
		path, err := dataset.FindClassesFile(dir)
		switch {
		case err != nil:
			p.logError("find classes file", err)
		case path != "":
			_ = p.loadClasses(path)
		default:
			p.data.SetClasses(nil)
			if p.view != nil {
				p.view.SetClassNames(nil)
			}
		}
	}
	if p.logger != nil {
		p.logger.Info("image directory opened", "dir", dir, "images", ds.Len())
	}
	p.showList()
	p.request(ds.Current())
	return nil
}

func (p *DatasetPresenter) loadClasses(path string) error {
	c, err := dataset.LoadClasses(path)
	if err != nil {
		p.logError("load classes", err)
		p.status(fmt.Sprintf("Cannot read classes: %v", err))
		return err
	}
	p.data.SetClasses(c)
	if p.view != nil {
		p.view.SetClassNames(c.Names())
	}
	if p.logger != nil {
		p.logger.Info("classes loaded", "path", path, "count", c.Len())
	}
	return nil
}

// Next moves to the following image.
func (p *DatasetPresenter) Next() {
	if ds := p.dataset(); ds != nil && ds.Next() {
		p.switchToCurrent()
	}
}

// Prev moves to the preceding image.
func (p *DatasetPresenter) Prev() {
	if ds := p.dataset(); ds != nil && ds.Prev() {
		p.switchToCurrent()
	}
}

// Seek jumps to image i of the list.
func (p *DatasetPresenter) Seek(i int) {
	if ds := p.dataset(); ds != nil && ds.Seek(i) {
		p.switchToCurrent()
	}
}

// Rescan re-lists the directory, keeping the current image, and switches to
// selectPath when it is given and present.
func (p *DatasetPresenter) Rescan(selectPath string) error {
	old := p.dataset()
	if old == nil {
		return nil
	}
	current := p.data.Path()
	ds, err := dataset.Open(old.Dir())
	if err != nil {
		return err
	}
	p.data.SetDataset(ds)
	images := ds.Names()
	target := current
	if selectPath != "" {
		target = selectPath
	}
	if i := slices.Index(images, filepath.Base(target)); i >= 0 {
		ds.Seek(i)
	}
	p.showList()
	if ds.Current() != current {
		p.saveIfDirty()
		p.request(ds.Current())
	}
	return nil
}

// Save writes the current sample to its annotation file.
func (p *DatasetPresenter) Save() error {
	if p == nil {
		return nil
	}
	if !p.data.Loaded() {
		p.status("No file loaded.")
		return nil
	}
	path := p.data.Path()
	if err := dataset.SaveSample(path, p.data.Sample()); err != nil {
		p.status(fmt.Sprintf("Save failed: %v", err))
		return err
	}
	p.data.ClearDirty()
	p.session.CountSave()
	txt := dataset.AnnotationPath(path)
	p.status("Saved annotations to " + filepath.Base(txt))
	if p.logger != nil {
		p.logger.Info("annotations saved", "path", txt, "boxes", p.data.Sample().Len())
	}
	return nil
}

// Tick swaps in finished loads.
func (p *DatasetPresenter) Tick(now time.Time) {
	if p == nil {
		return
	}
	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			return
		}
	}
}

// Close stops the load worker.
func (p *DatasetPresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() { close(p.workCh) })
}

func (p *DatasetPresenter) dataset() *dataset.Dataset {
	if p == nil {
		return nil
	}
	return p.data.Dataset()
}

func (p *DatasetPresenter) switchToCurrent() {
	p.saveIfDirty()
	p.showList()
	p.request(p.dataset().Current())
}

func (p *DatasetPresenter) showList() {
	if p.view == nil {
		return
	}
	ds := p.dataset()
	p.view.SetImageList(ds.Names(), ds.Index())
}

func (p *DatasetPresenter) saveIfDirty() {
	if p.autosave && p.data.Dirty() {
		if err := p.Save(); err != nil {
			p.logError("autosave", err)
		}
	}
}

func (p *DatasetPresenter) request(path string) {
	p.workerOnce.Do(func() { go p.runWorker() })
	p.seq++
	p.loading = path
	task := loadTask{seq: p.seq, path: path}
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *DatasetPresenter) runWorker() {
	for task := range p.workCh {
		start := time.Now()
		img, s, err := p.load(task.path, p.logger)
		res := loadResult{seq: task.seq, path: task.path, img: img, sample: s, err: err, duration: time.Since(start)}
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *DatasetPresenter) handleResult(res loadResult) {
	if res.seq != p.seq {
		if p.logger != nil {
			p.logger.Debug("stale image load dropped", "path", res.path)
		}
		return
	}
	p.loading = ""
	if res.err != nil {
		p.logError("load image", res.err)
		p.status("Failed to load file " + filepath.Base(res.path))
		return
	}
	// edits made while the next image was decoding
	p.saveIfDirty()
	res.sample.SetDefaultSize(p.defaultW, p.defaultH)
	p.data.SetLoaded(res.path, res.img, res.sample)
	if p.machine != nil {
		p.machine.Reset()
	}
	if p.viewport != nil {
		p.viewport.ResetScroll()
	}
	for _, fn := range p.onSample {
		fn()
	}
	b := res.img.Bounds()
	p.status(fmt.Sprintf("%s  %d x %d  %d boxes", filepath.Base(res.path), b.Dx(), b.Dy(), res.sample.Len()))
	if p.logger != nil {
		p.logger.Debug("image loaded", "path", res.path, "boxes", res.sample.Len(), "elapsed", res.duration)
	}
}

func (p *DatasetPresenter) status(text string) {
	p.data.SetStatus(text)
	if p.view != nil {
		p.view.SetStatus(text)
	}
}

func (p *DatasetPresenter) logError(msg string, err error) {
	if p.logger != nil {
		p.logger.Error(msg, "error", err)
	}
}
