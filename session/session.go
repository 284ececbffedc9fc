// Package session runs the LUT generation pipeline and keeps the state a
// front end needs between generating a table and saving it.
package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmuldo/colorlab/image"
	"github.com/mmuldo/colorlab/lab"
	"github.com/mmuldo/colorlab/lut"
)

const (
	// DefaultPreviewWidth and DefaultPreviewHeight size the rendered preview.
	DefaultPreviewWidth  = 700
	DefaultPreviewHeight = 450
	// DefaultName is the file name a LUT is saved under when none is given.
	DefaultName = "colorlab_lut.cube"

	cubeExt = ".cube"
)

// Options configure one generation.
type Options struct {
	// Size is the grid side length; zero means lut.DefaultSize.
	Size int
	// PreviewWidth and PreviewHeight size the preview. Both zero keeps the
	// source image's dimensions.
	PreviewWidth  int
	PreviewHeight int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Size:          lut.DefaultSize,
		PreviewWidth:  DefaultPreviewWidth,
		PreviewHeight: DefaultPreviewHeight,
	}
}

func (o Options) validate() error {
	if e := lut.ValidateSize(o.Size); e != nil {
		return e
	}
	if o.PreviewWidth < 0 || o.PreviewHeight < 0 || (o.PreviewWidth == 0) != (o.PreviewHeight == 0) {
		return fmt.Errorf("%w: preview size %dx%d", lab.ErrInvalidInput, o.PreviewWidth, o.PreviewHeight)
	}
	return nil
}

// Result is the product of one successful generation. It is never modified
// after Generate returns it.
type Result struct {
	Grid    *lut.Grid
	Preview *image.Frame
	Target  lab.Stats
	Source  lab.Stats
}

// Generate builds a LUT that grades the source image toward the target image
// and renders a preview of the source through it.
//
// Target statistics are measured on the target resized to the source's
// dimensions; source statistics on the source as loaded.
func Generate(targetPath, sourcePath string, opts Options) (*Result, error) {
	if targetPath == "" || sourcePath == "" {
		return nil, fmt.Errorf("%w: target and source images are required", lab.ErrInvalidInput)
	}
	if opts.Size == 0 {
		opts.Size = lut.DefaultSize
	}
	if e := opts.validate(); e != nil {
		return nil, e
	}

	target, e := image.Load(targetPath)
	if e != nil {
		return nil, fmt.Errorf("target: %w", e)
	}
	source, e := image.Load(sourcePath)
	if e != nil {
		return nil, fmt.Errorf("source: %w", e)
	}

	return GenerateFrames(target, source, opts)
}

// GenerateFrames is Generate for images that are already decoded.
func GenerateFrames(target, source *image.Frame, opts Options) (*Result, error) {
	if opts.Size == 0 {
		opts.Size = lut.DefaultSize
	}
	if e := opts.validate(); e != nil {
		return nil, e
	}
	if target.Empty() || source.Empty() {
		return nil, fmt.Errorf("%w: empty image", lab.ErrInvalidInput)
	}

	resized, e := image.Resize(target, source.Width, source.Height)
	if e != nil {
		return nil, fmt.Errorf("%w: %v", lab.ErrInvalidInput, e)
	}

	targetStats, e := measure(resized)
	if e != nil {
		return nil, fmt.Errorf("target: %w", e)
	}
	sourceStats, e := measure(source)
	if e != nil {
		return nil, fmt.Errorf("source: %w", e)
	}

	grid, e := lut.Build(targetStats, sourceStats, opts.Size)
	if e != nil {
		return nil, e
	}

	preview := source
	if opts.PreviewWidth > 0 && opts.PreviewHeight > 0 {
		if preview, e = image.Resize(source, opts.PreviewWidth, opts.PreviewHeight); e != nil {
			return nil, fmt.Errorf("%w: %v", lab.ErrInvalidInput, e)
		}
	}
	graded, e := lut.Apply(preview, grid)
	if e != nil {
		return nil, e
	}

	return &Result{
		Grid:    grid,
		Preview: graded,
		Target:  targetStats,
		Source:  sourceStats,
	}, nil
}

// Save writes a LUT to path in .cube format.
func Save(g *lut.Grid, path string) error {
	return lut.Save(g, path)
}

// Measure returns the Lab channel statistics of an RGB frame.
func Measure(f *image.Frame) (lab.Stats, error) {
	return measure(f)
}

func measure(f *image.Frame) (lab.Stats, error) {
	l, e := lab.FrameToLab(f)
	if e != nil {
		return lab.Stats{}, e
	}
	return lab.ComputeStats(l)
}

// CubeName returns name with a .cube extension, falling back to DefaultName.
func CubeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if !strings.HasSuffix(name, cubeExt) {
		name += cubeExt
	}
	return name
}

// Session holds the selections of an interactive front end and the result of
// its last successful generation.
type Session struct {
	TargetPath string
	SourcePath string
	OutputDir  string
	Options    Options

	current *Result
}

// New returns a session with default options.
func New() *Session {
	return &Session{Options: DefaultOptions()}
}

// Generate runs the pipeline on the selected images. On success the result
// replaces the current one; on failure the previous result is kept.
func (s *Session) Generate() (*Result, error) {
	if s.TargetPath == "" || s.SourcePath == "" || s.OutputDir == "" {
		return nil, fmt.Errorf("%w: select a target image, a source image and an output folder first", lab.ErrInvalidInput)
	}

	r, e := Generate(s.TargetPath, s.SourcePath, s.Options)
	if e != nil {
		return nil, e
	}
	s.current = r
	return r, nil
}

// Current returns the last successful result, or nil.
func (s *Session) Current() *Result { return s.current }

// CanSave reports whether there is a LUT to save.
func (s *Session) CanSave() bool { return s.current != nil }

// Save writes the current LUT into the output directory under name and
// returns the path written.
func (s *Session) Save(name string) (string, error) {
	if s.current == nil || s.OutputDir == "" {
		return "", fmt.Errorf("%w: no LUT generated or output folder missing", lab.ErrInvalidInput)
	}

	path := filepath.Join(s.OutputDir, CubeName(name))
	if e := Save(s.current.Grid, path); e != nil {
		return "", e
	}
	return path, nil
}
