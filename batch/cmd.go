// Package batch expands {input image} x {style variation} into jobs, drives
// the palette-matching engine over each one on a bounded worker pool, and
// reports completion.
package batch

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"recolor/cielab"
	"recolor/match"
	"recolor/parallel"
	"recolor/theme"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Palette   string   `arg:"" help:"Builtin theme name, path to a JSON or RIFF PAL theme file, or an inline theme after a literal 'JSON:' marker"`
	Files     []string `arg:"" optional:"" name:"file" help:"Images to recolor" type:"path"`
	Styles    string   `short:"s" default:"all" help:"Variations to produce: 'all', 'none' for a flat theme, or a comma-delimited list of names"`
	Method    string   `short:"m" default:"de2000" enum:"de2000,de1994g,de1994t,de1976" help:"DeltaE color distance method"`
	Output    []string `short:"o" type:"path" help:"Explicit output paths, consumed in job order; generated names fill the rest"`
	DirOutput string   `short:"d" default:"output" type:"path" help:"Directory for generated output names"`

	theme  *theme.Theme  `kong:"-"`
	method cielab.Method `kong:"-"`
}

// Validate resolves and checks the whole configuration before any image is
// opened: theme source, style selection, method, and output count. Anything
// wrong here aborts the run as a whole.
func (c *CLICmd) Validate(kctx *kong.Context) error {
	if len(c.Files) == 0 {
		return fmt.Errorf("no input images given")
	}

	styles, err := theme.ParseStyles(c.Styles)
	if err != nil {
		return err
	}

	src, err := theme.Resolve(c.Palette)
	if err != nil {
		return err
	}

	if c.theme, err = src.Select(styles); err != nil {
		return err
	}

	if c.method, err = cielab.ParseMethod(c.Method); err != nil {
		return err
	}

	if jobs := len(c.Files) * len(c.theme.Variations); len(c.Output) > jobs {
		return fmt.Errorf("%d explicit output paths for only %d jobs", len(c.Output), jobs)
	}

	return nil
}

type jobState uint8

const (
	jobPending jobState = iota
	jobRunning
	jobSucceeded
	jobFailed
)

// job is one (input image, style variation) pair. Jobs are independent: a
// failed one is recorded and never aborts its siblings.
type job struct {
	input     string
	variation int
	dest      string
	animated  bool
	state     jobState
	err       error
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	// One index and one shared cache per variation, reused by every job that
	// applies it. Indexes are read-only from here on.
	resolvers := make([]*match.Resolver, len(c.theme.Variations))
	showSwatches := slog.Default().Enabled(context.Background(), slog.LevelInfo)
	for i, v := range c.theme.Variations {
		idx, err := match.NewIndex(v)
		if err != nil {
			return err
		}
		resolvers[i] = match.NewResolver(idx, c.method)

		slog.Info("palette ready", "theme", c.theme.Name, "variation", v.Name,
			"colors", len(v.Colors), "method", c.method)
		if showSwatches {
			fmt.Fprintln(os.Stderr, theme.Swatch(v))
		}
	}

	jobs := c.expandJobs()
	prog := newProgress(len(jobs), os.Stderr)

	var succeeded, failed atomic.Uint64
	for i := range jobs {
		j := &jobs[i]
		worker(func() {
			j.state = jobRunning
			logger := slog.Default().With("file", j.input,
				"variation", c.theme.Variations[j.variation].Name)

			if err := c.runJob(j, resolvers[j.variation], logger); err != nil {
				j.state, j.err = jobFailed, err
				failed.Add(1)
				logger.Error("could not process image", "error", err)
			} else {
				j.state = jobSucceeded
				succeeded.Add(1)
				logger.Info("wrote output", "dest", j.dest)
			}
			prog.tick(filepath.Base(j.dest))
		})
	}
	wait(true)
	prog.finish()

	ok, bad := succeeded.Load(), failed.Load()
	slog.Info("stats", "succeeded", ok, "failed", bad, "total", ok+bad)
	for i := range jobs {
		if jobs[i].state == jobFailed {
			slog.Info("failed job", "file", jobs[i].input,
				"variation", c.theme.Variations[jobs[i].variation].Name, "error", jobs[i].err)
		}
	}
	fmt.Fprintln(os.Stderr, summaryLine(ok, bad))

	if ok == 0 {
		return fmt.Errorf("no image could be processed (%d jobs failed)", bad)
	}
	return nil
}

// expandJobs builds the Cartesian product of inputs and variations, in a
// deterministic order: all variations of the first file, then the next file.
// Explicit --output paths are consumed in that same order.
func (c *CLICmd) expandJobs() []job {
	jobs := make([]job, 0, len(c.Files)*len(c.theme.Variations))
	for _, input := range c.Files {
		animated := strings.EqualFold(filepath.Ext(input), ".gif")
		for vi, v := range c.theme.Variations {
			dest := ""
			if n := len(jobs); n < len(c.Output) {
				dest = c.Output[n]
			} else {
				dest = outputName(c.DirOutput, input, c.theme.Name, v.Name, c.method, animated)
			}
			jobs = append(jobs, job{input: input, variation: vi, dest: dest, animated: animated})
		}
	}
	return jobs
}

func (c *CLICmd) runJob(j *job, res *match.Resolver, logger *slog.Logger) error {
	f, err := os.Open(j.input)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	if j.animated {
		g, err := gif.DecodeAll(f)
		if err != nil {
			return fmt.Errorf("could not decode GIF: %w", err)
		}
		logger.Debug("decoded animation", "frames", len(g.Image))

		RemapGIF(g, res)
		return saveGIF(g, j.dest)
	}

	img, imgType, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}
	logger.Debug("decoded image", "format", imgType, "bounds", img.Bounds())

	return savePNG(Remap(img, res), j.dest)
}
