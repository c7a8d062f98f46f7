// Command vpath measures SVG path data and renders it to a PNG mask.
//
// Usage:
//
//	vpath [flags] "M0 0 L10 0 L10 10 Z" ...
//	vpath -job paths.toml
//
// For every contour it prints the length, whether the contour is closed
// and the tangent at a few offsets along it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/vpath"
	"github.com/gogpu/vpath/raster"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		jobFile     = fs.String("job", "", "TOML job file")
		output      = fs.String("o", "", "write the filled paths to this PNG file")
		width       = fs.Int("width", 0, "image width (default 256)")
		height      = fs.Int("height", 0, "image height (default 256)")
		scale       = fs.Float64("scale", 0, "scale from path units to pixels (default 1)")
		evenOdd     = fs.Bool("evenodd", false, "fill command line paths with the even-odd rule")
		forceClosed = fs.Bool("force-closed", false, "measure every contour as closed")
		samples     = fs.Int("samples", 0, "tangent samples per contour (default 3)")
		verbose     = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	vpath.SetLogger(log)
	defer vpath.SetLogger(nil)

	job := defaultJob()
	if *jobFile != "" {
		var err error
		if job, err = loadJob(*jobFile); err != nil {
			log.Error("load job", "err", err)
			return 1
		}
	}
	fill := ""
	if *evenOdd {
		fill = "evenodd"
	}
	for _, d := range fs.Args() {
		job.Paths = append(job.Paths, PathSpec{Data: d, Fill: fill, ForceClosed: *forceClosed})
	}
	if *output != "" {
		job.Output = *output
	}
	if *width > 0 {
		job.Width = *width
	}
	if *height > 0 {
		job.Height = *height
	}
	if *scale > 0 {
		job.Scale = *scale
	}
	if *samples > 0 {
		job.Samples = *samples
	}
	if len(job.Paths) == 0 {
		fmt.Fprintln(stderr, "vpath: no paths; pass SVG path data or -job")
		fs.Usage()
		return 2
	}

	if err := execute(job, stdout, log); err != nil {
		log.Error("vpath failed", "err", err)
		return 1
	}
	return 0
}

func execute(job Job, w io.Writer, log *slog.Logger) error {
	paths := make([]*vpath.Path, len(job.Paths))
	cc := vpath.NewContourCache(0)
	for i, spec := range job.Paths {
		p, err := spec.build()
		if err != nil {
			return fmt.Errorf("%s: %w", spec.label(i), err)
		}
		paths[i] = p
		report(w, spec.label(i), p, spec, job, cc)
	}
	log.Debug("contour cache", "len", cc.Len(), "hitRate", cc.Stats().HitRate())

	if job.Output == "" {
		return nil
	}
	img := image.NewAlpha(image.Rect(0, 0, job.Width, job.Height))
	for _, p := range paths {
		mask := raster.Fill(p, job.Width, job.Height,
			raster.WithTransform(vpath.Scale(job.Scale, job.Scale)),
			raster.WithTolerance(job.Tolerance))
		draw.Draw(img, img.Bounds(), mask, image.Point{}, draw.Over)
	}
	if err := writePNG(job.Output, img); err != nil {
		return err
	}
	log.Info("wrote", "file", job.Output, "width", job.Width, "height", job.Height)
	return nil
}

func report(w io.Writer, name string, p *vpath.Path, spec PathSpec, job Job, cc *vpath.ContourCache) {
	fmt.Fprintf(w, "%s: %d commands, fill %s, bounds %s\n", name, p.Len(), p.FillType(), p.GetBounds())
	metrics := p.ComputeMetrics(spec.ForceClosed,
		vpath.WithTolerance(job.Tolerance), vpath.WithContourCache(cc))
	for m := range metrics.All() {
		fmt.Fprintf(w, "  %s\n", m)
		for _, off := range offsets(spec.Offsets, m.Length(), job.Samples) {
			t, ok := m.GetTangentForOffset(off)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "    at %.2f: position (%.2f, %.2f) angle %.4f\n",
				off, t.Position.X, t.Position.Y, t.Angle())
		}
	}
}

// offsets returns the explicit offsets, or n evenly spaced ones covering
// the whole contour.
func offsets(explicit []float64, length float64, n int) []float64 {
	if len(explicit) > 0 {
		return explicit
	}
	if n <= 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = length * float64(i) / float64(n-1)
	}
	return out
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
