package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/vpath"
	"github.com/gogpu/vpath/svgpath"
)

// Job describes the paths to measure and the optional raster output.
//
//	width = 128
//	height = 128
//	output = "out.png"
//
//	[[path]]
//	name = "triangle"
//	d = "M0 0 L10 0 L10 10 Z"
//	fill = "evenodd"
//	force_closed = true
//	offsets = [0, 5, 10]
type Job struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Scale     float64 `toml:"scale"`
	Tolerance float64 `toml:"tolerance"`
	Output    string  `toml:"output"`
	Samples   int     `toml:"samples"`

	Paths []PathSpec `toml:"path"`
}

// PathSpec is one path of a job.
type PathSpec struct {
	Name        string    `toml:"name"`
	Data        string    `toml:"d"`
	Fill        string    `toml:"fill"`
	ForceClosed bool      `toml:"force_closed"`
	Offsets     []float64 `toml:"offsets"`
}

func defaultJob() Job {
	return Job{
		Width:     256,
		Height:    256,
		Scale:     1,
		Tolerance: vpath.DefaultTolerance,
		Samples:   3,
	}
}

// loadJob reads a TOML job file. Unknown keys are rejected.
func loadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, err
	}
	job, err := decodeJob(bytes.NewReader(data))
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

func decodeJob(r io.Reader) (Job, error) {
	job := defaultJob()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&job); err != nil {
		return Job{}, err
	}
	return job, job.validate()
}

func (j *Job) validate() error {
	if j.Width <= 0 || j.Height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", j.Width, j.Height)
	}
	if j.Scale <= 0 {
		return fmt.Errorf("scale %v must be positive", j.Scale)
	}
	for i, p := range j.Paths {
		if _, err := parseFill(p.Fill); err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
	}
	return nil
}

func parseFill(s string) (vpath.FillType, error) {
	switch s {
	case "", "nonzero":
		return vpath.NonZero, nil
	case "evenodd":
		return vpath.EvenOdd, nil
	}
	return vpath.NonZero, fmt.Errorf("unknown fill rule %q", s)
}

// build parses the path data and applies the fill rule.
func (s PathSpec) build() (*vpath.Path, error) {
	p, err := svgpath.Parse(s.Data)
	if err != nil {
		return nil, err
	}
	fill, err := parseFill(s.Fill)
	if err != nil {
		return nil, err
	}
	p.SetFillType(fill)
	return p, nil
}

func (s PathSpec) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("path%d", i)
}
