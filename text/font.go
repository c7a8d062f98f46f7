// Package text converts font glyphs and shaped strings into vpath paths.
//
// Outlines come from golang.org/x/image/font/sfnt and are returned in y-down
// pixel coordinates with the glyph origin on the baseline. Strings are
// shaped with go-text/typesetting (HarfBuzz), so kerning and ligatures are
// applied before the glyph outlines are laid out.
//
// Usage:
//
//	f, err := text.Parse(goregular.TTF)
//	p, err := f.Path("Hello", 32)
//	for m := range p.ComputeMetrics(false).All() { ... }
package text

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vpath"
	"github.com/gogpu/vpath/cache"
)

// Errors returned by the text package.
var (
	// ErrInvalidSize is returned for non-positive or non-finite sizes.
	ErrInvalidSize = errors.New("text: invalid font size")

	// ErrNoGlyph is returned when the font has no glyph for a rune.
	ErrNoGlyph = errors.New("text: no glyph for rune")
)

// DefaultGlyphCacheSize is the number of glyph outlines kept per cache
// shard.
const DefaultGlyphCacheSize = 256

type glyphKey struct {
	gid  sfnt.GlyphIndex
	size float64
}

func hashGlyphKey(k glyphKey) uint64 {
	return cache.Float64sHasher([]float64{float64(k.gid), k.size})
}

// Font is a parsed TrueType or OpenType font. It is safe for concurrent
// use.
type Font struct {
	outlines *sfnt.Font
	shaping  *font.Font
	shapers  sync.Pool
	glyphs   *cache.ShardedCache[glyphKey, *vpath.Path]
}

// Parse parses font data.
func Parse(data []byte) (*Font, error) {
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse outlines: %w", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse for shaping: %w", err)
	}
	return &Font{
		outlines: outlines,
		shaping:  face.Font,
		shapers: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		glyphs: cache.NewSharded[glyphKey, *vpath.Path](DefaultGlyphCacheSize, hashGlyphKey),
	}, nil
}

// Name returns the font family name, or "" when the font has none.
func (f *Font) Name() string {
	name, err := f.outlines.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.outlines.NumGlyphs()
}

// GlyphIndex returns the glyph for r, or ErrNoGlyph.
func (f *Font) GlyphIndex(r rune) (sfnt.GlyphIndex, error) {
	var buf sfnt.Buffer
	gid, err := f.outlines.GlyphIndex(&buf, r)
	if err != nil {
		return 0, fmt.Errorf("text: glyph index for %q: %w", r, err)
	}
	if gid == 0 {
		return 0, fmt.Errorf("%w %q", ErrNoGlyph, r)
	}
	return gid, nil
}

// Advance returns the horizontal advance of gid at size pixels per em.
func (f *Font) Advance(gid sfnt.GlyphIndex, size float64) (float64, error) {
	if err := checkSize(size); err != nil {
		return 0, err
	}
	var buf sfnt.Buffer
	adv, err := f.outlines.GlyphAdvance(&buf, gid, toFixed(size), 0)
	if err != nil {
		return 0, fmt.Errorf("text: advance of glyph %d: %w", gid, err)
	}
	return fromFixed(adv), nil
}

// GlyphPath returns the outline of gid at size pixels per em. Glyphs with no
// outline, such as the space, yield an empty path. The result is owned by
// the caller.
func (f *Font) GlyphPath(gid sfnt.GlyphIndex, size float64) (*vpath.Path, error) {
	p, err := f.glyphPath(gid, size)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// RunePath is GlyphPath for the glyph the font maps r to.
func (f *Font) RunePath(r rune, size float64) (*vpath.Path, error) {
	gid, err := f.GlyphIndex(r)
	if err != nil {
		return nil, err
	}
	return f.GlyphPath(gid, size)
}

// CacheStats reports the glyph outline cache counters.
func (f *Font) CacheStats() cache.Stats {
	return f.glyphs.Stats()
}

// glyphPath returns the shared cached outline. Callers must not mutate it.
func (f *Font) glyphPath(gid sfnt.GlyphIndex, size float64) (*vpath.Path, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	key := glyphKey{gid: gid, size: size}
	if p, ok := f.glyphs.Get(key); ok {
		return p, nil
	}
	var buf sfnt.Buffer
	segs, err := f.outlines.LoadGlyph(&buf, gid, toFixed(size), nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}
	p := outlinePath(segs)
	f.glyphs.Set(key, p)
	vpath.Logger().Debug("text: loaded glyph", "gid", int(gid), "size", size, "segments", len(segs))
	return p, nil
}

// outlinePath records sfnt segments as path commands. Every contour is
// closed; TrueType and CFF outlines are closed by definition.
func outlinePath(segs sfnt.Segments) *vpath.Path {
	p := vpath.NewPath()
	open := false
	for _, s := range segs {
		a := s.Args
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(fromFixed(a[0].X), fromFixed(a[0].Y))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(fromFixed(a[0].X), fromFixed(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			p.QuadraticBezierTo(fromFixed(a[0].X), fromFixed(a[0].Y), fromFixed(a[1].X), fromFixed(a[1].Y))
		case sfnt.SegmentOpCubeTo:
			p.CubicTo(fromFixed(a[0].X), fromFixed(a[0].Y), fromFixed(a[1].X), fromFixed(a[1].Y),
				fromFixed(a[2].X), fromFixed(a[2].Y))
		}
	}
	if open {
		p.Close()
	}
	return p
}

func checkSize(size float64) error {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
