package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/vpath"
)

// Glyph is one positioned glyph of a shaped string.
type Glyph struct {
	// ID is the glyph index in the font.
	ID sfnt.GlyphIndex
	// Cluster is the index of the first rune the glyph was shaped from.
	Cluster int
	// Origin is the pen position of the glyph on the baseline, y down.
	Origin vpath.Point
	// Advance is the horizontal advance.
	Advance float64
}

// Direction returns the writing direction of s, taken from its first
// strongly directional character. Text with none is left to right.
func Direction(s string) di.Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		case bidi.L:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first rune that belongs to one.
// Text made only of digits, punctuation and spaces shapes as Latin.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if sc := language.LookupScript(r); sc.Strong() && sc != language.Unknown {
			return sc
		}
	}
	return language.Latin
}

// scriptLanguages picks the language whose shaping rules a script is
// usually set with. Locale-specific forms such as Serbian Cyrillic or
// Urdu Arabic need an explicit language, which Shape does not take.
var scriptLanguages = map[language.Script]language.Language{
	language.Latin:      "en",
	language.Greek:      "el",
	language.Cyrillic:   "ru",
	language.Arabic:     "ar",
	language.Hebrew:     "he",
	language.Devanagari: "hi",
	language.Thai:       "th",
	language.Han:        "zh",
	language.Hiragana:   "ja",
	language.Katakana:   "ja",
	language.Hangul:     "ko",
}

// scriptLanguage returns the language for sc, undetermined when no single
// language stands for it.
func scriptLanguage(sc language.Script) language.Language {
	if l, ok := scriptLanguages[sc]; ok {
		return l
	}
	return language.NewLanguage("und")
}

// Shape shapes s as a single run at size pixels per em and returns its
// glyphs in visual order, starting at the origin.
func (f *Font) Shape(s string, size float64) ([]Glyph, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	runes := []rune(s)
	script := detectScript(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: Direction(s),
		Face:      font.NewFace(f.shaping),
		Size:      toFixed(size),
		Script:    script,
		Language:  scriptLanguage(script),
	}
	hb := f.shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	f.shapers.Put(hb)

	glyphs := make([]Glyph, len(out.Glyphs))
	x := 0.0
	for i, g := range out.Glyphs {
		adv := fromFixed(g.Advance)
		glyphs[i] = Glyph{
			ID:      sfnt.GlyphIndex(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph indices are 16 bit
			Cluster: g.TextIndex(),
			// Shaping offsets are y up.
			Origin:  vpath.Pt(x+fromFixed(g.XOffset), -fromFixed(g.YOffset)),
			Advance: adv,
		}
		x += adv
	}
	vpath.Logger().Debug("text: shaped", "runes", len(runes), "glyphs", len(glyphs),
		"script", script.String(), "lang", string(input.Language),
		"rtl", input.Direction == di.DirectionRTL)
	return glyphs, nil
}

// Path shapes s and returns the outlines of its glyphs as one path with
// the first glyph's origin at (0, 0). The fill type is nonzero.
func (f *Font) Path(s string, size float64) (*vpath.Path, error) {
	glyphs, err := f.Shape(s, size)
	if err != nil {
		return nil, err
	}
	p := vpath.NewPath()
	for _, g := range glyphs {
		gp, err := f.glyphPath(g.ID, size)
		if err != nil {
			return nil, err
		}
		if gp.IsEmpty() {
			continue
		}
		if err := p.AddPath(gp, g.Origin); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Width returns the total advance of s shaped at size.
func (f *Font) Width(s string, size float64) (float64, error) {
	glyphs, err := f.Shape(s, size)
	if err != nil {
		return 0, err
	}
	w := 0.0
	for _, g := range glyphs {
		w += g.Advance
	}
	return w, nil
}
