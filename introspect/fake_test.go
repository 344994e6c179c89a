package introspect

import "errors"

// fakeDecoder is an in-memory Decoder for tests.
type fakeDecoder struct {
	cmap      map[rune]GlyphID
	glyphs    map[GlyphID]fakeGlyph
	numGlyphs int
	md        Metadata
	subs      SubstitutionTable
	subsErr   error
	tags      []string
	charset   []rune // if nil, derived from cmap
}

type fakeGlyph struct {
	id   GlyphID
	name string
	path string
	adv  float64
}

func (g fakeGlyph) ID() GlyphID           { return g.id }
func (g fakeGlyph) Name() string          { return g.name }
func (g fakeGlyph) Path() string          { return g.path }
func (g fakeGlyph) AdvanceWidth() float64 { return g.adv }

var errNoGSUB = errors.New("font has no GSUB table")

func newFake() *fakeDecoder {
	return &fakeDecoder{
		cmap:    make(map[rune]GlyphID),
		glyphs:  make(map[GlyphID]fakeGlyph),
		subsErr: errNoGSUB,
	}
}

// add registers a glyph and maps all of cps to it.
func (f *fakeDecoder) add(id GlyphID, name string, cps ...rune) *fakeDecoder {
	f.glyphs[id] = fakeGlyph{id: id, name: name, path: "M0 0L10 0L10 10Z", adv: 500}
	for _, cp := range cps {
		f.cmap[cp] = id
	}
	if int(id) >= f.numGlyphs {
		f.numGlyphs = int(id) + 1
	}
	return f
}

func (f *fakeDecoder) CharacterSet() []rune {
	if f.charset != nil {
		return f.charset
	}
	cps := make([]rune, 0, len(f.cmap))
	for cp := range f.cmap {
		cps = append(cps, cp)
	}
	return cps // unordered on purpose
}

func (f *fakeDecoder) GlyphForCodePoint(cp rune) (DecodedGlyph, bool) {
	id, ok := f.cmap[cp]
	if !ok {
		return nil, false
	}
	return f.GlyphByID(id)
}

func (f *fakeDecoder) GlyphByID(id GlyphID) (DecodedGlyph, bool) {
	g, ok := f.glyphs[id]
	if !ok {
		return nil, false
	}
	return g, true
}

func (f *fakeDecoder) NumGlyphs() int                            { return f.numGlyphs }
func (f *fakeDecoder) Metadata() Metadata                        { return f.md }
func (f *fakeDecoder) Substitutions() (SubstitutionTable, error) { return f.subs, f.subsErr }
func (f *fakeDecoder) FeatureTags() []string                     { return f.tags }

// ligatures replaces the substitution lookups of f.
func (f *fakeDecoder) ligatures(lookups ...SubstitutionLookup) *fakeDecoder {
	f.subs = SubstitutionTable{Lookups: lookups}
	f.subsErr = nil
	return f
}
