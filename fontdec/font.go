package fontdec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/fontsieve/introspect"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a decoded font. It implements introspect.Decoder.
type Font struct {
	format   string
	sf       *sfnt.Font
	buf      sfnt.Buffer
	upem     fixed.Int26_6 // units per em, used as ppem to get outlines in font units
	cmap     charMap
	charset  []rune
	md       introspect.Metadata
	subs     introspect.SubstitutionTable
	subsErr  error
	features []string
	issues   issueCollector
}

var _ introspect.Decoder = (*Font)(nil)

// ErrNoGSUB signals that a font does not contain a glyph substitution table.
var ErrNoGSUB = errors.New("font has no GSUB table")

// Open decodes a font binary. For font collections the first font is used.
// Fonts which cannot be decoded result in a *DecodeError.
func Open(data []byte) (*Font, error) {
	c, err := unwrap(data)
	if err != nil {
		return nil, err
	}
	f := &Font{format: c.format}
	if c.format == FormatCollection {
		coll, err := sfnt.ParseCollection(c.sfnt)
		if err != nil {
			return nil, decodeError(c.format, "collection", err)
		}
		if f.sf, err = coll.Font(0); err != nil {
			return nil, decodeError(c.format, "first font of collection", err)
		}
	} else if f.sf, err = sfnt.Parse(c.sfnt); err != nil {
		return nil, decodeError(c.format, "font tables", err)
	}
	f.upem = fixed.Int26_6(f.sf.UnitsPerEm())
	if err = f.decodeTables(c.tables); err != nil {
		return nil, decodeError(c.format, "font tables", err)
	}
	tracer().Infof("decoded %s font %q: %d glyphs, %d code points, %d issues",
		f.format, f.md.FullName, f.NumGlyphs(), len(f.charset), len(f.issues.issues))
	return f, nil
}

func (f *Font) decodeTables(tables tableDirectory) error {
	cm, ok := tables[T("cmap")]
	if !ok {
		return fmt.Errorf("missing table cmap")
	}
	var err error
	if f.cmap, err = parseCMap(cm, &f.issues); err != nil {
		return fmt.Errorf("cmap: %w", err)
	}
	n := f.NumGlyphs()
	for cp, gid := range f.cmap {
		if int(gid) >= n {
			delete(f.cmap, cp)
		}
	}
	f.charset = f.cmap.codePoints()
	f.decodeMetadata(tables)
	f.decodeLayout(tables)
	return nil
}

func (f *Font) decodeMetadata(tables tableDirectory) {
	var head headInfo
	if h, ok := tables[T("head")]; ok {
		var err error
		if head, err = parseHead(h); err != nil {
			f.issues.add(T("head"), "Header", SeverityMajor, "%v", err)
		}
	}
	f.md.BBox = introspect.BBox{
		MinX: float64(head.xMin),
		MinY: float64(head.yMin),
		MaxX: float64(head.xMax),
		MaxY: float64(head.yMax),
	}
	if nm, ok := tables[T("name")]; ok {
		names, err := parseNames(nm, &f.issues)
		if err != nil {
			f.issues.add(T("name"), "Header", SeverityMajor, "%v", err)
		}
		f.md.FamilyName = names[NameFamily]
		if f.md.FamilyName == "" {
			f.md.FamilyName = names[NameTypoFamily]
		}
		f.md.StyleName = names[NameSubfamily]
		f.md.FullName = names[NameFullName]
		f.md.Version = names[NameVersion]
	}
	if f.md.Version == "" && head.fontRevision != 0 {
		f.md.Version = head.revision()
	}
	if fv, ok := tables[T("fvar")]; ok {
		var err error
		if f.md.VariationAxes, err = variationAxes(fv); err != nil {
			f.issues.add(T("fvar"), "Header", SeverityMinor, "%v", err)
		}
	}
}

func (f *Font) decodeLayout(tables tableDirectory) {
	seen := make(map[Tag]bool)
	for _, tag := range []Tag{T("GSUB"), T("GPOS")} {
		t, ok := tables[tag]
		if !ok {
			continue
		}
		features, err := layoutSection(t, featureListOffset)
		if err == nil {
			var tags []Tag
			if tags, err = featureTags(features); err == nil {
				for _, ft := range tags {
					if !seen[ft] {
						seen[ft] = true
						f.features = append(f.features, ft.String())
					}
				}
			}
		}
		if err != nil {
			f.issues.add(tag, "FeatureList", SeverityMajor, "%v", err)
		}
	}
	gsub, ok := tables[T("GSUB")]
	if !ok {
		f.subsErr = ErrNoGSUB
		return
	}
	if f.subs, f.subsErr = parseSubstitutions(gsub); f.subsErr != nil {
		f.issues.add(T("GSUB"), "LookupList", SeverityMajor, "%v", f.subsErr)
	}
}

// Format returns the container format of the font binary, e.g. "WOFF".
func (f *Font) Format() string {
	return f.format
}

// Issues returns the problems found while decoding the font.
func (f *Font) Issues() []Issue {
	return append([]Issue(nil), f.issues.issues...)
}

// UnitsPerEm returns the number of font units per em square.
func (f *Font) UnitsPerEm() int {
	return int(f.upem)
}

// --- introspect.Decoder ----------------------------------------------------

// CharacterSet returns the mapped code points in ascending order.
func (f *Font) CharacterSet() []rune {
	return f.charset
}

// GlyphForCodePoint returns the glyph a code point is mapped to.
func (f *Font) GlyphForCodePoint(cp rune) (introspect.DecodedGlyph, bool) {
	gid, ok := f.cmap[cp]
	if !ok {
		return nil, false
	}
	return &glyph{font: f, id: introspect.GlyphID(gid)}, true
}

// GlyphByID returns the glyph with a given index.
func (f *Font) GlyphByID(id introspect.GlyphID) (introspect.DecodedGlyph, bool) {
	if int(id) >= f.NumGlyphs() {
		return nil, false
	}
	return &glyph{font: f, id: id}, true
}

// NumGlyphs returns the number of glyphs as stated by table 'maxp'.
func (f *Font) NumGlyphs() int {
	return f.sf.NumGlyphs()
}

// Metadata returns naming and metrics information.
func (f *Font) Metadata() introspect.Metadata {
	return f.md
}

// Substitutions returns the lookups of table GSUB. If the font has no GSUB table,
// ErrNoGSUB is returned.
func (f *Font) Substitutions() (introspect.SubstitutionTable, error) {
	return f.subs, f.subsErr
}

// FeatureTags returns the feature tags of tables GSUB and GPOS, in this order.
func (f *Font) FeatureTags() []string {
	return f.features
}

// --- Glyphs ----------------------------------------------------------------

type glyph struct {
	font *Font
	id   introspect.GlyphID
}

func (g *glyph) ID() introspect.GlyphID {
	return g.id
}

func (g *glyph) Name() string {
	name, err := g.font.sf.GlyphName(&g.font.buf, sfnt.GlyphIndex(g.id))
	if err != nil {
		return ""
	}
	return name
}

func (g *glyph) AdvanceWidth() float64 {
	adv, err := g.font.sf.GlyphAdvance(&g.font.buf, sfnt.GlyphIndex(g.id), g.font.upem, font.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv)
}

// Path returns the glyph outline as SVG path data in font units, with the y axis
// pointing up. Glyphs without an outline have an empty path.
func (g *glyph) Path() string {
	segs, err := g.font.sf.LoadGlyph(&g.font.buf, sfnt.GlyphIndex(g.id), g.font.upem, nil)
	if err != nil {
		tracer().Debugf("glyph %d has no outline: %v", g.id, err)
		return ""
	}
	return svgPath(segs)
}

// svgPath converts outline segments to SVG path data. Segments are scaled by
// ppem = units per em, i.e. fixed point values equal font units.
// Package sfnt delivers y pointing down, which we flip.
func svgPath(segs sfnt.Segments) string {
	var sb strings.Builder
	open := false
	pt := func(p fixed.Point26_6) {
		fmt.Fprintf(&sb, "%d %d", int32(p.X), -int32(p.Y))
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				sb.WriteByte('Z')
			}
			sb.WriteByte('M')
			pt(s.Args[0])
			open = true
		case sfnt.SegmentOpLineTo:
			sb.WriteByte('L')
			pt(s.Args[0])
		case sfnt.SegmentOpQuadTo:
			sb.WriteByte('Q')
			pt(s.Args[0])
			sb.WriteByte(' ')
			pt(s.Args[1])
		case sfnt.SegmentOpCubeTo:
			sb.WriteByte('C')
			pt(s.Args[0])
			sb.WriteByte(' ')
			pt(s.Args[1])
			sb.WriteByte(' ')
			pt(s.Args[2])
		}
	}
	if open {
		sb.WriteByte('Z')
	}
	return sb.String()
}
