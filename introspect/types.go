package introspect

import "github.com/npillmayer/fontsieve/glyphcat"

// Glyph is a glyph record of a summary.
//
// Glyphs reached from the character set carry the code points mapping to them,
// in ascending order. Ligature glyphs carry the code points of their components.
type Glyph struct {
	ID           GlyphID `json:"id"`
	CodePoints   []rune  `json:"codePoints"`
	Name         string  `json:"name,omitempty"` // empty if absent
	CategoryID   string  `json:"categoryId"`
	Path         string  `json:"path"` // SVG path data, forwarded verbatim from the decoder
	AdvanceWidth float64 `json:"advanceWidth"`
}

// GlyphGroup collects the glyphs of one category.
type GlyphGroup struct {
	Category glyphcat.Category `json:"category"`
	Glyphs   []Glyph           `json:"glyphs"`
}

// BBox is a bounding box in font units.
type BBox struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	MaxX   float64 `json:"maxX"`
	MaxY   float64 `json:"maxY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FontInfo holds typographic metadata of a font.
type FontInfo struct {
	FamilyName string `json:"familyName"`
	StyleName  string `json:"styleName"`
	FullName   string `json:"fullName"`
	Version    string `json:"version"`
	BBox       BBox   `json:"bbox"`
	IsVariable bool   `json:"isVariable"`
}

// Feature is an OpenType feature tag with a human readable name.
type Feature struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

// ParsedFont is the summary of a font. It is immutable once produced.
type ParsedFont struct {
	TotalGlyphs int          `json:"totalGlyphs"`
	Groups      []GlyphGroup `json:"groups"`
	Info        FontInfo     `json:"info"`
	Features    []Feature    `json:"features"`
}

// Group returns the group for a category id.
func (pf *ParsedFont) Group(categoryID string) (GlyphGroup, bool) {
	if pf == nil {
		return GlyphGroup{}, false
	}
	for _, g := range pf.Groups {
		if g.Category.ID == categoryID {
			return g, true
		}
	}
	return GlyphGroup{}, false
}

// Glyph finds the glyph record for a glyph id.
func (pf *ParsedFont) Glyph(id GlyphID) (Glyph, bool) {
	if pf == nil {
		return Glyph{}, false
	}
	for _, g := range pf.Groups {
		for _, glyph := range g.Glyphs {
			if glyph.ID == id {
				return glyph, true
			}
		}
	}
	return Glyph{}, false
}

// GroupedGlyphCount is the number of glyph records over all groups.
// It never exceeds TotalGlyphs for fonts with consistent glyph counts.
func (pf *ParsedFont) GroupedGlyphCount() int {
	if pf == nil {
		return 0
	}
	n := 0
	for _, g := range pf.Groups {
		n += len(g.Glyphs)
	}
	return n
}
