package introspect

// GlyphID is a glyph index in a font, as assigned by the font decoder.
type GlyphID uint16

// Decoder is the set of capabilities the introspector needs from a binary font decoder.
//
// Implementations decode the font container (selecting the first font of a collection)
// before handing out a Decoder. Methods must not panic on malformed font data; they
// report absence instead.
type Decoder interface {
	// CharacterSet returns the code points the font maps, in ascending order.
	CharacterSet() []rune
	// GlyphForCodePoint resolves a code point. It returns false if the font has no
	// glyph for cp.
	GlyphForCodePoint(cp rune) (DecodedGlyph, bool)
	// GlyphByID resolves a glyph index. It returns false if id is out of range.
	GlyphByID(id GlyphID) (DecodedGlyph, bool)
	// NumGlyphs is the number of glyphs in the font, as stated by the font.
	NumGlyphs() int
	// Metadata returns font-level naming and metrics information.
	Metadata() Metadata
	// Substitutions returns the raw glyph substitution lookups. An error signals
	// an absent or malformed table.
	Substitutions() (SubstitutionTable, error)
	// FeatureTags returns the OpenType feature tags the font supports, without
	// duplicates, in the font's order.
	FeatureTags() []string
}

// DecodedGlyph is a glyph handle of a Decoder.
type DecodedGlyph interface {
	ID() GlyphID
	Name() string          // raw glyph name, may be empty
	Path() string          // outline as SVG path data, may be empty
	AdvanceWidth() float64 // in font units
}

// Metadata is font-level information delivered by a Decoder.
type Metadata struct {
	FamilyName    string
	StyleName     string
	FullName      string
	Version       string
	BBox          BBox // global bounding box in font units
	VariationAxes int  // number of variation axes, 0 for static fonts
}

// LookupTypeLigature is the GSUB lookup type for ligature substitution.
const LookupTypeLigature uint16 = 4

// SubstitutionTable is a raw view of a font's glyph substitution lookups.
type SubstitutionTable struct {
	Lookups []SubstitutionLookup
}

// SubstitutionLookup is one entry of the lookup list. Decoders unwrap extension
// lookups, i.e. Type is the type of the wrapped subtables.
type SubstitutionLookup struct {
	Type      uint16
	Subtables []SubstitutionSubtable
}

// SubstitutionSubtable pairs a coverage list with ligature sets. Ligature set i
// belongs to the glyph at position i of the coverage list.
// Decoders fill in ligature sets for lookups of type LookupTypeLigature only.
type SubstitutionSubtable struct {
	Coverage     []GlyphID
	LigatureSets [][]LigatureRecord
}

// LigatureRecord describes a single ligature: the covered glyph followed by
// Components is replaced by Glyph.
type LigatureRecord struct {
	Glyph      GlyphID
	Components []GlyphID // remaining components, without the covered glyph
}
