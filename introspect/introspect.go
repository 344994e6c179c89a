package introspect

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/npillmayer/fontsieve/glyphcat"
)

// ErrNoDecoder is returned by Summarize if no decoder is given.
var ErrNoDecoder = errors.New("introspect: no font decoder")

// Decoders of fonts without meaningful glyph names generate names like "uni0041"
// or "u1F600". We do not report these.
var placeholderName = regexp.MustCompile(`^u.*\d+`)

// Summarize builds the summary of a decoded font.
//
// Glyphs reachable from the character set are put into the group of their category.
// A glyph mapped from more than one code point is recorded once, in the category of
// its lowest code point. Ligature glyphs extracted from the substitution lookups go
// to a group of their own, which is the last group of the summary.
func Summarize(dec Decoder) (*ParsedFont, error) {
	if dec == nil {
		return nil, ErrNoDecoder
	}
	s := newSummarizer()
	s.mapCharacterSet(dec)
	s.groups[s.ligatureGroup].Glyphs = s.extractLigatures(dec)
	pf := &ParsedFont{
		TotalGlyphs: dec.NumGlyphs(),
		Groups:      s.groups,
		Info:        fontInfo(dec.Metadata()),
		Features:    features(dec.FeatureTags()),
	}
	tracer().Debugf("summary: %d glyphs in groups, %d glyphs in font, %d ligatures",
		pf.GroupedGlyphCount(), pf.TotalGlyphs, len(s.groups[s.ligatureGroup].Glyphs))
	return pf, nil
}

// --- Character set ---------------------------------------------------------

type placement struct {
	group, index int
}

type summarizer struct {
	groups        []GlyphGroup
	groupIndex    map[string]int        // category id -> position in groups
	ligatureGroup int                   // position of the ligature group
	placed        map[GlyphID]placement // glyphs already recorded
	codePoint     map[GlyphID]rune      // lowest code point mapping to a glyph
}

func newSummarizer() *summarizer {
	cats := glyphcat.Categories()
	s := &summarizer{
		groups:     make([]GlyphGroup, 0, len(cats)),
		groupIndex: make(map[string]int, len(cats)),
		placed:     make(map[GlyphID]placement),
		codePoint:  make(map[GlyphID]rune),
	}
	var ligatures glyphcat.Category
	for _, c := range cats {
		if c.ID == glyphcat.LigaturesID {
			ligatures = c
			continue
		}
		s.groupIndex[c.ID] = len(s.groups)
		s.groups = append(s.groups, GlyphGroup{Category: c, Glyphs: []Glyph{}})
	}
	s.ligatureGroup = len(s.groups)
	s.groupIndex[ligatures.ID] = s.ligatureGroup
	s.groups = append(s.groups, GlyphGroup{Category: ligatures, Glyphs: []Glyph{}})
	return s
}

func (s *summarizer) mapCharacterSet(dec Decoder) {
	cps := slices.Clone(dec.CharacterSet())
	slices.Sort(cps)
	cps = slices.Compact(cps)
	unresolved := 0
	for _, cp := range cps {
		g, ok := dec.GlyphForCodePoint(cp)
		if !ok {
			unresolved++
			continue
		}
		id := g.ID()
		if at, ok := s.placed[id]; ok {
			glyph := &s.groups[at.group].Glyphs[at.index]
			glyph.CodePoints = append(glyph.CodePoints, cp)
			continue
		}
		s.codePoint[id] = cp
		cat := glyphcat.ForCodePoint(cp)
		s.record(s.groupIndex[cat.ID], Glyph{
			ID:           id,
			CodePoints:   []rune{cp},
			Name:         glyphName(g.Name()),
			CategoryID:   cat.ID,
			Path:         g.Path(),
			AdvanceWidth: g.AdvanceWidth(),
		})
	}
	if unresolved > 0 {
		tracer().Debugf("%d code points of the character set without a glyph", unresolved)
	}
}

func (s *summarizer) record(group int, glyph Glyph) {
	s.groups[group].Glyphs = append(s.groups[group].Glyphs, glyph)
	s.placed[glyph.ID] = placement{group: group, index: len(s.groups[group].Glyphs) - 1}
}

func glyphName(name string) string {
	if placeholderName.MatchString(name) {
		return ""
	}
	return name
}

// --- Ligatures -------------------------------------------------------------

// extractLigatures collects the results of all ligature substitution lookups.
// Absent or malformed substitution data results in an empty list.
func (s *summarizer) extractLigatures(dec Decoder) []Glyph {
	ligs := []Glyph{}
	subs, err := dec.Substitutions()
	if err != nil {
		tracer().Debugf("no ligatures: %v", err)
		return ligs
	}
	if err = checkLigatureSubtables(subs); err != nil {
		tracer().Infof("ignoring ligatures: %v", err)
		return ligs
	}
	seen := make(map[GlyphID]bool)
	for _, lookup := range subs.Lookups {
		if lookup.Type != LookupTypeLigature {
			continue
		}
		for _, sub := range lookup.Subtables {
			for i, covered := range sub.Coverage {
				for _, rec := range sub.LigatureSets[i] {
					if _, ok := s.placed[rec.Glyph]; ok || seen[rec.Glyph] {
						continue
					}
					g, ok := dec.GlyphByID(rec.Glyph)
					if !ok {
						continue
					}
					seen[rec.Glyph] = true
					components := make([]GlyphID, 0, len(rec.Components)+1)
					components = append(components, covered)
					components = append(components, rec.Components...)
					name, cps := s.ligatureName(components)
					ligs = append(ligs, Glyph{
						ID:           g.ID(),
						CodePoints:   cps,
						Name:         name,
						CategoryID:   glyphcat.LigaturesID,
						Path:         g.Path(),
						AdvanceWidth: g.AdvanceWidth(),
					})
				}
			}
		}
	}
	return ligs
}

// ligatureName concatenates the characters of the components of a ligature.
// Components not reachable from the character set do not contribute.
func (s *summarizer) ligatureName(components []GlyphID) (string, []rune) {
	var sb strings.Builder
	cps := make([]rune, 0, len(components))
	for _, c := range components {
		if cp, ok := s.codePoint[c]; ok {
			sb.WriteRune(cp)
			cps = append(cps, cp)
		}
	}
	return sb.String(), cps
}

var errMalformedLigatures = errors.New("ligature subtable with inconsistent coverage")

func checkLigatureSubtables(subs SubstitutionTable) error {
	for _, lookup := range subs.Lookups {
		if lookup.Type != LookupTypeLigature {
			continue
		}
		for _, sub := range lookup.Subtables {
			if len(sub.Coverage) != len(sub.LigatureSets) {
				return errMalformedLigatures
			}
		}
	}
	return nil
}

// --- Font info -------------------------------------------------------------

func fontInfo(md Metadata) FontInfo {
	info := FontInfo{
		FamilyName: md.FamilyName,
		StyleName:  md.StyleName,
		FullName:   md.FullName,
		Version:    md.Version,
		BBox:       md.BBox,
		IsVariable: md.VariationAxes > 0,
	}
	if info.FamilyName == "" {
		info.FamilyName = "Unknown"
	}
	if info.StyleName == "" {
		info.StyleName = "Regular"
	}
	if info.FullName == "" {
		info.FullName = info.FamilyName
	}
	if info.BBox.Width == 0 && info.BBox.Height == 0 {
		info.BBox.Width = info.BBox.MaxX - info.BBox.MinX
		info.BBox.Height = info.BBox.MaxY - info.BBox.MinY
	}
	return info
}
