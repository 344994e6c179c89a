package subset

import "github.com/npillmayer/fontsieve/introspect"

// Mask holds the glyphs of a font which are disabled, i.e. excluded from a subset.
// Glyphs not in the mask are enabled. Masks are keyed by glyph id and are not
// safe for concurrent use.
type Mask map[introspect.GlyphID]bool

// Disabled reports whether glyph id is disabled.
func (m Mask) Disabled(id introspect.GlyphID) bool {
	return m[id]
}

// Set enables or disables glyph id.
func (m Mask) Set(id introspect.GlyphID, disabled bool) {
	if disabled {
		m[id] = true
	} else {
		delete(m, id)
	}
}

// Toggle flips the state of glyph id and returns the new disabled state.
func (m Mask) Toggle(id introspect.GlyphID) bool {
	m.Set(id, !m[id])
	return m[id]
}

// ToggleGroup disables all glyphs of a group if at least one of them is enabled.
// Otherwise all glyphs of the group are enabled. It returns true if the
// group's glyphs have been disabled.
func (m Mask) ToggleGroup(g introspect.GlyphGroup) bool {
	disable := m.GroupEnabledCount(g) > 0
	for _, glyph := range g.Glyphs {
		m.Set(glyph.ID, disable)
	}
	return disable
}

// EnableAll clears the mask.
func (m Mask) EnableAll() {
	clear(m)
}

// DisabledCount counts the glyphs of a font summary which are disabled.
func (m Mask) DisabledCount(pf *introspect.ParsedFont) int {
	if pf == nil {
		return 0
	}
	n := 0
	for _, g := range pf.Groups {
		n += len(g.Glyphs) - m.GroupEnabledCount(g)
	}
	return n
}

// EnabledCount is the number of glyphs of a font which are not disabled.
// Glyphs which are not part of any group count as enabled.
func (m Mask) EnabledCount(pf *introspect.ParsedFont) int {
	if pf == nil {
		return 0
	}
	return pf.TotalGlyphs - m.DisabledCount(pf)
}

// GroupEnabledCount counts the enabled glyphs of a group.
func (m Mask) GroupEnabledCount(g introspect.GlyphGroup) int {
	n := 0
	for _, glyph := range g.Glyphs {
		if !m[glyph.ID] {
			n++
		}
	}
	return n
}

// GroupState summarizes the mask state of the glyphs of a group.
type GroupState int

// Group states. Empty groups are reported as enabled.
const (
	GroupEnabled GroupState = iota
	GroupDisabled
	GroupMixed
)

func (s GroupState) String() string {
	switch s {
	case GroupEnabled:
		return "enabled"
	case GroupDisabled:
		return "disabled"
	}
	return "mixed"
}

// GroupState returns the state of a group's glyphs.
func (m Mask) GroupState(g introspect.GlyphGroup) GroupState {
	switch m.GroupEnabledCount(g) {
	case len(g.Glyphs):
		return GroupEnabled
	case 0:
		return GroupDisabled
	}
	return GroupMixed
}
