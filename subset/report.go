package subset

import (
	"fmt"

	"github.com/npillmayer/fontsieve/glyphcat"
	"github.com/npillmayer/fontsieve/introspect"
)

// Report is the estimated effect of a mask on a font.
type Report struct {
	TotalGlyphs    int        `json:"totalGlyphs"`
	EnabledGlyphs  int        `json:"enabledGlyphs"`
	DisabledGlyphs int        `json:"disabledGlyphs"`
	FileSize       int64      `json:"fileSize"`
	Retained       Estimation `json:"retained"` // glyph data of the enabled glyphs
	Savings        Estimation `json:"savings"`  // glyph data of the disabled glyphs
	ResultSize     int64      `json:"resultSize"`
}

// Summarize estimates the file size of a font after removing the glyphs
// disabled in mask.
func Summarize(pf *introspect.ParsedFont, mask Mask, fileSize int64) Report {
	r := Report{FileSize: fileSize}
	if pf == nil {
		r.ResultSize = fileSize
		return r
	}
	r.TotalGlyphs = pf.TotalGlyphs
	r.DisabledGlyphs = mask.DisabledCount(pf)
	r.EnabledGlyphs = r.TotalGlyphs - r.DisabledGlyphs
	r.Retained = Estimate(r.EnabledGlyphs, r.TotalGlyphs, fileSize)
	r.Savings = Estimate(r.DisabledGlyphs, r.TotalGlyphs, fileSize)
	r.ResultSize = fileSize - r.Savings.Bytes
	return r
}

// String formats a report as a one-line header, e.g.
// "412 / 500 glyphs, 120 KB → 98.3 KB".
func (r Report) String() string {
	if r.DisabledGlyphs == 0 {
		return fmt.Sprintf("%d glyphs, %s", r.EnabledGlyphs, FormatFileSize(r.FileSize))
	}
	return fmt.Sprintf("%d / %d glyphs, %s → %s", r.EnabledGlyphs, r.TotalGlyphs,
		FormatFileSize(r.FileSize), FormatFileSize(r.ResultSize))
}

// GroupReport is the estimated weight of a group of glyphs.
type GroupReport struct {
	Category glyphcat.Category `json:"category"`
	Glyphs   int               `json:"glyphs"`
	Enabled  int               `json:"enabled"`
	State    GroupState        `json:"state"`
	Weight   string            `json:"weight"` // share of enabled glyphs in all glyphs of the font
	Estimate Estimation        `json:"estimate"`
}

// SummarizeGroup estimates the weight of the enabled glyphs of a group.
func SummarizeGroup(pf *introspect.ParsedFont, g introspect.GlyphGroup, mask Mask, fileSize int64) GroupReport {
	r := GroupReport{
		Category: g.Category,
		Glyphs:   len(g.Glyphs),
		Enabled:  mask.GroupEnabledCount(g),
		State:    mask.GroupState(g),
	}
	total := 0
	if pf != nil {
		total = pf.TotalGlyphs
	}
	r.Weight = Percent(r.Enabled, total)
	r.Estimate = Estimate(r.Enabled, total, fileSize)
	return r
}

// Count formats the glyph count of a group, e.g. "12 / 40" if some glyphs are disabled.
func (r GroupReport) Count() string {
	if r.Enabled != r.Glyphs {
		return fmt.Sprintf("%d / %d", r.Enabled, r.Glyphs)
	}
	return fmt.Sprintf("%d", r.Glyphs)
}
