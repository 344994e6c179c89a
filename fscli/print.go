package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontsieve/fontstore"
	"github.com/npillmayer/fontsieve/glyphcat"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/fontsieve/subset"
	"github.com/pterm/pterm"
)

// maxGlyphRows limits glyph listings unless format "all" is requested.
const maxGlyphRows = 40

func printFonts(store *fontstore.Store) {
	fonts := store.Fonts()
	if len(fonts) == 0 {
		pterm.Println("no fonts loaded")
		return
	}
	cur, _ := store.Current()
	data := [][]string{
		{"", "Name", "File", "Format", "Size", "Glyphs"},
	}
	for _, f := range fonts {
		mark, glyphs := "", "parsing…"
		if cur != nil && cur.ID == f.ID {
			mark = "*"
		}
		if pf, ok := store.Summary(f.ID); ok {
			glyphs = fmt.Sprintf("%d", pf.TotalGlyphs)
		}
		data = append(data, []string{
			mark, f.Name, f.FileName, f.Extension, subset.FormatFileSize(f.Size), glyphs,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printInfo(f *fontstore.Font, pf *introspect.ParsedFont) {
	info := pf.Info
	variable := "no"
	if info.IsVariable {
		variable = "yes"
	}
	data := [][]string{
		{"Family", info.FamilyName},
		{"Style", info.StyleName},
		{"Full name", info.FullName},
		{"Version", info.Version},
		{"Glyphs", fmt.Sprintf("%d", pf.TotalGlyphs)},
		{"File size", subset.FormatFileSize(f.Size)},
		{"Bounding box", fmt.Sprintf("(%g, %g) – (%g, %g), %g × %g", info.BBox.MinX, info.BBox.MinY,
			info.BBox.MaxX, info.BBox.MaxY, info.BBox.Width, info.BBox.Height)},
		{"Variable", variable},
	}
	pterm.Info.Println(info.FullName)
	pterm.DefaultTable.WithData(data).Render()
}

// printGroups lists the glyph groups of a font. Empty groups are left out
// unless all is set.
func printGroups(f *fontstore.Font, pf *introspect.ParsedFont, all bool) {
	data := [][]string{
		{"Category", "Name", "Glyphs", "State", "Weight", "Size"},
	}
	for _, g := range pf.Groups {
		if len(g.Glyphs) == 0 && !all {
			continue
		}
		r := subset.SummarizeGroup(pf, g, f.Mask, f.Size)
		data = append(data, []string{
			r.Category.ID, r.Category.Name, r.Count(), r.State.String(), r.Weight, r.Estimate.String(),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printGlyphs lists the glyphs of a group. Format "all" lists every glyph,
// format "paths" adds outlines.
func printGlyphs(f *fontstore.Font, g introspect.GlyphGroup, format string) {
	pterm.Info.Printf("%s: %s\n", g.Category.Name, g.Category.Description)
	head := []string{"ID", "Chars", "Code points", "Name", "Advance", ""}
	if format == "paths" {
		head = append(head, "Path")
	}
	data := [][]string{head}
	for i, glyph := range g.Glyphs {
		if i == maxGlyphRows && format == "" {
			pterm.Printf("%d of %d glyphs shown, use glyphs:%s:all for all\n",
				maxGlyphRows, len(g.Glyphs), g.Category.ID)
			break
		}
		state := ""
		if f.Mask.Disabled(glyph.ID) {
			state = "off"
		}
		row := []string{
			fmt.Sprintf("%d", glyph.ID),
			glyphLabel(glyph),
			codePoints(glyph.CodePoints),
			glyph.Name,
			fmt.Sprintf("%g", glyph.AdvanceWidth),
			state,
		}
		if format == "paths" {
			row = append(row, glyph.Path)
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printEstimate(f *fontstore.Font, pf *introspect.ParsedFont) {
	r := subset.Summarize(pf, f.Mask, f.Size)
	pterm.Info.Println(r.String())
	data := [][]string{
		{"Enabled glyphs", fmt.Sprintf("%d (%s)", r.EnabledGlyphs, subset.Percent(r.EnabledGlyphs, r.TotalGlyphs))},
		{"Disabled glyphs", fmt.Sprintf("%d (%s)", r.DisabledGlyphs, subset.Percent(r.DisabledGlyphs, r.TotalGlyphs))},
		{"Glyph data kept", r.Retained.String()},
		{"Estimated savings", r.Savings.String()},
		{"Estimated subset size", subset.FormatFileSize(r.ResultSize)},
	}
	pterm.DefaultTable.WithData(data).Render()
}

// glyphLabel is the text a glyph stands for, e.g. "é" or "fi".
func glyphLabel(g introspect.Glyph) string {
	if g.CategoryID == glyphcat.LigaturesID {
		return g.Name
	}
	if len(g.CodePoints) == 0 {
		return ""
	}
	return string(g.CodePoints[0])
}

func codePoints(cps []rune) string {
	s := make([]string, len(cps))
	for i, cp := range cps {
		s[i] = glyphcat.FormatCodePoint(cp)
	}
	return strings.Join(s, " ")
}
