package main

import (
	"strings"

	"github.com/npillmayer/fontsieve/glyphcat"
	"github.com/npillmayer/fontsieve/subset"
	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "categories", "category", "groups":
		pterm.Info.Println("Glyph categories")
		data := [][]string{{"Category", "Name", "Description"}}
		for _, c := range glyphcat.Categories() {
			data = append(data, []string{c.ID, c.Name, c.Description})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	case "estimate", "estimates":
		pterm.Info.Println("Size estimates")
		pterm.Printf(`
	Estimates assume that glyph outlines make up %.0f%% of a font file and
	that this share is distributed evenly over all glyphs of the font.
	Removing n of N glyphs from a font file of size S saves about

	    n / N × S × %.2f

	bytes. Shared tables, hinting and compression are not taken into account.
`, subset.GlyphDataShare*100, subset.GlyphDataShare)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	Commands are separated by blanks, arguments follow a colon:
	    load:<file>[,<file>…]    load font files or system fonts
	    fonts                    list loaded fonts
	    select:<font>            select a font by name, file or id
	    info                     typographic information about the selected font
	    groups[::all]            list glyph groups ("all" includes empty groups)
	    glyphs:<category>[:fmt]  list glyphs of a group (fmt "all" or "paths")
	    toggle:<glyph>           toggle a glyph (character, U+XXXX or glyph id)
	    group[:<category>]       toggle all glyphs of a group
	    reset                    enable all glyphs
	    estimate                 estimate the size of a subset
	    features                 list OpenType features
	    help[:<topic>]           help on "categories" or "estimate"
	    quit
	Example: select:Inter group:emoji estimate`)
	}
}
