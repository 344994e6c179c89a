package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/npillmayer/fontsieve/glyphcat"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/fontsieve/subset"
	"github.com/thatisuday/commando"
)

func runEstimateCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	ff, f := mustOpenFont(args["font"].Value)
	pf := mustSummarize(f)
	cps, err := parseCodepoints(optString(flags["glyphs"], "glyphs"))
	if err != nil {
		fatalf("%v", err)
	}
	mask, err := buildMask(pf, splitCSVSpace(optString(flags["exclude"], "exclude")), cps)
	if err != nil {
		fatalf("%v", err)
	}
	r := subset.Summarize(pf, mask, ff.Size())
	if mustFlagBool(flags["json"], "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fatalf("cannot encode estimate: %v", err)
		}
		return
	}
	fmt.Println(r.String())
	for _, g := range pf.Groups {
		if len(g.Glyphs) == 0 {
			continue
		}
		gr := subset.SummarizeGroup(pf, g, mask, ff.Size())
		fmt.Printf("  %-20s %9s  %-8s %5s  %s\n", gr.Category.Name, gr.Count(), gr.State, gr.Weight, gr.Estimate)
	}
	fmt.Printf("Estimated savings: %s (%s of glyphs)\n", r.Savings,
		subset.Percent(r.DisabledGlyphs, r.TotalGlyphs))
}

// buildMask disables the glyphs of whole categories and of single code points.
func buildMask(pf *introspect.ParsedFont, exclude []string, cps []rune) (subset.Mask, error) {
	mask := subset.Mask{}
	for _, id := range exclude {
		g, ok := pf.Group(id)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", id)
		}
		for _, glyph := range g.Glyphs {
			mask.Set(glyph.ID, true)
		}
	}
	for _, cp := range cps {
		found := false
		for _, g := range pf.Groups {
			for _, glyph := range g.Glyphs {
				if glyph.CategoryID != glyphcat.LigaturesID && slices.Contains(glyph.CodePoints, cp) {
					mask.Set(glyph.ID, true)
					found = true
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("font has no glyph for %s", glyphcat.FormatCodePoint(cp))
		}
	}
	return mask, nil
}
