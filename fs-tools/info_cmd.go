package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontsieve/fontdec"
	"github.com/npillmayer/fontsieve/internal/fontload"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/fontsieve/subset"
	"github.com/thatisuday/commando"
)

// fontReport is the JSON form of command info. Glyph outlines are left out.
type fontReport struct {
	Path     string               `json:"path"`
	Format   string               `json:"format"`
	FileSize int64                `json:"fileSize"`
	Glyphs   int                  `json:"totalGlyphs"`
	Info     introspect.FontInfo  `json:"info"`
	Groups   []groupReport        `json:"groups"`
	Features []introspect.Feature `json:"features"`
	Issues   []string             `json:"issues,omitempty"`
}

type groupReport struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Glyphs int    `json:"glyphs"`
	Weight string `json:"weight"`
}

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	ff, f := mustOpenFont(args["font"].Value)
	pf := mustSummarize(f)
	r := newFontReport(ff, f, pf)
	if mustFlagBool(flags["json"], "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fatalf("cannot encode summary: %v", err)
		}
		return
	}
	fmt.Printf("Path: %s\n", r.Path)
	fmt.Printf("Type: %s, %s\n", r.Format, subset.FormatFileSize(r.FileSize))
	fmt.Printf("Family: %s\n", r.Info.FamilyName)
	fmt.Printf("Style: %s\n", r.Info.StyleName)
	fmt.Printf("Full name: %s\n", r.Info.FullName)
	if r.Info.Version != "" {
		fmt.Printf("Version: %s\n", r.Info.Version)
	}
	if r.Info.IsVariable {
		fmt.Println("Variable: yes")
	}
	fmt.Printf("Glyphs: %d\n", r.Glyphs)
	for _, g := range r.Groups {
		if g.Glyphs > 0 {
			fmt.Printf("  %-20s %5d  %s\n", g.Name, g.Glyphs, g.Weight)
		}
	}
	tags := make([]string, len(r.Features))
	for i, ft := range r.Features {
		tags[i] = ft.Tag
	}
	fmt.Printf("Features: %s\n", strings.Join(tags, ","))
	fmt.Printf("Issues: %d\n", len(r.Issues))
	if mustFlagBool(flags["errors"], "errors") {
		for _, issue := range r.Issues {
			fmt.Printf("issue: %s\n", issue)
		}
	}
}

func newFontReport(ff *fontload.FontFile, f *fontdec.Font, pf *introspect.ParsedFont) fontReport {
	r := fontReport{
		Path:     ff.Path,
		Format:   f.Format(),
		FileSize: ff.Size(),
		Glyphs:   pf.TotalGlyphs,
		Info:     pf.Info,
		Features: pf.Features,
	}
	for _, g := range pf.Groups {
		r.Groups = append(r.Groups, groupReport{
			ID:     g.Category.ID,
			Name:   g.Category.Name,
			Glyphs: len(g.Glyphs),
			Weight: subset.Percent(len(g.Glyphs), pf.TotalGlyphs),
		})
	}
	for _, issue := range f.Issues() {
		r.Issues = append(r.Issues, issue.String())
	}
	return r
}
