package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/fontsieve/glyphcat"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/pterm/pterm"
)

func loadOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: load:<file>[,<file>…]"), false
	}
	return intp.loadFonts(strings.Split(op.arg, ",")...), false
}

func fontsOp(intp *Intp, op *Op) (error, bool) {
	printFonts(intp.store)
	return nil, false
}

func selectOp(intp *Intp, op *Op) (err error, stop bool) {
	ref, ok := op.hasArg()
	if !ok {
		return errors.New("usage: select:<font>"), false
	}
	f, err := intp.store.Find(ref)
	if err != nil {
		return
	}
	if _, err = intp.store.Select(f.ID); err != nil {
		return
	}
	intp.group = ""
	tracer().Infof("selected font %s", f.Name)
	return
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	f, pf, err := intp.current()
	if err != nil {
		return err, false
	}
	printInfo(f, pf)
	return nil, false
}

func groupsOp(intp *Intp, op *Op) (error, bool) {
	f, pf, err := intp.current()
	if err != nil {
		return err, false
	}
	printGroups(f, pf, op.format == "all")
	return nil, false
}

func glyphsOp(intp *Intp, op *Op) (error, bool) {
	f, pf, err := intp.current()
	if err != nil {
		return err, false
	}
	id := intp.group
	if arg, ok := op.hasArg(); ok {
		id = arg
	}
	if id == "" {
		return errors.New("usage: glyphs:<category>"), false
	}
	g, ok := pf.Group(id)
	if !ok {
		return fmt.Errorf("no glyph group %q", id), false
	}
	intp.group = id
	printGlyphs(f, g, op.format)
	return nil, false
}

func toggleOp(intp *Intp, op *Op) (error, bool) {
	f, pf, err := intp.current()
	if err != nil {
		return err, false
	}
	ref, ok := op.hasArg()
	if !ok {
		return errors.New("usage: toggle:<glyph id|U+XXXX|character>"), false
	}
	glyph, err := findGlyph(pf, ref)
	if err != nil {
		return err, false
	}
	state := "enabled"
	if f.Mask.Toggle(glyph.ID) {
		state = "disabled"
	}
	pterm.Printf("glyph %d (%s) %s\n", glyph.ID, glyphLabel(glyph), state)
	return nil, false
}

func groupOp(intp *Intp, op *Op) (error, bool) {
	f, pf, err := intp.current()
	if err != nil {
		return err, false
	}
	id := intp.group
	if arg, ok := op.hasArg(); ok {
		id = arg
	}
	g, ok := pf.Group(id)
	if !ok {
		return fmt.Errorf("no glyph group %q", id), false
	}
	state := "enabled"
	if f.Mask.ToggleGroup(g) {
		state = "disabled"
	}
	pterm.Printf("%d glyphs of %s %s\n", len(g.Glyphs), g.Category.Name, state)
	return nil, false
}

func resetOp(intp *Intp, op *Op) (error, bool) {
	f, ok := intp.store.Current()
	if !ok {
		return ErrNoFont, false
	}
	f.Mask.EnableAll()
	pterm.Printf("all glyphs of %s enabled\n", f.Name)
	return nil, false
}

func estimateOp(intp *Intp, op *Op) (error, bool) {
	f, pf, err := intp.current()
	if err != nil {
		return err, false
	}
	printEstimate(f, pf)
	return nil, false
}

func featuresOp(intp *Intp, op *Op) (error, bool) {
	_, pf, err := intp.current()
	if err != nil {
		return err, false
	}
	if len(pf.Features) == 0 {
		pterm.Println("font has no OpenType features")
		return nil, false
	}
	data := [][]string{{"Tag", "Feature"}}
	for _, ft := range pf.Features {
		data = append(data, []string{ft.Tag, ft.Name})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// findGlyph resolves a glyph reference: a single character, a code point in
// U+XXXX notation or a glyph id.
func findGlyph(pf *introspect.ParsedFont, ref string) (introspect.Glyph, error) {
	var cp rune
	switch upper := strings.ToUpper(ref); {
	case utf8.RuneCountInString(ref) == 1:
		cp, _ = utf8.DecodeRuneInString(ref)
	case strings.HasPrefix(upper, "U+"):
		v, err := strconv.ParseUint(upper[2:], 16, 32)
		if err != nil {
			return introspect.Glyph{}, fmt.Errorf("invalid code point %q", ref)
		}
		cp = rune(v)
	default:
		id, err := strconv.ParseUint(ref, 10, 16)
		if err != nil {
			return introspect.Glyph{}, fmt.Errorf("invalid glyph reference %q", ref)
		}
		if g, ok := pf.Glyph(introspect.GlyphID(id)); ok {
			return g, nil
		}
		return introspect.Glyph{}, fmt.Errorf("no glyph with id %d in any group", id)
	}
	for _, g := range pf.Groups {
		for _, glyph := range g.Glyphs {
			if glyph.CategoryID != glyphcat.LigaturesID && slices.Contains(glyph.CodePoints, cp) {
				return glyph, nil
			}
		}
	}
	return introspect.Glyph{}, fmt.Errorf("no glyph for %s", glyphcat.FormatCodePoint(cp))
}
