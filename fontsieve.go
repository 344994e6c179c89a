/*
Package fontsieve inspects fonts and estimates the effect of subsetting them.

A font binary (TrueType, OpenType, a collection, WOFF or WOFF2) is decoded and
summarized: its glyphs are grouped into semantic categories (Basic Latin,
Greek, Emoji, …), ligatures are extracted from the glyph substitution table,
and typographic metadata and OpenType features are collected. Clients then
disable glyphs or whole categories and get an estimate of the file size of a
font subset without these glyphs.

We stick to the following nomenclature:

▪︎ A "glyph group" is the set of glyphs of a font falling into one category.
Groups are never empty in meaning but may be empty in content, i.e. every
summary lists all categories.

▪︎ A "mask" is the set of glyphs a client has disabled. Masks are keyed by
glyph id, so a glyph shared by several code points is toggled once.

▪︎ An "estimate" is a heuristic: glyph outlines are assumed to make up a fixed
share of a font file, distributed evenly over all glyphs.

Parsing fonts may take a while. Sessions handling many fonts use a scheduler
(package sched), which parses one font at a time and lets clients move the font
they are looking at to the front of the queue.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontsieve

import (
	"github.com/npillmayer/fontsieve/fontdec"
	"github.com/npillmayer/fontsieve/fontstore"
	"github.com/npillmayer/fontsieve/internal/fontload"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/fontsieve/sched"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontsieve'
func tracer() tracing.Trace {
	return tracing.Select("fontsieve")
}

// Introspect decodes a font binary and summarizes it.
//
// Malformed substitution data does not fail introspection, it results in an
// empty ligature group. Decoding issues are traced.
func Introspect(data []byte) (*introspect.ParsedFont, error) {
	f, err := fontdec.Open(data)
	if err != nil {
		return nil, err
	}
	for _, issue := range f.Issues() {
		tracer().Infof("font issue: %s", issue)
	}
	pf, err := introspect.Summarize(f)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("introspected %s font %q", f.Format(), pf.Info.FullName)
	return pf, nil
}

// IntrospectFile loads a font file and summarizes it. The file may be given by
// path or by the name of a system font.
func IntrospectFile(ref string) (*introspect.ParsedFont, error) {
	ff, err := fontload.LoadNamed(ref)
	if err != nil {
		return nil, err
	}
	return Introspect(ff.Binary)
}

// NewScheduler creates a parse scheduler which introspects fonts.
func NewScheduler(opts ...sched.Option) *sched.Scheduler {
	return sched.New(Introspect, opts...)
}

// NewStore creates a font store backed by a new parse scheduler.
func NewStore(opts ...fontstore.Option) *fontstore.Store {
	return fontstore.New(NewScheduler(), opts...)
}
