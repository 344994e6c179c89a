/*
Package introspect builds a structural summary of a font: its glyph inventory,
the mapping from code points to glyphs, ligature substitutions and typographic
metadata, with glyphs organized into the semantic groups of package glyphcat.

Package introspect does not read font binaries itself. It works against the
capabilities described by interface Decoder, which is implemented by package fontdec
for OpenType, TrueType and WOFF containers. Any other conformant decoder may be
plugged in without changes to this package.

Summarizing a font is deterministic: identical decoder output yields a byte-identical
summary. Apart from a missing decoder, Summarize does not fail. Anomalies in a font
(code points without a glyph, absent or malformed substitution tables) degrade to
empty or default values, so an unusual font still yields a usable summary.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package introspect

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontsieve.introspect'
func tracer() tracing.Trace {
	return tracing.Select("fontsieve.introspect")
}
