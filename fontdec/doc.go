/*
Package fontdec decodes font binaries for introspection.

A Font is created from the raw bytes of an OpenType or TrueType font, a TrueType
collection (of which the first font is used), or a WOFF/WOFF2 web font. WOFF2 fonts
with transformed glyph data are not supported.

Glyph-level information (outlines, glyph names, advances) is delegated to package
golang.org/x/image/font/sfnt. Information sfnt does not expose is read directly from
the font tables: the complete character map, naming and version strings, the global
bounding box, variation axes, the layout feature tags and the ligature
substitutions of table GSUB.

Font implements introspect.Decoder. Decoding is tolerant: problems in optional tables
are recorded as issues (see Font.Issues) instead of failing. Only fonts which cannot
be decoded at all result in a DecodeError.

A Font is not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontdec

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontsieve.decoder'
func tracer() tracing.Trace {
	return tracing.Select("fontsieve.decoder")
}
