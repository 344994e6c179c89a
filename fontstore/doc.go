/*
Package fontstore keeps the fonts of an introspection session.

Fonts are added as uploads (file name, MIME type and bytes). The store assigns
each font an identity, derives a display name from the file name and keeps the
list of fonts sorted by name. Every font gets a glyph mask for subsetting
estimates. Summaries are parsed through a sched.Scheduler and cached per font;
selecting a font moves its pending parse job to the front of the queue.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontstore

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontsieve.store'
func tracer() tracing.Trace {
	return tracing.Select("fontsieve.store")
}
