/*
Package sched serializes font introspection jobs.

A Scheduler runs at most one parse job at a time, in the order jobs have been
enqueued. A job still waiting in the queue may be moved to the front with
Reprioritize, e.g. when a user selects a font that has not been parsed yet.
Each job delivers its result exactly once through a Promise.

Jobs are not deduplicated: enqueueing the same font twice parses it twice.
Callers keep their own cache of results. There is no cancellation; a caller not
interested in a result any more just ignores its promise.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sched

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontsieve.sched'
func tracer() tracing.Trace {
	return tracing.Select("fontsieve.sched")
}
