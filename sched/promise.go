package sched

import (
	"context"

	"github.com/npillmayer/fontsieve/introspect"
)

// Promise is the one-shot result of a parse job.
type Promise struct {
	id   string
	done chan struct{}
	pf   *introspect.ParsedFont
	err  error
}

func newPromise(id string) *Promise {
	return &Promise{id: id, done: make(chan struct{})}
}

// ID returns the font identity the job has been enqueued with.
func (p *Promise) ID() string {
	return p.id
}

// Done returns a channel which is closed as soon as the result is available.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Await waits for the result of the job or for ctx to be done.
// Either a summary or an error is returned, never both.
func (p *Promise) Await(ctx context.Context) (*introspect.ParsedFont, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.pf, p.err
	}
}

// ParsedFont waits for the result of the job.
func (p *Promise) ParsedFont() (*introspect.ParsedFont, error) {
	return p.Await(context.Background())
}

// deliver must be called exactly once.
func (p *Promise) deliver(pf *introspect.ParsedFont, err error) {
	if err != nil {
		pf = nil
	}
	p.pf, p.err = pf, err
	close(p.done)
}
