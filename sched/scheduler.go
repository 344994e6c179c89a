package sched

import (
	"errors"
	"fmt"
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/fontsieve/introspect"
)

// State is the state of a parse job.
type State int

// Job states. A job moves from Queued to Running to either Completed or Failed.
const (
	Queued State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseFunc turns a font binary into a summary.
type ParseFunc func(data []byte) (*introspect.ParsedFont, error)

var (
	// ErrPanic is wrapped by errors of jobs whose parse function panicked.
	ErrPanic = errors.New("parse function panicked")
	// ErrNoResult is wrapped by errors of jobs whose parse function returned neither
	// a summary nor an error.
	ErrNoResult = errors.New("parse function returned no result")
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithObserver installs a function which is called for every state transition
// of a job. Calls are serialized and made in transition order. The observer
// must not call methods of the scheduler.
func WithObserver(observer func(id string, s State)) Option {
	return func(s *Scheduler) {
		s.observer = observer
	}
}

type job struct {
	id      string
	src     Source
	state   State
	promise *Promise
}

// Scheduler runs parse jobs one at a time. It is safe for concurrent use.
type Scheduler struct {
	parse    ParseFunc
	observer func(id string, s State)
	mu       sync.Mutex
	queue    *arraylist.List // of *job, front is next
	running  *job
	latest   map[string]*job // most recently enqueued job per font identity
}

// New creates a scheduler for a parse function.
func New(parse ParseFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		parse:  parse,
		queue:  arraylist.New(),
		latest: make(map[string]*job),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue appends a parse job for a font to the queue. If no job is running,
// the job starts immediately.
func (s *Scheduler) Enqueue(id string, src Source) *Promise {
	j := &job{id: id, src: src, promise: newPromise(id)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Add(j)
	s.latest[id] = j
	s.transition(j, Queued)
	tracer().Debugf("enqueued font %s, %d jobs waiting", id, s.queue.Size())
	s.startNext()
	return j.promise
}

// Reprioritize moves a queued job for a font to the front of the queue. It
// reports whether the job has been moved. Jobs which are running or finished,
// or which are already at the front of the queue, stay where they are.
func (s *Scheduler) Reprioritize(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	inx, j := s.queue.Find(func(_ int, v interface{}) bool {
		return v.(*job).id == id
	})
	if inx <= 0 {
		return false
	}
	s.queue.Remove(inx)
	s.queue.Insert(0, j)
	tracer().Debugf("moved font %s to front of queue", id)
	return true
}

// State returns the state of the most recently enqueued job for a font.
func (s *Scheduler) State(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.latest[id]
	if !ok {
		return 0, false
	}
	return j.state, true
}

// Pending returns the identities of the queued jobs, front first.
func (s *Scheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, s.queue.Size())
	for _, v := range s.queue.Values() {
		ids = append(ids, v.(*job).id)
	}
	return ids
}

// Running returns the identity of the running job, if any.
func (s *Scheduler) Running() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running == nil || s.running.state != Running {
		return "", false
	}
	return s.running.id, true
}

// startNext starts the job at the front of the queue, unless a job is running.
// s.mu must be held.
func (s *Scheduler) startNext() {
	if s.running != nil || s.queue.Empty() {
		return
	}
	v, _ := s.queue.Get(0)
	s.queue.Remove(0)
	j := v.(*job)
	s.running = j
	s.transition(j, Running)
	go s.run(j)
}

// run executes a job on its own goroutine. The result is delivered before the
// next job is started, so results arrive in execution order.
func (s *Scheduler) run(j *job) {
	tracer().Infof("parsing font %s", j.id)
	pf, err := s.execute(j)
	s.mu.Lock()
	if err != nil {
		tracer().Errorf("parsing font %s failed: %v", j.id, err)
		s.transition(j, Failed)
	} else {
		s.transition(j, Completed)
	}
	s.mu.Unlock()
	j.promise.deliver(pf, err)
	s.mu.Lock()
	s.running = nil
	s.startNext()
	s.mu.Unlock()
}

func (s *Scheduler) execute(j *job) (pf *introspect.ParsedFont, err error) {
	defer func() {
		if r := recover(); r != nil {
			pf, err = nil, fmt.Errorf("font %s: %w: %v", j.id, ErrPanic, r)
		}
	}()
	src := j.src
	j.src = nil
	data, err := src.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", j.id, err)
	}
	if pf, err = s.parse(data); err == nil && pf == nil {
		err = fmt.Errorf("font %s: %w", j.id, ErrNoResult)
	}
	return pf, err
}

// transition sets the state of a job. s.mu must be held.
func (s *Scheduler) transition(j *job, state State) {
	j.state = state
	if s.observer != nil {
		s.observer(j.id, state)
	}
}
