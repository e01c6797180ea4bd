package leader

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/metrics"
	"github.com/dshills/keyforge/internal/timer"
)

// Timing defaults in milliseconds.
const (
	DefaultTimeout  uint32 = 500
	FeedbackTimeout uint32 = 300
)

// Outcome is how a collection ended.
type Outcome uint8

const (
	// OutcomeNone means the engine is idle or still collecting.
	OutcomeNone Outcome = iota

	// OutcomeMatched means a sequence matched and its actions should run.
	OutcomeMatched

	// OutcomeTimedOut means the per-key deadline passed with no match.
	OutcomeTimedOut

	// OutcomeOverflow means the buffer outgrew every sequence.
	OutcomeOverflow
)

var outcomeNames = [...]string{
	OutcomeNone:     "none",
	OutcomeMatched:  "matched",
	OutcomeTimedOut: "timeout",
	OutcomeOverflow: "overflow",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Succeeded returns true for a match.
func (o Outcome) Succeeded() bool {
	return o == OutcomeMatched
}

// Result reports a finished collection.
type Result struct {
	Outcome  Outcome
	Name     string
	Sequence string
	Actions  []Action
}

// Done returns true if the collection ended.
func (r Result) Done() bool {
	return r.Outcome != OutcomeNone
}

// State is the observable engine state.
type State struct {
	Active   bool
	Buffer   []key.Code
	Deadline timer.Millis
	Armed    bool
}

// Engine collects and matches leader sequences.
type Engine struct {
	entries   []Entry
	longest   int
	timeout   uint32
	waitFirst bool
	logger    zerolog.Logger

	active   bool
	buffer   *key.Sequence
	deadline timer.Millis
	armed    bool

	lastOutcome Outcome
	lastAt      timer.Millis
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-key timeout in milliseconds.
func WithTimeout(ms uint32) Option {
	return func(e *Engine) {
		e.timeout = ms
	}
}

// WithWaitForFirstKey controls whether the deadline waits for the first key.
func WithWaitForFirstKey(wait bool) Option {
	return func(e *Engine) {
		e.waitFirst = wait
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine for the table. Empty sequences are rejected;
// duplicates are accepted with the first entry winning.
func New(entries []Entry, opts ...Option) (*Engine, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}
	e := &Engine{
		entries:   slices.Clone(entries),
		timeout:   DefaultTimeout,
		waitFirst: true,
		logger:    zerolog.Nop(),
		buffer:    key.NewSequence(),
	}
	for i, entry := range e.entries {
		if entry.Keys == nil || entry.Keys.IsEmpty() {
			return nil, fmt.Errorf("%w: entry %d (%s)", ErrEmptySequence, i, entry.Name)
		}
		e.longest = max(e.longest, entry.Keys.Len())
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.timeout == 0 {
		e.timeout = DefaultTimeout
	}
	return e, nil
}

// Entries returns the configured table.
func (e *Engine) Entries() []Entry {
	return slices.Clone(e.entries)
}

// Active returns true while collecting.
func (e *Engine) Active() bool {
	return e.active
}

// State returns a copy of the engine state.
func (e *Engine) State() State {
	return State{
		Active:   e.active,
		Buffer:   slices.Clone(e.buffer.Codes),
		Deadline: e.deadline,
		Armed:    e.armed,
	}
}

// Start begins collecting. Starting while already collecting restarts
// with an empty buffer.
func (e *Engine) Start(now timer.Millis) {
	e.active = true
	e.buffer.Clear()
	e.armed = !e.waitFirst
	e.deadline = now.Add(e.timeout)
	e.logger.Debug().Bool("armed", e.armed).Msg("leader start")
}

// Add appends a code to the buffer. It returns a terminal Result when the
// buffer matches immediately or overflows.
func (e *Engine) Add(code key.Code, now timer.Millis) Result {
	if !e.active {
		return Result{}
	}
	if e.armed && now.Passed(e.deadline) {
		// The deadline expired before this tick saw it.
		return e.expire(now)
	}

	e.buffer.Add(code)
	e.armed = true
	e.deadline = now.Add(e.timeout)

	if e.buffer.Len() > e.longest {
		return e.finish(now, Result{Outcome: OutcomeOverflow})
	}

	if entry, ok := e.exact(); ok && !e.extendable() {
		return e.finish(now, e.matched(entry))
	}
	return Result{}
}

// Tick ends the collection once more than the timeout has elapsed since
// the last key.
func (e *Engine) Tick(now timer.Millis) Result {
	if !e.active || !e.armed || !now.Passed(e.deadline) {
		return Result{}
	}
	return e.expire(now)
}

// Cancel abandons the collection without an outcome.
func (e *Engine) Cancel() {
	if !e.active {
		return
	}
	e.logger.Debug().Str("buffer", e.buffer.String()).Msg("leader cancelled")
	e.reset()
}

// Feedback returns the last outcome while its flash is still showing.
func (e *Engine) Feedback(now timer.Millis) (Outcome, bool) {
	if e.lastOutcome == OutcomeNone || now.Since(e.lastAt) >= FeedbackTimeout {
		return OutcomeNone, false
	}
	return e.lastOutcome, true
}

func (e *Engine) expire(now timer.Millis) Result {
	if entry, ok := e.exact(); ok {
		return e.finish(now, e.matched(entry))
	}
	return e.finish(now, Result{Outcome: OutcomeTimedOut})
}

// exact returns the first entry equal to the whole buffer.
func (e *Engine) exact() (Entry, bool) {
	for _, entry := range e.entries {
		if entry.Keys.Equals(e.buffer) {
			return entry, true
		}
	}
	return Entry{}, false
}

// extendable returns true if a longer entry starts with the buffer.
func (e *Engine) extendable() bool {
	for _, entry := range e.entries {
		if entry.Keys.Len() > e.buffer.Len() && entry.Keys.HasPrefix(e.buffer) {
			return true
		}
	}
	return false
}

func (e *Engine) matched(entry Entry) Result {
	return Result{Outcome: OutcomeMatched, Name: entry.Name, Actions: entry.Actions}
}

func (e *Engine) finish(now timer.Millis, r Result) Result {
	r.Sequence = e.buffer.String()
	e.lastOutcome = r.Outcome
	e.lastAt = now
	metrics.RecordLeader(r.Outcome.String())
	e.logger.Debug().
		Str("outcome", r.Outcome.String()).
		Str("sequence", r.Sequence).
		Str("name", r.Name).
		Msg("leader end")
	e.reset()
	return r
}

func (e *Engine) reset() {
	e.active = false
	e.armed = false
	e.buffer.Clear()
}
