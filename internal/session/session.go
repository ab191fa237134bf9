// Package session owns the state of one quiz run: the deck, the cursor,
// the pending selection, scoring tallies and the answer history.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/asheem/quizdeck/internal/content"
	"github.com/asheem/quizdeck/internal/deck"
	"github.com/asheem/quizdeck/internal/evaluate"
)

// ErrEmptyDeck is returned when building (or rebuilding) a deck filters
// the pool down to nothing. Callers present it as a "no content" state.
var ErrEmptyDeck = errors.New("no items match the requested difficulty")

// Phase is the session state machine position.
type Phase int

const (
	// PhaseReady means the deck is built and nothing has been served.
	PhaseReady Phase = iota

	// PhaseAnswering means the current item is shown, awaiting a submission.
	PhaseAnswering

	// PhaseSubmitted means the current item is evaluated, feedback visible.
	PhaseSubmitted

	// PhaseComplete means the deck is exhausted or the run was ended early.
	PhaseComplete
)

// Tally is the right/wrong count for one difficulty level.
type Tally struct {
	Right int
	Wrong int
}

// Session is the single owner of all mutable quiz state. It is built
// for one user driving one run at a time; methods are not safe for
// concurrent use and never need to be.
type Session struct {
	id       string
	pool     []content.Item
	level    string
	size     int
	deck     deck.Deck
	index    int
	selected evaluate.Submission
	phase    Phase
	score    int
	tally    map[string]Tally
	history  []Record
}

// New builds a deck from pool with the given difficulty filter and size
// and returns a session in PhaseReady. An empty filter result returns
// ErrEmptyDeck and no session.
func New(pool []content.Item, level string, size int) (*Session, error) {
	d := deck.Build(pool, level, size)
	if d.Empty() {
		return nil, ErrEmptyDeck
	}
	return &Session{
		id:    uuid.NewString(),
		pool:  pool,
		level: level,
		size:  size,
		deck:  d,
		tally: make(map[string]Tally),
	}, nil
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current state machine position.
func (s *Session) Phase() Phase { return s.phase }

// Start serves the first item, moving Ready to Answering. A no-op from
// any other phase.
func (s *Session) Start() {
	if s.phase != PhaseReady {
		return
	}
	s.phase = PhaseAnswering
}

// Current returns the prepared item under the cursor, or nil once the
// session is complete.
func (s *Session) Current() content.Item {
	if s.phase == PhaseComplete || s.index >= s.deck.Len() {
		return nil
	}
	return s.deck.Item(s.index)
}

// Index returns the zero-based cursor position.
func (s *Session) Index() int { return s.index }

// Total returns the deck length.
func (s *Session) Total() int { return s.deck.Len() }

// Score returns the count of correct answers so far.
func (s *Session) Score() int { return s.score }

// Level returns the difficulty filter the deck was built with.
func (s *Session) Level() string { return s.level }

// Selection returns the pending, unsubmitted response (nil if none).
func (s *Session) Selection() evaluate.Submission { return s.selected }

// Submitted reports whether the current item's answer is locked in.
func (s *Session) Submitted() bool { return s.phase == PhaseSubmitted }

// Select stages a response for the current item. Valid only while
// answering; duplicate or late selections are silently ignored.
func (s *Session) Select(sub evaluate.Submission) {
	if s.phase != PhaseAnswering {
		return
	}
	s.selected = sub
}

// Submit locks in and evaluates the staged selection. Valid only from
// PhaseAnswering with a non-empty selection; anything else is a no-op
// so duplicate UI events cannot double-score. Returns the evaluation
// result and true when a submission actually happened.
func (s *Session) Submit() (evaluate.Result, bool) {
	if s.phase != PhaseAnswering || evaluate.Empty(s.selected) {
		return evaluate.Result{}, false
	}

	item := s.deck.Item(s.index)
	res := evaluate.Evaluate(item, s.selected)

	if res.Correct {
		s.score++
	}
	t := s.tally[item.Level()]
	if res.Correct {
		t.Right++
	} else {
		t.Wrong++
	}
	s.tally[item.Level()] = t

	s.history = append(s.history, newRecord(item, res))
	s.phase = PhaseSubmitted
	return res, true
}

// Advance moves past the current feedback. From PhaseSubmitted it either
// serves the next item or, when the deck is exhausted, completes the
// session. A no-op from any other phase.
func (s *Session) Advance() {
	if s.phase != PhaseSubmitted {
		return
	}
	if s.index+1 < s.deck.Len() {
		s.index++
		s.selected = nil
		s.phase = PhaseAnswering
		return
	}
	s.phase = PhaseComplete
}

// FinishEarly ends the run now, truncating the deck to the items
// actually answered. Valid while answering or viewing feedback.
func (s *Session) FinishEarly() {
	if s.phase != PhaseAnswering && s.phase != PhaseSubmitted {
		return
	}
	s.deck = s.deck.Truncate(s.Answered())
	s.selected = nil
	s.phase = PhaseComplete
}

// Retry rebuilds the deck from the same pool, level and size with fresh
// randomness and resets score, tally and history, re-entering the
// answering phase. A retry is a new run and gets a new ID. Valid only
// from PhaseComplete. Returns ErrEmptyDeck if the rebuild filters to
// nothing, leaving the session untouched.
func (s *Session) Retry() error {
	if s.phase != PhaseComplete {
		return nil
	}

	d := deck.Build(s.pool, s.level, s.size)
	if d.Empty() {
		return ErrEmptyDeck
	}

	s.id = uuid.NewString()
	s.deck = d
	s.index = 0
	s.selected = nil
	s.score = 0
	s.tally = make(map[string]Tally)
	s.history = nil
	s.phase = PhaseReady
	s.Start()
	return nil
}

// Quit discards the session unconditionally: deck, tally and history
// are dropped with no partial save. The session is unusable afterwards.
func (s *Session) Quit() {
	s.deck = deck.Deck{}
	s.pool = nil
	s.index = 0
	s.selected = nil
	s.score = 0
	s.tally = make(map[string]Tally)
	s.history = nil
	s.phase = PhaseComplete
}

// TallyByLevel returns a copy of the per-difficulty right/wrong counts.
func (s *Session) TallyByLevel() map[string]Tally {
	out := make(map[string]Tally, len(s.tally))
	for k, v := range s.tally {
		out[k] = v
	}
	return out
}

// History returns the answer records in submission order. The returned
// slice is a copy; records themselves are immutable.
func (s *Session) History() []Record {
	out := make([]Record, len(s.history))
	copy(out, s.history)
	return out
}

// Answered returns the number of items answered so far.
func (s *Session) Answered() int { return len(s.history) }
