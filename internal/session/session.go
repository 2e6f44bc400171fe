// Package session tracks one upload through composition.
package session

import (
	"errors"
	"sync"
)

// Filename is what the composed picture is saved as.
const Filename = "symbiotic-pfp.png"

var (
	ErrBusy     = errors.New("session: upload already processing")
	ErrNoResult = errors.New("session: no processed image")
)

// State of a Session.
type State int

const (
	Idle State = iota
	Processing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Composer turns source bytes into the composed PNG.
type Composer interface {
	Compose(src []byte) ([]byte, error)
}

// ComposerFunc adapts a function to Composer.
type ComposerFunc func(src []byte) ([]byte, error)

func (f ComposerFunc) Compose(src []byte) ([]byte, error) { return f(src) }

// Session holds the original upload, the processed result and the state
// of one request.
type Session struct {
	composer Composer

	mu        sync.Mutex
	state     State
	original  []byte
	processed []byte
	err       error
}

// New returns an Idle session that composes with c.
func New(c Composer) *Session {
	return &Session{composer: c}
}

// Upload composes src. The session ends Done with a result, or Failed with
// the composer error and no result. Any earlier result is discarded.
func (s *Session) Upload(src []byte) error {
	s.mu.Lock()
	if s.state == Processing {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = Processing
	s.original = src
	s.processed = nil
	s.err = nil
	s.mu.Unlock()

	out, err := s.composer.Compose(src)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Processing {
		// reset while composing
		return nil
	}
	if err != nil {
		s.state = Failed
		s.err = err
		return err
	}
	s.state = Done
	s.processed = out
	return nil
}

// Result returns the composed PNG, or ErrNoResult unless the session is Done.
func (s *Session) Result() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Done {
		return nil, ErrNoResult
	}
	return s.processed, nil
}

func (s *Session) Original() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the failure that moved the session to Failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Reset drops everything and returns to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Idle
	s.original = nil
	s.processed = nil
	s.err = nil
}
