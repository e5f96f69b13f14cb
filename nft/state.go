package nft

import (
	"encoding/json"
	"sync"
)

// OutcomeKind tags a settled submission
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeFailure
)

// Outcome is the settled result of one submission: either Success or Failure
type Outcome struct {
	Kind    OutcomeKind
	Digest  string          // success only
	Raw     json.RawMessage // success only, opaque node response
	Message string          // failure only
}

// Success builds a success outcome
func Success(digest string, raw json.RawMessage) *Outcome {
	return &Outcome{Kind: OutcomeSuccess, Digest: digest, Raw: raw}
}

// Failure builds a failure outcome, substituting the fallback for an empty message
func Failure(message string) *Outcome {
	if message == "" {
		message = FallbackFailureMessage
	}
	return &Outcome{Kind: OutcomeFailure, Message: message}
}

// IsSuccess reports whether o is a non-nil success
func (o *Outcome) IsSuccess() bool { return o != nil && o.Kind == OutcomeSuccess }

// IsFailure reports whether o is a non-nil failure
func (o *Outcome) IsFailure() bool { return o != nil && o.Kind == OutcomeFailure }

// State is the shared loading flag and latest outcome observed by the result panel.
// One State is shared by every handler of a composer.
type State struct {
	mu      sync.Mutex
	loading bool
	outcome *Outcome
}

// NewState returns an idle state
func NewState() *State {
	return &State{}
}

// Snapshot returns the loading flag and outcome under one lock
func (s *State) Snapshot() (bool, *Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading, s.outcome
}

// Loading reports whether a submission is pending
func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Outcome returns the latest settled outcome, or nil
func (s *State) Outcome() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// begin flips to loading and clears the previous outcome.
// It fails if a submission is already pending.
func (s *State) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	s.outcome = nil
	return true
}

// settle stores o (may be nil) and clears loading
func (s *State) settle(o *Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome = o
	s.loading = false
}

// Clear drops the displayed outcome; it is a no-op while loading
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loading {
		s.outcome = nil
	}
}

// ViewState is one of the four mutually exclusive result displays
type ViewState int

const (
	ViewIdle ViewState = iota
	ViewLoading
	ViewSuccess
	ViewFailure
)

func (v ViewState) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewSuccess:
		return "success"
	case ViewFailure:
		return "failure"
	default:
		return "idle"
	}
}

// Classify maps (loading, outcome) to the display state.
// Loading wins so a stale outcome never shows next to the spinner.
func Classify(loading bool, o *Outcome) ViewState {
	switch {
	case loading:
		return ViewLoading
	case o.IsSuccess():
		return ViewSuccess
	case o.IsFailure():
		return ViewFailure
	default:
		return ViewIdle
	}
}
