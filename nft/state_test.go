package nft

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		loading bool
		outcome *Outcome
		want    ViewState
	}{
		{false, nil, ViewIdle},
		{true, nil, ViewLoading},
		{false, Success("0xABC123", nil), ViewSuccess},
		{false, Failure("nope"), ViewFailure},
		{true, Failure("stale"), ViewLoading},
	}
	for _, tt := range tests {
		if got := Classify(tt.loading, tt.outcome); got != tt.want {
			t.Errorf("Classify(%v, %#v) = %s, want %s", tt.loading, tt.outcome, got, tt.want)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	s := NewState()
	if !s.begin() {
		t.Fatal("begin on idle state failed")
	}
	if s.begin() {
		t.Fatal("second begin must be refused")
	}

	s.Clear()
	if !s.Loading() {
		t.Fatal("Clear must not touch a pending submission")
	}

	s.settle(Success("0x1", nil))
	loading, o := s.Snapshot()
	if loading || !o.IsSuccess() {
		t.Fatalf("after settle: loading=%v outcome=%#v", loading, o)
	}
	if o.IsFailure() {
		t.Error("outcome is both success and failure")
	}

	s.Clear()
	if s.Outcome() != nil {
		t.Error("Clear did not drop the outcome")
	}
}

func TestFailureFallback(t *testing.T) {
	if got := Failure("").Message; got != FallbackFailureMessage {
		t.Errorf("Failure(\"\").Message = %q", got)
	}
	var nilOutcome *Outcome
	if nilOutcome.IsSuccess() || nilOutcome.IsFailure() {
		t.Error("nil outcome must be neither success nor failure")
	}
}
