package nft

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// stubWallet records every request and settles with a canned result
type stubWallet struct {
	identity  *Identity
	receipt   Receipt
	err       error
	submitted []CallRequest
	// observed is the loading flag seen from inside Submit
	observed []bool
	state    *State
}

func (w *stubWallet) CurrentIdentity() (Identity, bool) {
	if w.identity == nil {
		return Identity{}, false
	}
	return *w.identity, true
}

func (w *stubWallet) Submit(ctx context.Context, req CallRequest) (Receipt, error) {
	w.submitted = append(w.submitted, req)
	if w.state != nil {
		w.observed = append(w.observed, w.state.Loading())
	}
	return w.receipt, w.err
}

var alice = &Identity{Address: "0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000"}

func TestSubmitWithoutIdentity(t *testing.T) {
	state := NewState()
	w := &stubWallet{}
	h := NewHandler(OpMintRandom, testDeployment, nil)

	o, err := h.Submit(context.Background(), state, w)
	if !errors.Is(err, ErrIdentityUnavailable) {
		t.Fatalf("expected ErrIdentityUnavailable, got %v", err)
	}
	if o != nil {
		t.Errorf("expected no outcome, got %#v", o)
	}
	loading, outcome := state.Snapshot()
	if loading || outcome != nil {
		t.Errorf("state changed: loading=%v outcome=%#v", loading, outcome)
	}
	if len(w.submitted) != 0 {
		t.Errorf("signer invoked %d times", len(w.submitted))
	}
}

func TestSubmitSuccess(t *testing.T) {
	state := NewState()
	raw := json.RawMessage(`{"digest":"0xABC123"}`)
	w := &stubWallet{identity: alice, receipt: Receipt{Digest: "0xABC123", Raw: raw}, state: state}
	h := NewHandler(OpAddTemplate, testDeployment, nil)
	h.Form = validTemplateForm()

	o, err := h.Submit(context.Background(), state, w)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !o.IsSuccess() || o.Digest != "0xABC123" {
		t.Fatalf("unexpected outcome %#v", o)
	}
	if string(o.Raw) != string(raw) {
		t.Errorf("raw payload = %s", o.Raw)
	}
	if state.Loading() {
		t.Error("loading flag left set")
	}
	if state.Outcome() != o {
		t.Error("state does not hold the returned outcome")
	}
	if h.Form != EmptyForm() {
		t.Errorf("form not reset: %#v", h.Form)
	}
	if len(w.observed) != 1 || !w.observed[0] {
		t.Errorf("loading flag not set during signing: %v", w.observed)
	}
}

func TestSubmitFailure(t *testing.T) {
	state := NewState()
	w := &stubWallet{identity: alice, err: errors.New("User rejected request")}
	h := NewHandler(OpAddTemplate, testDeployment, nil)
	h.Form = validTemplateForm()

	o, err := h.Submit(context.Background(), state, w)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !o.IsFailure() || o.Message != "User rejected request" {
		t.Fatalf("unexpected outcome %#v", o)
	}
	if state.Loading() {
		t.Error("loading flag left set")
	}
	if h.Form != validTemplateForm() {
		t.Errorf("form changed on failure: %#v", h.Form)
	}
}

func TestSubmitFailureFallbackMessage(t *testing.T) {
	state := NewState()
	w := &stubWallet{identity: alice, err: errors.New("")}
	h := NewHandler(OpMintRandom, testDeployment, nil)

	o, _ := h.Submit(context.Background(), state, w)
	if o.Message != FallbackFailureMessage {
		t.Errorf("message = %q", o.Message)
	}
}

func TestSubmitValidationNeverReachesSigner(t *testing.T) {
	state := NewState()
	prior := Success("0xOLD", nil)
	state.settle(prior)

	w := &stubWallet{identity: alice}
	h := NewHandler(OpAddTemplate, testDeployment, nil)
	h.Form = validTemplateForm()
	h.Form.Rarity = 6

	_, err := h.Submit(context.Background(), state, w)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(w.submitted) != 0 {
		t.Errorf("signer invoked %d times", len(w.submitted))
	}
	loading, outcome := state.Snapshot()
	if loading {
		t.Error("loading set on validation failure")
	}
	if outcome != prior {
		t.Error("prior outcome replaced on validation failure")
	}
}

func TestSubmitClearsPriorOutcome(t *testing.T) {
	state := NewState()
	state.settle(Failure("old"))

	w := &stubWallet{identity: alice, receipt: Receipt{Digest: "0x1"}}
	h := NewHandler(OpMintRandom, testDeployment, nil)

	a, err := h.Begin(state, w)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	loading, seen := state.Snapshot()
	if !loading || seen != nil {
		t.Fatalf("after Begin: loading=%v outcome=%#v", loading, seen)
	}
	h.Settle(state, a, Receipt{Digest: "0x1"}, nil)
	if !state.Outcome().IsSuccess() || state.Loading() {
		t.Error("settle did not publish success")
	}
}

func TestBeginRejectsOverlappingSubmission(t *testing.T) {
	state := NewState()
	w := &stubWallet{identity: alice}
	first := NewHandler(OpMintRandom, testDeployment, nil)
	second := NewHandler(OpMintIntroduction, testDeployment, nil)
	second.Form = validIntroForm()

	a, err := first.Begin(state, w)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := second.Begin(state, w); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	if !state.Loading() {
		t.Fatal("guard must not clear the pending flag")
	}
	first.Settle(state, a, Receipt{}, errors.New("boom"))
	if state.Loading() {
		t.Error("loading flag left set")
	}
}

func TestBuildErrorAfterLoadingClearsFlag(t *testing.T) {
	state := NewState()
	w := &stubWallet{identity: alice}
	h := NewHandler(OpMintRandom, Deployment{Name: "broken"}, nil)

	o, err := h.Submit(context.Background(), state, w)
	if !errors.Is(err, ErrDeploymentIncomplete) {
		t.Fatalf("expected ErrDeploymentIncomplete, got %v", err)
	}
	if state.Loading() {
		t.Error("loading flag left set")
	}
	if !o.IsFailure() {
		t.Errorf("expected failure outcome, got %#v", o)
	}
	if len(w.submitted) != 0 {
		t.Error("signer invoked with a broken deployment")
	}
}

type panickingWallet struct{ stubWallet }

func (w *panickingWallet) Submit(ctx context.Context, req CallRequest) (Receipt, error) {
	panic("signer crashed")
}

func TestSubmitPanicClearsFlag(t *testing.T) {
	state := NewState()
	w := &panickingWallet{stubWallet{identity: alice}}
	h := NewHandler(OpMintRandom, testDeployment, nil)

	func() {
		defer func() { _ = recover() }()
		_, _ = h.Submit(context.Background(), state, w)
	}()
	if state.Loading() {
		t.Error("loading flag left set after panic")
	}
	if !state.Outcome().IsFailure() {
		t.Error("expected failure outcome after panic")
	}
}
