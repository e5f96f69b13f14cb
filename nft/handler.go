package nft

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Identity is the connected wallet account
type Identity struct {
	Address string
	Label   string
}

// Receipt is what a wallet returns once a transaction executed successfully
type Receipt struct {
	Digest string
	Raw    json.RawMessage
}

// Wallet is the signing collaborator. Submit blocks until the transaction settles.
type Wallet interface {
	CurrentIdentity() (Identity, bool)
	Submit(ctx context.Context, req CallRequest) (Receipt, error)
}

// Attempt is a submission that passed validation and holds the loading flag
type Attempt struct {
	ID       string
	Identity Identity
	Request  CallRequest
}

// Handler drives the submission lifecycle of one operation kind
type Handler struct {
	Kind       Kind
	Form       FormInput
	Deployment Deployment
	Logger     *log.Logger
}

// NewHandler returns a handler with an empty form
func NewHandler(kind Kind, d Deployment, logger *log.Logger) *Handler {
	return &Handler{Kind: kind, Form: EmptyForm(), Deployment: d, Logger: logger}
}

// Begin runs the pre-submission steps: identity check, validation, loading
// flag, request build. On any error before the flag is set the state is left
// untouched. Every successful Begin must be followed by exactly one Settle.
func (h *Handler) Begin(state *State, w Wallet) (Attempt, error) {
	id, ok := w.CurrentIdentity()
	if !ok {
		h.debug("submission ignored, no identity", "op", h.Kind)
		return Attempt{}, ErrIdentityUnavailable
	}
	if err := Validate(h.Kind, h.Form); err != nil {
		h.warn("validation failed", "op", h.Kind, "err", err)
		return Attempt{}, err
	}
	if !state.begin() {
		return Attempt{}, ErrSubmissionInFlight
	}

	req, err := Build(h.Kind, h.Form, h.Deployment)
	if err != nil {
		state.settle(Failure(err.Error()))
		h.fail("request build failed", "op", h.Kind, "err", err)
		return Attempt{}, err
	}

	a := Attempt{ID: uuid.NewString(), Identity: id, Request: req}
	h.info("submitting", "op", h.Kind, "attempt", a.ID, "target", req.Target().String(), "signer", id.Address)
	return a, nil
}

// Settle records the signer's result and clears the loading flag.
// The form is reset only on success.
func (h *Handler) Settle(state *State, a Attempt, r Receipt, err error) *Outcome {
	var o *Outcome
	if err != nil {
		o = Failure(err.Error())
		h.fail("submission failed", "op", h.Kind, "attempt", a.ID, "err", err)
	} else {
		o = Success(r.Digest, r.Raw)
		h.Form = EmptyForm()
		h.info("submission confirmed", "op", h.Kind, "attempt", a.ID, "digest", r.Digest)
	}
	state.settle(o)
	return o
}

// Submit runs one full lifecycle synchronously. The returned error is only
// set when the attempt never reached the signer; signer failures are
// reported through the Failure outcome.
func (h *Handler) Submit(ctx context.Context, state *State, w Wallet) (o *Outcome, err error) {
	a, err := h.Begin(state, w)
	if err != nil {
		if errors.Is(err, ErrDeploymentIncomplete) {
			return state.Outcome(), err
		}
		return nil, err
	}

	settled := false
	defer func() {
		if !settled {
			state.settle(Failure(""))
		}
	}()

	r, serr := w.Submit(ctx, a.Request)
	o = h.Settle(state, a, r, serr)
	settled = true
	return o, nil
}

func (h *Handler) debug(msg string, kv ...any) {
	if h.Logger != nil {
		h.Logger.Debug(msg, kv...)
	}
}

func (h *Handler) info(msg string, kv ...any) {
	if h.Logger != nil {
		h.Logger.Info(msg, kv...)
	}
}

func (h *Handler) warn(msg string, kv ...any) {
	if h.Logger != nil {
		h.Logger.Warn(msg, kv...)
	}
}

func (h *Handler) fail(msg string, kv ...any) {
	if h.Logger != nil {
		h.Logger.Error(msg, kv...)
	}
}
