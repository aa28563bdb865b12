package console

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// Phase is the state of the response region
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Submitter sends one payload to the backend
type Submitter interface {
	Submit(ctx context.Context, payload types.RequestPayload) (types.RequestResult, error)
}

// DispatcherState holds the single response region.
// Transitions are last-write-wins: a resolution from an older submission
// still overwrites whatever is displayed.
type DispatcherState struct {
	mu     sync.RWMutex
	phase  Phase
	seq    uint64 // last sequence number handed out
	shown  uint64 // sequence number of the transition on display
	result types.RequestResult
}

// NewDispatcherState creates an idle dispatcher state
func NewDispatcherState() *DispatcherState {
	return &DispatcherState{phase: PhaseIdle}
}

// Begin enters pending for a new submission and returns its sequence number
func (s *DispatcherState) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.shown = s.seq
	s.phase = PhasePending
	s.result = types.RequestResult{}
	return s.seq
}

// Resolve shows the backend result of submission seq
func (s *DispatcherState) Resolve(seq uint64, result types.RequestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = seq
	s.phase = PhaseSuccess
	s.result = result
}

// Fail shows the fixed failure message for submission seq
func (s *DispatcherState) Fail(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = seq
	s.phase = PhaseError
	s.result = types.RequestResult{}
}

// Phase returns the current phase
func (s *DispatcherState) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Seq returns the last sequence number handed out
func (s *DispatcherState) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Shown returns the sequence number of the transition on display
func (s *DispatcherState) Shown() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shown
}

// Result returns the result on display (zero unless PhaseSuccess)
func (s *DispatcherState) Result() types.RequestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// ResponseView is what the response region shows
type ResponseView struct {
	Visible bool
	Phase   Phase
	Text    string
}

// RenderResponse maps the dispatcher state to its view
func RenderResponse(s *DispatcherState) ResponseView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.phase {
	case PhasePending:
		return ResponseView{Visible: true, Phase: PhasePending, Text: PendingText}
	case PhaseSuccess:
		return ResponseView{Visible: true, Phase: PhaseSuccess, Text: PrettyPrint(s.result.Value)}
	case PhaseError:
		return ResponseView{Visible: true, Phase: PhaseError, Text: SubmitErrorText}
	default:
		return ResponseView{Visible: false, Phase: PhaseIdle}
	}
}

// PrettyPrint indents a JSON document with two spaces, keeping key order
func PrettyPrint(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Dispatcher runs the submit flow against a backend
type Dispatcher struct {
	state   *DispatcherState
	backend Submitter
	log     logrus.FieldLogger
}

// NewDispatcher creates a dispatcher over state
func NewDispatcher(state *DispatcherState, backend Submitter, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{state: state, backend: backend, log: log}
}

// State returns the dispatcher state
func (d *Dispatcher) State() *DispatcherState {
	return d.state
}

// Begin shows the pending indicator. It must run before Exchange.
func (d *Dispatcher) Begin() uint64 {
	seq := d.state.Begin()
	d.log.WithField("seq", seq).Debug("submission pending")
	return seq
}

// Exchange performs the network call for submission seq.
// It does not touch the state so it can run off the UI loop.
func (d *Dispatcher) Exchange(ctx context.Context, payload types.RequestPayload) (types.RequestResult, error) {
	return d.backend.Submit(ctx, payload)
}

// Complete applies the outcome of submission seq. Errors are swallowed here.
func (d *Dispatcher) Complete(seq uint64, result types.RequestResult, err error) {
	entry := d.log.WithField("seq", seq)
	if seq < d.state.Seq() {
		entry = entry.WithField("superseded", true)
	}

	if err != nil {
		entry.WithError(err).Warn("submission failed")
		d.state.Fail(seq)
		return
	}

	entry.Debug("submission resolved")
	d.state.Resolve(seq, result)
}

// Submit runs the whole flow synchronously and returns the final view.
// onPending, if set, observes the pending view before the network call.
func (d *Dispatcher) Submit(ctx context.Context, payload types.RequestPayload, onPending func(ResponseView)) ResponseView {
	seq := d.Begin()
	if onPending != nil {
		onPending(RenderResponse(d.state))
	}

	result, err := d.Exchange(ctx, payload)
	d.Complete(seq, result, err)

	return RenderResponse(d.state)
}
