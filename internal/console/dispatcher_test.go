package console

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/studiowebux/snmpconsole/internal/types"
)

func TestNewDispatcherState_Idle(t *testing.T) {
	s := NewDispatcherState()

	view := RenderResponse(s)
	if view.Visible {
		t.Error("expected response region hidden before any submission")
	}
	if view.Phase != PhaseIdle {
		t.Errorf("expected idle, got %s", view.Phase)
	}
}

func TestDispatcher_PendingBeforeNetworkResolves(t *testing.T) {
	state := NewDispatcherState()
	backend := &fakeBackend{result: json.RawMessage(`{"status":"success"}`)}

	var during ResponseView
	backend.during = func() { during = RenderResponse(state) }

	var observed ResponseView
	d := NewDispatcher(state, backend, nil)
	d.Submit(context.Background(), types.RequestPayload{Type: "GET"}, func(v ResponseView) { observed = v })

	for name, v := range map[string]ResponseView{"onPending": observed, "in flight": during} {
		if !v.Visible {
			t.Errorf("%s: expected visible response region", name)
		}
		if v.Phase != PhasePending {
			t.Errorf("%s: expected pending, got %s", name, v.Phase)
		}
		if v.Text != PendingText {
			t.Errorf("%s: expected %q, got %q", name, PendingText, v.Text)
		}
	}
}

func TestDispatcher_SuccessRendersPrettyJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"object", `{"status":"success","response":{"value":"x","latency_ms":0}}`, "{\n  \"status\": \"success\",\n  \"response\": {\n    \"value\": \"x\",\n    \"latency_ms\": 0\n  }\n}"},
		{"array", `[1,2]`, "[\n  1,\n  2\n]"},
		{"string", `"hello"`, `"hello"`},
		{"number", `42`, `42`},
		{"null", `null`, `null`},
		{"empty object", `{}`, `{}`},
		{"backend error document", `{"status":"error","error":"Champs manquants: oid"}`, "{\n  \"status\": \"error\",\n  \"error\": \"Champs manquants: oid\"\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(NewDispatcherState(), &fakeBackend{result: json.RawMessage(tt.raw)}, nil)

			view := d.Submit(context.Background(), types.RequestPayload{}, nil)

			if view.Phase != PhaseSuccess {
				t.Fatalf("expected success, got %s", view.Phase)
			}
			if !view.Visible {
				t.Error("expected visible")
			}
			if view.Text != tt.want {
				t.Errorf("text = %q, want %q", view.Text, tt.want)
			}
			if view.Text != PrettyPrint(json.RawMessage(tt.raw)) {
				t.Error("rendered text differs from PrettyPrint")
			}
		})
	}
}

func TestDispatcher_FailureRendersFixedMessage(t *testing.T) {
	log, hook := newTestLogger()
	d := NewDispatcher(NewDispatcherState(), &fakeBackend{err: errNetwork}, log)

	view := d.Submit(context.Background(), types.RequestPayload{}, nil)

	if view.Phase != PhaseError {
		t.Fatalf("expected error phase, got %s", view.Phase)
	}
	if view.Text != SubmitErrorText {
		t.Errorf("text = %q, want %q", view.Text, SubmitErrorText)
	}
	if !view.Visible {
		t.Error("expected visible")
	}

	last := hook.LastEntry()
	if last == nil || last.Level != logrus.WarnLevel {
		t.Error("expected the failure to be logged locally at warn level")
	}
}

func TestDispatcher_PayloadSentAsTyped(t *testing.T) {
	backend := &fakeBackend{result: json.RawMessage(`{}`)}
	d := NewDispatcher(NewDispatcherState(), backend, nil)

	form := RequestForm{Type: " get ", Community: "", Target: "not-an-ip", OID: "abc", Value: ""}
	d.Submit(context.Background(), form.Payload(), nil)

	if len(backend.payloads) != 1 {
		t.Fatalf("expected exactly one exchange, got %d", len(backend.payloads))
	}
	if backend.payloads[0] != form.Payload() {
		t.Errorf("payload altered: %+v", backend.payloads[0])
	}
}

func TestDispatcher_ReentersPendingFromTerminalStates(t *testing.T) {
	state := NewDispatcherState()
	backend := &fakeBackend{err: errNetwork}
	d := NewDispatcher(state, backend, nil)

	d.Submit(context.Background(), types.RequestPayload{}, nil)
	if state.Phase() != PhaseError {
		t.Fatalf("expected error, got %s", state.Phase())
	}

	seq := d.Begin()
	if state.Phase() != PhasePending {
		t.Errorf("expected pending after new submission, got %s", state.Phase())
	}
	if seq != 2 {
		t.Errorf("expected sequence 2, got %d", seq)
	}

	d.Complete(seq, types.NewRawResult(json.RawMessage(`{"ok":true}`)), nil)
	d.Begin()
	if state.Phase() != PhasePending {
		t.Errorf("expected pending after success, got %s", state.Phase())
	}
}

func TestDispatcher_LastWriteWins(t *testing.T) {
	state := NewDispatcherState()
	d := NewDispatcher(state, &fakeBackend{}, nil)

	first := d.Begin()
	second := d.Begin()

	// second resolves first, then the older exchange lands
	d.Complete(second, types.NewRawResult(json.RawMessage(`"second"`)), nil)
	d.Complete(first, types.NewRawResult(json.RawMessage(`"first"`)), nil)

	view := RenderResponse(state)
	if view.Text != `"first"` {
		t.Errorf("expected the most recent resolution to be shown, got %q", view.Text)
	}
	if state.Shown() != first {
		t.Errorf("shown = %d, want %d", state.Shown(), first)
	}
	if state.Seq() != second {
		t.Errorf("seq = %d, want %d", state.Seq(), second)
	}

	// a newer submission entered after a resolution shows pending again
	d.Begin()
	if RenderResponse(state).Phase != PhasePending {
		t.Error("expected pending after the latest submission")
	}
}

func TestPhase_String(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:    "idle",
		PhasePending: "pending",
		PhaseSuccess: "success",
		PhaseError:   "error",
	}
	for p, want := range tests {
		if p.String() != want {
			t.Errorf("Phase(%d).String() = %s, want %s", p, p.String(), want)
		}
	}
}

func TestPrettyPrint_InvalidFallsBackToRaw(t *testing.T) {
	if got := PrettyPrint(json.RawMessage(`{oops`)); got != `{oops` {
		t.Errorf("got %q", got)
	}
}
