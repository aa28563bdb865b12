package console

import (
	"context"
	"reflect"
	"testing"

	"github.com/studiowebux/snmpconsole/internal/types"
)

func sampleEntries() []types.HistoryEntry {
	return []types.HistoryEntry{
		{Date: "2025-01-01 12:00:00", Type: "GET", OID: "1.3.6.1.2.1.1.5.0", Cible: "10.0.0.1", Valeur: strPtr("router"), Statut: "3 ms"},
		{Date: "2025-01-01 11:00:00", Type: "SET", OID: "1.3.6.1.2.1.1.6.0", Cible: "10.0.0.2", Valeur: strPtr(""), Statut: "5 ms"},
		{Date: "2025-01-01 10:00:00", Type: "METRIC", OID: "1.3.6.1.2.1.1.3.0", Cible: "10.0.0.3", Valeur: nil, Statut: "OK"},
	}
}

func TestLoader_LoadingRowBeforeNetworkResolves(t *testing.T) {
	state := NewLoaderState()
	backend := &fakeBackend{entries: sampleEntries()}

	var during TableView
	backend.during = func() { during = RenderHistory(state) }

	var observed TableView
	NewLoader(state, backend, nil).Load(context.Background(), func(v TableView) { observed = v })

	for name, v := range map[string]TableView{"onLoading": observed, "in flight": during} {
		if len(v.Rows) != 1 {
			t.Fatalf("%s: expected one row, got %d", name, len(v.Rows))
		}
		row := v.Rows[0]
		if !row.Span || row.Cells[0] != LoadingText {
			t.Errorf("%s: expected spanning loading row, got %+v", name, row)
		}
	}
}

func TestLoader_EmptyHistory(t *testing.T) {
	view := NewLoader(NewLoaderState(), &fakeBackend{entries: []types.HistoryEntry{}}, nil).Load(context.Background(), nil)

	if len(view.Rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(view.Rows))
	}
	row := view.Rows[0]
	if !row.Span {
		t.Error("expected the empty row to span every column")
	}
	if row.Style != RowMuted {
		t.Errorf("expected muted style, got %d", row.Style)
	}
	if row.Cells[0] != EmptyText {
		t.Errorf("text = %q, want %q", row.Cells[0], EmptyText)
	}
}

func TestLoader_PopulatedHistory(t *testing.T) {
	entries := sampleEntries()
	view := NewLoader(NewLoaderState(), &fakeBackend{entries: entries}, nil).Load(context.Background(), nil)

	if len(view.Rows) != len(entries) {
		t.Fatalf("expected %d rows, got %d", len(entries), len(view.Rows))
	}
	if !reflect.DeepEqual(view.Columns, []string{"Date", "Type", "OID", "Cible", "Valeur", "Statut"}) {
		t.Errorf("unexpected columns %v", view.Columns)
	}

	want := [][]string{
		{"2025-01-01 12:00:00", "GET", "1.3.6.1.2.1.1.5.0", "10.0.0.1", "router", "3 ms"},
		{"2025-01-01 11:00:00", "SET", "1.3.6.1.2.1.1.6.0", "10.0.0.2", "-", "5 ms"},
		{"2025-01-01 10:00:00", "METRIC", "1.3.6.1.2.1.1.3.0", "10.0.0.3", "-", "OK"},
	}
	for i, row := range view.Rows {
		if row.Span {
			t.Errorf("row %d: data rows must not span", i)
		}
		if !reflect.DeepEqual(row.Cells, want[i]) {
			t.Errorf("row %d = %v, want %v", i, row.Cells, want[i])
		}
	}
}

func TestLoader_FailureReplacesPopulatedTable(t *testing.T) {
	state := NewLoaderState()
	backend := &fakeBackend{entries: sampleEntries()}
	loader := NewLoader(state, backend, nil)

	if got := len(loader.Load(context.Background(), nil).Rows); got != 3 {
		t.Fatalf("expected 3 rows after first load, got %d", got)
	}

	backend.err = errNetwork
	view := loader.Load(context.Background(), nil)

	if len(view.Rows) != 1 {
		t.Fatalf("expected exactly one error row, got %d", len(view.Rows))
	}
	row := view.Rows[0]
	if !row.Span || row.Style != RowError || row.Cells[0] != LoadErrorText {
		t.Errorf("unexpected error row %+v", row)
	}
	if len(state.Entries()) != 0 {
		t.Error("expected no residual entries after a failed load")
	}
	if state.Phase() != LoadFailed {
		t.Errorf("expected failed phase, got %s", state.Phase())
	}
}

func TestLoader_ReloadNeverAppends(t *testing.T) {
	backend := &fakeBackend{entries: sampleEntries()}
	loader := NewLoader(NewLoaderState(), backend, nil)

	loader.Load(context.Background(), nil)
	backend.entries = sampleEntries()[:1]
	view := loader.Load(context.Background(), nil)

	if len(view.Rows) != 1 {
		t.Errorf("expected 1 row after reload, got %d", len(view.Rows))
	}
}

func TestLoaderState_NoCachingAcrossLoads(t *testing.T) {
	state := NewLoaderState()
	entries := sampleEntries()
	state.Complete(state.Begin(), entries, nil)

	entries[0].Date = "mutated"
	if state.Entries()[0].Date == "mutated" {
		t.Error("state must own its copy of the entries")
	}

	state.Begin()
	if len(state.Entries()) != 0 {
		t.Error("Begin must drop the previous rows")
	}
}

func TestRenderHistory_Idle(t *testing.T) {
	view := RenderHistory(NewLoaderState())
	if len(view.Rows) != 0 {
		t.Errorf("expected no rows before the first refresh, got %d", len(view.Rows))
	}
}

func TestRenderEntries(t *testing.T) {
	view := RenderEntries(nil)
	if len(view.Rows) != 1 || view.Rows[0].Cells[0] != NoMatchText || view.Rows[0].Style != RowMuted {
		t.Errorf("unexpected view for no entries: %+v", view)
	}
	if view.Rows[0].Cells[0] == EmptyText {
		t.Error("no match must not read as an empty history")
	}
	if view := RenderEntries(sampleEntries()[:2]); len(view.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(view.Rows))
	}
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		in   *string
		want string
	}{
		{nil, "-"},
		{strPtr(""), "-"},
		{strPtr("0"), "0"},
		{strPtr("value"), "value"},
	}
	for _, tt := range tests {
		if got := DisplayValue(tt.in); got != tt.want {
			t.Errorf("DisplayValue = %q, want %q", got, tt.want)
		}
	}
}

func TestLoadPhase_String(t *testing.T) {
	tests := map[LoadPhase]string{
		LoadIdle:      "idle",
		LoadLoading:   "loading",
		LoadEmpty:     "empty",
		LoadPopulated: "populated",
		LoadFailed:    "error",
	}
	for p, want := range tests {
		if p.String() != want {
			t.Errorf("LoadPhase(%d).String() = %s, want %s", p, p.String(), want)
		}
	}
}
