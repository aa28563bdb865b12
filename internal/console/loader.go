package console

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// LoadPhase is the state of the history table
type LoadPhase int

const (
	LoadIdle LoadPhase = iota
	LoadLoading
	LoadEmpty
	LoadPopulated
	LoadFailed
)

func (p LoadPhase) String() string {
	switch p {
	case LoadLoading:
		return "loading"
	case LoadEmpty:
		return "empty"
	case LoadPopulated:
		return "populated"
	case LoadFailed:
		return "error"
	default:
		return "idle"
	}
}

// HistoryColumns is the fixed column order of the history table
var HistoryColumns = []string{"Date", "Type", "OID", "Cible", "Valeur", "Statut"}

// HistoryFetcher lists the recorded frames
type HistoryFetcher interface {
	History(ctx context.Context) ([]types.HistoryEntry, error)
}

// LoaderState holds the history table. Every load replaces it entirely.
type LoaderState struct {
	mu      sync.RWMutex
	phase   LoadPhase
	seq     uint64
	entries []types.HistoryEntry
}

// NewLoaderState creates an idle loader state
func NewLoaderState() *LoaderState {
	return &LoaderState{phase: LoadIdle}
}

// Begin drops the current rows, enters loading and returns the load sequence number
func (s *LoaderState) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.phase = LoadLoading
	s.entries = nil
	return s.seq
}

// Complete shows the outcome of load seq
func (s *LoaderState) Complete(seq uint64, entries []types.HistoryEntry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err != nil:
		s.phase = LoadFailed
		s.entries = nil
	case len(entries) == 0:
		s.phase = LoadEmpty
		s.entries = nil
	default:
		s.phase = LoadPopulated
		s.entries = make([]types.HistoryEntry, len(entries))
		copy(s.entries, entries)
	}
}

// Phase returns the current phase
func (s *LoaderState) Phase() LoadPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Seq returns the last load sequence number
func (s *LoaderState) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Entries returns a copy of the displayed entries
func (s *LoaderState) Entries() []types.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.HistoryEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// RowStyle selects how a table row is drawn
type RowStyle int

const (
	RowPlain RowStyle = iota
	RowMuted
	RowError
)

// Row is one table row. A spanning row has a single cell covering every column.
type Row struct {
	Cells []string
	Span  bool
	Style RowStyle
}

// TableView is what the history table shows
type TableView struct {
	Columns []string
	Rows    []Row
}

// RenderHistory maps the loader state to its view
func RenderHistory(s *LoaderState) TableView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return renderRows(s.phase, s.entries)
}

// RenderEntries renders the rows of a loaded history kept by a search or
// filter. Keeping none is not an empty history and gets its own muted row.
func RenderEntries(entries []types.HistoryEntry) TableView {
	if len(entries) == 0 {
		return TableView{Columns: HistoryColumns, Rows: []Row{spanRow(NoMatchText, RowMuted)}}
	}
	return renderRows(LoadPopulated, entries)
}

func renderRows(phase LoadPhase, entries []types.HistoryEntry) TableView {
	view := TableView{Columns: HistoryColumns}

	switch phase {
	case LoadLoading:
		view.Rows = []Row{spanRow(LoadingText, RowPlain)}
	case LoadEmpty:
		view.Rows = []Row{spanRow(EmptyText, RowMuted)}
	case LoadFailed:
		view.Rows = []Row{spanRow(LoadErrorText, RowError)}
	case LoadPopulated:
		view.Rows = make([]Row, 0, len(entries))
		for _, e := range entries {
			view.Rows = append(view.Rows, Row{Cells: EntryCells(e)})
		}
	}

	return view
}

func spanRow(text string, style RowStyle) Row {
	return Row{Cells: []string{text}, Span: true, Style: style}
}

// EntryCells returns the cells of one entry in column order
func EntryCells(e types.HistoryEntry) []string {
	return []string{e.Date, e.Type, e.OID, e.Cible, DisplayValue(e.Valeur), e.Statut}
}

// DisplayValue returns the placeholder for an absent or empty value
func DisplayValue(v *string) string {
	if v == nil || *v == "" {
		return ValuePlaceholder
	}
	return *v
}

// Loader runs the history flow against a backend
type Loader struct {
	state   *LoaderState
	backend HistoryFetcher
	log     logrus.FieldLogger
}

// NewLoader creates a loader over state
func NewLoader(state *LoaderState, backend HistoryFetcher, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{state: state, backend: backend, log: log}
}

// State returns the loader state
func (l *Loader) State() *LoaderState {
	return l.state
}

// Begin shows the loading row. It must run before Fetch.
func (l *Loader) Begin() uint64 {
	seq := l.state.Begin()
	l.log.WithField("seq", seq).Debug("history loading")
	return seq
}

// Fetch performs the network call without touching the state
func (l *Loader) Fetch(ctx context.Context) ([]types.HistoryEntry, error) {
	return l.backend.History(ctx)
}

// Complete applies the outcome of load seq. Errors are swallowed here.
func (l *Loader) Complete(seq uint64, entries []types.HistoryEntry, err error) {
	entry := l.log.WithField("seq", seq)
	if err != nil {
		entry.WithError(err).Warn("history load failed")
	} else {
		entry.WithField("entries", len(entries)).Debug("history loaded")
	}
	l.state.Complete(seq, entries, err)
}

// Load runs the whole flow synchronously and returns the final view.
// onLoading, if set, observes the loading view before the network call.
func (l *Loader) Load(ctx context.Context, onLoading func(TableView)) TableView {
	seq := l.Begin()
	if onLoading != nil {
		onLoading(RenderHistory(l.state))
	}

	entries, err := l.Fetch(ctx)
	l.Complete(seq, entries, err)

	return RenderHistory(l.state)
}
