package console

import (
	"testing"

	"github.com/studiowebux/snmpconsole/internal/types"
)

func TestSearchEntries(t *testing.T) {
	entries := []types.HistoryEntry{
		{Date: "3", Type: "SET", OID: "1.3.6.1.2.1.1.5.0", Cible: "10.0.0.2", Statut: "4 ms"},
		{Date: "2", Type: "GET", OID: "1.3.6.1.2.1.1.1.0", Cible: "10.0.0.1", Statut: "2 ms"},
		{Date: "1", Type: "SET", OID: "1.3.6.1.2.1.1.6.0", Cible: "192.168.1.1", Statut: "9 ms"},
	}

	tests := []struct {
		name      string
		query     string
		wantDates []string
	}{
		{"empty query", "", []string{"3", "2", "1"}},
		{"blank query", "   ", []string{"3", "2", "1"}},
		{"type keeps backend order", "SET", []string{"3", "1"}},
		{"target", "192.168", []string{"1"}},
		{"no match", "zzzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchEntries(entries, tt.query)
			if len(got) != len(tt.wantDates) {
				t.Fatalf("len = %d, want %d (%+v)", len(got), len(tt.wantDates), got)
			}
			for i, d := range tt.wantDates {
				if got[i].Date != d {
					t.Errorf("row %d date = %s, want %s", i, got[i].Date, d)
				}
			}
		})
	}
}
