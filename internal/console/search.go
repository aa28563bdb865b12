package console

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/snmpconsole/internal/types"
)

// entrySource adapts history rows to the fuzzy matcher
type entrySource []types.HistoryEntry

func (s entrySource) String(i int) string {
	return strings.Join(EntryCells(s[i]), " ")
}

func (s entrySource) Len() int {
	return len(s)
}

// SearchEntries keeps the rows fuzzily matching query.
// Matches stay in backend order; an empty query keeps everything.
func SearchEntries(entries []types.HistoryEntry, query string) []types.HistoryEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	matches := fuzzy.FindFrom(query, entrySource(entries))
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Index < matches[j].Index
	})

	result := make([]types.HistoryEntry, 0, len(matches))
	for _, m := range matches {
		result = append(result, entries[m.Index])
	}
	return result
}
