package console

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/studiowebux/snmpconsole/internal/types"
)

// fakeBackend answers Submit and History from canned values and can observe
// the dispatcher and loader state while the call is in flight.
type fakeBackend struct {
	result  json.RawMessage
	entries []types.HistoryEntry
	err     error

	payloads []types.RequestPayload
	during   func()
}

func (f *fakeBackend) Submit(ctx context.Context, payload types.RequestPayload) (types.RequestResult, error) {
	f.payloads = append(f.payloads, payload)
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return types.RequestResult{}, f.err
	}
	return types.NewRawResult(f.result), nil
}

func (f *fakeBackend) History(ctx context.Context) ([]types.HistoryEntry, error) {
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

var errNetwork = errors.New("connection refused")

func newTestLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func strPtr(s string) *string {
	return &s
}
