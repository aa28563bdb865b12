package mock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/snmpconsole/internal/agent"
	"github.com/studiowebux/snmpconsole/internal/executor"
	"github.com/studiowebux/snmpconsole/internal/history"
	"github.com/studiowebux/snmpconsole/internal/types"
	"github.com/studiowebux/snmpconsole/internal/version"
)

type failingPerformer struct{}

func (failingPerformer) Perform(_ context.Context, req types.AgentRequest) types.AgentOutcome {
	return types.AgentOutcome{Status: types.StatusError, Value: "timeout", LatencyMs: 3}
}

func setupTestServer(t *testing.T, performer agent.Performer) (*Server, *history.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hist, err := history.NewManager(filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	t.Cleanup(func() { hist.Close() })

	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	srv := NewServer(DefaultConfig(), performer, hist, log)
	return srv, hist
}

func postJSON(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/snmp", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSNMP_MissingFields(t *testing.T) {
	srv, _ := setupTestServer(t, agent.Simulated{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty object", `{}`, "Champs manquants: type, community, target, oid"},
		{"invalid json", `not json`, "Champs manquants: type, community, target, oid"},
		{"empty strings", `{"type":"GET","community":"","target":"h","oid":""}`, "Champs manquants: community, oid"},
		{"null type", `{"type":null,"community":"public","target":"h","oid":"1.3"}`, "Champs manquants: type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, srv.GetRouter(), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHandleSNMP_UnreadableBodyIsLogged(t *testing.T) {
	hist, err := history.NewManager(filepath.Join(t.TempDir(), "frames.db"))
	require.NoError(t, err)
	t.Cleanup(func() { hist.Close() })

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	gin.SetMode(gin.TestMode)
	srv := NewServer(DefaultConfig(), agent.Simulated{}, hist, log)

	req := httptest.NewRequest(http.MethodPost, "/api/snmp", brokenBody{})
	w := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel && e.Data[logrus.ErrorKey] != nil {
			logged = true
		}
	}
	assert.True(t, logged, "read error should be logged at debug level")
}

func TestHandleSNMP_GetIsPerformedAndRecorded(t *testing.T) {
	srv, hist := setupTestServer(t, agent.Simulated{})

	w := postJSON(t, srv.GetRouter(), `{"type":"get","community":"public","target":"10.0.0.1","oid":"1.3.6.1.2.1.1.1.0","value":""}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp SNMPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "GET", resp.Request.Type)
	assert.Equal(t, "10.0.0.1", resp.Request.Target)
	assert.Equal(t, "", resp.Request.Value)
	assert.Equal(t, "Simulated GET value for OID 1.3.6.1.2.1.1.1.0", resp.Response.Value)

	entries, err := hist.Load(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "GET", entries[0].Type)
	assert.Equal(t, "10.0.0.1", entries[0].Cible)
	require.NotNil(t, entries[0].Valeur)
	assert.Equal(t, "Simulated GET value for OID 1.3.6.1.2.1.1.1.0", *entries[0].Valeur)
	assert.Contains(t, entries[0].Statut, " ms")
}

func TestHandleSNMP_TrapIsNotRecorded(t *testing.T) {
	srv, hist := setupTestServer(t, agent.Simulated{})

	w := postJSON(t, srv.GetRouter(), `{"type":"TRAP","community":"public","target":"10.0.0.1","oid":"1.3"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	count, err := hist.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHandleSNMP_UnknownTypeIsServerError(t *testing.T) {
	srv, hist := setupTestServer(t, agent.Simulated{})

	w := postJSON(t, srv.GetRouter(), `{"type":"WALK","community":"public","target":"10.0.0.1","oid":"1.3"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp SNMPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Unknown type", resp.Response.Value)

	count, _ := hist.GetCount()
	assert.Equal(t, 0, count)
}

func TestHandleSNMP_FailedGetIsNotRecorded(t *testing.T) {
	srv, hist := setupTestServer(t, failingPerformer{})

	w := postJSON(t, srv.GetRouter(), `{"type":"GET","community":"public","target":"10.0.0.1","oid":"1.3"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	count, _ := hist.GetCount()
	assert.Equal(t, 0, count)
}

func TestHandleHistory(t *testing.T) {
	srv, _ := setupTestServer(t, agent.Simulated{})
	router := srv.GetRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	postJSON(t, router, `{"type":"GET","community":"public","target":"a","oid":"1.1"}`)
	postJSON(t, router, `{"type":"SET","community":"private","target":"b","oid":"1.2","value":"x"}`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var entries []types.HistoryEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Cible)
	assert.Equal(t, "SET", entries[0].Type)
	assert.Equal(t, "a", entries[1].Cible)
}

func TestHandlePing(t *testing.T) {
	srv, _ := setupTestServer(t, agent.Simulated{})

	w := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestHandleStats(t *testing.T) {
	srv, _ := setupTestServer(t, agent.Simulated{})
	router := srv.GetRouter()

	postJSON(t, router, `{"type":"get","community":"public","target":"10.0.0.1","oid":"1.3"}`)
	postJSON(t, router, `{"type":"GET","community":"public","target":"10.0.0.2","oid":"1.3"}`)
	postJSON(t, router, `{"type":"SET","community":"private","target":"10.0.0.1","oid":"1.3","value":"x"}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Total   int `json:"total"`
		PerType []struct {
			Key        string `json:"key"`
			TotalCalls int    `json:"total_calls"`
		} `json:"per_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Total)
	require.Len(t, report.PerType, 2)
	assert.Equal(t, "GET", report.PerType[0].Key)
	assert.Equal(t, 2, report.PerType[0].TotalCalls)
}

func TestHandleClearAndDelete(t *testing.T) {
	srv, hist := setupTestServer(t, agent.Simulated{})
	router := srv.GetRouter()

	id, err := hist.Save(types.TrameRecord{Type: "GET", Target: "a", OID: "1"})
	require.NoError(t, err)
	_, err = hist.Save(types.TrameRecord{Type: "SET", Target: "b", OID: "2"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/history/%d", id), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	count, err := hist.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/history/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/history", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	count, err = hist.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSystemEndpoints(t *testing.T) {
	srv, _ := setupTestServer(t, agent.Simulated{})

	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/health", `{"status":"ok"}`},
		{"/api/v1/version", `{"version":"` + version.Current + `"}`},
		{"/api/v1/db-ping", `{"db":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := setupTestServer(t, agent.Simulated{})

	w := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/snmp", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestConsoleClientAgainstBackend(t *testing.T) {
	srv, _ := setupTestServer(t, agent.Simulated{})
	ts := httptest.NewServer(srv.GetRouter())
	defer ts.Close()

	client := executor.NewClient(ts.URL)
	ctx := context.Background()

	result, err := client.Submit(ctx, types.RequestPayload{Type: "SET", Community: "private", Target: "10.0.0.9", OID: "1.3.6.1.2.1.1.5.0", Value: "edge"})
	require.NoError(t, err)
	assert.Contains(t, string(result.Value), "Simulated SET value 'edge' on OID 1.3.6.1.2.1.1.5.0")

	// a rejected request is still a JSON answer
	result, err = client.Submit(ctx, types.RequestPayload{Type: "GET"})
	require.NoError(t, err)
	assert.Contains(t, string(result.Value), "Champs manquants")

	entries, err := client.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "10.0.0.9", entries[0].Cible)

	assert.NoError(t, client.Ping(ctx))
}
