package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studiowebux/snmpconsole/internal/agent"
	"github.com/studiowebux/snmpconsole/internal/types"
	"github.com/studiowebux/snmpconsole/internal/version"
)

var requiredFields = []string{"type", "community", "target", "oid"}

// handleSNMP handles POST /api/snmp
func (s *Server) handleSNMP(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.log.WithError(err).Debug("Unreadable request body")
		body = nil
	}

	// an unreadable body counts as an empty request
	data := map[string]interface{}{}
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		data = map[string]interface{}{}
	}

	var missing []string
	for _, f := range requiredFields {
		if !present(data[f]) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status: types.StatusError,
			Error:  "Champs manquants: " + strings.Join(missing, ", "),
		})
		return
	}

	req := types.AgentRequest{
		Type:      strings.ToUpper(text(data["type"])),
		Community: text(data["community"]),
		Target:    text(data["target"]),
		OID:       text(data["oid"]),
	}
	rawValue := data["value"]
	if rawValue != nil {
		v := text(rawValue)
		req.Value = &v
	}

	out := s.performer.Perform(c.Request.Context(), req)

	if agent.Recordable(req.Type) && out.Success() {
		latency := out.LatencyMs
		value := out.Value
		rec := types.TrameRecord{
			Type:      req.Type,
			Target:    req.Target,
			OID:       req.OID,
			ValueRaw:  &value,
			LatencyMs: &latency,
		}
		if _, err := s.history.Save(rec); err != nil {
			s.log.WithError(err).Error("Failed to record frame")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Status: types.StatusError, Error: err.Error()})
			return
		}
		s.stats.Invalidate()
	}

	status := http.StatusOK
	if !out.Success() {
		status = http.StatusInternalServerError
	}

	c.JSON(status, SNMPResponse{
		Status: out.Status,
		Request: EchoRequest{
			Type:      req.Type,
			Community: req.Community,
			Target:    req.Target,
			OID:       req.OID,
			Value:     rawValue,
		},
		Response: AgentPayload{
			Value:     out.Value,
			LatencyMs: out.LatencyMs,
		},
	})
}

// handleHistory handles GET /api/history
func (s *Server) handleHistory(c *gin.Context) {
	entries, err := s.history.Load(s.config.HistoryLimit)
	if err != nil {
		s.log.WithError(err).Error("Failed to load history")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Status: types.StatusError, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// handleClearHistory handles DELETE /api/history
func (s *Server) handleClearHistory(c *gin.Context) {
	if err := s.history.Clear(); err != nil {
		s.log.WithError(err).Error("Failed to clear history")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Status: types.StatusError, Error: err.Error()})
		return
	}
	s.stats.Invalidate()
	c.Status(http.StatusNoContent)
}

// handleDeleteFrame handles DELETE /api/history/:id
func (s *Server) handleDeleteFrame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Status: types.StatusError, Error: "invalid frame id"})
		return
	}

	if err := s.history.Delete(id); err != nil {
		s.log.WithError(err).Error("Failed to delete frame")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Status: types.StatusError, Error: err.Error()})
		return
	}
	s.stats.Invalidate()
	c.Status(http.StatusNoContent)
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(c *gin.Context) {
	report, err := s.stats.GetReport()
	if err != nil {
		s.log.WithError(err).Error("Failed to compute stats")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Status: types.StatusError, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// handleHealth handles GET /api/v1/health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleVersion handles GET /api/v1/version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": version.Current})
}

// handleDBPing handles GET /api/v1/db-ping. Driver errors stay in the log.
func (s *Server) handleDBPing(c *gin.Context) {
	if err := s.history.DB().PingContext(c.Request.Context()); err != nil {
		s.log.WithError(err).Error("Database ping failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "DB connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"db": "ok"})
}

// handlePing handles GET /api/ping
func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// present reports whether a JSON field carries a usable value.
// Absent, null, false, zero and empty values are all missing.
func present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

// text renders a JSON scalar as the string the performer works with
func text(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}
