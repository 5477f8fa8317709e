package integration

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	modeOK = iota
	modeHangUp
	modeSlow
	modeNotFound
)

// testBackend answers query-string requests the way the sessions backend does.
type testBackend struct {
	mode atomic.Int32
	hits atomic.Int32
}

func (s *testBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)

	switch s.mode.Load() {
	case modeOK:
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "s1", "title": "Intro to ML"}})
	case modeHangUp:
		hj, ok := w.(http.Hijacker)
		if !ok {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "no hijack"})
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			conn.Close()
		}
	case modeSlow:
		time.Sleep(200 * time.Millisecond)
		writeJSON(w, http.StatusOK, []map[string]any{})
	case modeNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Session not found"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
