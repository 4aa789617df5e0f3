package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/storage"
)

// maxImportBytes caps the size of an uploaded export.
const maxImportBytes = 10 << 20

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	opts := alpha.Options{Equipment: r.URL.Query().Get("equipment")}

	result, err := s.alpha.Ingest(r.Context(), body, defaultUserID, opts, s.now())
	s.logImport(r, "alpha", result, err, time.Since(start))
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "export too large"})
		case errors.Is(err, alpha.ErrMalformed):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			s.log.Error("alpha import error", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "import failed"})
		}
		return
	}
	if s.metrics != nil {
		s.metrics.CounterSetsLogged.Add(float64(result.SetsInserted))
	}

	writeJSON(w, http.StatusOK, result)
}

// logImport stores the outcome of an import. Failures are logged only; the
// import itself has already succeeded or failed.
func (s *Server) logImport(r *http.Request, source string, result *ingest.Result, importErr error, took time.Duration) {
	ms := int(took.Milliseconds())
	entry := storage.ImportLog{
		UserID:     defaultUserID,
		Source:     source,
		Status:     "success",
		DurationMs: &ms,
	}
	if importErr != nil {
		msg := importErr.Error()
		entry.Status = "error"
		entry.ErrorMessage = &msg
	}
	if result != nil {
		entry.SetsReceived = result.SetsReceived
		entry.SetsInserted = result.SetsInserted
		entry.SetsRejected = result.SetsRejected
		if meta, err := json.Marshal(result); err == nil {
			raw := json.RawMessage(meta)
			entry.Metadata = &raw
		}
	}

	if _, err := s.store.InsertImportLog(r.Context(), entry); err != nil {
		s.log.Warn("recording import log", "source", source, "error", err)
	}
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	logs, err := s.store.QueryImportLogs(r.Context(), defaultUserID, limit)
	if err != nil {
		s.log.Error("querying import logs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	if logs == nil {
		logs = []storage.ImportLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
