package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/strength"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxLogBatch caps how many sets one POST /sets may carry, and maxLogBytes
// the body carrying them.
const (
	maxLogBatch = 500
	maxLogBytes = 1 << 20
)

func (s *Server) handleLogSets(w http.ResponseWriter, r *http.Request) {
	var inputs []models.LiftSetInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLogBytes)).Decode(&inputs); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(inputs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no sets given"})
		return
	}
	if len(inputs) > maxLogBatch {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "too many sets in one request"})
		return
	}

	now := s.now()
	rows := make([]models.LiftSet, 0, len(inputs))
	for i, in := range inputs {
		row, err := strength.NewLiftSet(in, defaultUserID, now)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error(), "index": i})
			return
		}
		rows = append(rows, row)
	}

	inserted, err := s.store.InsertLiftSets(r.Context(), rows)
	if err != nil {
		s.log.Error("inserting lift sets", "error", err, "count", len(rows))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storing sets failed"})
		return
	}
	if s.metrics != nil {
		s.metrics.CounterSetsLogged.Add(float64(inserted))
	}

	s.log.Info("lift sets logged", "received", len(rows), "inserted", inserted)
	writeJSON(w, http.StatusCreated, map[string]any{
		"received": len(rows),
		"inserted": inserted,
	})
}

func (s *Server) handleQuerySets(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.parseTimeRange(r, 7)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid time range: " + err.Error()})
		return
	}

	sets, err := s.store.QueryLiftSets(r.Context(), start, end, defaultUserID, r.URL.Query().Get("exercise"))
	if err != nil {
		s.log.Error("querying lift sets", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, strength.ScoreSets(sets))
}

func (s *Server) handleBestEstimates(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.parseTimeRange(r, 90)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid time range: " + err.Error()})
		return
	}

	sets, err := s.store.QueryLiftSets(r.Context(), start, end, defaultUserID, r.URL.Query().Get("exercise"))
	if err != nil {
		s.log.Error("querying lift sets", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, strength.BestByExercise(sets))
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	start, end, err := s.parseTimeRange(r, 90)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid time range: " + err.Error()})
		return
	}

	sets, err := s.store.QueryLiftSets(r.Context(), start, end, defaultUserID, exercise)
	if err != nil {
		s.log.Error("querying lift sets", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exercise": exercise,
		"sessions": strength.Progression(sets, exercise),
	})
}

func (s *Server) handleLiftStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetLiftStats(r.Context(), defaultUserID)
	if err != nil {
		s.log.Error("querying lift stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set id"})
		return
	}

	deleted, err := s.store.DeleteLiftSet(r.Context(), id, defaultUserID)
	if err != nil {
		s.log.Error("deleting lift set", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "delete failed"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads start/end query parameters as RFC 3339 or
// YYYY-MM-DD. Without a start it covers the last defaultDays days.
func (s *Server) parseTimeRange(r *http.Request, defaultDays int) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		end = s.now()
		start = end.AddDate(0, 0, -defaultDays)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = s.now()
		return
	}
	end, err = time.Parse(time.RFC3339, endStr)
	if err != nil {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// End of day for date-only
		end = end.Add(24 * time.Hour)
	}
	return
}
