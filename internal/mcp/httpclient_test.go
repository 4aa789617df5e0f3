package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/strength"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestQueryLiftSets verifies the client sends the range and filter and
// decodes scored sets served by the REST API.
func TestQueryLiftSets(t *testing.T) {
	rpe := 8.0
	served := models.LiftSet{
		ID:          uuid.New(),
		PerformedAt: time.Date(2026, 1, 3, 17, 0, 0, 0, time.UTC),
		Exercise:    "Squat",
		WeightKg:    140,
		Reps:        5,
		RPE:         &rpe,
	}

	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sets": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("exercise"); got != "squat" {
				t.Errorf("exercise=%q, want squat", got)
			}
			if got := q.Get("start"); got != "2026-01-01T00:00:00Z" {
				t.Errorf("start=%q, want 2026-01-01T00:00:00Z", got)
			}
			writeTestJSON(t, w, strength.ScoreSets([]models.LiftSet{served}))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	sets, err := client.QueryLiftSets(context.Background(), start, end, 1, "squat")
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	if sets[0].ID != served.ID {
		t.Errorf("id=%v, want %v", sets[0].ID, served.ID)
	}
	if sets[0].RPE == nil || *sets[0].RPE != 8 {
		t.Errorf("rpe=%v, want 8", sets[0].RPE)
	}
}

// TestQueryLiftSetsError verifies non-200 responses become errors.
func TestQueryLiftSetsError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/sets": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"query failed"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.QueryLiftSets(context.Background(), time.Now().AddDate(0, 0, -7), time.Now(), 1, "")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
