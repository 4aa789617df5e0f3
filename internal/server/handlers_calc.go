package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/claude/liftcalc/internal/numparse"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
)

type estimateResponse struct {
	Weight  float64  `json:"weight"`
	Reps    float64  `json:"reps"`
	RPE     float64  `json:"rpe"`
	Percent *float64 `json:"percent"`
	E1RM    *float64 `json:"e1rm"`
	OK      bool     `json:"ok"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, err := numparse.ParseDecimal(q.Get("weight"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight: " + err.Error()})
		return
	}
	reps, err := numparse.ParseDecimal(q.Get("reps"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps: " + err.Error()})
		return
	}
	rpeVal, err := numparse.ParseDecimal(q.Get("rpe"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rpe: " + err.Error()})
		return
	}

	resp := estimateResponse{Weight: weight, Reps: reps, RPE: rpeVal}
	if pct, ok := rpe.PercentOf1RM(reps, rpeVal); ok {
		resp.Percent = &pct
	}
	if e1rm, ok := rpe.Estimate1RM(weight, reps, rpeVal); ok {
		resp.E1RM = &e1rm
		resp.OK = true
	}

	outcome := "ok"
	if !resp.OK {
		outcome = "undefined"
	}
	s.metrics.ObserveCalculation("estimate", outcome)
	writeJSON(w, http.StatusOK, resp)
}

type prescribeResponse struct {
	OneRM         float64     `json:"one_rm"`
	Reps          float64     `json:"reps"`
	RPE           float64     `json:"rpe"`
	Unit          plates.Unit `json:"unit"`
	Percent       float64     `json:"percent"`
	Weight        float64     `json:"weight"`
	RoundedWeight float64     `json:"rounded_weight"`
}

func (s *Server) handlePrescribe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	unit, err := s.unitParam(q.Get("unit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	oneRM, err := numparse.ParseDecimal(q.Get("one_rm"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "one_rm: " + err.Error()})
		return
	}
	reps, err := numparse.ParseDecimal(q.Get("reps"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps: " + err.Error()})
		return
	}
	rpeVal, err := numparse.ParseDecimal(q.Get("rpe"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rpe: " + err.Error()})
		return
	}
	step, err := numparse.ParseOptional(q.Get("step"), plates.DefaultRoundingStep(unit))
	if err != nil || step <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "step must be a positive number"})
		return
	}

	weight, ok := rpe.LoadFor(oneRM, reps, rpeVal)
	if !ok {
		s.metrics.ObserveCalculation("prescribe", "undefined")
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "one_rm must be positive"})
		return
	}
	pct, _ := rpe.PercentOf1RM(reps, rpeVal)
	s.metrics.ObserveCalculation("prescribe", "ok")
	writeJSON(w, http.StatusOK, prescribeResponse{
		OneRM:         oneRM,
		Reps:          reps,
		RPE:           rpeVal,
		Unit:          unit,
		Percent:       pct,
		Weight:        weight,
		RoundedWeight: plates.Round(weight, step),
	})
}

type loadResponse struct {
	plates.Load
	Exact     bool    `json:"exact"`
	Shortfall float64 `json:"shortfall"`
}

func (s *Server) handlePlates(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.plateConfig(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	load, err := plates.Compute(cfg)
	switch {
	case errors.Is(err, plates.ErrInvalidConfig):
		s.metrics.ObserveCalculation("plates", "invalid")
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	case errors.Is(err, plates.ErrInfeasible):
		s.metrics.ObserveCalculation("plates", "infeasible")
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	case load.Exact():
		s.metrics.ObserveCalculation("plates", "exact")
	default:
		s.metrics.ObserveCalculation("plates", "short")
	}

	writeJSON(w, http.StatusOK, loadResponse{Load: load, Exact: load.Exact(), Shortfall: load.Shortfall()})
}

// plateConfig reads a plates.Config from query parameters. Bar and rounding
// step fall back to the unit's defaults when omitted.
func (s *Server) plateConfig(r *http.Request) (plates.Config, error) {
	q := r.URL.Query()
	unit, err := s.unitParam(q.Get("unit"))
	if err != nil {
		return plates.Config{}, err
	}
	cfg := plates.DefaultConfig(unit)

	if cfg.Target, err = numparse.ParseDecimal(q.Get("target")); err != nil {
		return plates.Config{}, fmt.Errorf("target: %w", err)
	}
	if cfg.Bar, err = numparse.ParseOptional(q.Get("bar"), cfg.Bar); err != nil {
		return plates.Config{}, fmt.Errorf("bar: %w", err)
	}
	if cfg.Collars, err = numparse.ParseOptional(q.Get("collars"), 0); err != nil {
		return plates.Config{}, fmt.Errorf("collars: %w", err)
	}
	if cfg.RoundingStep, err = numparse.ParseOptional(q.Get("step"), cfg.RoundingStep); err != nil {
		return plates.Config{}, fmt.Errorf("step: %w", err)
	}
	return cfg, nil
}

type presetsResponse struct {
	Unit        plates.Unit    `json:"unit"`
	Bars        []float64      `json:"bars"`
	DefaultBar  float64        `json:"default_bar"`
	DefaultStep float64        `json:"default_step"`
	Plates      []plates.Plate `json:"plates"`
}

func (s *Server) handlePlatePresets(w http.ResponseWriter, r *http.Request) {
	unit, err := s.unitParam(r.URL.Query().Get("unit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, presetsResponse{
		Unit:        unit,
		Bars:        plates.BarPresets(unit),
		DefaultBar:  plates.DefaultBar(unit),
		DefaultStep: plates.DefaultRoundingStep(unit),
		Plates:      plates.Catalog(unit),
	})
}

func (s *Server) handleRPETable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"columns": rpe.Columns(),
		"rows":    rpe.Table(),
	})
}

func (s *Server) unitParam(v string) (plates.Unit, error) {
	if v == "" {
		return s.defaultUnit, nil
	}
	return plates.ParseUnit(v)
}
