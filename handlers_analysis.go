package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"terrawatch/models"
	"terrawatch/session"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleListZones returns the zone table in selector order.
func (a *App) handleListZones(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a.ctrl.Zones().Zones())
}

// handleGetZone returns one zone by name.
func (a *App) handleGetZone(w http.ResponseWriter, r *http.Request) {
	zone, err := a.ctrl.SelectZone(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(zone)
}

// handleAnalysis evaluates one render pass from a JSON body.
func (a *App) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Zone) == "" {
		http.Error(w, "zone is required", http.StatusBadRequest)
		return
	}
	period, err := parsePeriodParams(req.From, req.To)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pass, err := a.evaluate(r.Context(), session.Input{Zone: req.Zone, Period: period, Triggered: req.Trigger})
	if err != nil {
		writeEvaluateError(w, r, err)
		return
	}

	resp := analysisResp{
		Zone:   pass.view.Zone,
		Period: periodResp{From: pass.view.Period.From(), To: pass.view.Period.To(), Inverted: pass.view.Period.Inverted()},
		State:  pass.view.State,
		Report: pass.view.Report,
		Frame:  pass.frame,
	}
	if pass.token != "" {
		resp.ExportToken = pass.token
		resp.Downloads = downloadURLs(pass.token)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode analysis")
	}
}

// handleListRuns returns the most recent triggered analyses.
func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := a.runs.Recent(r.Context(), limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list runs")
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	now := a.now()
	out := make([]runResp, 0, len(runs))
	for _, run := range runs {
		out = append(out, runResp{
			ID:        run.ID,
			Zone:      run.Zone,
			From:      run.Start.Format(models.DateLayout),
			To:        run.End.Format(models.DateLayout),
			Renderer:  run.Renderer,
			Generator: run.Generator,
			CreatedAt: run.CreatedAt,
			Age:       humanize.RelTime(run.CreatedAt, now, "ago", "from now"),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// ---- helpers ----

// parsePeriodParams parses optional YYYY-MM-DD bounds, falling back to the
// default period for missing ones. Inverted ranges are accepted.
func parsePeriodParams(from, to string) (models.Period, error) {
	p := models.DefaultPeriod()
	if from != "" {
		t, err := time.Parse(models.DateLayout, from)
		if err != nil {
			return models.Period{}, errors.New("invalid 'from' date format. Expected format: YYYY-MM-DD")
		}
		p.Start = t
	}
	if to != "" {
		t, err := time.Parse(models.DateLayout, to)
		if err != nil {
			return models.Period{}, errors.New("invalid 'to' date format. Expected format: YYYY-MM-DD")
		}
		p.End = t
	}
	return models.NewPeriod(p.Start, p.End), nil
}

// writeEvaluateError maps controller errors to HTTP statuses.
func writeEvaluateError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrUnknownZone) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("analysis failed")
	http.Error(w, "report generation failed", http.StatusBadGateway)
}
