package main

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"net/url"

	"terrawatch/models"
	"terrawatch/render"
	"terrawatch/session"

	"github.com/rs/zerolog"
)

//go:embed web/dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const (
	chartWidth  = 320
	chartHeight = 160
	chartPad    = 20
)

type dashboardData struct {
	Zones       []models.Zone
	View        session.View
	Frame       render.Frame
	Reported    bool
	AreaPopup   string
	Chart       []render.ChartPoint
	Polyline    string
	ChartWidth  int
	ChartHeight int
	Downloads   map[string]string
	ReloadURL   string
}

// handleDashboard renders an idle pass for the selections in the query. GET
// never triggers, so reloading a page always comes back idle.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	a.renderDashboard(w, r, r.URL.Query(), false)
}

// handleDashboardAnalyze renders the pass triggered by the "Run simulation"
// button, the only control that posts the form.
func (a *App) handleDashboardAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	a.renderDashboard(w, r, r.PostForm, true)
}

func (a *App) renderDashboard(w http.ResponseWriter, r *http.Request, q url.Values, triggered bool) {
	zone := q.Get("zone")
	if zone == "" {
		zone = a.ctrl.Zones().First().Name
	}
	period, err := parsePeriodParams(q.Get("from"), q.Get("to"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pass, err := a.evaluate(r.Context(), session.Input{Zone: zone, Period: period, Triggered: triggered})
	if err != nil {
		writeEvaluateError(w, r, err)
		return
	}

	data := dashboardData{
		Zones:       a.ctrl.Zones().Zones(),
		View:        pass.view,
		Frame:       pass.frame,
		Reported:    pass.view.State == models.StateReported,
		ChartWidth:  chartWidth,
		ChartHeight: chartHeight,
	}
	if rep := pass.view.Report; rep != nil {
		data.AreaPopup = "Affected area: " + rep.Area()
		data.Chart = render.Chart(rep.Coverage, chartWidth, chartHeight, chartPad)
		data.Polyline = render.Polyline(data.Chart)
		data.Downloads = downloadURLs(pass.token)
		data.ReloadURL = dashboardURL(pass.view)
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render dashboard")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// dashboardURL is the idle GET address of a view's selections.
func dashboardURL(v session.View) string {
	q := url.Values{
		"zone": {v.Zone.Name},
		"from": {v.Period.From()},
		"to":   {v.Period.To()},
	}
	return "/?" + q.Encode()
}
