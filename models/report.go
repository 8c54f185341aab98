package models

import (
	"strconv"
	"time"
)

// AnalysisState is the outcome of one render pass.
type AnalysisState string

const (
	StateIdle     AnalysisState = "idle"
	StateReported AnalysisState = "reported"
)

// AnalysisReport holds the metrics shown after the analysis trigger.
type AnalysisReport struct {
	AreaHa          float64         `bson:"areaHa"          json:"areaHa"`
	AreaDelta       string          `bson:"areaDelta"       json:"areaDelta,omitempty"` // e.g. "-2.4%"
	ConfidencePct   float64         `bson:"confidencePct"   json:"confidencePct"`
	ConfidenceDelta string          `bson:"confidenceDelta" json:"confidenceDelta,omitempty"`
	CO2Kt           float64         `bson:"co2Kt"           json:"co2Kt"`
	Coverage        []CoveragePoint `bson:"coverage"        json:"coverage"`
}

// CoveragePoint is one yearly value of the vegetation coverage series.
type CoveragePoint struct {
	Year int     `bson:"year" json:"year"`
	Pct  float64 `bson:"pct"  json:"pct"`
}

// PlaceholderReport returns the fixed report used until a real inference backend
// is wired. Its values do not depend on zone or period.
func PlaceholderReport() AnalysisReport {
	return AnalysisReport{
		AreaHa:          15.2,
		AreaDelta:       "-2.4%",
		ConfidencePct:   92,
		ConfidenceDelta: "+1.5%",
		CO2Kt:           144,
		Coverage: []CoveragePoint{
			{Year: 2020, Pct: 100},
			{Year: 2021, Pct: 92},
			{Year: 2022, Pct: 85},
			{Year: 2023, Pct: 78},
			{Year: 2024, Pct: 75},
		},
	}
}

// Area formats the affected area, e.g. "15.2 ha".
func (r AnalysisReport) Area() string { return formatNumber(r.AreaHa) + " ha" }

// Confidence formats the AI confidence, e.g. "92%".
func (r AnalysisReport) Confidence() string { return formatNumber(r.ConfidencePct) + "%" }

// CO2 formats the emission estimate, e.g. "144 kt".
func (r AnalysisReport) CO2() string { return formatNumber(r.CO2Kt) + " kt" }

func (p CoveragePoint) Percent() string { return formatNumber(p.Pct) + "%" }

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Run is the audit record of one triggered analysis.
type Run struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Zone      string    `bson:"zone"          json:"zone"`
	Start     time.Time `bson:"start"         json:"start"`
	End       time.Time `bson:"end"           json:"end"`
	Renderer  string    `bson:"renderer"      json:"renderer"`
	Generator string    `bson:"generator"     json:"generator"`
	CreatedAt time.Time `bson:"createdAt"     json:"createdAt"`
}
