// Package export formats an analysis report as a downloadable artifact.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"terrawatch/models"
)

type Format string

const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "txt", "text" and "csv", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (must be 'txt' or 'csv')", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Filename returns terra_watch_<zone>.<ext>.
func Filename(zone string, f Format) string {
	return fmt.Sprintf("terra_watch_%s.%s", zone, f)
}

// Artifact is a rendered download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

const textTemplate = `TerraWatch AI Report
Zone: {{.Zone.Name}}
Affected area: {{.Report.Area}}{{with .Report.AreaDelta}} ({{.}}){{end}}
AI confidence: {{.Report.Confidence}}{{with .Report.ConfidenceDelta}} ({{.}}){{end}}
Estimated CO2: {{.Report.CO2}}
Period: {{.Period.From}} to {{.Period.To}}
Coverage:
{{range .Report.Coverage}}  {{.Year}}: {{.Percent}}
{{end}}`

var textTmpl = template.Must(template.New("report").Parse(textTemplate))

// Build renders the report in format f.
func Build(f Format, zone models.Zone, period models.Period, report models.AnalysisReport) (Artifact, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatText:
		err = WriteText(&buf, zone, period, report)
	case FormatCSV:
		err = WriteCSV(&buf, zone, period, report)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    Filename(zone.Name, f),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func WriteText(w io.Writer, zone models.Zone, period models.Period, report models.AnalysisReport) error {
	data := struct {
		Zone   models.Zone
		Period models.Period
		Report models.AnalysisReport
	}{zone, period, report}
	if err := textTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render text report: %w", err)
	}
	return nil
}

func WriteCSV(w io.Writer, zone models.Zone, period models.Period, report models.AnalysisReport) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"field", "value"},
		{"zone", zone.Name},
		{"period_start", period.From()},
		{"period_end", period.To()},
		{"affected_area", report.Area()},
		{"ai_confidence", report.Confidence()},
		{"co2_estimate", report.CO2()},
	}
	for _, p := range report.Coverage {
		rows = append(rows, []string{"coverage_" + strconv.Itoa(p.Year), p.Percent()})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv report: %w", err)
	}
	return nil
}
