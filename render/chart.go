package render

import (
	"strconv"
	"strings"

	"terrawatch/models"
)

// ChartPoint is one coverage value placed in SVG user space.
type ChartPoint struct {
	X, Y  float64
	Year  int
	Label string
}

// Chart lays the coverage series out in a width x height box with pad pixels of
// margin. Higher values sit higher (smaller Y).
func Chart(series []models.CoveragePoint, width, height, pad float64) []ChartPoint {
	if len(series) == 0 {
		return nil
	}
	lo, hi := series[0].Pct, series[0].Pct
	for _, p := range series[1:] {
		lo = min(lo, p.Pct)
		hi = max(hi, p.Pct)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	innerW := width - 2*pad
	innerH := height - 2*pad

	out := make([]ChartPoint, len(series))
	for i, p := range series {
		x := pad + innerW/2
		if len(series) > 1 {
			x = pad + innerW*float64(i)/float64(len(series)-1)
		}
		out[i] = ChartPoint{
			X:     x,
			Y:     pad + innerH*(hi-p.Pct)/span,
			Year:  p.Year,
			Label: p.Percent(),
		}
	}
	return out
}

// Polyline formats points for an SVG points attribute.
func Polyline(points []ChartPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.FormatFloat(p.X, 'f', 1, 64) + "," + strconv.FormatFloat(p.Y, 'f', 1, 64)
	}
	return strings.Join(parts, " ")
}
