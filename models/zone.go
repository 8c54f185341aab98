package models

import (
	"fmt"
	"time"
)

// Zone is a predefined area of interest shown on the dashboard.
type Zone struct {
	Name string  `yaml:"name" bson:"name" json:"name"`
	Lat  float64 `yaml:"lat"  bson:"lat"  json:"lat"`
	Lon  float64 `yaml:"lon"  bson:"lon"  json:"lon"`
	Zoom int     `yaml:"zoom" bson:"zoom" json:"zoom"` // default map zoom
}

// DateLayout is the wire and display format for period bounds.
const DateLayout = "2006-01-02"

// Period is the analysis window picked by the user. Start may be after End.
type Period struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end"   json:"end"`
}

// NewPeriod stores both bounds normalized to UTC midnight, without range checks.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: dateOnlyUTC(start), End: dateOnlyUTC(end)}
}

// PeriodFromYears maps a (startYear, endYear) slider pair to January 1st of each year.
func PeriodFromYears(startYear, endYear int) Period {
	return Period{
		Start: time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(endYear, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// DefaultPeriod is the window preselected by the date pickers.
func DefaultPeriod() Period {
	return PeriodFromYears(2020, 2024)
}

// ParsePeriod parses two YYYY-MM-DD bounds.
func ParsePeriod(from, to string) (Period, error) {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return Period{}, fmt.Errorf("parse start %q: %w", from, err)
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return Period{}, fmt.Errorf("parse end %q: %w", to, err)
	}
	return NewPeriod(start, end), nil
}

// Inverted reports whether Start is after End.
func (p Period) Inverted() bool { return p.Start.After(p.End) }

func (p Period) From() string { return p.Start.Format(DateLayout) }
func (p Period) To() string   { return p.End.Format(DateLayout) }

func (p Period) String() string {
	return p.From() + " to " + p.To()
}

func dateOnlyUTC(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}
