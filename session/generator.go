package session

import (
	"context"

	"terrawatch/models"
)

// Generator produces the report for a triggered analysis.
type Generator interface {
	Name() string
	Generate(ctx context.Context, zone models.Zone, period models.Period) (models.AnalysisReport, error)
}

// StubGenerator returns the placeholder report whatever the inputs.
type StubGenerator struct{}

func (StubGenerator) Name() string { return "stub" }

func (StubGenerator) Generate(context.Context, models.Zone, models.Period) (models.AnalysisReport, error) {
	return models.PlaceholderReport(), nil
}
