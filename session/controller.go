// Package session turns the user's selections for one render pass into either
// the idle state or an analysis report.
package session

import (
	"context"
	"fmt"
	"time"

	"terrawatch/models"

	"github.com/rs/zerolog"
)

// Input is everything one render pass depends on. Nothing carries over between
// passes: a pass without Triggered is idle even if the previous one reported.
type Input struct {
	Zone      string
	Period    models.Period
	Triggered bool
}

// View is the display data for one render pass. Report is nil when idle.
type View struct {
	Zone   models.Zone            `json:"zone"`
	Period models.Period          `json:"period"`
	State  models.AnalysisState   `json:"state"`
	Report *models.AnalysisReport `json:"report,omitempty"`
}

type Controller struct {
	zones *ZoneTable
	gen   Generator
}

// NewController uses the stub generator when gen is nil.
func NewController(zones *ZoneTable, gen Generator) *Controller {
	if gen == nil {
		gen = StubGenerator{}
	}
	return &Controller{zones: zones, gen: gen}
}

func (c *Controller) Zones() *ZoneTable { return c.zones }

func (c *Controller) Generator() Generator { return c.gen }

// SelectZone looks name up in the zone table.
func (c *Controller) SelectZone(name string) (models.Zone, error) {
	return c.zones.Lookup(name)
}

// SetPeriod keeps the bounds as given; an inverted range is accepted.
func (c *Controller) SetPeriod(start, end time.Time) models.Period {
	return models.NewPeriod(start, end)
}

// TriggerAnalysis reports whether this pass carries the trigger action.
func (c *Controller) TriggerAnalysis(in Input) bool {
	return in.Triggered
}

// BuildReport returns nil when not triggered, otherwise the generator's report.
func (c *Controller) BuildReport(ctx context.Context, zone models.Zone, period models.Period, triggered bool) (*models.AnalysisReport, error) {
	if !triggered {
		return nil, nil
	}
	r, err := c.gen.Generate(ctx, zone, period)
	if err != nil {
		return nil, fmt.Errorf("generate report with %s: %w", c.gen.Name(), err)
	}
	return &r, nil
}

// Evaluate runs one full render pass.
func (c *Controller) Evaluate(ctx context.Context, in Input) (View, error) {
	zone, err := c.SelectZone(in.Zone)
	if err != nil {
		return View{}, err
	}
	period := c.SetPeriod(in.Period.Start, in.Period.End)
	if period.Inverted() {
		zerolog.Ctx(ctx).Warn().
			Str("zone", zone.Name).
			Str("period", period.String()).
			Msg("inverted analysis period accepted")
	}

	view := View{Zone: zone, Period: period, State: models.StateIdle}
	report, err := c.BuildReport(ctx, zone, period, c.TriggerAnalysis(in))
	if err != nil {
		return View{}, err
	}
	if report != nil {
		view.State = models.StateReported
		view.Report = report
	}
	return view, nil
}
