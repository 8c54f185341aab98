package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"terrawatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Name() string { return "mock" }

func (m *mockGenerator) Generate(ctx context.Context, zone models.Zone, period models.Period) (models.AnalysisReport, error) {
	args := m.Called(ctx, zone, period)
	return args.Get(0).(models.AnalysisReport), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testPeriods() []models.Period {
	return []models.Period{
		models.DefaultPeriod(),
		models.NewPeriod(date(2024, 1, 1), date(2020, 1, 1)),
		models.NewPeriod(date(2023, 6, 15), date(2023, 6, 15)),
		models.PeriodFromYears(1999, 2030),
	}
}

func TestController_BuildReport_IdleWithoutTrigger(t *testing.T) {
	ctrl := NewController(DefaultZoneTable(), nil)
	ctx := context.Background()

	for _, zone := range ctrl.Zones().Zones() {
		for _, period := range testPeriods() {
			report, err := ctrl.BuildReport(ctx, zone, period, false)
			require.NoError(t, err)
			assert.Nil(t, report, "zone %s period %s", zone.Name, period)
		}
	}
}

func TestController_BuildReport_ConstantWhenTriggered(t *testing.T) {
	ctrl := NewController(DefaultZoneTable(), nil)
	ctx := context.Background()
	want := models.PlaceholderReport()

	for _, zone := range ctrl.Zones().Zones() {
		for _, period := range testPeriods() {
			report, err := ctrl.BuildReport(ctx, zone, period, true)
			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Equal(t, want, *report, "zone %s period %s", zone.Name, period)
		}
	}
}

func TestController_BuildReport_Idempotent(t *testing.T) {
	ctrl := NewController(DefaultZoneTable(), nil)
	zone, err := ctrl.SelectZone("Dubai")
	require.NoError(t, err)
	period := models.DefaultPeriod()

	first, err := ctrl.BuildReport(context.Background(), zone, period, true)
	require.NoError(t, err)
	second, err := ctrl.BuildReport(context.Background(), zone, period, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Each call builds a fresh report; mutating one leaves the other intact.
	first.Coverage[0].Pct = 0
	assert.Equal(t, float64(100), second.Coverage[0].Pct)
}

func TestController_Evaluate_DubaiScenario(t *testing.T) {
	ctrl := NewController(DefaultZoneTable(), nil)

	view, err := ctrl.Evaluate(context.Background(), Input{
		Zone:      "Dubai",
		Period:    models.NewPeriod(date(2020, 1, 1), date(2024, 1, 1)),
		Triggered: true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StateReported, view.State)
	assert.Equal(t, models.Zone{Name: "Dubai", Lat: 25.2048, Lon: 55.2708, Zoom: 12}, view.Zone)
	require.NotNil(t, view.Report)
	assert.Equal(t, "15.2 ha", view.Report.Area())
	assert.Equal(t, "92%", view.Report.Confidence())
	assert.Equal(t, "144 kt", view.Report.CO2())
	assert.Equal(t, []models.CoveragePoint{
		{Year: 2020, Pct: 100},
		{Year: 2021, Pct: 92},
		{Year: 2022, Pct: 85},
		{Year: 2023, Pct: 78},
		{Year: 2024, Pct: 75},
	}, view.Report.Coverage)
}

func TestController_Evaluate_ResetsWithoutNewTrigger(t *testing.T) {
	ctrl := NewController(DefaultZoneTable(), nil)
	ctx := context.Background()
	in := Input{Zone: "Amazonie", Period: models.DefaultPeriod(), Triggered: true}

	reported, err := ctrl.Evaluate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.StateReported, reported.State)

	in.Triggered = false
	idle, err := ctrl.Evaluate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, idle.State)
	assert.Nil(t, idle.Report)

	in.Triggered = true
	again, err := ctrl.Evaluate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, reported, again)
}

func TestController_Evaluate_InvertedPeriodAccepted(t *testing.T) {
	ctrl := NewController(DefaultZoneTable(), nil)
	period := models.NewPeriod(date(2024, 1, 1), date(2020, 1, 1))

	view, err := ctrl.Evaluate(context.Background(), Input{Zone: "Dubai", Period: period, Triggered: true})
	require.NoError(t, err)
	assert.True(t, view.Period.Inverted())
	assert.Equal(t, period, view.Period)
	assert.Equal(t, models.StateReported, view.State)
}

func TestController_Evaluate_UnknownZone(t *testing.T) {
	ctrl := NewController(DefaultZoneTable(), nil)

	_, err := ctrl.Evaluate(context.Background(), Input{Zone: "Atlantis", Triggered: true})
	assert.ErrorIs(t, err, ErrUnknownZone)
}

func TestController_UsesGenerator(t *testing.T) {
	gen := new(mockGenerator)
	ctrl := NewController(DefaultZoneTable(), gen)
	zone, _ := ctrl.SelectZone("Dubai")
	period := models.DefaultPeriod()
	custom := models.AnalysisReport{AreaHa: 1, ConfidencePct: 50, CO2Kt: 2}

	gen.On("Generate", mock.Anything, zone, period).Return(custom, nil).Once()

	report, err := ctrl.BuildReport(context.Background(), zone, period, true)
	require.NoError(t, err)
	assert.Equal(t, custom, *report)

	// No call when idle.
	report, err = ctrl.BuildReport(context.Background(), zone, period, false)
	require.NoError(t, err)
	assert.Nil(t, report)
	gen.AssertExpectations(t)
}

func TestController_GeneratorError(t *testing.T) {
	gen := new(mockGenerator)
	ctrl := NewController(DefaultZoneTable(), gen)
	boom := errors.New("backend down")
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(models.AnalysisReport{}, boom)

	_, err := ctrl.Evaluate(context.Background(), Input{Zone: "Dubai", Period: models.DefaultPeriod(), Triggered: true})
	assert.ErrorIs(t, err, boom)
}
