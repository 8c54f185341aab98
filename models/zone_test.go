package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2020-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, DefaultPeriod(), p)
	assert.Equal(t, "2020-01-01 to 2024-01-01", p.String())
	assert.False(t, p.Inverted())

	_, err = ParsePeriod("2020-13-01", "2024-01-01")
	assert.Error(t, err)
	_, err = ParsePeriod("2020-01-01", "yesterday")
	assert.Error(t, err)
}

func TestNewPeriod_KeepsInvertedRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 17, 30, 0, 0, time.FixedZone("CET", 3600))
	end := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	p := NewPeriod(start, end)
	assert.True(t, p.Inverted())
	assert.Equal(t, "2024-03-01", p.From())
	assert.Equal(t, "2021-01-01", p.To())
}

func TestPlaceholderReport_Display(t *testing.T) {
	r := PlaceholderReport()
	assert.Equal(t, "15.2 ha", r.Area())
	assert.Equal(t, "92%", r.Confidence())
	assert.Equal(t, "144 kt", r.CO2())
	assert.Equal(t, "100%", r.Coverage[0].Percent())
	assert.Len(t, r.Coverage, 5)
}
